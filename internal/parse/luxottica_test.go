package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica-labs/frame-intake/constants"
)

const luxotticaDoc = `<html><body>
<table>
<tr><td>Order Number:</td><td>LX-55012</td></tr>
<tr><td>Order Date:</td><td>2026-08-12</td></tr>
<tr><td>Account:</td><td>002219</td></tr>
<tr><td>Customer:</td><td>HARBOR OPTICAL</td></tr>
</table>
<table>
<tr><th>Model</th><th>Color Code</th><th>Color Name</th><th>Size</th><th>Qty</th><th>UPC</th><th>Wholesale</th><th>MSRP</th></tr>
<tr><td>RB5154</td><td>2000</td><td>BLACK</td><td>49/21 140</td><td>2</td><td>805289115403</td><td>78.00</td><td>213.00</td></tr>
<tr><td>OX8046</td><td>02</td><td>POLISHED GREY</td><td>54/17 136</td><td>1</td><td>888392258762</td><td>91.00</td><td>244.00</td></tr>
</table>
</body></html>`

func TestLuxotticaParse(t *testing.T) {
	p, err := ForVendor(testVendorConfig(t, constants.VendorLuxottica), testLogger())
	require.NoError(t, err)

	parsed, err := p.Parse(context.Background(), []byte(luxotticaDoc))
	require.NoError(t, err)

	assert.Equal(t, "LX-55012", parsed.Order.OrderNumber)
	assert.Equal(t, "2026-08-12", parsed.Order.OrderDate)
	assert.Equal(t, "002219", parsed.Order.AccountNumber)
	assert.Equal(t, "HARBOR OPTICAL", parsed.Order.CustomerName)

	require.Len(t, parsed.Items, 2)

	rb := parsed.Items[0]
	assert.Equal(t, "RAY-BAN", rb.Brand)
	assert.Equal(t, "RB5154", rb.Model)
	assert.Equal(t, "2000", rb.ColorCode)
	assert.Equal(t, 49, rb.EyeSize)
	assert.Equal(t, 21, rb.Bridge)
	assert.Equal(t, 140, rb.Temple)
	assert.Equal(t, 2, rb.Quantity)
	require.NotNil(t, rb.UPC)
	assert.Equal(t, "805289115403", *rb.UPC)
	require.NotNil(t, rb.Wholesale)
	assert.Equal(t, "78.00", rb.Wholesale.StringFixed(2))
	require.NotNil(t, rb.MSRP)
	assert.Equal(t, "213.00", rb.MSRP.StringFixed(2))
	assert.True(t, rb.HasCatalogData(), "embedded UPC and wholesale make lookups redundant")

	assert.Equal(t, "OAKLEY", parsed.Items[1].Brand)
}

func TestLuxotticaParseNoItemTable(t *testing.T) {
	p, err := ForVendor(testVendorConfig(t, constants.VendorLuxottica), testLogger())
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), []byte("<html><body><p>no tables</p></body></html>"))
	assert.Error(t, err)
}
