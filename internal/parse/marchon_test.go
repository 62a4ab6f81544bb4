package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica-labs/frame-intake/constants"
)

const marchonDoc = `<html><body>
<table>
<tr><td>Order Number:</td><td>MC-31240</td></tr>
<tr><td>Ship To:</td><td>DOWNTOWN EYECARE</td></tr>
</table>
<table>
<tr><th>Style</th><th>Color Code</th><th>Color Name</th><th>Eye</th><th>Bridge</th><th>Temple</th><th>Qty</th><th>SKU</th></tr>
<tr><td>FLEXON EP8105</td><td>412</td><td>NAVY</td><td>53</td><td>18</td><td>140</td><td>1</td><td>FLX-EP8105-412</td></tr>
<tr><td>CK22501</td><td>001</td><td>BLACK</td><td>55</td><td>17</td><td>145</td><td>3</td><td>CK-22501-001</td></tr>
</table>
</body></html>`

func TestMarchonParse(t *testing.T) {
	p, err := ForVendor(testVendorConfig(t, constants.VendorMarchon), testLogger())
	require.NoError(t, err)

	parsed, err := p.Parse(context.Background(), []byte(marchonDoc))
	require.NoError(t, err)

	assert.Equal(t, "MC-31240", parsed.Order.OrderNumber)
	assert.Equal(t, "DOWNTOWN EYECARE", parsed.Order.CustomerName)

	require.Len(t, parsed.Items, 2)

	fx := parsed.Items[0]
	assert.Equal(t, "FLEXON", fx.Brand)
	assert.Equal(t, "FLEXON EP8105", fx.Model)
	assert.Equal(t, "412", fx.ColorCode)
	assert.Equal(t, "NAVY", fx.ColorName)
	assert.Equal(t, 53, fx.EyeSize)
	assert.Equal(t, 18, fx.Bridge)
	assert.Equal(t, 140, fx.Temple)
	assert.Equal(t, "53/18 140", fx.FullSize)
	assert.Equal(t, "FLX-EP8105-412", fx.SKU)

	ck := parsed.Items[1]
	assert.Equal(t, "CALVIN KLEIN", ck.Brand)
	assert.Equal(t, 3, ck.Quantity)
	assert.Nil(t, ck.UPC, "Marchon mail does not embed catalog data")
}
