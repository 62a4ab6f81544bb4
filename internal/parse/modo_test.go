package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica-labs/frame-intake/constants"
)

const modoDoc = `<html><body>
<table>
<tr><td>Order Number:</td><td>MO-7781</td></tr>
<tr><td>Customer:</td><td>NORTH PARK VISION</td></tr>
</table>
<table>
<tr><th>Frame</th><th>Color</th><th>Size</th><th>Qty</th></tr>
<tr><td>MODO 4509 / BLACK</td><td></td><td>50-21-140</td><td>1</td></tr>
<tr><td>MODO 7012</td><td>210 MATTE BLACK</td><td>52-20-145</td><td>2</td></tr>
</table>
</body></html>`

func TestModoParse(t *testing.T) {
	p, err := ForVendor(testVendorConfig(t, constants.VendorModo), testLogger())
	require.NoError(t, err)

	parsed, err := p.Parse(context.Background(), []byte(modoDoc))
	require.NoError(t, err)

	assert.Equal(t, "MO-7781", parsed.Order.OrderNumber)
	require.Len(t, parsed.Items, 2)

	first := parsed.Items[0]
	assert.Equal(t, "MODO", first.Brand)
	assert.Equal(t, "MODO 4509", first.Model, "slash in the Frame cell separates the color, not a variant")
	assert.Equal(t, "BLACK", first.ColorName)
	assert.Equal(t, "BLACK", first.ColorCode, "non-numeric color name doubles as the code")
	assert.Equal(t, 50, first.EyeSize)
	assert.Equal(t, 21, first.Bridge)
	assert.Equal(t, 140, first.Temple)

	second := parsed.Items[1]
	assert.Equal(t, "MODO 7012", second.Model)
	assert.Equal(t, "210", second.ColorCode, "leading number in the color cell is the code")
	assert.Equal(t, "210 MATTE BLACK", second.ColorName)
	assert.Equal(t, 2, second.Quantity)
}
