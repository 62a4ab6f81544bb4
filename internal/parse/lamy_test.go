package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica-labs/frame-intake/constants"
)

const lamyDoc = `<html><body>
<table>
<tr><td>Order Number:</td><td>LA-20517</td></tr>
<tr><td>Customer:</td><td>RIVERSIDE OPTOMETRY</td></tr>
</table>
<table>
<tr><th>Style</th><th>Color #</th><th>Color</th><th>A</th><th>DBL</th><th>Temple</th><th>Pieces</th></tr>
<tr><td>CHAMPION 2025</td><td>001</td><td>NAVY</td><td>52</td><td>17</td><td>140</td><td>2</td></tr>
<tr><td>SL204</td><td>C03</td><td>BORDEAUX</td><td>54</td><td>16</td><td>135</td><td>1</td></tr>
</table>
</body></html>`

func TestLamyParse(t *testing.T) {
	p, err := ForVendor(testVendorConfig(t, constants.VendorLamy), testLogger())
	require.NoError(t, err)

	parsed, err := p.Parse(context.Background(), []byte(lamyDoc))
	require.NoError(t, err)

	assert.Equal(t, "LA-20517", parsed.Order.OrderNumber)
	require.Len(t, parsed.Items, 2)

	ch := parsed.Items[0]
	assert.Equal(t, "CHAMPION", ch.Brand)
	assert.Equal(t, "CHAMPION 2025", ch.Model)
	assert.Equal(t, "001", ch.ColorCode, `read from "Color #", not "Color"`)
	assert.Equal(t, "NAVY", ch.ColorName)
	assert.Equal(t, 52, ch.EyeSize, "the A column is the eye size")
	assert.Equal(t, 17, ch.Bridge, "the DBL column is the bridge")
	assert.Equal(t, 140, ch.Temple)
	assert.Equal(t, 2, ch.Quantity)

	sl := parsed.Items[1]
	assert.Equal(t, "SONIA RYKIEL", sl.Brand)
	assert.Equal(t, "C03", sl.ColorCode)
	assert.Equal(t, "BORDEAUX", sl.ColorName)
}
