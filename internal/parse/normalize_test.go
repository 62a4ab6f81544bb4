package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripModelSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"KS CHERETTE2/US", "KS CHERETTE2"},
		{"BOSS 1857/G/U", "BOSS 1857"},
		{"RB5154", "RB5154"},
		{"  MODO 4509  ", "MODO 4509"},
		{"/LEADING", "/LEADING"}, // a leading slash is not a suffix
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripModelSuffix(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeModelKeepSuffix(t *testing.T) {
	assert.Equal(t, "KS CHERETTE2", NormalizeModel("KS  CHERETTE2/US", false))
	assert.Equal(t, "KS CHERETTE2/US", NormalizeModel("KS  CHERETTE2/US", true))
}

func TestParseSizeTriplet(t *testing.T) {
	tests := []struct {
		in                  string
		eye, bridge, temple int
		ok                  bool
	}{
		{"52/17 140", 52, 17, 140, true},
		{"52-17-140", 52, 17, 140, true},
		{"52 17 140", 52, 17, 140, true},
		{"54/16", 54, 16, 0, true},
		{"no size here", 0, 0, 0, false},
	}
	for _, tt := range tests {
		eye, bridge, temple, ok := ParseSizeTriplet(tt.in)
		require.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.eye, eye)
		assert.Equal(t, tt.bridge, bridge)
		assert.Equal(t, tt.temple, temple)
	}
}

func TestParseMoney(t *testing.T) {
	d := ParseMoney("$1,234.50")
	require.NotNil(t, d)
	assert.Equal(t, "1234.50", d.StringFixed(2))

	assert.Nil(t, ParseMoney(""))
	assert.Nil(t, ParseMoney("n/a"))
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 2, ParseQuantity("2"))
	assert.Equal(t, 1, ParseQuantity(""))
	assert.Equal(t, 1, ParseQuantity("0"))
	assert.Equal(t, 1, ParseQuantity("x"))
}
