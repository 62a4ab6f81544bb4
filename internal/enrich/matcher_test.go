package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica-labs/frame-intake/internal/entity"
)

func TestMatchNoCandidates(t *testing.T) {
	m := Matcher{Threshold: 50}
	res := m.Match(entity.LineItem{Model: "MRX104"}, nil)
	assert.Nil(t, res.Variant)
	assert.False(t, res.Validated)
	assert.Equal(t, "no candidates in vendor catalog", res.Reason)
}

func TestMatchFullSignal(t *testing.T) {
	m := Matcher{Threshold: 50}
	item := entity.LineItem{ColorCode: "001", EyeSize: 53, Bridge: 18}
	candidates := []entity.Variant{
		{SKU: "wrong", ColorCode: "7", EyeSize: 51, Bridge: 16},
		{SKU: "right", ColorCode: "1", EyeSize: 53, Bridge: 18},
	}

	res := m.Match(item, candidates)
	require.NotNil(t, res.Variant)
	assert.Equal(t, "right", res.Variant.SKU, `"001" and "1" are the same color code`)
	assert.Equal(t, 100, res.Score)
	assert.True(t, res.Validated)
	assert.Contains(t, res.Reason, "color code match")
	assert.Contains(t, res.Reason, "eye size match")
	assert.Contains(t, res.Reason, "bridge match")
}

func TestMatchColorNameOnlyStaysBelowThreshold(t *testing.T) {
	m := Matcher{Threshold: 50}
	item := entity.LineItem{ColorName: "MATTE BLACK"}
	candidates := []entity.Variant{{SKU: "a", ColorName: "BLACK"}}

	res := m.Match(item, candidates)
	assert.Equal(t, 25, res.Score)
	assert.False(t, res.Validated)
	assert.Contains(t, res.Reason, "low confidence:")
	assert.Contains(t, res.Reason, "color name overlap")
}

func TestMatchNoSignalTakesFirstCandidate(t *testing.T) {
	m := Matcher{Threshold: 50}
	res := m.Match(entity.LineItem{}, []entity.Variant{{SKU: "first"}, {SKU: "second"}})
	require.NotNil(t, res.Variant)
	assert.Equal(t, "first", res.Variant.SKU)
	assert.Zero(t, res.Score)
	assert.False(t, res.Validated)
}

func TestMatchTieBreaksFirstSeen(t *testing.T) {
	m := Matcher{Threshold: 50}
	item := entity.LineItem{ColorCode: "2", EyeSize: 52}
	candidates := []entity.Variant{
		{SKU: "a", ColorCode: "2", EyeSize: 52},
		{SKU: "b", ColorCode: "2", EyeSize: 52},
	}
	res := m.Match(item, candidates)
	require.NotNil(t, res.Variant)
	assert.Equal(t, "a", res.Variant.SKU)
}

func TestMatchIsDeterministic(t *testing.T) {
	m := Matcher{Threshold: 50}
	item := entity.LineItem{ColorCode: "052", EyeSize: 55, ColorName: "DARK HAVANA"}
	candidates := []entity.Variant{
		{SKU: "x", ColorCode: "52", EyeSize: 55},
		{SKU: "y", ColorCode: "52", EyeSize: 54, ColorName: "HAVANA"},
	}
	first := m.Match(item, candidates)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Match(item, candidates))
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "1", normalizeCode("001"))
	assert.Equal(t, "0", normalizeCode("000"))
	assert.Equal(t, "X19", normalizeCode(" x19 "))
	assert.Equal(t, "", normalizeCode(""))
}

func TestColorNameOverlap(t *testing.T) {
	assert.True(t, colorNameOverlap("MATTE BLACK", "black"))
	assert.False(t, colorNameOverlap("NAVY", "BLACK"))
	assert.False(t, colorNameOverlap("", "BLACK"))
	assert.False(t, colorNameOverlap("A B", "A B"), "words shorter than three letters carry no signal")
}
