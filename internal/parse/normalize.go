package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// StripModelSuffix drops the "/"-separated variant suffix from a model code
// ("KS CHERETTE2/US" -> "KS CHERETTE2", "BOSS 1857/G/U" -> "BOSS 1857").
// The suffix denotes a packaging/fit variant, not a distinguishing product
// attribute, and keeping it breaks catalog matching downstream.
func StripModelSuffix(model string) string {
	if i := strings.Index(model, "/"); i > 0 {
		return strings.TrimSpace(model[:i])
	}
	return strings.TrimSpace(model)
}

// NormalizeModel collapses whitespace and applies the suffix strip unless
// the vendor config opted out of it.
func NormalizeModel(model string, keepSuffix bool) string {
	m := CollapseWhitespace(model)
	if keepSuffix {
		return m
	}
	return StripModelSuffix(m)
}

// CollapseWhitespace trims and squeezes interior runs of whitespace.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var reSizeTriplet = regexp.MustCompile(`(\d{2})\s*[/\-x□ ]\s*(\d{2})(?:\s*[/\-x ]?\s*(\d{3}))?`)

// ParseSizeTriplet reads an eye/bridge(/temple) size in any of the common
// spellings: "52/17 140", "52-17-140", "52 17 140". Temple is optional.
func ParseSizeTriplet(s string) (eye, bridge, temple int, ok bool) {
	m := reSizeTriplet.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	eye, _ = strconv.Atoi(m[1])
	bridge, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		temple, _ = strconv.Atoi(m[3])
	}
	return eye, bridge, temple, true
}

// ParseMoney reads a money amount, tolerating currency symbols and
// thousands separators. Returns nil when the text holds no usable amount.
func ParseMoney(s string) *decimal.Decimal {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &d
}

// ParseQuantity reads a quantity, defaulting to 1 when the document omits
// or mangles it. An order line always means at least one piece.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
