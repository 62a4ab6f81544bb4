package constants

// ItemStatus is the canonical enrichment state for a parsed line item.
type ItemStatus string

// Stable values. PARSED is the only non-terminal state; the enrichment stage
// moves every item to exactly one terminal state and never reverts it.
const (
	ItemStatusParsed        ItemStatus = "PARSED"                  // parsed, not yet enriched
	ItemStatusValidated     ItemStatus = "ENRICHED_VALIDATED"      // match score reached threshold
	ItemStatusLowConfidence ItemStatus = "ENRICHED_LOW_CONFIDENCE" // best-effort match or empty catalog result
	ItemStatusFailed        ItemStatus = "ENRICHMENT_FAILED"       // lookup exhausted its retry budget
)

// DetectionTier classifies how a document was attributed to a vendor.
type DetectionTier string

const (
	TierDomainMatch    DetectionTier = "domain-match"
	TierSignatureMatch DetectionTier = "signature-match"
	TierKeywordMatch   DetectionTier = "keyword-match"
	TierUnknown        DetectionTier = "unknown"
)

// TierScore maps a detection tier to its nominal confidence.
var TierScore = map[DetectionTier]int{
	TierDomainMatch:    95,
	TierSignatureMatch: 85,
	TierKeywordMatch:   65,
	TierUnknown:        0,
}
