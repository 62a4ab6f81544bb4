package vendorcfg

import (
	"github.com/optica-labs/frame-intake/constants"
)

// Config is the static per-vendor configuration selecting the parser and
// adapter pair and the detection signals. Loaded once per process; the
// pipeline never mutates it.
type Config struct {
	VendorKey          constants.VendorKey    `json:"vendor_key" validate:"required"`
	DisplayName        string                 `json:"display_name" validate:"required"`
	DocumentKind       constants.DocumentKind `json:"document_kind" validate:"required,oneof=html pdf text"`
	AdapterKind        constants.AdapterKind  `json:"adapter_kind" validate:"required,oneof=api scrape"`
	RequiresEnrichment bool                   `json:"requires_enrichment"`

	// KeepModelSuffix disables the default "/"-variant suffix strip for
	// vendors whose model names legitimately contain a slash.
	KeepModelSuffix bool `json:"keep_model_suffix"`

	// APIBaseURL is the search endpoint root for api adapters;
	// ScrapeBaseURL is the storefront root for scrape adapters.
	APIBaseURL    string `json:"api_base_url,omitempty" validate:"omitempty,url"`
	ScrapeBaseURL string `json:"scrape_base_url,omitempty" validate:"omitempty,url"`

	// Detection signals, strongest first.
	Domains    []string `json:"domains" validate:"required,min=1"`
	Signatures []string `json:"signatures"`
	Keywords   []string `json:"keywords"`
}
