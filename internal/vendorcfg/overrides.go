package vendorcfg

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/optica-labs/frame-intake/constants"
)

// overrideSchema constrains the operator-supplied override file. Overrides
// can retarget endpoints or flip behavior flags, never add vendors.
const overrideSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": false,
    "required": ["vendor_key"],
    "properties": {
      "vendor_key": {
        "type": "string",
        "enum": ["safilo", "marcolin", "luxottica", "marchon", "modo",
                 "lamy", "clearvision", "europa", "zyloware"]
      },
      "requires_enrichment": {"type": "boolean"},
      "keep_model_suffix": {"type": "boolean"},
      "api_base_url": {"type": "string", "minLength": 1},
      "scrape_base_url": {"type": "string", "minLength": 1}
    }
  }
}`

var compiledOverrideSchema = jsonschema.MustCompileString("vendor-overrides.json", overrideSchema)

type override struct {
	VendorKey          string  `json:"vendor_key"`
	RequiresEnrichment *bool   `json:"requires_enrichment"`
	KeepModelSuffix    *bool   `json:"keep_model_suffix"`
	APIBaseURL         *string `json:"api_base_url"`
	ScrapeBaseURL      *string `json:"scrape_base_url"`
}

// ApplyOverrides validates raw JSON against the override schema and merges
// it over the shipped defaults. Unset fields keep their default value.
func (r *Registry) ApplyOverrides(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode overrides: %w", err)
	}
	if err := compiledOverrideSchema.Validate(doc); err != nil {
		return fmt.Errorf("validate overrides: %w", err)
	}

	var overrides []override
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("decode overrides: %w", err)
	}

	for _, o := range overrides {
		cfg, ok := r.byKey[constants.VendorKey(o.VendorKey)]
		if !ok {
			return fmt.Errorf("override for unregistered vendor %q", o.VendorKey)
		}
		if o.RequiresEnrichment != nil {
			cfg.RequiresEnrichment = *o.RequiresEnrichment
		}
		if o.KeepModelSuffix != nil {
			cfg.KeepModelSuffix = *o.KeepModelSuffix
		}
		if o.APIBaseURL != nil {
			cfg.APIBaseURL = *o.APIBaseURL
		}
		if o.ScrapeBaseURL != nil {
			cfg.ScrapeBaseURL = *o.ScrapeBaseURL
		}
		if err := r.set(cfg); err != nil {
			return err
		}
	}
	return nil
}
