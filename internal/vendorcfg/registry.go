package vendorcfg

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/optica-labs/frame-intake/constants"
)

// Registry is the closed set of supported vendor configurations.
// Behavior is selected through the typed VendorKey, never through
// free-form string dispatch.
type Registry struct {
	byKey    map[constants.VendorKey]Config
	validate *validator.Validate
}

// NewRegistry builds the registry with the nine shipped vendor configs.
func NewRegistry() *Registry {
	r := &Registry{
		byKey:    make(map[constants.VendorKey]Config, len(defaults)),
		validate: validator.New(),
	}
	for _, cfg := range defaults {
		r.byKey[cfg.VendorKey] = cfg
	}
	return r
}

// Get returns the config for a vendor key.
func (r *Registry) Get(key constants.VendorKey) (Config, bool) {
	cfg, ok := r.byKey[key]
	return cfg, ok
}

// All returns every config in the stable registry order.
func (r *Registry) All() []Config {
	out := make([]Config, 0, len(r.byKey))
	for _, key := range constants.AllVendors {
		if cfg, ok := r.byKey[key]; ok {
			out = append(out, cfg)
		}
	}
	return out
}

// set validates and stores a config. Only override application uses it;
// the registry is otherwise immutable after construction.
func (r *Registry) set(cfg Config) error {
	if err := r.validate.Struct(cfg); err != nil {
		return fmt.Errorf("vendor config %s: %w", cfg.VendorKey, err)
	}
	if _, ok := r.byKey[cfg.VendorKey]; !ok {
		return fmt.Errorf("vendor config %s: not a registered vendor", cfg.VendorKey)
	}
	r.byKey[cfg.VendorKey] = cfg
	return nil
}

var defaults = []Config{
	{
		VendorKey:          constants.VendorSafilo,
		DisplayName:        "Safilo Group",
		DocumentKind:       constants.DocumentPDF,
		AdapterKind:        constants.AdapterAPI,
		RequiresEnrichment: true,
		APIBaseURL:         "https://b2b.safilo.com/api/v1",
		Domains:            []string{"safilo.com", "mysafilo.com"},
		Signatures:         []string{`(?i)@(?:my)?safilo\.com`, `(?i)safilo\s+usa`},
		Keywords:           []string{"safilo", "carrera", "kate spade", "boss "},
	},
	{
		VendorKey:          constants.VendorMarcolin,
		DisplayName:        "Marcolin",
		DocumentKind:       constants.DocumentPDF,
		AdapterKind:        constants.AdapterAPI,
		RequiresEnrichment: true,
		APIBaseURL:         "https://mymarcolin.com/api",
		Domains:            []string{"marcolin.com", "mymarcolin.com"},
		Signatures:         []string{`(?i)@(?:my)?marcolin\.com`, `(?i)marcolin\s+(?:usa|s\.p\.a)`},
		Keywords:           []string{"marcolin", "guess eyewear", "tom ford eyewear"},
	},
	{
		VendorKey:          constants.VendorLuxottica,
		DisplayName:        "Luxottica",
		DocumentKind:       constants.DocumentHTML,
		AdapterKind:        constants.AdapterAPI,
		RequiresEnrichment: false, // order emails already embed UPC and wholesale
		APIBaseURL:         "https://my.luxottica.com/api/catalog",
		Domains:            []string{"luxottica.com", "my.luxottica.com"},
		Signatures:         []string{`(?i)@luxottica\.com`, `(?i)luxottica\s+group`},
		Keywords:           []string{"luxottica", "ray-ban", "oakley"},
	},
	{
		VendorKey:          constants.VendorMarchon,
		DisplayName:        "Marchon Eyewear",
		DocumentKind:       constants.DocumentHTML,
		AdapterKind:        constants.AdapterAPI,
		RequiresEnrichment: true,
		APIBaseURL:         "https://www.marchon.com/api/products",
		Domains:            []string{"marchon.com"},
		Signatures:         []string{`(?i)@marchon\.com`, `(?i)marchon\s+eyewear`},
		Keywords:           []string{"marchon", "flexon", "calvin klein eyewear"},
	},
	{
		VendorKey:          constants.VendorModo,
		DisplayName:        "MODO Eyewear",
		DocumentKind:       constants.DocumentHTML,
		AdapterKind:        constants.AdapterScrape,
		RequiresEnrichment: true,
		ScrapeBaseURL:      "https://modo.com/frames",
		Domains:            []string{"modo.com", "modoeyewear.com"},
		Signatures:         []string{`(?i)@modo(?:eyewear)?\.com`},
		Keywords:           []string{"modo", "eco eyewear"},
	},
	{
		VendorKey:          constants.VendorLamy,
		DisplayName:        "L'Amy America",
		DocumentKind:       constants.DocumentHTML,
		AdapterKind:        constants.AdapterScrape,
		RequiresEnrichment: true,
		ScrapeBaseURL:      "https://www.lamyamerica.com/frames",
		Domains:            []string{"lamyamerica.com", "lamy-america.com"},
		Signatures:         []string{`(?i)@lamy(?:-?america)?\.com`, `(?i)l'amy\s+america`},
		Keywords:           []string{"l'amy", "lamy america", "champion eyewear"},
	},
	{
		VendorKey:          constants.VendorClearVision,
		DisplayName:        "ClearVision Optical",
		DocumentKind:       constants.DocumentHTML,
		AdapterKind:        constants.AdapterAPI,
		RequiresEnrichment: false, // full catalog JSON rides inside the order page
		APIBaseURL:         "https://www.cvoptical.com/api",
		Domains:            []string{"cvoptical.com", "clearvisionoptical.com"},
		Signatures:         []string{`(?i)@(?:cvoptical|clearvisionoptical)\.com`},
		Keywords:           []string{"clearvision", "cvo ", "bcbgmaxazria eyewear"},
	},
	{
		VendorKey:          constants.VendorEuropa,
		DisplayName:        "Europa Eyewear",
		DocumentKind:       constants.DocumentText,
		AdapterKind:        constants.AdapterScrape,
		RequiresEnrichment: true,
		ScrapeBaseURL:      "https://www.europaeye.com/frames",
		Domains:            []string{"europaeye.com"},
		Signatures:         []string{`(?i)@europaeye\.com`, `(?i)europa\s+(?:eyewear|international)`},
		Keywords:           []string{"europa", "michael ryen", "scott harris"},
	},
	{
		VendorKey:          constants.VendorZyloware,
		DisplayName:        "Zyloware Eyewear",
		DocumentKind:       constants.DocumentText,
		AdapterKind:        constants.AdapterAPI,
		RequiresEnrichment: true,
		APIBaseURL:         "https://www.zyloware.com/api/catalog",
		Domains:            []string{"zyloware.com"},
		Signatures:         []string{`(?i)@zyloware\.com`},
		Keywords:           []string{"zyloware", "sophia loren eyewear", "stetson eyewear"},
	},
}
