package constants

// VendorKey identifies one frame supplier and selects its parser/adapter pair.
type VendorKey string

// Stable values (these exact strings appear in output payloads).
const (
	VendorSafilo      VendorKey = "safilo"
	VendorMarcolin    VendorKey = "marcolin"
	VendorLuxottica   VendorKey = "luxottica"
	VendorMarchon     VendorKey = "marchon"
	VendorModo        VendorKey = "modo"
	VendorLamy        VendorKey = "lamy"
	VendorClearVision VendorKey = "clearvision"
	VendorEuropa      VendorKey = "europa"
	VendorZyloware    VendorKey = "zyloware"
	VendorUnknown     VendorKey = "unknown"
)

// AllVendors lists every supported vendor in registry order.
var AllVendors = []VendorKey{
	VendorSafilo,
	VendorMarcolin,
	VendorLuxottica,
	VendorMarchon,
	VendorModo,
	VendorLamy,
	VendorClearVision,
	VendorEuropa,
	VendorZyloware,
}

// DocumentKind is the physical format of an inbound order confirmation.
type DocumentKind string

const (
	DocumentHTML DocumentKind = "html"
	DocumentPDF  DocumentKind = "pdf"
	DocumentText DocumentKind = "text"
)

// AdapterKind selects the enrichment strategy for a vendor.
type AdapterKind string

const (
	AdapterAPI    AdapterKind = "api"    // vendor exposes a JSON search API
	AdapterScrape AdapterKind = "scrape" // vendor only has a storefront page per stock key
)
