package detect

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// Envelope is the raw inbound message as the caller received it.
// Forwarded mail strips the true envelope sender, so detection also scans
// the body for embedded "From:" / "References:" / "In-Reply-To:" lines.
type Envelope struct {
	From    string
	Subject string
	Body    string
}

// Result is the outcome of vendor detection. Detection never errors;
// an unknown vendor is a valid, reported outcome.
type Result struct {
	Vendor      constants.VendorKey     `json:"vendor"`
	Tier        constants.DetectionTier `json:"tier"`
	Score       int                     `json:"score"`
	MatchedRule string                  `json:"matched_rule,omitempty"`
}

// Detector classifies an inbound document to a vendor identity.
type Detector struct {
	logger     *slog.Logger
	configs    []vendorcfg.Config
	signatures map[constants.VendorKey][]*regexp.Regexp
}

func NewDetector(logger *slog.Logger, registry *vendorcfg.Registry) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Detector{
		logger:     logger,
		configs:    registry.All(),
		signatures: make(map[constants.VendorKey][]*regexp.Regexp),
	}
	for _, cfg := range d.configs {
		for _, src := range cfg.Signatures {
			// Shipped signatures are compile-checked by the detector test.
			if re, err := regexp.Compile(src); err == nil {
				d.signatures[cfg.VendorKey] = append(d.signatures[cfg.VendorKey], re)
			} else {
				logger.Warn("detect.signature.invalid", "vendor", cfg.VendorKey, "pattern", src, "err", err)
			}
		}
	}
	return d
}

// Detect runs the rule tiers in priority order: sender domain, forwarded
// header signature, then keyword occurrence over subject+body.
func (d *Detector) Detect(env Envelope) Result {
	if r, ok := d.byDomain(env.From); ok {
		d.logger.Info("detect.domain", "vendor", r.Vendor, "rule", r.MatchedRule)
		return r
	}
	if r, ok := d.bySignature(env); ok {
		d.logger.Info("detect.signature", "vendor", r.Vendor, "rule", r.MatchedRule)
		return r
	}
	if r, ok := d.byKeyword(env); ok {
		d.logger.Info("detect.keyword", "vendor", r.Vendor, "rule", r.MatchedRule)
		return r
	}
	d.logger.Info("detect.unknown", "from", env.From, "subject", env.Subject)
	return Result{Vendor: constants.VendorUnknown, Tier: constants.TierUnknown}
}

func (d *Detector) byDomain(from string) (Result, bool) {
	domain := senderDomain(from)
	if domain == "" {
		return Result{}, false
	}
	for _, cfg := range d.configs {
		for _, want := range cfg.Domains {
			if domain == want || strings.HasSuffix(domain, "."+want) {
				return Result{
					Vendor:      cfg.VendorKey,
					Tier:        constants.TierDomainMatch,
					Score:       constants.TierScore[constants.TierDomainMatch],
					MatchedRule: want,
				}, true
			}
		}
	}
	return Result{}, false
}

func (d *Detector) bySignature(env Envelope) (Result, bool) {
	headers := forwardedHeaderContent(env.Body)
	if headers == "" {
		return Result{}, false
	}
	for _, cfg := range d.configs {
		for _, re := range d.signatures[cfg.VendorKey] {
			if loc := re.FindString(headers); loc != "" {
				return Result{
					Vendor:      cfg.VendorKey,
					Tier:        constants.TierSignatureMatch,
					Score:       constants.TierScore[constants.TierSignatureMatch],
					MatchedRule: re.String(),
				}, true
			}
		}
	}
	return Result{}, false
}

func (d *Detector) byKeyword(env Envelope) (Result, bool) {
	haystack := strings.ToLower(env.Subject + "\n" + env.Body)
	best := Result{}
	bestHits := 0
	for _, cfg := range d.configs {
		hits := 0
		matched := ""
		for _, kw := range cfg.Keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				hits++
				if matched == "" {
					matched = kw
				}
			}
		}
		// Registry order breaks ties, so a later vendor must strictly beat
		// the incumbent.
		if hits > bestHits {
			bestHits = hits
			best = Result{
				Vendor:      cfg.VendorKey,
				Tier:        constants.TierKeywordMatch,
				Score:       constants.TierScore[constants.TierKeywordMatch],
				MatchedRule: matched,
			}
		}
	}
	return best, bestHits > 0
}

var reAddrDomain = regexp.MustCompile(`@([A-Za-z0-9.-]+\.[A-Za-z]{2,})`)

// senderDomain pulls the domain out of a From value, tolerating both bare
// addresses and "Display Name <user@host>" forms.
func senderDomain(from string) string {
	m := reAddrDomain.FindStringSubmatch(from)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

var reForwardedHeader = regexp.MustCompile(`(?im)^[>\s]*(?:From|References|In-Reply-To):\s*(.+)$`)

// forwardedHeaderContent collects header lines that mail clients embed in
// the body when a message is forwarded.
func forwardedHeaderContent(body string) string {
	matches := reForwardedHeader.FindAllStringSubmatch(body, -1)
	if matches == nil {
		return ""
	}
	var b strings.Builder
	for _, m := range matches {
		b.WriteString(m[1])
		b.WriteString("\n")
	}
	return b.String()
}
