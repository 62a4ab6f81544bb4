package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Extractor turns a PDF order confirmation into layout-preserving text.
// Column positions matter to the downstream parsers, so extraction always
// uses -layout.
type Extractor struct {
	logger    *slog.Logger
	pdftotext string
	runner    Runner
}

func NewExtractor(logger *slog.Logger, pdftotext string) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if pdftotext == "" {
		pdftotext = "pdftotext"
	}
	return &Extractor{logger: logger, pdftotext: pdftotext, runner: execRunner{}}
}

// WithRunner substitutes the command runner; tests use this to stub the
// external tool.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// ExtractText writes the PDF bytes to a temp file and runs
// pdftotext -layout -enc UTF-8 -eol unix <path> - over it.
// Returns the text and the page count (form feeds separate pages).
func (e *Extractor) ExtractText(ctx context.Context, pdf []byte) (string, int, error) {
	tmp, err := os.CreateTemp("", "fi-order-*.pdf")
	if err != nil {
		return "", 0, fmt.Errorf("create temp pdf: %w", err)
	}
	defer func(path string) {
		if err := os.Remove(path); err != nil {
			e.logger.Warn("pdftext.tmp_remove_failed", "path", path, "err", err)
		}
	}(tmp.Name())

	if _, err := tmp.Write(pdf); err != nil {
		_ = tmp.Close()
		return "", 0, fmt.Errorf("write temp pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("close temp pdf: %w", err)
	}

	out, errb, err := e.runner.Run(ctx, e.pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", tmp.Name(), "-")
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext: %w (stderr: %s)", err, truncate(string(errb), 512))
	}

	text := string(out)
	// A form-feed \f is used as page separator by default
	pages := 1 + strings.Count(text, "\f")

	e.logger.Debug("pdftext.ok", "bytes_in", len(pdf), "bytes_out", len(text), "pages", pages)
	return text, pages, nil
}
