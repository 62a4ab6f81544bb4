package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/common"
	"github.com/optica-labs/frame-intake/internal/detect"
	"github.com/optica-labs/frame-intake/internal/export"
	"github.com/optica-labs/frame-intake/internal/pipeline"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		in        = flag.String("in", "", "path to the raw order document (required)")
		kind      = flag.String("kind", "html", "document kind: html | pdf | text")
		vendor    = flag.String("vendor", "", "vendor hint; skips detection when set")
		from      = flag.String("from", "", "envelope From address, for detection")
		subject   = flag.String("subject", "", "envelope subject, for detection")
		overrides = flag.String("overrides", "", "path to a vendor-config overrides JSON file")
		out       = flag.String("out", "", "output JSON path (default: stdout)")
		xlsx      = flag.String("xlsx", "", "also write the order as an XLSX workbook")
		deadline  = flag.Duration("deadline", 5*time.Minute, "overall pipeline deadline")
	)
	flag.Parse()

	if *in == "" {
		printError("Error: --in is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	registry := vendorcfg.NewRegistry()
	if *overrides != "" {
		raw, err := os.ReadFile(*overrides)
		if err != nil {
			logger.Error("failed to read overrides", "path", *overrides, "error", err)
			os.Exit(1)
		}
		if err := registry.ApplyOverrides(raw); err != nil {
			logger.Error("failed to apply overrides", "error", err)
			os.Exit(1)
		}
	}

	doc, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("failed to read document", "path", *in, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *deadline)
	defer cancel()

	proc := pipeline.NewProcessor(logger, cfg, registry)
	res, err := proc.Process(ctx, pipeline.Input{
		VendorHint:   *vendor,
		RawDocument:  doc,
		DocumentKind: constants.DocumentKind(*kind),
		Envelope: detect.Envelope{
			From:    *from,
			Subject: *subject,
			Body:    string(doc),
		},
	})
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	encoded, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		fmt.Println(string(encoded))
	} else if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		logger.Error("failed to write result", "path", *out, "error", err)
		os.Exit(1)
	}

	if *xlsx != "" {
		wb, err := export.NewService(logger).OrderXLSX(res)
		if err != nil {
			logger.Error("failed to build workbook", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsx, wb, 0o644); err != nil {
			logger.Error("failed to write workbook", "path", *xlsx, "error", err)
			os.Exit(1)
		}
	}
}
