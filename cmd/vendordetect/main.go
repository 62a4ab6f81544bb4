package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/optica-labs/frame-intake/internal/detect"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

// vendordetect runs the detection stage alone, for triaging mail that the
// full pipeline refused or misrouted.
func main() {
	var (
		in      = flag.String("in", "", "path to the raw message body (required)")
		from    = flag.String("from", "", "envelope From address")
		subject = flag.String("subject", "", "envelope subject")
	)
	flag.Parse()

	if *in == "" {
		if _, err := fmt.Fprintln(os.Stderr, "Error: --in is required"); err != nil {
			fmt.Println("Error: --in is required")
		}
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	body, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("failed to read message", "path", *in, "error", err)
		os.Exit(1)
	}

	detector := detect.NewDetector(logger, vendorcfg.NewRegistry())
	result := detector.Detect(detect.Envelope{
		From:    *from,
		Subject: *subject,
		Body:    string(body),
	})

	encoded, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(encoded))
}
