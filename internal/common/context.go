package common

import (
	"context"
	"time"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRunID  contextKey = "run_id"
	ContextKeyVendor contextKey = "vendor"
)

// WithRunID adds a pipeline run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RunIDFromContext extracts the pipeline run ID from context
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(ContextKeyRunID).(string); ok {
		return runID
	}
	return ""
}

// WithVendor adds the resolved vendor key to the context
func WithVendor(ctx context.Context, vendor string) context.Context {
	return context.WithValue(ctx, ContextKeyVendor, vendor)
}

// VendorFromContext extracts the resolved vendor key from context
func VendorFromContext(ctx context.Context) string {
	if vendor, ok := ctx.Value(ContextKeyVendor).(string); ok {
		return vendor
	}
	return ""
}

// WithTimeout creates a context with the specified timeout
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
