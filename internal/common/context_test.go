package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RunIDFromContext(ctx))

	ctx = WithRunID(ctx, "run-123")
	assert.Equal(t, "run-123", RunIDFromContext(ctx))
}

func TestVendorContext(t *testing.T) {
	ctx := WithVendor(context.Background(), "safilo")
	assert.Equal(t, "safilo", VendorFromContext(ctx))
	assert.Equal(t, "", VendorFromContext(context.Background()))
}
