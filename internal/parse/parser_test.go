package parse

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica-labs/frame-intake/constants"
	"github.com/optica-labs/frame-intake/internal/entity"
	"github.com/optica-labs/frame-intake/internal/vendorcfg"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVendorConfig(t *testing.T, key constants.VendorKey) vendorcfg.Config {
	t.Helper()
	cfg, ok := vendorcfg.NewRegistry().Get(key)
	require.True(t, ok, "vendor %s not registered", key)
	return cfg
}

func TestForVendorCoversEveryRegisteredVendor(t *testing.T) {
	for _, key := range constants.AllVendors {
		cfg := testVendorConfig(t, key)
		p, err := ForVendor(cfg, testLogger())
		require.NoError(t, err, "vendor %s", key)
		assert.Equal(t, key, p.Vendor())
	}
}

func TestForVendorRejectsUnknown(t *testing.T) {
	_, err := ForVendor(vendorcfg.Config{VendorKey: "acme"}, testLogger())
	assert.Error(t, err)
}

func TestApplyOrderMeta(t *testing.T) {
	var o entity.Order
	applyOrderMeta(&o, "ORDER NO", "4502998")
	applyOrderMeta(&o, "Order Date", "08/12/2026")
	applyOrderMeta(&o, "Account", "118220")
	applyOrderMeta(&o, "Reference #", "PO-9912")
	applyOrderMeta(&o, "Sold To", "HARBOR OPTICAL")
	applyOrderMeta(&o, "Customer", "SECOND NAME IGNORED")
	applyOrderMeta(&o, "Carrier", "ignored key")
	applyOrderMeta(&o, "Account", "")

	assert.Equal(t, "4502998", o.OrderNumber)
	assert.Equal(t, "08/12/2026", o.OrderDate)
	assert.Equal(t, "118220", o.AccountNumber)
	assert.Equal(t, "PO-9912", o.ReferenceNumber)
	assert.Equal(t, "HARBOR OPTICAL", o.CustomerName, "first customer value wins")
}
