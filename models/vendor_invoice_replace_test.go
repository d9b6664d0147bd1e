package models_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/fleetdata/subgps_backend/config"
	"github.com/fleetdata/subgps_backend/models"
)

// Vendor uploads must replace the month wholesale: uploading twice keeps
// only the second set, and other months are untouched.
func TestReplaceVendorInvoicesForMonth_FullOverwrite(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires DB_* env vars pointing at a MySQL instance)")
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	db := config.GetDB()
	if err := db.Where("report_month IN ?", []string{"2099-01", "2099-02"}).Delete(&models.VendorInvoice{}).Error; err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	first := []*models.VendorInvoice{
		{DeviceId: "ITEST-1"},
		{DeviceId: "ITEST-2"},
		{DeviceId: "ITEST-2"}, // duplicate rows are stored as-is
	}
	if _, err := models.ReplaceVendorInvoicesForMonth(ctx, "2099-01", first); err != nil {
		t.Fatalf("first upload: %v", err)
	}

	other := []*models.VendorInvoice{{DeviceId: "ITEST-9"}}
	if _, err := models.ReplaceVendorInvoicesForMonth(ctx, "2099-02", other); err != nil {
		t.Fatalf("other month upload: %v", err)
	}

	second := []*models.VendorInvoice{{DeviceId: "ITEST-3"}}
	if _, err := models.ReplaceVendorInvoicesForMonth(ctx, "2099-01", second); err != nil {
		t.Fatalf("second upload: %v", err)
	}

	rows, err := models.GetVendorInvoicesByMonth(ctx, "2099-01")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 1 || rows[0].DeviceId != "ITEST-3" {
		t.Fatalf("2099-01 rows = %+v, want only ITEST-3", rows)
	}

	otherRows, err := models.GetVendorInvoicesByMonth(ctx, "2099-02")
	if err != nil {
		t.Fatalf("fetch other month: %v", err)
	}
	if len(otherRows) != 1 || otherRows[0].DeviceId != "ITEST-9" {
		t.Fatalf("2099-02 rows = %+v, want only ITEST-9", otherRows)
	}
}
