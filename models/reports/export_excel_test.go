package reports_test

import (
	"testing"

	"github.com/fleetdata/subgps_backend/models"
	"github.com/fleetdata/subgps_backend/models/reports"
)

func TestExportBillingReportExcel_Layout(t *testing.T) {
	results := []*reports.DeviceStatusResult{
		outcome("A1", "Logistics", models.BillingStatusBillable, 100000),
		outcome("A2", "Logistics", models.BillingStatusService, 0),
	}
	report := &reports.MonthlyBillingReport{
		ReportMonth: "2024-03",
		Results:     results,
		Summary:     reports.AggregateByDivision(results),
	}

	f, err := reports.ExportBillingReportExcel(report)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	checks := map[string]string{
		"A1": "GPS Reconciliation Report",
		"B2": "2024-03",
		"A4": "Division: Logistics",
		"A7": "Device ID",
		"A8": "A1",
		"A9": "A2",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Sheet1", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s = %q, want %q", cell, got, want)
		}
	}
}

func TestExportReconciliationExcel_Layout(t *testing.T) {
	internal := []*reports.DeviceStatusResult{billableOutcome("D3")}
	reconciliation := reports.ReconcileVendorInvoices(internal, []*models.VendorInvoice{vendorRow("D3")})
	reconciliation.ReportMonth = "2024-03"

	f, err := reports.ExportReconciliationExcel(reconciliation)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	checks := map[string]string{
		"A1": "Vendor Reconciliation Report",
		"B2": "2024-03",
		"A4": "Device ID",
		"A5": "D3",
		"G5": "MATCH",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Sheet1", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s = %q, want %q", cell, got, want)
		}
	}
}
