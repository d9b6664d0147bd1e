package reports_test

import (
	"testing"

	"github.com/fleetdata/subgps_backend/models"
	"github.com/fleetdata/subgps_backend/models/reports"
	"github.com/shopspring/decimal"
)

func vendorRow(deviceId string) *models.VendorInvoice {
	return &models.VendorInvoice{DeviceId: deviceId, ReportMonth: "2024-03"}
}

func billableOutcome(deviceId string) *reports.DeviceStatusResult {
	return &reports.DeviceStatusResult{
		Device: &models.Device{DeviceId: deviceId, Name: deviceId, Division: "Logistics"},
		Status: models.BillingStatusBillable,
		Cost:   decimal.NewFromInt(100000),
		Note:   reports.NoteActive,
	}
}

func serviceOutcome(deviceId string) *reports.DeviceStatusResult {
	return &reports.DeviceStatusResult{
		Device: &models.Device{DeviceId: deviceId, Name: deviceId, Division: "Logistics"},
		Status: models.BillingStatusService,
		Cost:   decimal.Zero,
		Note:   reports.NoteFullMonthService,
	}
}

func expiredOutcome(deviceId string) *reports.DeviceStatusResult {
	return &reports.DeviceStatusResult{
		Device: &models.Device{DeviceId: deviceId, Name: deviceId, Division: "Logistics"},
		Status: models.BillingStatusExpired,
		Cost:   decimal.Zero,
		Note:   reports.NoteContractExpired,
	}
}

func TestReconcile_VendorAndInternalAgree(t *testing.T) {
	internal := []*reports.DeviceStatusResult{billableOutcome("D3")}
	vendor := []*models.VendorInvoice{vendorRow("D3")}

	result := reports.ReconcileVendorInvoices(internal, vendor)

	if len(result.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(result.Records))
	}
	record := result.Records[0]
	if record.Discrepancy != models.DiscrepancyMatch {
		t.Fatalf("discrepancy = %s, want MATCH", record.Discrepancy)
	}
	if record.VendorStatus != models.VendorBillingStatusBilled {
		t.Fatalf("vendor status = %s", record.VendorStatus)
	}
	if record.OurRecommendation != models.BillingRecommendationBilled {
		t.Fatalf("recommendation = %s", record.OurRecommendation)
	}
	if !record.Cost.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("cost = %s, want 100000", record.Cost)
	}
	if record.Reason != reports.NoteActive {
		t.Fatalf("reason = %q", record.Reason)
	}
	if result.Summary.Matched != 1 || result.Summary.Disputes != 0 || result.Summary.Missing != 0 {
		t.Fatalf("summary = %+v", result.Summary)
	}
}

func TestReconcile_VendorBillsNonBillableDevice(t *testing.T) {
	internal := []*reports.DeviceStatusResult{serviceOutcome("D2")}
	vendor := []*models.VendorInvoice{vendorRow("D2")}

	result := reports.ReconcileVendorInvoices(internal, vendor)

	record := result.Records[0]
	if record.Discrepancy != models.DiscrepancyDispute {
		t.Fatalf("discrepancy = %s, want DISPUTE", record.Discrepancy)
	}
	if record.OurRecommendation != models.BillingRecommendationUnbilled {
		t.Fatalf("recommendation = %s, want UNBILLED", record.OurRecommendation)
	}
	// The dispute carries the classifier's note so the reviewer sees why
	// we refuse the charge.
	if record.Reason != reports.NoteFullMonthService {
		t.Fatalf("reason = %q", record.Reason)
	}
	if record.InternalStatus != models.BillingStatusService {
		t.Fatalf("internal status = %s", record.InternalStatus)
	}
}

func TestReconcile_VendorBillsUnknownDevice(t *testing.T) {
	vendor := []*models.VendorInvoice{{DeviceId: "D4", ReportMonth: "2024-03", Division: "Leased"}}

	result := reports.ReconcileVendorInvoices(nil, vendor)

	record := result.Records[0]
	if record.InternalStatus != models.BillingStatusNotInMaster {
		t.Fatalf("internal status = %s, want NOT_IN_MASTER", record.InternalStatus)
	}
	if record.Discrepancy != models.DiscrepancyDispute {
		t.Fatalf("discrepancy = %s, want DISPUTE", record.Discrepancy)
	}
	if record.Device == nil || record.Device.Name != "Unknown" {
		t.Fatalf("placeholder device = %+v", record.Device)
	}
	if record.Device.Division != "Leased" {
		t.Fatalf("placeholder division = %q, want vendor's", record.Device.Division)
	}
	if !record.Cost.IsZero() {
		t.Fatalf("cost = %s, want 0", record.Cost)
	}
	if record.Reason != reports.ReasonNotInMaster {
		t.Fatalf("reason = %q", record.Reason)
	}
}

func TestReconcile_BillableButVendorNotBilling(t *testing.T) {
	internal := []*reports.DeviceStatusResult{billableOutcome("D3")}

	result := reports.ReconcileVendorInvoices(internal, nil)

	if len(result.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(result.Records))
	}
	record := result.Records[0]
	if record.Discrepancy != models.DiscrepancyMissing {
		t.Fatalf("discrepancy = %s, want MISSING", record.Discrepancy)
	}
	if record.VendorStatus != models.VendorBillingStatusNotBilled {
		t.Fatalf("vendor status = %s", record.VendorStatus)
	}
	if record.OurRecommendation != models.BillingRecommendationBilled {
		t.Fatalf("recommendation = %s", record.OurRecommendation)
	}
	if record.Reason != reports.ReasonVendorMissing {
		t.Fatalf("reason = %q", record.Reason)
	}
	if result.HasVendorData {
		t.Fatal("HasVendorData = true with no vendor rows")
	}
}

func TestReconcile_AgreedNonBillableProducesNoRecord(t *testing.T) {
	// Expired device, vendor also not billing it: nothing in dispute.
	internal := []*reports.DeviceStatusResult{expiredOutcome("D5")}

	result := reports.ReconcileVendorInvoices(internal, nil)

	if len(result.Records) != 0 {
		t.Fatalf("records = %d, want 0", len(result.Records))
	}
	if result.Summary.Total != 0 {
		t.Fatalf("summary total = %d, want 0", result.Summary.Total)
	}
}

func TestReconcile_DuplicateVendorRowsPreserved(t *testing.T) {
	internal := []*reports.DeviceStatusResult{billableOutcome("D3")}
	vendor := []*models.VendorInvoice{vendorRow("D3"), vendorRow("D3")}

	result := reports.ReconcileVendorInvoices(internal, vendor)

	// Duplicates are a data-quality signal, not something to fix here.
	if len(result.Records) != 2 {
		t.Fatalf("records = %d, want 2 (duplicates preserved)", len(result.Records))
	}
	if result.Summary.VendorTotal != 2 {
		t.Fatalf("vendor total = %d, want 2", result.Summary.VendorTotal)
	}
	if result.Summary.Matched != 2 {
		t.Fatalf("matched = %d, want 2", result.Summary.Matched)
	}
}

func TestReconcile_RecordOrderAndSummary(t *testing.T) {
	internal := []*reports.DeviceStatusResult{
		billableOutcome("A"), // vendor billed -> MATCH (pass 1)
		serviceOutcome("B"),  // vendor billed -> DISPUTE (pass 1)
		billableOutcome("C"), // not vendor billed -> MISSING (pass 2)
		expiredOutcome("D"),  // no record
	}
	vendor := []*models.VendorInvoice{
		vendorRow("B"),
		vendorRow("A"),
		vendorRow("X"), // unknown -> DISPUTE (pass 1)
	}

	result := reports.ReconcileVendorInvoices(internal, vendor)

	wantOrder := []string{"B", "A", "X", "C"}
	if len(result.Records) != len(wantOrder) {
		t.Fatalf("records = %d, want %d", len(result.Records), len(wantOrder))
	}
	for i, id := range wantOrder {
		if result.Records[i].DeviceId != id {
			t.Fatalf("records[%d] = %s, want %s", i, result.Records[i].DeviceId, id)
		}
	}

	summary := result.Summary
	if summary.Total != 4 {
		t.Fatalf("total = %d, want 4", summary.Total)
	}
	if summary.Matched != 1 || summary.Disputes != 2 || summary.Missing != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.VendorTotal != 3 {
		t.Fatalf("vendor total = %d, want 3", summary.VendorTotal)
	}
	if summary.OurBillableTotal != 2 {
		t.Fatalf("our billable total = %d, want 2", summary.OurBillableTotal)
	}
	if !result.HasVendorData {
		t.Fatal("HasVendorData = false with vendor rows present")
	}
}
