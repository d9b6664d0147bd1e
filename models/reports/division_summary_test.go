package reports_test

import (
	"testing"

	"github.com/fleetdata/subgps_backend/models"
	"github.com/fleetdata/subgps_backend/models/reports"
	"github.com/shopspring/decimal"
)

func outcome(deviceId, division string, status models.BillingStatus, cost int64) *reports.DeviceStatusResult {
	return &reports.DeviceStatusResult{
		Device: &models.Device{DeviceId: deviceId, Name: deviceId, Division: division},
		Status: status,
		Cost:   decimal.NewFromInt(cost),
	}
}

func TestAggregateByDivision_Totals(t *testing.T) {
	results := []*reports.DeviceStatusResult{
		outcome("A1", "Logistics", models.BillingStatusBillable, 100000),
		outcome("A2", "Logistics", models.BillingStatusService, 0),
		outcome("A3", "Logistics", models.BillingStatusBillable, 100000),
		outcome("B1", "Sales", models.BillingStatusExpired, 0),
		outcome("B2", "Sales", models.BillingStatusBillable, 100000),
	}

	summary := reports.AggregateByDivision(results)

	if len(summary) != 2 {
		t.Fatalf("divisions = %d, want 2", len(summary))
	}

	logistics := summary["Logistics"]
	if logistics == nil {
		t.Fatal("missing Logistics group")
	}
	if logistics.TotalDevices != 3 || logistics.BillableCount != 2 {
		t.Fatalf("Logistics totals = %d/%d, want 3/2", logistics.TotalDevices, logistics.BillableCount)
	}
	if !logistics.TotalCost.Equal(decimal.NewFromInt(200000)) {
		t.Fatalf("Logistics cost = %s, want 200000", logistics.TotalCost)
	}

	sales := summary["Sales"]
	if sales.TotalDevices != 2 || sales.BillableCount != 1 {
		t.Fatalf("Sales totals = %d/%d, want 2/1", sales.TotalDevices, sales.BillableCount)
	}

	// Every outcome lands in exactly one group.
	totalDevices := 0
	for _, group := range summary {
		totalDevices += group.TotalDevices
	}
	if totalDevices != len(results) {
		t.Fatalf("sum of group sizes = %d, want %d", totalDevices, len(results))
	}
}

func TestAggregateByDivision_UnassignedSentinel(t *testing.T) {
	results := []*reports.DeviceStatusResult{
		outcome("A1", "", models.BillingStatusBillable, 100000),
	}

	summary := reports.AggregateByDivision(results)

	group := summary[models.UnassignedDivision]
	if group == nil {
		t.Fatalf("blank division not grouped under %q", models.UnassignedDivision)
	}
	if group.TotalDevices != 1 {
		t.Fatalf("TotalDevices = %d, want 1", group.TotalDevices)
	}
}

func TestAggregateByDivision_ExactStringKeys(t *testing.T) {
	results := []*reports.DeviceStatusResult{
		outcome("A1", "Ops", models.BillingStatusBillable, 100000),
		outcome("A2", "ops", models.BillingStatusBillable, 100000),
		outcome("A3", "Ops ", models.BillingStatusBillable, 100000),
	}

	summary := reports.AggregateByDivision(results)

	// No case folding, no trimming.
	if len(summary) != 3 {
		t.Fatalf("divisions = %d, want 3 distinct keys", len(summary))
	}
}

func TestAggregateByDivision_PreservesInputOrder(t *testing.T) {
	results := []*reports.DeviceStatusResult{
		outcome("A3", "Logistics", models.BillingStatusBillable, 100000),
		outcome("A1", "Logistics", models.BillingStatusService, 0),
		outcome("A2", "Logistics", models.BillingStatusBillable, 100000),
	}

	summary := reports.AggregateByDivision(results)

	items := summary["Logistics"].Items
	want := []string{"A3", "A1", "A2"}
	for i, id := range want {
		if items[i].Device.DeviceId != id {
			t.Fatalf("items[%d] = %s, want %s", i, items[i].Device.DeviceId, id)
		}
	}
}

func TestAggregateByDivision_EmptyInput(t *testing.T) {
	summary := reports.AggregateByDivision(nil)
	if len(summary) != 0 {
		t.Fatalf("summary size = %d, want 0", len(summary))
	}
}
