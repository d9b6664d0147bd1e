package reports

import (
	"sort"

	"github.com/fleetdata/subgps_backend/models"
	"github.com/shopspring/decimal"
)

// DivisionSummary totals one division's outcomes for a report month.
// Items keeps the classifier results in input order.
type DivisionSummary struct {
	Division      string                `json:"division"`
	TotalDevices  int                   `json:"total_devices"`
	BillableCount int                   `json:"billable_count"`
	TotalCost     decimal.Decimal       `json:"total_cost"`
	Items         []*DeviceStatusResult `json:"items"`
}

// AggregateByDivision groups classifier outcomes by the device's
// division, exact string match, blank mapped to Unassigned. Only
// BILLABLE items count toward billable_count and total_cost.
func AggregateByDivision(results []*DeviceStatusResult) map[string]*DivisionSummary {

	summary := make(map[string]*DivisionSummary)

	for _, item := range results {
		div := item.Device.Division
		if div == "" {
			div = models.UnassignedDivision
		}

		group, ok := summary[div]
		if !ok {
			group = &DivisionSummary{
				Division:  div,
				TotalCost: decimal.Zero,
			}
			summary[div] = group
		}

		group.TotalDevices++
		if item.Status == models.BillingStatusBillable {
			group.BillableCount++
			group.TotalCost = group.TotalCost.Add(item.Cost)
		}
		group.Items = append(group.Items, item)
	}

	return summary
}

// SortedDivisions returns the summary's division names in a stable
// order for rendering and export.
func SortedDivisions(summary map[string]*DivisionSummary) []string {
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
