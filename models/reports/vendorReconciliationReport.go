package reports

import (
	"context"
	"errors"
	"time"

	"github.com/fleetdata/subgps_backend/models"
	"github.com/fleetdata/subgps_backend/utils"
	"github.com/shopspring/decimal"
)

const (
	ReasonNotInMaster   = "Device not in master data"
	ReasonVendorMissing = "Should be billed but vendor not billing"
)

// ReconciliationRecord is one device's cross-check between our billing
// position and the vendor's. Discrepancy is assigned once and final.
type ReconciliationRecord struct {
	DeviceId          string                       `json:"device_id"`
	Device            *models.Device               `json:"device"`
	VendorStatus      models.VendorBillingStatus   `json:"vendor_status"`
	InternalStatus    models.BillingStatus         `json:"internal_status"`
	OurRecommendation models.BillingRecommendation `json:"our_recommendation"`
	Discrepancy       models.Discrepancy           `json:"discrepancy"`
	Reason            string                       `json:"reason"`
	Cost              decimal.Decimal              `json:"cost"`
}

type ReconciliationSummary struct {
	Total            int `json:"total"`
	Matched          int `json:"matched"`
	Disputes         int `json:"disputes"`
	Missing          int `json:"missing"`
	VendorTotal      int `json:"vendor_total"`
	OurBillableTotal int `json:"our_billable_total"`
}

type VendorReconciliation struct {
	ReportMonth   string                  `json:"report_month"`
	Records       []*ReconciliationRecord `json:"records"`
	Summary       ReconciliationSummary   `json:"summary"`
	HasVendorData bool                    `json:"has_vendor_data"`
}

// ReconcileVendorInvoices cross-references classifier outcomes against
// the vendor's billed list for the same month.
//
// Two passes, and the pass order fixes the record order: first every
// vendor row (MATCH when we also bill, DISPUTE when we don't or the
// device is unknown), then every internally billable device the vendor
// skipped (MISSING). Devices neither vendor-billed nor billable produce
// no record. Duplicate vendor rows are NOT deduplicated; they come out
// as duplicate records so data quality problems stay visible.
func ReconcileVendorInvoices(internal []*DeviceStatusResult, vendorRows []*models.VendorInvoice) *VendorReconciliation {

	internalById := make(map[string]*DeviceStatusResult, len(internal))
	for _, item := range internal {
		if _, ok := internalById[item.Device.DeviceId]; !ok {
			internalById[item.Device.DeviceId] = item
		}
	}

	vendorBilled := make(map[string]bool, len(vendorRows))
	for _, row := range vendorRows {
		vendorBilled[row.DeviceId] = true
	}

	records := make([]*ReconciliationRecord, 0, len(vendorRows))

	// Pass 1: vendor-driven.
	for _, row := range vendorRows {
		item, ok := internalById[row.DeviceId]
		if ok {
			shouldBeBilled := item.Status == models.BillingStatusBillable
			recommendation := models.BillingRecommendationUnbilled
			discrepancy := models.DiscrepancyDispute
			if shouldBeBilled {
				recommendation = models.BillingRecommendationBilled
				discrepancy = models.DiscrepancyMatch
			}
			records = append(records, &ReconciliationRecord{
				DeviceId:          row.DeviceId,
				Device:            item.Device,
				VendorStatus:      models.VendorBillingStatusBilled,
				InternalStatus:    item.Status,
				OurRecommendation: recommendation,
				Discrepancy:       discrepancy,
				Reason:            item.Note,
				Cost:              item.Cost,
			})
		} else {
			// Vendor bills a device we have no master record for.
			records = append(records, &ReconciliationRecord{
				DeviceId: row.DeviceId,
				Device: &models.Device{
					DeviceId: row.DeviceId,
					Name:     "Unknown",
					Division: row.Division,
				},
				VendorStatus:      models.VendorBillingStatusBilled,
				InternalStatus:    models.BillingStatusNotInMaster,
				OurRecommendation: models.BillingRecommendationUnbilled,
				Discrepancy:       models.DiscrepancyDispute,
				Reason:            ReasonNotInMaster,
				Cost:              decimal.Zero,
			})
		}
	}

	// Pass 2: internal-driven. Billable on our side, absent on theirs.
	ourBillable := 0
	for _, item := range internal {
		if item.Status != models.BillingStatusBillable {
			continue
		}
		ourBillable++
		if vendorBilled[item.Device.DeviceId] {
			continue
		}
		records = append(records, &ReconciliationRecord{
			DeviceId:          item.Device.DeviceId,
			Device:            item.Device,
			VendorStatus:      models.VendorBillingStatusNotBilled,
			InternalStatus:    item.Status,
			OurRecommendation: models.BillingRecommendationBilled,
			Discrepancy:       models.DiscrepancyMissing,
			Reason:            ReasonVendorMissing,
			Cost:              item.Cost,
		})
	}

	summary := ReconciliationSummary{
		Total:            len(records),
		VendorTotal:      len(vendorRows),
		OurBillableTotal: ourBillable,
	}
	for _, record := range records {
		switch record.Discrepancy {
		case models.DiscrepancyMatch:
			summary.Matched++
		case models.DiscrepancyDispute:
			summary.Disputes++
		case models.DiscrepancyMissing:
			summary.Missing++
		}
	}

	return &VendorReconciliation{
		Records:       records,
		Summary:       summary,
		HasVendorData: len(vendorRows) > 0,
	}
}

// GetVendorReconciliation runs the same classification pass as the
// billing report and reconciles it against the vendor rows uploaded for
// the month.
func GetVendorReconciliation(ctx context.Context, reportMonth string) (*VendorReconciliation, error) {

	if _, _, ok := utils.MonthBounds(reportMonth); !ok {
		return nil, errors.New("report month must be YYYY-MM")
	}

	started := time.Now()

	internal, err := classifyFleet(ctx, reportMonth)
	if err != nil {
		return nil, err
	}

	vendorRows, err := models.GetVendorInvoicesByMonth(ctx, reportMonth)
	if err != nil {
		return nil, err
	}

	reconciliation := ReconcileVendorInvoices(internal, vendorRows)
	reconciliation.ReportMonth = reportMonth

	logSlowReport("vendor_reconciliation", started, map[string]any{"month": reportMonth, "records": len(reconciliation.Records)})

	return reconciliation, nil
}
