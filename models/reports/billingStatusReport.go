package reports

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/fleetdata/subgps_backend/models"
	"github.com/fleetdata/subgps_backend/utils"
	"github.com/shopspring/decimal"
)

// DeviceStatusResult is the classifier outcome for one device in one
// report month. Produced fresh per call, never mutated afterwards.
type DeviceStatusResult struct {
	Device *models.Device       `json:"device"`
	Status models.BillingStatus `json:"status"`
	Cost   decimal.Decimal      `json:"cost"`
	Note   string               `json:"note"`
}

const (
	NoteContractExpired    = "Contract Expired"
	NoteContractNotStarted = "Contract Not Started"
	NoteFullMonthService   = "Full Month Service"
	NoteActive             = "Active"
	NoteMissingDates       = "Missing contract dates"
	NoteInvalidReportMonth = "Invalid report month"
)

var defaultUnitRate = decimal.NewFromInt(100000)

// BillingUnitRate is the monthly subscription charge for a billable
// device. Configurable per deployment via BILLING_UNIT_RATE.
func BillingUnitRate() decimal.Decimal {
	v := strings.TrimSpace(os.Getenv("BILLING_UNIT_RATE"))
	if v == "" {
		return defaultUnitRate
	}
	rate, err := decimal.NewFromString(v)
	if err != nil || rate.IsNegative() {
		return defaultUnitRate
	}
	return rate
}

// CalculateDeviceStatus classifies one device for a report month.
//
// Rule order is part of the contract: missing contract dates win over
// everything, then EXPIRED, then PENDING, then full-month SERVICE, then
// BILLABLE. A month that only partially overlaps the contract on either
// edge still counts as an active month and falls through to the
// service/billable rules.
//
// Open-ended service logs are treated as running through `now`, not
// through the report month. Re-running a past month later can therefore
// flip a device to SERVICE once an open log has aged past that month.
// That matches how the fleet team reads open repairs; callers pass
// time.Now().
func CalculateDeviceStatus(device *models.Device, reportMonth string, serviceLogs []*models.ServiceLog, unitRate decimal.Decimal, now time.Time) DeviceStatusResult {

	// Presence check comes before any date parsing so malformed rows
	// degrade to a report line instead of an error.
	if strings.TrimSpace(device.SubStartDate) == "" || strings.TrimSpace(device.SubEndDate) == "" {
		return DeviceStatusResult{Device: device, Status: models.BillingStatusError, Cost: decimal.Zero, Note: NoteMissingDates}
	}

	monthStart, monthEnd, ok := utils.MonthBounds(reportMonth)
	if !ok {
		return DeviceStatusResult{Device: device, Status: models.BillingStatusError, Cost: decimal.Zero, Note: NoteInvalidReportMonth}
	}

	subStart, okStart := utils.ParseDate(device.SubStartDate)
	subEnd, okEnd := utils.ParseDate(device.SubEndDate)
	if !okStart || !okEnd {
		return DeviceStatusResult{Device: device, Status: models.BillingStatusError, Cost: decimal.Zero, Note: NoteMissingDates}
	}

	// Whole month after the contract ended.
	if monthStart.After(subEnd) {
		return DeviceStatusResult{Device: device, Status: models.BillingStatusExpired, Cost: decimal.Zero, Note: NoteContractExpired}
	}

	// Whole month before the contract started.
	if monthEnd.Before(subStart) {
		return DeviceStatusResult{Device: device, Status: models.BillingStatusPending, Cost: decimal.Zero, Note: NoteContractNotStarted}
	}

	// A log suppresses billing only when it covers the entire month,
	// boundary days included. Partial overlaps do not count.
	today := startOfDay(now)
	for _, log := range serviceLogs {
		srvStart, ok := utils.ParseDate(log.StartDate)
		if !ok {
			continue
		}
		srvEnd := today
		if strings.TrimSpace(log.EndDate) != "" {
			end, ok := utils.ParseDate(log.EndDate)
			if !ok {
				continue
			}
			srvEnd = end
		}
		if !srvStart.After(monthStart) && !srvEnd.Before(monthEnd) {
			return DeviceStatusResult{Device: device, Status: models.BillingStatusService, Cost: decimal.Zero, Note: NoteFullMonthService}
		}
	}

	return DeviceStatusResult{Device: device, Status: models.BillingStatusBillable, Cost: unitRate, Note: NoteActive}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthlyBillingReport is the standard per-division report view.
type MonthlyBillingReport struct {
	ReportMonth string                      `json:"report_month"`
	Results     []*DeviceStatusResult       `json:"results"`
	Summary     map[string]*DivisionSummary `json:"summary"`
}

// classifyFleet loads the full master list and service history and runs
// the classifier per device. Shared by the billing report and the
// vendor reconciliation, which must agree on every device.
func classifyFleet(ctx context.Context, reportMonth string) ([]*DeviceStatusResult, error) {

	devices, err := utils.FetchAllModels[models.Device](ctx)
	if err != nil {
		return nil, err
	}

	logs, err := models.GetServiceLogs(ctx, "")
	if err != nil {
		return nil, err
	}

	logsByDevice := make(map[string][]*models.ServiceLog, len(devices))
	for _, log := range logs {
		logsByDevice[log.DeviceId] = append(logsByDevice[log.DeviceId], log)
	}

	unitRate := BillingUnitRate()
	now := time.Now()

	results := make([]*DeviceStatusResult, 0, len(devices))
	for _, device := range devices {
		result := CalculateDeviceStatus(device, reportMonth, logsByDevice[device.DeviceId], unitRate, now)
		results = append(results, &result)
	}

	return results, nil
}

// GetMonthlyBillingReport classifies every device for the month and
// groups the outcomes by division.
func GetMonthlyBillingReport(ctx context.Context, reportMonth string) (*MonthlyBillingReport, error) {

	if _, _, ok := utils.MonthBounds(reportMonth); !ok {
		return nil, errors.New("report month must be YYYY-MM")
	}

	cacheKey := billingReportCacheKey(reportMonth)
	if reportCacheEnabled() {
		var cached MonthlyBillingReport
		if hit, err := cacheGet(cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	started := time.Now()

	results, err := classifyFleet(ctx, reportMonth)
	if err != nil {
		return nil, err
	}

	report := &MonthlyBillingReport{
		ReportMonth: reportMonth,
		Results:     results,
		Summary:     AggregateByDivision(results),
	}

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, report, reportCacheTTL())
	}
	logSlowReport("monthly_billing", started, map[string]any{"month": reportMonth, "devices": len(results)})

	return report, nil
}
