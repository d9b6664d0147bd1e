package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Sheet1"

func setRow(f *excelize.File, rowNo int, values ...interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowNo)
		f.SetCellValue(reportSheet, cell, v)
	}
}

// ExportBillingReportExcel renders the monthly billing report the way
// the fleet team shares it: one block per division with a subtotal row.
// Divisions are sorted so re-exports diff cleanly.
func ExportBillingReportExcel(report *MonthlyBillingReport) (*excelize.File, error) {

	f := excelize.NewFile()
	if _, err := f.NewSheet(reportSheet); err != nil {
		return nil, err
	}

	row := 1
	setRow(f, row, "GPS Reconciliation Report")
	row++
	setRow(f, row, "Report Month:", report.ReportMonth)
	row += 2

	for _, division := range SortedDivisions(report.Summary) {
		group := report.Summary[division]

		setRow(f, row, fmt.Sprintf("Division: %s", division))
		row++
		setRow(f, row, "Total Devices:", group.TotalDevices, "Billable:", group.BillableCount, "Total Cost:", group.TotalCost.String())
		row += 2
		setRow(f, row, "Device ID", "Unit Name", "Branch", "Division", "Type", "Contract Start", "Contract End", "Status", "Note", "Cost")
		row++

		for _, item := range group.Items {
			setRow(f, row,
				item.Device.DeviceId,
				item.Device.Name,
				item.Device.Branch,
				item.Device.Division,
				item.Device.Type,
				item.Device.SubStartDate,
				item.Device.SubEndDate,
				string(item.Status),
				item.Note,
				item.Cost.String(),
			)
			row++
		}

		row++
		setRow(f, row, "Subtotal:", "", "", "", "", "", "", "", "", group.TotalCost.String())
		row += 2
	}

	return f, nil
}

// ExportReconciliationExcel renders the vendor reconciliation as a flat
// record list, duplicates included.
func ExportReconciliationExcel(reconciliation *VendorReconciliation) (*excelize.File, error) {

	f := excelize.NewFile()
	if _, err := f.NewSheet(reportSheet); err != nil {
		return nil, err
	}

	row := 1
	setRow(f, row, "Vendor Reconciliation Report")
	row++
	setRow(f, row, "Report Month:", reconciliation.ReportMonth)
	row += 2
	setRow(f, row, "Device ID", "Unit Name", "Division", "Vendor Status", "Internal Status", "Our Recommendation", "Discrepancy", "Reason", "Cost")
	row++

	for _, record := range reconciliation.Records {
		setRow(f, row,
			record.DeviceId,
			record.Device.Name,
			record.Device.Division,
			string(record.VendorStatus),
			string(record.InternalStatus),
			string(record.OurRecommendation),
			string(record.Discrepancy),
			record.Reason,
			record.Cost.String(),
		)
		row++
	}

	return f, nil
}

// DeviceTemplateExcel is the import template for master data uploads.
func DeviceTemplateExcel() (*excelize.File, error) {

	f := excelize.NewFile()
	if _, err := f.NewSheet(reportSheet); err != nil {
		return nil, err
	}

	setRow(f, 1, "deviceId", "name", "branch", "division", "type", "subStartDate", "subEndDate", "status")
	setRow(f, 2, "12345", "Truck A", "Jakarta", "Logistics", "GPS Only", "2023-01-01", "2024-01-01", "Active")

	return f, nil
}

// VendorTemplateExcel is the import template for the vendor's billed
// list. The vendor calls the device id column PLAT NO.
func VendorTemplateExcel() (*excelize.File, error) {

	f := excelize.NewFile()
	if _, err := f.NewSheet(reportSheet); err != nil {
		return nil, err
	}

	setRow(f, 1, "MONTH", "PLAT NO")
	setRow(f, 2, "2024-11", "868738070001157")
	setRow(f, 3, "2024-11", "868738070001158")
	setRow(f, 4, "2024-11", "868738070001159")

	return f, nil
}
