package main

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/fleetdata/subgps_backend/config"
	"github.com/fleetdata/subgps_backend/models"
	"github.com/fleetdata/subgps_backend/models/reports"
	"github.com/fleetdata/subgps_backend/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

func writeExcel(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	if err := f.Write(c.Writer); err != nil {
		config.LogError(config.GetLogger(), "uploads.go", "writeExcel", filename, nil, err)
	}
}

// openUploadedSheet reads the first sheet of an uploaded workbook as
// string rows.
func openUploadedSheet(header *multipart.FileHeader) ([][]string, error) {
	if header.Size > maxUploadSizeBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", maxUploadSizeBytes)
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	workbook, err := excelize.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheetName := workbook.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	return workbook.GetRows(sheetName)
}

// headerIndex maps column headers to their positions, so sheets survive
// column reordering.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	return index
}

func cellAt(row []string, index map[string]int, names ...string) string {
	for _, name := range names {
		i, ok := index[name]
		if !ok || i >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
	}
	return ""
}

func deviceTemplateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := reports.DeviceTemplateExcel()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		writeExcel(c, f, "device_template.xlsx")
	}
}

func deviceUploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
			return
		}

		rows, err := openUploadedSheet(fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(rows) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sheet has no data rows"})
			return
		}

		index := headerIndex(rows[0])
		devices := make([]*models.Device, 0, len(rows)-1)
		skipped := 0
		for _, row := range rows[1:] {
			input := models.NewDevice{
				DeviceId:     utils.SanitizeDeviceId(cellAt(row, index, "deviceId", "device_id")),
				Name:         cellAt(row, index, "name"),
				Branch:       cellAt(row, index, "branch"),
				Division:     cellAt(row, index, "division"),
				Type:         cellAt(row, index, "type"),
				SubStartDate: utils.NormalizeCellDate(cellAt(row, index, "subStartDate", "sub_start_date")),
				SubEndDate:   utils.NormalizeCellDate(cellAt(row, index, "subEndDate", "sub_end_date")),
				Status:       cellAt(row, index, "status"),
			}
			if input.Type == "" {
				input.Type = "GPS Only"
			}
			if input.Status == "" {
				input.Status = "Active"
			}
			// Rows without an id or name are skipped, not fatal.
			if err := utils.ValidateStruct(&input); err != nil {
				skipped++
				continue
			}
			devices = append(devices, &models.Device{
				DeviceId:     input.DeviceId,
				Name:         input.Name,
				Branch:       input.Branch,
				Division:     input.Division,
				Type:         input.Type,
				SubStartDate: input.SubStartDate,
				SubEndDate:   input.SubEndDate,
				Status:       input.Status,
			})
		}

		imported, err := models.UpsertDevices(c.Request.Context(), devices)
		if err != nil {
			config.LogError(config.GetLogger(), "uploads.go", "deviceUploadHandler", "UpsertDevices", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
	}
}

func vendorTemplateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := reports.VendorTemplateExcel()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		writeExcel(c, f, "vendor_invoice_template.xlsx")
	}
}

func vendorUploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		month := strings.TrimSpace(c.PostForm("month"))
		if month == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "report month is required"})
			return
		}
		if _, _, ok := utils.MonthBounds(month); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "report month must be YYYY-MM"})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
			return
		}

		rows, err := openUploadedSheet(fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(rows) < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sheet is empty"})
			return
		}

		// Duplicate device ids are kept: reconciliation reports them as
		// duplicate records, which is how data quality issues surface.
		index := headerIndex(rows[0])
		invoices := make([]*models.VendorInvoice, 0, len(rows)-1)
		for _, row := range rows[1:] {
			deviceId := utils.SanitizeDeviceId(cellAt(row, index, "PLAT NO", "PLAT_NO", "deviceId", "device_id"))
			if deviceId == "" {
				continue
			}
			invoices = append(invoices, &models.VendorInvoice{
				DeviceId: deviceId,
				Division: cellAt(row, index, "division"),
			})
		}

		imported, err := models.ReplaceVendorInvoicesForMonth(c.Request.Context(), month, invoices)
		if err != nil {
			config.LogError(config.GetLogger(), "uploads.go", "vendorUploadHandler", "ReplaceVendorInvoicesForMonth", month, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"report_month": month, "imported": imported})
	}
}

func billingReportExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		month := reportMonthParam(c)
		report, err := reports.GetMonthlyBillingReport(c.Request.Context(), month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f, err := reports.ExportBillingReportExcel(report)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		writeExcel(c, f, fmt.Sprintf("reconciliation_report_%s.xlsx", month))
	}
}

func reconciliationExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		month := reportMonthParam(c)
		reconciliation, err := reports.GetVendorReconciliation(c.Request.Context(), month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f, err := reports.ExportReconciliationExcel(reconciliation)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		writeExcel(c, f, fmt.Sprintf("vendor_reconciliation_%s.xlsx", month))
	}
}
