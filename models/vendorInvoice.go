package models

import (
	"context"
	"errors"
	"time"

	"github.com/fleetdata/subgps_backend/config"
	"gorm.io/gorm"
)

// VendorInvoice is one vendor-reported billed device for a report month.
// Duplicate device ids within a month are stored as-is: downstream
// reconciliation surfaces them as a data-quality signal.
type VendorInvoice struct {
	ID          int       `gorm:"primary_key" json:"id"`
	DeviceId    string    `gorm:"index;size:100;not null" json:"device_id"`
	ReportMonth string    `gorm:"index;size:7;not null" json:"report_month"`
	Division    string    `gorm:"size:100" json:"division"`
	UploadDate  time.Time `gorm:"autoCreateTime" json:"upload_date"`
}

// ReplaceVendorInvoicesForMonth overwrites all vendor rows for the month
// with the given set. Uploading twice replaces, never merges.
func ReplaceVendorInvoicesForMonth(ctx context.Context, reportMonth string, rows []*VendorInvoice) (int, error) {

	if reportMonth == "" {
		return 0, errors.New("report month is required")
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_month = ?", reportMonth).Delete(&VendorInvoice{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for _, row := range rows {
			row.ReportMonth = reportMonth
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

func GetVendorInvoicesByMonth(ctx context.Context, reportMonth string) ([]*VendorInvoice, error) {

	db := config.GetDB()
	var rows []*VendorInvoice
	err := db.WithContext(ctx).
		Where("report_month = ?", reportMonth).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
