package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fleetdata/subgps_backend/config"
	"github.com/fleetdata/subgps_backend/utils"
	"gorm.io/gorm/clause"
)

// Device is one GPS tracker in the fleet master data. Contract dates are
// kept as YYYY-MM-DD strings the way they arrive from spreadsheets; blank
// or malformed dates are legal rows and surface as ERROR in reports.
type Device struct {
	ID           int       `gorm:"primary_key" json:"id"`
	DeviceId     string    `gorm:"uniqueIndex;size:100;not null" json:"device_id" binding:"required"`
	Name         string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	Branch       string    `gorm:"size:100" json:"branch"`
	Division     string    `gorm:"index;size:100" json:"division"`
	Type         string    `gorm:"size:50" json:"type"`
	SubStartDate string    `gorm:"size:10" json:"sub_start_date"`
	SubEndDate   string    `gorm:"size:10" json:"sub_end_date"`
	Status       string    `gorm:"size:50" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDevice struct {
	DeviceId     string `json:"device_id" binding:"required" validate:"required"`
	Name         string `json:"name" binding:"required" validate:"required"`
	Branch       string `json:"branch"`
	Division     string `json:"division"`
	Type         string `json:"type"`
	SubStartDate string `json:"sub_start_date"`
	SubEndDate   string `json:"sub_end_date"`
	Status       string `json:"status"`
}

// validate input for both create & update. (id = 0 for create)

func (input *NewDevice) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Device](ctx, id); err != nil {
			return err
		}
	}
	if len(strings.TrimSpace(input.DeviceId)) == 0 {
		return errors.New("device id is required")
	}
	if err := utils.ValidateUnique[Device](ctx, "device_id", input.DeviceId, id); err != nil {
		return err
	}
	return nil
}

func (input *NewDevice) toDevice() Device {
	return Device{
		DeviceId:     utils.SanitizeDeviceId(input.DeviceId),
		Name:         input.Name,
		Branch:       input.Branch,
		Division:     input.Division,
		Type:         input.Type,
		SubStartDate: strings.TrimSpace(input.SubStartDate),
		SubEndDate:   strings.TrimSpace(input.SubEndDate),
		Status:       input.Status,
	}
}

func CreateDevice(ctx context.Context, input *NewDevice) (*Device, error) {

	input.DeviceId = utils.SanitizeDeviceId(input.DeviceId)

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	device := input.toDevice()

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&device).Error
	if err != nil {
		return nil, err
	}

	return &device, nil
}

func UpdateDevice(ctx context.Context, id int, input *NewDevice) (*Device, error) {

	input.DeviceId = utils.SanitizeDeviceId(input.DeviceId)

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	device, err := utils.FetchSingleModel[Device](ctx, id)
	if err != nil {
		return nil, err
	}

	updated := input.toDevice()
	updated.ID = device.ID
	updated.CreatedAt = device.CreatedAt

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(&updated).Error; err != nil {
		return nil, err
	}

	return &updated, nil
}

func DeleteDevice(ctx context.Context, id int) (*Device, error) {

	device, err := utils.FetchSingleModel[Device](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(device).Error; err != nil {
		return nil, err
	}

	return device, nil
}

// PaginateDevices lists devices page by page with an optional LIKE search
// over device_id, name and division.
func PaginateDevices(ctx context.Context, page int, limit int, search string) ([]*Device, int64, error) {

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = config.SearchLimit
	}

	db := config.GetDB()
	query := db.WithContext(ctx).Model(&Device{})

	if s := strings.TrimSpace(search); s != "" {
		term := "%" + s + "%"
		query = query.Where("device_id LIKE ? OR name LIKE ? OR division LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var devices []*Device
	err := query.Order("name").Limit(limit).Offset((page - 1) * limit).Find(&devices).Error
	if err != nil {
		return nil, 0, err
	}

	return devices, total, nil
}

func CountDevices(ctx context.Context) (int64, error) {
	var count int64
	db := config.GetDB()
	err := db.WithContext(ctx).Model(&Device{}).Count(&count).Error
	return count, err
}

// UpsertDevices inserts or replaces rows keyed by device_id. Used by the
// spreadsheet import, which re-uploads full sheets.
func UpsertDevices(ctx context.Context, devices []*Device) (int, error) {

	if len(devices) == 0 {
		return 0, nil
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "branch", "division", "type", "sub_start_date", "sub_end_date", "status",
		}),
	}).Create(&devices).Error
	if err != nil {
		return 0, err
	}

	return len(devices), nil
}
