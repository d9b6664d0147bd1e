package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fleetdata/subgps_backend/config"
	"github.com/fleetdata/subgps_backend/utils"
)

// ServiceLog is one maintenance interval for a device. EndDate blank
// means the repair is still ongoing. Logs may overlap.
type ServiceLog struct {
	ID          int       `gorm:"primary_key" json:"id"`
	DeviceId    string    `gorm:"index;size:100;not null" json:"device_id" binding:"required"`
	StartDate   string    `gorm:"size:10;not null" json:"start_date" binding:"required"`
	EndDate     string    `gorm:"size:10" json:"end_date"`
	Description string    `gorm:"type:text" json:"description"`
	RepairType  string    `gorm:"size:100" json:"repair_type"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewServiceLog struct {
	DeviceId    string `json:"device_id" binding:"required" validate:"required"`
	StartDate   string `json:"start_date" binding:"required" validate:"required"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	RepairType  string `json:"repair_type"`
}

func (input *NewServiceLog) validate() error {
	if _, ok := utils.ParseDate(input.StartDate); !ok {
		return errors.New("start date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(input.EndDate) != "" {
		if _, ok := utils.ParseDate(input.EndDate); !ok {
			return errors.New("end date must be YYYY-MM-DD")
		}
	}
	return nil
}

func CreateServiceLog(ctx context.Context, input *NewServiceLog) (*ServiceLog, error) {

	if err := input.validate(); err != nil {
		return nil, err
	}

	log := ServiceLog{
		DeviceId:    utils.SanitizeDeviceId(input.DeviceId),
		StartDate:   strings.TrimSpace(input.StartDate),
		EndDate:     strings.TrimSpace(input.EndDate),
		Description: input.Description,
		RepairType:  input.RepairType,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, err
	}

	return &log, nil
}

func UpdateServiceLog(ctx context.Context, id int, input *NewServiceLog) (*ServiceLog, error) {

	if err := input.validate(); err != nil {
		return nil, err
	}

	log, err := utils.FetchSingleModel[ServiceLog](ctx, id)
	if err != nil {
		return nil, err
	}

	log.DeviceId = utils.SanitizeDeviceId(input.DeviceId)
	log.StartDate = strings.TrimSpace(input.StartDate)
	log.EndDate = strings.TrimSpace(input.EndDate)
	log.Description = input.Description
	log.RepairType = input.RepairType

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(log).Error; err != nil {
		return nil, err
	}

	return log, nil
}

func DeleteServiceLog(ctx context.Context, id int) (*ServiceLog, error) {

	log, err := utils.FetchSingleModel[ServiceLog](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(log).Error; err != nil {
		return nil, err
	}

	return log, nil
}

// GetServiceLogs lists logs newest first, optionally for one device.
func GetServiceLogs(ctx context.Context, deviceId string) ([]*ServiceLog, error) {

	db := config.GetDB()
	query := db.WithContext(ctx).Order("start_date DESC")
	if strings.TrimSpace(deviceId) != "" {
		query = query.Where("device_id = ?", deviceId)
	}

	var logs []*ServiceLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

func CountServiceLogs(ctx context.Context) (int64, error) {
	var count int64
	db := config.GetDB()
	err := db.WithContext(ctx).Model(&ServiceLog{}).Count(&count).Error
	return count, err
}
