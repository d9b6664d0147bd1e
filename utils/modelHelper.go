package utils

import (
	"context"
	"fmt"

	"github.com/fleetdata/subgps_backend/config"
)

/* DB fetching */

// fetch model from db
// (may return RecordNotFound)
func FetchSingleModel[T any](ctx context.Context, id int, associations ...string) (*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var result T
	err := dbCtx.First(&result, id).Error
	if err != nil {
		return nil, ErrorRecordNotFound
	}
	return &result, nil
}

// fetch all models from db
func FetchAllModels[T any](ctx context.Context, associations ...string) ([]*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var results []*T
	err := dbCtx.Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ValidateUnique checks no other row of T carries the same value in the
// given column. id = 0 for create; otherwise the row itself is excluded.
func ValidateUnique[T any](ctx context.Context, column string, value string, id int) error {
	db := config.GetDB()
	var model T
	var count int64
	query := db.WithContext(ctx).Model(&model).Where(fmt.Sprintf("%s = ?", column), value)
	if id > 0 {
		query = query.Where("id != ?", id)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%s already exists", column)
	}
	return nil
}

// ValidateResourceId checks the row exists.
func ValidateResourceId[T any](ctx context.Context, id int) error {
	db := config.GetDB()
	var model T
	var count int64
	if err := db.WithContext(ctx).Model(&model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrorRecordNotFound
	}
	return nil
}
