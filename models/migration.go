package models

import (
	"github.com/fleetdata/subgps_backend/config"
)

func MigrateTable() {
	db := config.GetDB()
	err := db.AutoMigrate(
		&Device{},
		&ServiceLog{},
		&VendorInvoice{},
	)
	if err != nil {
		panic(err)
	}
}
