// seed-fleet loads a small demo fleet (devices + service logs) for local
// development.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-fleet
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fleetdata/subgps_backend/config"
	"github.com/fleetdata/subgps_backend/models"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	devices := []*models.Device{
		{DeviceId: "868738070001101", Name: "Truck A", Branch: "Jakarta", Division: "Logistics", Type: "GPS Only", SubStartDate: "2023-01-01", SubEndDate: "2025-01-01", Status: "Active"},
		{DeviceId: "868738070001102", Name: "Truck B", Branch: "Jakarta", Division: "Logistics", Type: "GPS + Fuel", SubStartDate: "2023-06-01", SubEndDate: "2024-06-01", Status: "Active"},
		{DeviceId: "868738070001103", Name: "Van C", Branch: "Surabaya", Division: "Sales", Type: "GPS Only", SubStartDate: "2024-01-01", SubEndDate: "2026-01-01", Status: "Active"},
		{DeviceId: "868738070001104", Name: "Pickup D", Branch: "Medan", Division: "", Type: "GPS Only", SubStartDate: "", SubEndDate: "", Status: "Pending Contract"},
	}

	imported, err := models.UpsertDevices(ctx, devices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed devices: %v\n", err)
		os.Exit(1)
	}

	logs := []*models.NewServiceLog{
		{DeviceId: "868738070001101", StartDate: "2024-03-01", EndDate: "2024-03-31", Description: "Unit in workshop full month", RepairType: "Antenna"},
		{DeviceId: "868738070001102", StartDate: "2024-02-10", EndDate: "", Description: "Device off, awaiting replacement", RepairType: "Replacement"},
	}
	seeded := 0
	for _, log := range logs {
		if _, err := models.CreateServiceLog(ctx, log); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed service log for %s: %v\n", log.DeviceId, err)
			continue
		}
		seeded++
	}

	fmt.Printf("seeded %d devices, %d service logs\n", imported, seeded)
}
