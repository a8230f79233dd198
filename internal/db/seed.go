package db

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures: a dispatcher,
// requesters, drivers and a small vehicle pool. It adds no missions and skips
// rows whose id already exists.
func SeedFixtures(ctx context.Context, database *sql.DB, driver string) error {
	exec := func(what, query string, args ...any) error {
		if _, err := database.ExecContext(ctx, Rebind(driver, query+" ON CONFLICT (id) DO NOTHING"), args...); err != nil {
			return fmt.Errorf("seed %s: %w", what, err)
		}
		return nil
	}

	// Dispatchers
	if err := exec("dispatchers",
		"INSERT INTO dispatchers (id, name, email) VALUES (?, ?, ?)",
		"DSP-001", "Control Room", "control@fleetdesk.local",
	); err != nil {
		return err
	}

	// Requesters
	employees := []struct{ id, first, last, dept string }{
		{"EMP-001", "Lena", "Moreau", "Facilities"},
		{"EMP-002", "Omar", "Haddad", "Records"},
	}
	for _, e := range employees {
		if err := exec("employees",
			"INSERT INTO employees (id, first_name, last_name, department) VALUES (?, ?, ?, ?)",
			e.id, e.first, e.last, e.dept,
		); err != nil {
			return err
		}
	}

	// Drivers
	drivers := []struct {
		id, first, last, phone string
		active                 bool
	}{
		{"DRV-001", "Sam", "Diallo", "+33 6 12 34 56 78", true},
		{"DRV-002", "Ana", "Costa", "+33 6 98 76 54 32", true},
		{"DRV-003", "Jonas", "Weber", "", false},
	}
	for _, d := range drivers {
		if err := exec("drivers",
			"INSERT INTO drivers (id, first_name, last_name, phone, active) VALUES (?, ?, ?, ?, ?)",
			d.id, d.first, d.last, d.phone, d.active,
		); err != nil {
			return err
		}
	}

	// Vehicles
	vehicles := []struct {
		id, reg, make, model string
		capacity             int
	}{
		{"VEH-001", "AB123CD", "Renault", "Master", 1400},
		{"VEH-002", "EF456GH", "Peugeot", "Partner", 650},
		{"VEH-003", "IJ789KL", "Ford", "Transit", 1200},
	}
	for _, v := range vehicles {
		if err := exec("vehicles",
			"INSERT INTO vehicles (id, registration, make, model, capacity_kg, available) VALUES (?, ?, ?, ?, ?, ?)",
			v.id, v.reg, v.make, v.model, v.capacity, true,
		); err != nil {
			return err
		}
	}

	return nil
}
