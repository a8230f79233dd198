// Package directory contains the pure rules for the people and vehicles
// the mission engine refers to: ID formats and registration checks.
package directory

import (
	"fmt"
	"strings"

	"github.com/example/fleetdesk/internal/core/errs"
)

// ID prefixes.
const (
	DriverPrefix     = "DRV"
	EmployeePrefix   = "EMP"
	DispatcherPrefix = "DSP"
	VehiclePrefix    = "VEH"
)

// GenerateID builds the next sequential ID for prefix, e.g. DRV-004.
func GenerateID(prefix string, currentMax int) string {
	return fmt.Sprintf("%s-%03d", prefix, currentMax+1)
}

// FullName joins a first and last name for messages.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.InvalidInput(field + " is required")
	}
	return nil
}

// ValidatePerson checks the name fields shared by drivers and employees.
func ValidatePerson(first, last string) error {
	if err := required("first name", first); err != nil {
		return err
	}
	return required("last name", last)
}

// ValidateDispatcher checks a dispatcher registration.
func ValidateDispatcher(name, email string) error {
	if err := required("name", name); err != nil {
		return err
	}
	if !strings.Contains(email, "@") {
		return errs.InvalidInput(fmt.Sprintf("invalid email %q", email))
	}
	return nil
}

// NormalizeRegistration upper-cases a plate and strips spaces so that
// "ab 123 cd" and "AB123CD" are the same plate.
func NormalizeRegistration(reg string) string {
	return strings.ToUpper(strings.Join(strings.Fields(reg), ""))
}

// ValidateVehicle checks a vehicle registration.
func ValidateVehicle(registration string, capacityKg int) error {
	if NormalizeRegistration(registration) == "" {
		return errs.InvalidInput("registration is required")
	}
	if capacityKg < 0 {
		return errs.InvalidInput("capacity cannot be negative")
	}
	return nil
}
