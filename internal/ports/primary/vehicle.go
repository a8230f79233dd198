package primary

import "context"

// LedgerService exposes the vehicle pool. Availability itself only changes
// through mission operations.
type LedgerService interface {
	// RegisterVehicle adds a vehicle to the pool, available.
	RegisterVehicle(ctx context.Context, req RegisterVehicleRequest) (*Vehicle, error)

	// GetVehicle retrieves a vehicle by ID.
	GetVehicle(ctx context.Context, vehicleID string) (*Vehicle, error)

	// ListVehicles lists vehicles, optionally only available ones.
	ListVehicles(ctx context.Context, availableOnly bool) ([]*Vehicle, error)

	// CountAvailable returns how many vehicles are free.
	CountAvailable(ctx context.Context) (int, error)

	// IsAvailable reads one vehicle's availability.
	IsAvailable(ctx context.Context, vehicleID string) (bool, error)
}

// RegisterVehicleRequest contains parameters for registering a vehicle.
type RegisterVehicleRequest struct {
	Registration string
	Make         string
	Model        string
	CapacityKg   int
}

// Vehicle represents a vehicle at the port boundary.
type Vehicle struct {
	ID           string `json:"id"`
	Registration string `json:"registration"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	CapacityKg   int    `json:"capacity_kg"`
	Available    bool   `json:"available"`
}
