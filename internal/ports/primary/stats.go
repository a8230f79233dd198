package primary

import "context"

// StatsService defines the primary port for the dispatcher dashboard.
type StatsService interface {
	// GetFleetStats counts missions by state, people and vehicles.
	GetFleetStats(ctx context.Context) (*FleetStats, error)
}

// FleetStats is a point-in-time summary of the fleet.
type FleetStats struct {
	MissionsByState   map[string]int `json:"missions_by_state"`
	TotalMissions     int            `json:"total_missions"`
	OpenMissions      int            `json:"open_missions"`
	Drivers           int            `json:"drivers"`
	ActiveDrivers     int            `json:"active_drivers"`
	Employees         int            `json:"employees"`
	Vehicles          int            `json:"vehicles"`
	AvailableVehicles int            `json:"available_vehicles"`
}
