package app

import (
	"context"
	"fmt"

	coremission "github.com/example/fleetdesk/internal/core/mission"
	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// StatsServiceImpl implements the StatsService interface.
type StatsServiceImpl struct {
	repo secondary.StatsRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo secondary.StatsRepository) *StatsServiceImpl {
	return &StatsServiceImpl{repo: repo}
}

// GetFleetStats returns the dispatcher dashboard counters.
// Every lifecycle state is present in MissionsByState, zero when unused.
func (s *StatsServiceImpl) GetFleetStats(ctx context.Context) (*primary.FleetStats, error) {
	counts, err := s.repo.FleetCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read fleet counts: %w", err)
	}

	stats := &primary.FleetStats{
		MissionsByState:   make(map[string]int),
		Drivers:           counts.Drivers,
		ActiveDrivers:     counts.ActiveDrivers,
		Employees:         counts.Employees,
		Vehicles:          counts.Vehicles,
		AvailableVehicles: counts.AvailableVehicles,
	}
	for _, st := range coremission.AllStates() {
		n := counts.MissionsByState[string(st)]
		stats.MissionsByState[string(st)] = n
		stats.TotalMissions += n
		if !st.IsTerminal() {
			stats.OpenMissions += n
		}
	}
	return stats, nil
}

var _ primary.StatsService = (*StatsServiceImpl)(nil)
