package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	coremission "github.com/example/fleetdesk/internal/core/mission"
	"github.com/example/fleetdesk/internal/ports/primary"
)

// StatsAdapter prints the dispatcher dashboard.
type StatsAdapter struct {
	service primary.StatsService
	out     io.Writer
}

// NewStatsAdapter creates a new StatsAdapter.
func NewStatsAdapter(service primary.StatsService, out io.Writer) *StatsAdapter {
	return &StatsAdapter{service: service, out: out}
}

// Show prints mission counts per state, then people and vehicles.
func (a *StatsAdapter) Show(ctx context.Context) error {
	stats, err := a.service.GetFleetStats(ctx)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	fmt.Fprintf(a.out, "\n%s (%d total, %d open)\n", bold.Sprint("Missions"), stats.TotalMissions, stats.OpenMissions)
	fmt.Fprintln(a.out, rule)
	for _, st := range coremission.AllStates() {
		fmt.Fprintf(a.out, "  %-28s %5d\n", stateColor(string(st)), stats.MissionsByState[string(st)])
	}

	fmt.Fprintf(a.out, "\n%s\n", bold.Sprint("Fleet"))
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "  Drivers     %d (%d active)\n", stats.Drivers, stats.ActiveDrivers)
	fmt.Fprintf(a.out, "  Employees   %d\n", stats.Employees)
	fmt.Fprintf(a.out, "  Vehicles    %d (%s)\n", stats.Vehicles,
		availability(stats.AvailableVehicles > 0, fmt.Sprintf("%d available", stats.AvailableVehicles), "none available"))
	fmt.Fprintln(a.out)
	return nil
}
