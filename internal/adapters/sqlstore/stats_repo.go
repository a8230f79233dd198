package sqlstore

import (
	"context"
	"fmt"

	"github.com/example/fleetdesk/internal/ports/secondary"
)

// StatsRepository implements secondary.StatsRepository.
type StatsRepository struct {
	base
}

// Stats returns the dashboard counters reader.
func (s *Store) Stats() *StatsRepository {
	return &StatsRepository{base{q: s.db, driver: s.driver}}
}

// FleetCounts reads every dashboard counter. The counts are not taken in one
// snapshot; a write landing between queries can skew them by one.
func (r *StatsRepository) FleetCounts(ctx context.Context) (*secondary.FleetCountsRecord, error) {
	counts := &secondary.FleetCountsRecord{MissionsByState: make(map[string]int)}

	rows, err := r.query(ctx, "SELECT state, COUNT(*) FROM missions GROUP BY state")
	if err != nil {
		return nil, fmt.Errorf("failed to count missions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, fmt.Errorf("failed to scan mission count: %w", err)
		}
		counts.MissionsByState[state] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count missions: %w", err)
	}

	err = r.queryRow(ctx,
		"SELECT COUNT(*), COALESCE(SUM(CASE WHEN active = ? THEN 1 ELSE 0 END), 0) FROM drivers", true,
	).Scan(&counts.Drivers, &counts.ActiveDrivers)
	if err != nil {
		return nil, fmt.Errorf("failed to count drivers: %w", err)
	}

	if err := r.queryRow(ctx, "SELECT COUNT(*) FROM employees").Scan(&counts.Employees); err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	err = r.queryRow(ctx,
		"SELECT COUNT(*), COALESCE(SUM(CASE WHEN available = ? THEN 1 ELSE 0 END), 0) FROM vehicles", true,
	).Scan(&counts.Vehicles, &counts.AvailableVehicles)
	if err != nil {
		return nil, fmt.Errorf("failed to count vehicles: %w", err)
	}

	return counts, nil
}

var _ secondary.StatsRepository = (*StatsRepository)(nil)
