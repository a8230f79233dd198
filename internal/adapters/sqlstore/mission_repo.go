package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	coremission "github.com/example/fleetdesk/internal/core/mission"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

const missionColumns = `id, origin, destination, scheduled_at, type, instructions, state,
	driver_id, vehicle_id, vehicle_reserved, requester_id, reported_problem, was_ever_accepted,
	created_at, updated_at`

// MissionRepository implements secondary.MissionRepository.
type MissionRepository struct {
	base
}

// Create persists a new mission.
// The record must have ID and State pre-populated by the service layer.
func (r *MissionRepository) Create(ctx context.Context, m *secondary.MissionRecord) error {
	if m.ID == "" {
		return fmt.Errorf("mission ID must be pre-populated by service layer")
	}
	if m.State == "" {
		return fmt.Errorf("mission State must be pre-populated by service layer")
	}

	ts := now()
	_, err := r.exec(ctx,
		`INSERT INTO missions (`+missionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Origin, m.Destination, m.ScheduledAt.UTC(), m.Type, nullString(m.Instructions), m.State,
		nullString(m.DriverID), nullString(m.VehicleID), m.VehicleReserved, m.RequesterID,
		nullString(m.ReportedProblem), m.WasEverAccepted, ts, ts,
	)
	if err != nil {
		return translate(err, "mission "+m.ID)
	}

	m.CreatedAt = formatTime(ts)
	m.UpdatedAt = m.CreatedAt
	return nil
}

// GetByID retrieves a mission by its ID.
func (r *MissionRepository) GetByID(ctx context.Context, id string) (*secondary.MissionRecord, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate retrieves a mission and locks its row until the transaction ends.
func (r *MissionRepository) GetForUpdate(ctx context.Context, id string) (*secondary.MissionRecord, error) {
	return r.get(ctx, id, r.forUpdate())
}

func (r *MissionRepository) get(ctx context.Context, id, suffix string) (*secondary.MissionRecord, error) {
	row := r.queryRow(ctx, "SELECT "+missionColumns+" FROM missions WHERE id = ?"+suffix, id)
	record, err := scanMission(row)
	if err == sql.ErrNoRows {
		return nil, notFound("mission", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}
	return record, nil
}

// Update writes every mutable field of an existing mission.
func (r *MissionRepository) Update(ctx context.Context, m *secondary.MissionRecord) error {
	ts := now()
	res, err := r.exec(ctx,
		`UPDATE missions SET origin = ?, destination = ?, scheduled_at = ?, type = ?, instructions = ?,
			state = ?, driver_id = ?, vehicle_id = ?, vehicle_reserved = ?, reported_problem = ?,
			was_ever_accepted = ?, updated_at = ?
		WHERE id = ?`,
		m.Origin, m.Destination, m.ScheduledAt.UTC(), m.Type, nullString(m.Instructions),
		m.State, nullString(m.DriverID), nullString(m.VehicleID), m.VehicleReserved, nullString(m.ReportedProblem),
		m.WasEverAccepted, ts, m.ID,
	)
	if err != nil {
		return translate(err, "mission "+m.ID)
	}
	if err := affected(res, "mission", m.ID); err != nil {
		return err
	}
	m.UpdatedAt = formatTime(ts)
	return nil
}

// Delete removes a mission.
func (r *MissionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.exec(ctx, "DELETE FROM missions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete mission: %w", err)
	}
	return affected(res, "mission", id)
}

// List retrieves missions matching the given filters, newest first.
func (r *MissionRepository) List(ctx context.Context, filters secondary.MissionFilters) ([]*secondary.MissionRecord, error) {
	query := "SELECT " + missionColumns + " FROM missions"
	var where []string
	var args []any

	if filters.DriverID != "" {
		where = append(where, "driver_id = ?")
		args = append(args, filters.DriverID)
	}
	if filters.RequesterID != "" {
		where = append(where, "requester_id = ?")
		args = append(args, filters.RequesterID)
	}
	if filters.State != "" {
		where = append(where, "state = ?")
		args = append(args, filters.State)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	defer rows.Close()

	missions := make([]*secondary.MissionRecord, 0)
	for rows.Next() {
		record, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission: %w", err)
		}
		missions = append(missions, record)
	}
	return missions, rows.Err()
}

// CountOpenForDriver counts missions the driver holds that are not finished.
func (r *MissionRepository) CountOpenForDriver(ctx context.Context, driverID string) (int, error) {
	var count int
	err := r.queryRow(ctx,
		"SELECT COUNT(*) FROM missions WHERE driver_id = ? AND state IN (?, ?, ?)",
		driverID,
		string(coremission.StatePending), string(coremission.StateAcceptedWaiting), string(coremission.StateInProgress),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open missions: %w", err)
	}
	return count, nil
}

// GetNextID returns the next available mission ID.
func (r *MissionRepository) GetNextID(ctx context.Context) (string, error) {
	maxID, err := r.maxSuffix(ctx, "missions", len(coremission.IDPrefix)+1)
	if err != nil {
		return "", err
	}
	return coremission.GenerateMissionID(maxID), nil
}

func scanMission(row rowScanner) (*secondary.MissionRecord, error) {
	var (
		instructions sql.NullString
		driverID     sql.NullString
		vehicleID    sql.NullString
		problem      sql.NullString
		scheduledAt  time.Time
		createdAt    time.Time
		updatedAt    time.Time
	)

	record := &secondary.MissionRecord{}
	err := row.Scan(
		&record.ID, &record.Origin, &record.Destination, &scheduledAt, &record.Type, &instructions, &record.State,
		&driverID, &vehicleID, &record.VehicleReserved, &record.RequesterID, &problem, &record.WasEverAccepted,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ScheduledAt = scheduledAt.UTC()
	record.Instructions = instructions.String
	record.DriverID = driverID.String
	record.VehicleID = vehicleID.String
	record.ReportedProblem = problem.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

var _ secondary.MissionRepository = (*MissionRepository)(nil)
