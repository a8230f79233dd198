package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fleetdesk/internal/core/directory"
	"github.com/example/fleetdesk/internal/core/errs"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

const vehicleColumns = "id, registration, make, model, capacity_kg, available, created_at"

// VehicleLedger implements secondary.VehicleLedger. It is the only code
// that writes vehicles.available.
type VehicleLedger struct {
	base
}

// Reserve flips available from true to false in a single conditional update.
func (l *VehicleLedger) Reserve(ctx context.Context, vehicleID string) error {
	res, err := l.exec(ctx,
		"UPDATE vehicles SET available = ? WHERE id = ? AND available = ?",
		false, vehicleID, true,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve vehicle: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 1 {
		return nil
	}

	// Nothing changed: either the vehicle is unknown or already held.
	if _, err := l.GetVehicle(ctx, vehicleID); err != nil {
		return err
	}
	return errs.ResourceConflict(fmt.Sprintf("vehicle %s is not available", vehicleID))
}

// Release marks the vehicle available. Releasing a free vehicle is a no-op.
func (l *VehicleLedger) Release(ctx context.Context, vehicleID string) error {
	res, err := l.exec(ctx, "UPDATE vehicles SET available = ? WHERE id = ?", true, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to release vehicle: %w", err)
	}
	return affected(res, "vehicle", vehicleID)
}

// IsAvailable reads the availability flag.
func (l *VehicleLedger) IsAvailable(ctx context.Context, vehicleID string) (bool, error) {
	var available bool
	err := l.queryRow(ctx, "SELECT available FROM vehicles WHERE id = ?", vehicleID).Scan(&available)
	if err == sql.ErrNoRows {
		return false, notFound("vehicle", vehicleID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to read vehicle availability: %w", err)
	}
	return available, nil
}

// Register adds a vehicle. New vehicles are always available.
func (l *VehicleLedger) Register(ctx context.Context, v *secondary.VehicleRecord) error {
	if v.ID == "" {
		return fmt.Errorf("vehicle ID must be pre-populated by service layer")
	}
	ts := now()
	_, err := l.exec(ctx,
		"INSERT INTO vehicles ("+vehicleColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		v.ID, v.Registration, nullString(v.Make), nullString(v.Model), v.CapacityKg, true, ts,
	)
	if err != nil {
		return translate(err, "vehicle "+v.Registration)
	}
	v.Available = true
	v.CreatedAt = formatTime(ts)
	return nil
}

// GetVehicle retrieves a vehicle by ID.
func (l *VehicleLedger) GetVehicle(ctx context.Context, id string) (*secondary.VehicleRecord, error) {
	row := l.queryRow(ctx, "SELECT "+vehicleColumns+" FROM vehicles WHERE id = ?", id)
	record, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, notFound("vehicle", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return record, nil
}

// ListVehicles lists vehicles by ID, optionally only the available ones.
func (l *VehicleLedger) ListVehicles(ctx context.Context, availableOnly bool) ([]*secondary.VehicleRecord, error) {
	query := "SELECT " + vehicleColumns + " FROM vehicles"
	var args []any
	if availableOnly {
		query += " WHERE available = ?"
		args = append(args, true)
	}
	query += " ORDER BY id"

	rows, err := l.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]*secondary.VehicleRecord, 0)
	for rows.Next() {
		record, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, record)
	}
	return vehicles, rows.Err()
}

// CountAvailable counts vehicles free for reservation.
func (l *VehicleLedger) CountAvailable(ctx context.Context) (int, error) {
	var count int
	if err := l.queryRow(ctx, "SELECT COUNT(*) FROM vehicles WHERE available = ?", true).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count available vehicles: %w", err)
	}
	return count, nil
}

// GetNextID returns the next available vehicle ID.
func (l *VehicleLedger) GetNextID(ctx context.Context) (string, error) {
	maxID, err := l.maxSuffix(ctx, "vehicles", len(directory.VehiclePrefix)+1)
	if err != nil {
		return "", err
	}
	return directory.GenerateID(directory.VehiclePrefix, maxID), nil
}

func scanVehicle(row rowScanner) (*secondary.VehicleRecord, error) {
	var (
		vmake     sql.NullString
		model     sql.NullString
		createdAt time.Time
	)
	record := &secondary.VehicleRecord{}
	if err := row.Scan(&record.ID, &record.Registration, &vmake, &model, &record.CapacityKg, &record.Available, &createdAt); err != nil {
		return nil, err
	}
	record.Make = vmake.String
	record.Model = model.String
	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

var _ secondary.VehicleLedger = (*VehicleLedger)(nil)
