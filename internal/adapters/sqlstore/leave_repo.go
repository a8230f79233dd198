package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	coreleave "github.com/example/fleetdesk/internal/core/leave"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

const leaveColumns = "id, driver_id, starts_at, ends_at, kind, reason, status, decision_note, created_at"

// LeaveRepository implements secondary.LeaveRepository.
type LeaveRepository struct {
	base
}

// Create inserts a leave request.
func (r *LeaveRepository) Create(ctx context.Context, l *secondary.LeaveRecord) error {
	ts := now()
	_, err := r.exec(ctx,
		"INSERT INTO leave_requests ("+leaveColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		l.ID, l.DriverID, l.StartsAt.UTC(), l.EndsAt.UTC(), l.Kind, nullString(l.Reason), l.Status,
		nullString(l.DecisionNote), ts,
	)
	if err != nil {
		return translate(err, "leave request "+l.ID)
	}
	l.CreatedAt = formatTime(ts)
	return nil
}

// GetByID retrieves a leave request by ID.
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*secondary.LeaveRecord, error) {
	row := r.queryRow(ctx, "SELECT "+leaveColumns+" FROM leave_requests WHERE id = ?", id)
	l, err := scanLeave(row)
	if err == sql.ErrNoRows {
		return nil, notFound("leave request", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}
	return l, nil
}

// UpdateDecision records the outcome of a request.
func (r *LeaveRepository) UpdateDecision(ctx context.Context, id, status, note string) error {
	res, err := r.exec(ctx,
		"UPDATE leave_requests SET status = ?, decision_note = ? WHERE id = ?",
		status, nullString(note), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	return affected(res, "leave request", id)
}

// List retrieves leave requests, oldest first.
func (r *LeaveRepository) List(ctx context.Context, filters secondary.LeaveFilters) ([]*secondary.LeaveRecord, error) {
	query := "SELECT " + leaveColumns + " FROM leave_requests"
	var where []string
	var args []any
	if filters.DriverID != "" {
		where = append(where, "driver_id = ?")
		args = append(args, filters.DriverID)
	}
	if filters.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filters.Status)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	leaves := make([]*secondary.LeaveRecord, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// GetNextID returns the next available leave request ID.
func (r *LeaveRepository) GetNextID(ctx context.Context) (string, error) {
	maxID, err := r.maxSuffix(ctx, "leave_requests", len("LEAVE-"))
	if err != nil {
		return "", err
	}
	return coreleave.GenerateLeaveID(maxID), nil
}

func scanLeave(row rowScanner) (*secondary.LeaveRecord, error) {
	var (
		reason    sql.NullString
		note      sql.NullString
		createdAt time.Time
	)
	l := &secondary.LeaveRecord{}
	err := row.Scan(&l.ID, &l.DriverID, &l.StartsAt, &l.EndsAt, &l.Kind, &reason, &l.Status, &note, &createdAt)
	if err != nil {
		return nil, err
	}
	l.StartsAt = l.StartsAt.UTC()
	l.EndsAt = l.EndsAt.UTC()
	l.Reason = reason.String
	l.DecisionNote = note.String
	l.CreatedAt = formatTime(createdAt)
	return l, nil
}

var _ secondary.LeaveRepository = (*LeaveRepository)(nil)
