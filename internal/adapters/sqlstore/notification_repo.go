package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/fleetdesk/internal/ports/secondary"
)

const notificationColumns = "id, target_kind, target_id, type, message, mission_id, read, created_at"

// NotificationRepository implements secondary.NotificationRepository.
type NotificationRepository struct {
	base
}

// Create appends a notification.
func (r *NotificationRepository) Create(ctx context.Context, n *secondary.NotificationRecord) error {
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = now()
	}
	_, err := r.exec(ctx,
		"INSERT INTO notifications ("+notificationColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		n.ID, n.TargetKind, n.TargetID, n.Type, n.Message, nullString(n.MissionID), false, createdAt.UTC(),
	)
	if err != nil {
		return translate(err, "notification "+n.ID)
	}
	n.CreatedAt = createdAt.UTC()
	return nil
}

// GetByID retrieves a notification by ID.
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*secondary.NotificationRecord, error) {
	row := r.queryRow(ctx, "SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id)
	n, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, notFound("notification", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

// List returns notifications for one actor, newest first.
func (r *NotificationRepository) List(ctx context.Context, filters secondary.NotificationFilters) ([]*secondary.NotificationRecord, error) {
	query := "SELECT " + notificationColumns + " FROM notifications WHERE target_kind = ? AND target_id = ?"
	args := []any{filters.TargetKind, filters.TargetID}
	if filters.UnreadOnly {
		query += " AND read = ?"
		args = append(args, false)
	}
	query += " ORDER BY created_at DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*secondary.NotificationRecord, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnread counts unread notifications for one actor.
func (r *NotificationRepository) CountUnread(ctx context.Context, targetKind, targetID string) (int, error) {
	var count int
	err := r.queryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE target_kind = ? AND target_id = ? AND read = ?",
		targetKind, targetID, false,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.exec(ctx, "UPDATE notifications SET read = ? WHERE id = ?", true, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return affected(res, "notification", id)
}

// MarkAllRead marks every unread notification of an actor read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, targetKind, targetID string) (int, error) {
	res, err := r.exec(ctx,
		"UPDATE notifications SET read = ? WHERE target_kind = ? AND target_id = ? AND read = ?",
		true, targetKind, targetID, false,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}

func scanNotification(row rowScanner) (*secondary.NotificationRecord, error) {
	var missionID sql.NullString
	n := &secondary.NotificationRecord{}
	if err := row.Scan(&n.ID, &n.TargetKind, &n.TargetID, &n.Type, &n.Message, &missionID, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.MissionID = missionID.String
	n.CreatedAt = n.CreatedAt.UTC()
	return n, nil
}

var _ secondary.NotificationRepository = (*NotificationRepository)(nil)
