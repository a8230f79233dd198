package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/example/fleetdesk/internal/core/effects"
	"github.com/example/fleetdesk/internal/core/errs"
	corenotification "github.com/example/fleetdesk/internal/core/notification"
	"github.com/example/fleetdesk/internal/metrics"
	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// Notifier appends notification records and fans them out to sinks.
// Failures are logged and counted, never returned: a notification must not
// undo the transition that produced it.
type Notifier struct {
	repo   secondary.NotificationRepository
	sinks  []secondary.NotificationSink
	logger log.FieldLogger
	now    func() time.Time
}

// NewNotifier creates a Notifier storing into repo and publishing to sinks.
func NewNotifier(repo secondary.NotificationRepository, logger log.FieldLogger, sinks ...secondary.NotificationSink) *Notifier {
	return &Notifier{
		repo:   repo,
		sinks:  sinks,
		logger: logger,
		now:    time.Now,
	}
}

// Notify stores one notification and publishes it.
func (n *Notifier) Notify(ctx context.Context, eff effects.NotifyEffect) {
	fields := log.Fields{
		"target_kind": eff.TargetKind,
		"target_id":   eff.TargetID,
		"type":        eff.Type,
		"mission_id":  eff.MissionID,
	}

	if !corenotification.TargetKind(eff.TargetKind).Valid() || eff.TargetID == "" {
		metrics.NotificationFailures.WithLabelValues("invalid").Inc()
		n.logger.WithFields(fields).Error("dropping notification with invalid target")
		return
	}

	record := &secondary.NotificationRecord{
		ID:         uuid.NewString(),
		TargetKind: eff.TargetKind,
		TargetID:   eff.TargetID,
		Type:       eff.Type,
		Message:    eff.Message,
		MissionID:  eff.MissionID,
		CreatedAt:  n.now().UTC(),
	}

	// 1. Append the record
	if err := n.repo.Create(ctx, record); err != nil {
		metrics.NotificationFailures.WithLabelValues("store").Inc()
		n.logger.WithFields(fields).WithError(err).Error("failed to store notification")
		return
	}
	metrics.NotificationsSent.WithLabelValues(eff.Type).Inc()

	// 2. Fan out
	for _, sink := range n.sinks {
		if err := sink.Publish(ctx, record); err != nil {
			metrics.NotificationFailures.WithLabelValues(sink.Name()).Inc()
			n.logger.WithFields(fields).WithField("sink", sink.Name()).WithError(err).Warn("failed to publish notification")
		}
	}
}

// Close closes every sink.
func (n *Notifier) Close() {
	for _, sink := range n.sinks {
		if err := sink.Close(); err != nil {
			n.logger.WithField("sink", sink.Name()).WithError(err).Warn("failed to close notification sink")
		}
	}
}

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	repo secondary.NotificationRepository
}

// NewNotificationService creates a new NotificationService with injected dependencies.
func NewNotificationService(repo secondary.NotificationRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{repo: repo}
}

// ListNotifications lists notifications for one actor.
func (s *NotificationServiceImpl) ListNotifications(ctx context.Context, filters primary.NotificationFilters) ([]*primary.Notification, error) {
	if err := validateTarget(filters.TargetKind, filters.TargetID); err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, secondary.NotificationFilters{
		TargetKind: filters.TargetKind,
		TargetID:   filters.TargetID,
		UnreadOnly: filters.UnreadOnly,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*primary.Notification, len(records))
	for i, r := range records {
		notifications[i] = s.recordToNotification(r)
	}
	return notifications, nil
}

// GetUnreadCount returns the count of unread notifications for an actor.
func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, targetKind, targetID string) (int, error) {
	if err := validateTarget(targetKind, targetID); err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx, targetKind, targetID)
}

// MarkRead marks a notification as read.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, notificationID string) error {
	return s.repo.MarkRead(ctx, notificationID)
}

// MarkAllRead marks all notifications of an actor as read.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, targetKind, targetID string) (int, error) {
	if err := validateTarget(targetKind, targetID); err != nil {
		return 0, err
	}
	return s.repo.MarkAllRead(ctx, targetKind, targetID)
}

func validateTarget(kind, id string) error {
	if !corenotification.TargetKind(kind).Valid() {
		return errs.InvalidInput(fmt.Sprintf("unknown target kind %q (want driver, requester or dispatcher)", kind))
	}
	if id == "" {
		return errs.InvalidInput("target id is required")
	}
	return nil
}

func (s *NotificationServiceImpl) recordToNotification(r *secondary.NotificationRecord) *primary.Notification {
	return &primary.Notification{
		ID:         r.ID,
		TargetKind: r.TargetKind,
		TargetID:   r.TargetID,
		Type:       r.Type,
		Message:    r.Message,
		MissionID:  r.MissionID,
		Read:       r.Read,
		CreatedAt:  r.CreatedAt,
	}
}

// Ensure implementations satisfy their interfaces
var (
	_ primary.NotificationService = (*NotificationServiceImpl)(nil)
	_ Dispatcher                  = (*Notifier)(nil)
)
