package sqlstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/fleetdesk/internal/core/errs"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

func TestNotificationRepository(t *testing.T) {
	store, _ := setupStore(t)
	repo := store.Notifications()
	ctx := context.Background()
	base := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	for i, typ := range []string{"MISSION_CREATED", "MISSION_ACCEPTED", "MISSION_STARTED"} {
		n := &secondary.NotificationRecord{
			ID:         typ,
			TargetKind: "requester",
			TargetID:   "EMP-001",
			Type:       typ,
			Message:    "msg",
			MissionID:  "MISSION-001",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	other := &secondary.NotificationRecord{ID: "n-driver", TargetKind: "driver", TargetID: "DRV-001", Type: "MISSION_OFFERED", Message: "msg"}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := repo.List(ctx, secondary.NotificationFilters{TargetKind: "requester", TargetID: "EMP-001"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 || list[0].Type != "MISSION_STARTED" {
		t.Fatalf("list = %+v, want 3 newest first", list)
	}

	if err := repo.MarkRead(ctx, "MISSION_CREATED"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	unread, _ := repo.CountUnread(ctx, "requester", "EMP-001")
	if unread != 2 {
		t.Errorf("unread = %d, want 2", unread)
	}

	n, err := repo.MarkAllRead(ctx, "requester", "EMP-001")
	if err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if n != 2 {
		t.Errorf("MarkAllRead = %d, want 2", n)
	}

	unreadOnly, _ := repo.List(ctx, secondary.NotificationFilters{TargetKind: "requester", TargetID: "EMP-001", UnreadOnly: true})
	if len(unreadOnly) != 0 {
		t.Errorf("unreadOnly = %d, want 0", len(unreadOnly))
	}

	got, _ := repo.GetByID(ctx, "n-driver")
	if got.Read || got.CreatedAt.IsZero() {
		t.Errorf("got %+v", got)
	}

	if err := repo.MarkRead(ctx, "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
