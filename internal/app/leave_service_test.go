package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/fleetdesk/internal/core/errs"
	"github.com/example/fleetdesk/internal/ports/primary"
)

func leaveReq(driverID string) primary.RequestLeaveRequest {
	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	return primary.RequestLeaveRequest{
		DriverID: driverID,
		StartsAt: from,
		EndsAt:   from.AddDate(0, 0, 14),
		Kind:     "annual",
		Reason:   "summer",
	}
}

func TestRequestLeave_NotifiesDispatcher(t *testing.T) {
	f := newFixture(t)

	leave, err := f.leaves.RequestLeave(context.Background(), leaveReq("DRV-001"))

	require.NoError(t, err)
	assert.Equal(t, "LEAVE-001", leave.ID)
	assert.Equal(t, "PENDING", leave.Status)
	assert.Equal(t, "ANNUAL", leave.Kind)
	assert.Equal(t, []string{"LEAVE_REQUESTED"}, f.store.notificationsFor("dispatcher", "DSP-001"))
}

func TestRequestLeave_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		req      primary.RequestLeaveRequest
		wantCode errs.Code
	}{
		{"unknown driver", leaveReq("DRV-404"), errs.CodeNotFound},
		{"bad kind", func() primary.RequestLeaveRequest { r := leaveReq("DRV-001"); r.Kind = "sabbatical"; return r }(), errs.CodeInvalidInput},
		{"ends before start", func() primary.RequestLeaveRequest {
			r := leaveReq("DRV-001")
			r.EndsAt = r.StartsAt.AddDate(0, 0, -1)
			return r
		}(), errs.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.leaves.RequestLeave(context.Background(), tt.req)
			assert.Equal(t, tt.wantCode, errs.CodeOf(err))
			assert.Empty(t, f.store.leaves)
		})
	}
}

func TestApproveLeave_DeactivatesIdleDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leave, err := f.leaves.RequestLeave(ctx, leaveReq("DRV-001"))
	require.NoError(t, err)

	resp, err := f.leaves.ApproveLeave(ctx, leave.ID, "enjoy")

	require.NoError(t, err)
	assert.True(t, resp.DriverDeactivated)
	assert.Equal(t, "APPROVED", resp.Leave.Status)
	assert.False(t, f.store.drivers["DRV-001"].Active)
	assert.Equal(t, []string{"LEAVE_APPROVED"}, f.store.notificationsFor("driver", "DRV-001"))

	// An inactive driver cannot accept missions until reactivated.
	id := mustCreate(t, f, "", "")
	_, err = f.missions.AssignDriver(ctx, primary.AssignDriverRequest{MissionID: id, DriverID: "DRV-001"})
	assert.Equal(t, errs.CodeInvalidTransition, errs.CodeOf(err))

	driver, err := f.directory.ReactivateDriver(ctx, "DRV-001")
	require.NoError(t, err)
	assert.True(t, driver.Active)
	mustAccept(t, f, id, "DRV-001")
}

func TestApproveLeave_KeepsDriverWithOpenMissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := mustCreate(t, f, "", "")
	mustAccept(t, f, id, "DRV-001")
	leave, err := f.leaves.RequestLeave(ctx, leaveReq("DRV-001"))
	require.NoError(t, err)

	resp, err := f.leaves.ApproveLeave(ctx, leave.ID, "")

	require.NoError(t, err)
	assert.False(t, resp.DriverDeactivated)
	assert.True(t, f.store.drivers["DRV-001"].Active)
}

func TestDecideLeaveOnlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leave, err := f.leaves.RequestLeave(ctx, leaveReq("DRV-002"))
	require.NoError(t, err)

	refused, err := f.leaves.RefuseLeave(ctx, leave.ID, "peak season")
	require.NoError(t, err)
	assert.Equal(t, "REFUSED", refused.Status)
	assert.Equal(t, []string{"LEAVE_REFUSED"}, f.store.notificationsFor("driver", "DRV-002"))

	_, err = f.leaves.ApproveLeave(ctx, leave.ID, "")
	assert.Equal(t, errs.CodeInvalidTransition, errs.CodeOf(err))

	_, err = f.leaves.RefuseLeave(ctx, leave.ID, "")
	assert.Equal(t, errs.CodeInvalidInput, errs.CodeOf(err))

	list, err := f.leaves.ListLeaveRequests(ctx, primary.LeaveFilters{Status: "refused"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRequestLeave_NoDispatcherConfigured(t *testing.T) {
	f := newFixture(t)
	f.leaves.dispatcherID = ""

	_, err := f.leaves.RequestLeave(context.Background(), leaveReq("DRV-001"))

	require.NoError(t, err)
	assert.Empty(t, f.store.notificationsFor("dispatcher", "DSP-001"))
}
