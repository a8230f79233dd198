package app

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/example/fleetdesk/internal/core/directory"
	"github.com/example/fleetdesk/internal/core/effects"
	"github.com/example/fleetdesk/internal/core/errs"
	coreleave "github.com/example/fleetdesk/internal/core/leave"
	corenotification "github.com/example/fleetdesk/internal/core/notification"
	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// LeaveServiceImpl implements the LeaveService interface.
type LeaveServiceImpl struct {
	tx           secondary.Transactor
	leaves       secondary.LeaveRepository
	dispatcher   Dispatcher
	dispatcherID string // who receives LEAVE_REQUESTED; empty disables
	locks        *keyLock
	logger       log.FieldLogger
}

// NewLeaveService creates a new LeaveService with injected dependencies.
func NewLeaveService(
	tx secondary.Transactor,
	leaves secondary.LeaveRepository,
	dispatcher Dispatcher,
	dispatcherID string,
	logger log.FieldLogger,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		tx:           tx,
		leaves:       leaves,
		dispatcher:   dispatcher,
		dispatcherID: dispatcherID,
		locks:        newKeyLock(),
		logger:       logger,
	}
}

// RequestLeave files a leave request.
func (s *LeaveServiceImpl) RequestLeave(ctx context.Context, req primary.RequestLeaveRequest) (*primary.LeaveRequest, error) {
	kind := coreleave.Kind(strings.ToUpper(req.Kind))
	if err := coreleave.ValidateRequest(kind, req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock("leave:create")
	defer unlock()

	var record *secondary.LeaveRecord
	var driverName string
	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow secondary.UnitOfWork) error {
		// 1. Driver must exist
		driver, err := uow.Directory().GetDriver(ctx, req.DriverID)
		if err != nil {
			return err
		}
		driverName = directory.FullName(driver.FirstName, driver.LastName)

		// 2. Allocate ID and insert
		nextID, err := uow.Leaves().GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate leave ID: %w", err)
		}
		record = &secondary.LeaveRecord{
			ID:       nextID,
			DriverID: driver.ID,
			StartsAt: req.StartsAt,
			EndsAt:   req.EndsAt,
			Kind:     string(kind),
			Reason:   req.Reason,
			Status:   string(coreleave.StatusPending),
		}
		return uow.Leaves().Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"leave_id": record.ID, "driver_id": record.DriverID}).Info("leave requested")

	// 3. Tell the dispatcher
	if s.dispatcherID == "" {
		s.logger.WithField("leave_id", record.ID).Debug("no dispatcher configured; skipping leave notification")
	} else {
		s.dispatcher.Notify(ctx, effects.NotifyEffect{
			TargetKind: string(corenotification.TargetDispatcher),
			TargetID:   s.dispatcherID,
			Type:       corenotification.TypeLeaveRequested,
			Message:    corenotification.LeaveRequested(driverName, record.DriverID, record.StartsAt, record.EndsAt, record.Reason),
		})
	}

	return recordToLeave(record), nil
}

// ApproveLeave approves a pending request.
func (s *LeaveServiceImpl) ApproveLeave(ctx context.Context, leaveID, note string) (*primary.ApproveLeaveResponse, error) {
	unlock := s.locks.Lock(leaveID)
	defer unlock()

	var record *secondary.LeaveRecord
	var deactivated bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow secondary.UnitOfWork) error {
		// 1. Fetch and guard
		current, err := uow.Leaves().GetByID(ctx, leaveID)
		if err != nil {
			return err
		}
		if result := coreleave.CanDecide(current.ID, coreleave.Status(current.Status)); !result.Allowed {
			return result.Error()
		}

		// 2. Record the decision
		if err := uow.Leaves().UpdateDecision(ctx, leaveID, string(coreleave.StatusApproved), note); err != nil {
			return fmt.Errorf("failed to approve leave: %w", err)
		}
		current.Status = string(coreleave.StatusApproved)
		current.DecisionNote = note
		record = current

		// 3. Take the driver off duty unless missions are still open
		open, err := uow.Missions().CountOpenForDriver(ctx, current.DriverID)
		if err != nil {
			return fmt.Errorf("failed to count open missions: %w", err)
		}
		if coreleave.ShouldDeactivateDriver(open) {
			if err := uow.Directory().SetDriverActive(ctx, current.DriverID, false); err != nil {
				return fmt.Errorf("failed to deactivate driver: %w", err)
			}
			deactivated = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{
		"leave_id":           leaveID,
		"driver_id":          record.DriverID,
		"driver_deactivated": deactivated,
	}).Info("leave approved")

	s.dispatcher.Notify(ctx, effects.NotifyEffect{
		TargetKind: string(corenotification.TargetDriver),
		TargetID:   record.DriverID,
		Type:       corenotification.TypeLeaveApproved,
		Message:    corenotification.LeaveApproved(record.StartsAt, record.EndsAt),
	})

	return &primary.ApproveLeaveResponse{
		Leave:             recordToLeave(record),
		DriverDeactivated: deactivated,
	}, nil
}

// RefuseLeave refuses a pending request with a reason.
func (s *LeaveServiceImpl) RefuseLeave(ctx context.Context, leaveID, reason string) (*primary.LeaveRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errs.InvalidInput("reason is required")
	}

	unlock := s.locks.Lock(leaveID)
	defer unlock()

	var record *secondary.LeaveRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow secondary.UnitOfWork) error {
		current, err := uow.Leaves().GetByID(ctx, leaveID)
		if err != nil {
			return err
		}
		if result := coreleave.CanDecide(current.ID, coreleave.Status(current.Status)); !result.Allowed {
			return result.Error()
		}
		if err := uow.Leaves().UpdateDecision(ctx, leaveID, string(coreleave.StatusRefused), reason); err != nil {
			return fmt.Errorf("failed to refuse leave: %w", err)
		}
		current.Status = string(coreleave.StatusRefused)
		current.DecisionNote = reason
		record = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"leave_id": leaveID, "driver_id": record.DriverID}).Info("leave refused")

	s.dispatcher.Notify(ctx, effects.NotifyEffect{
		TargetKind: string(corenotification.TargetDriver),
		TargetID:   record.DriverID,
		Type:       corenotification.TypeLeaveRefused,
		Message:    corenotification.LeaveRefused(record.StartsAt, record.EndsAt, reason),
	})

	return recordToLeave(record), nil
}

// GetLeaveRequest retrieves a leave request by ID.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, leaveID string) (*primary.LeaveRequest, error) {
	record, err := s.leaves.GetByID(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	return recordToLeave(record), nil
}

// ListLeaveRequests lists leave requests with optional filters.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filters primary.LeaveFilters) ([]*primary.LeaveRequest, error) {
	records, err := s.leaves.List(ctx, secondary.LeaveFilters{
		DriverID: filters.DriverID,
		Status:   strings.ToUpper(filters.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	leaves := make([]*primary.LeaveRequest, len(records))
	for i, r := range records {
		leaves[i] = recordToLeave(r)
	}
	return leaves, nil
}

func recordToLeave(r *secondary.LeaveRecord) *primary.LeaveRequest {
	return &primary.LeaveRequest{
		ID:           r.ID,
		DriverID:     r.DriverID,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		Kind:         r.Kind,
		Reason:       r.Reason,
		Status:       r.Status,
		DecisionNote: r.DecisionNote,
		CreatedAt:    r.CreatedAt,
	}
}

// Ensure LeaveServiceImpl implements the interface
var _ primary.LeaveService = (*LeaveServiceImpl)(nil)
