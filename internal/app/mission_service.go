package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/example/fleetdesk/internal/core/directory"
	"github.com/example/fleetdesk/internal/core/effects"
	"github.com/example/fleetdesk/internal/core/errs"
	coremission "github.com/example/fleetdesk/internal/core/mission"
	"github.com/example/fleetdesk/internal/ctxutil"
	"github.com/example/fleetdesk/internal/metrics"
	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// createLockKey serializes ID allocation for new missions within the process.
const createLockKey = "mission:create"

// MissionServiceImpl implements the MissionService interface.
// Each lifecycle operation is one unit of work: read, guard, write, ledger.
// Notifications go out after commit.
type MissionServiceImpl struct {
	tx       secondary.Transactor
	missions secondary.MissionRepository
	executor EffectExecutor
	locks    *keyLock
	logger   log.FieldLogger
}

// NewMissionService creates a new MissionService with injected dependencies.
// missions is used for reads outside a unit of work.
func NewMissionService(
	tx secondary.Transactor,
	missions secondary.MissionRepository,
	executor EffectExecutor,
	logger log.FieldLogger,
) *MissionServiceImpl {
	return &MissionServiceImpl{
		tx:       tx,
		missions: missions,
		executor: executor,
		locks:    newKeyLock(),
		logger:   logger,
	}
}

// CreateMission books a new mission.
func (s *MissionServiceImpl) CreateMission(ctx context.Context, req primary.CreateMissionRequest) (*primary.CreateMissionResponse, error) {
	details := coremission.Details{
		Origin:       req.Origin,
		Destination:  req.Destination,
		ScheduledAt:  req.ScheduledAt,
		Type:         coremission.Type(req.Type),
		Instructions: req.Instructions,
	}
	if err := coremission.ValidateDetails(details); err != nil {
		return nil, s.record(ctx, "create", "", err)
	}
	if req.RequesterID == "" {
		return nil, s.record(ctx, "create", "", errs.InvalidInput("requester is required"))
	}

	unlock := s.locks.Lock(createLockKey)
	defer unlock()

	var plan coremission.Plan
	var record *secondary.MissionRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow secondary.UnitOfWork) error {
		// 1. Resolve requester, driver and vehicle
		if _, err := uow.Directory().GetEmployee(ctx, req.RequesterID); err != nil {
			return err
		}

		guardCtx := coremission.CreateContext{DriverID: req.DriverID}
		if req.DriverID != "" {
			driver, err := uow.Directory().GetDriver(ctx, req.DriverID)
			if err != nil {
				return err
			}
			guardCtx.DriverActive = driver.Active
		}

		if req.VehicleID != "" {
			if _, err := uow.Ledger().GetVehicle(ctx, req.VehicleID); err != nil {
				return err
			}
		}

		// 2. Check guard
		if result := coremission.CanCreateMission(guardCtx); !result.Allowed {
			return result.Error()
		}

		// 3. Generate ID and plan
		nextID, err := uow.Missions().GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate mission ID: %w", err)
		}
		plan = coremission.PlanCreate(coremission.NewSnapshot(nextID, details, req.RequesterID, req.DriverID, req.VehicleID))

		// 4. Persist and reserve in the same unit of work
		if err := coremission.CheckConsistency(plan.Mission); err != nil {
			return fmt.Errorf("refusing to persist mission %s: %w", nextID, err)
		}
		record = snapshotToRecord(plan.Mission, &secondary.MissionRecord{})
		if err := uow.Missions().Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create mission: %w", err)
		}
		inTx, _ := effects.Split(plan.Effects())
		return s.executor.WithLedger(uow.Ledger()).Execute(ctx, inTx)
	})
	if err != nil {
		return nil, s.record(ctx, "create", "", err)
	}
	s.record(ctx, "create", plan.Mission.ID, nil)

	// 5. Notify after commit
	s.afterCommit(ctx, plan)

	return &primary.CreateMissionResponse{
		MissionID: plan.Mission.ID,
		Mission:   s.recordToMission(record),
	}, nil
}

// AssignDriver records a driver accepting a mission.
func (s *MissionServiceImpl) AssignDriver(ctx context.Context, req primary.AssignDriverRequest) (*primary.Mission, error) {
	if req.DriverID == "" {
		return nil, s.record(ctx, "assign", req.MissionID, errs.InvalidInput("driver is required"))
	}
	return s.transition(ctx, "assign", req.MissionID, func(ctx context.Context, uow secondary.UnitOfWork, m coremission.Snapshot) (*coremission.Plan, error) {
		driver, err := uow.Directory().GetDriver(ctx, req.DriverID)
		if err != nil {
			return nil, err
		}
		result := coremission.CanAssignDriver(coremission.AssignContext{
			Mission:      m,
			DriverID:     req.DriverID,
			DriverActive: driver.Active,
		})
		if !result.Allowed || result.NoOp {
			return nil, result.Error()
		}
		plan := coremission.PlanAccept(m, driver.ID, directory.FullName(driver.FirstName, driver.LastName))
		return &plan, nil
	})
}

// StartMission puts an accepted mission on the road.
func (s *MissionServiceImpl) StartMission(ctx context.Context, missionID string) (*primary.Mission, error) {
	return s.transition(ctx, "start", missionID, func(ctx context.Context, uow secondary.UnitOfWork, m coremission.Snapshot) (*coremission.Plan, error) {
		result := coremission.CanStartMission(m)
		if !result.Allowed || result.NoOp {
			return nil, result.Error()
		}
		plan := coremission.PlanStart(m, s.driverName(ctx, uow, m.DriverID))
		return &plan, nil
	})
}

// CompleteMission finishes an in-progress mission.
func (s *MissionServiceImpl) CompleteMission(ctx context.Context, missionID string) (*primary.Mission, error) {
	return s.transition(ctx, "complete", missionID, func(ctx context.Context, uow secondary.UnitOfWork, m coremission.Snapshot) (*coremission.Plan, error) {
		result := coremission.CanCompleteMission(m)
		if !result.Allowed || result.NoOp {
			return nil, result.Error()
		}
		plan := coremission.PlanComplete(m, s.driverName(ctx, uow, m.DriverID))
		return &plan, nil
	})
}

// RefuseMission refuses a mission that was never accepted.
func (s *MissionServiceImpl) RefuseMission(ctx context.Context, req primary.RefuseMissionRequest) (*primary.Mission, error) {
	if err := coremission.ValidateReason(req.Reason); err != nil {
		return nil, s.record(ctx, "refuse", req.MissionID, err)
	}
	return s.transition(ctx, "refuse", req.MissionID, func(ctx context.Context, uow secondary.UnitOfWork, m coremission.Snapshot) (*coremission.Plan, error) {
		result := coremission.CanRefuseMission(m)
		if !result.Allowed || result.NoOp {
			return nil, result.Error()
		}
		plan := coremission.PlanRefuse(m, req.Reason)
		return &plan, nil
	})
}

// ReportProblem drops the driver and sends the mission back to PENDING.
func (s *MissionServiceImpl) ReportProblem(ctx context.Context, req primary.ReportProblemRequest) (*primary.Mission, error) {
	if err := coremission.ValidateReason(req.Reason); err != nil {
		return nil, s.record(ctx, "report_problem", req.MissionID, err)
	}
	return s.transition(ctx, "report_problem", req.MissionID, func(ctx context.Context, uow secondary.UnitOfWork, m coremission.Snapshot) (*coremission.Plan, error) {
		if result := coremission.CanReportProblem(m); !result.Allowed {
			return nil, result.Error()
		}
		plan := coremission.PlanReportProblem(m, req.Reason, s.driverName(ctx, uow, m.DriverID))
		return &plan, nil
	})
}

// ReassignMission hands a failed mission to a new driver.
func (s *MissionServiceImpl) ReassignMission(ctx context.Context, req primary.ReassignMissionRequest) (*primary.Mission, error) {
	if req.DriverID == "" {
		return nil, s.record(ctx, "reassign", req.MissionID, errs.InvalidInput("driver is required"))
	}
	return s.transition(ctx, "reassign", req.MissionID, func(ctx context.Context, uow secondary.UnitOfWork, m coremission.Snapshot) (*coremission.Plan, error) {
		driver, err := uow.Directory().GetDriver(ctx, req.DriverID)
		if err != nil {
			return nil, err
		}
		result := coremission.CanReassignMission(coremission.ReassignContext{
			Mission:      m,
			DriverID:     req.DriverID,
			DriverActive: driver.Active,
		})
		if !result.Allowed {
			return nil, result.Error()
		}
		plan := coremission.PlanReassign(m, driver.ID, directory.FullName(driver.FirstName, driver.LastName))
		return &plan, nil
	})
}

// DeleteMission removes a finished mission.
func (s *MissionServiceImpl) DeleteMission(ctx context.Context, missionID string) error {
	unlock := s.locks.Lock(missionID)
	defer unlock()

	var deleted coremission.Snapshot
	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow secondary.UnitOfWork) error {
		// 1. Fetch mission to check state
		record, err := uow.Missions().GetForUpdate(ctx, missionID)
		if err != nil {
			return err
		}
		deleted = recordToSnapshot(record)

		// 2. Guard check
		if result := coremission.CanDeleteMission(deleted); !result.Allowed {
			return result.Error()
		}

		// 3. Delete
		return uow.Missions().Delete(ctx, missionID)
	})
	if err != nil {
		return s.record(ctx, "delete", missionID, err)
	}
	s.record(ctx, "delete", missionID, nil)
	s.afterCommit(ctx, coremission.PlanDelete(deleted))
	return nil
}

// UpdateMissionDetails edits a PENDING mission that no driver has accepted yet.
// Changing the vehicle moves the ledger hold in the same unit of work.
func (s *MissionServiceImpl) UpdateMissionDetails(ctx context.Context, req primary.UpdateMissionDetailsRequest) (*primary.Mission, error) {
	return s.transition(ctx, "update", req.MissionID, func(ctx context.Context, uow secondary.UnitOfWork, m coremission.Snapshot) (*coremission.Plan, error) {
		if result := coremission.CanUpdateDetails(m); !result.Allowed {
			return nil, result.Error()
		}

		details := mergeDetails(m, req)
		if err := coremission.ValidateDetails(details); err != nil {
			return nil, err
		}

		vehicleID := m.VehicleID
		if req.VehicleID != nil {
			vehicleID = *req.VehicleID
		}
		if vehicleID != "" && vehicleID != m.VehicleID {
			if _, err := uow.Ledger().GetVehicle(ctx, vehicleID); err != nil {
				return nil, err
			}
		}

		plan := coremission.PlanUpdateDetails(m, details, vehicleID)
		return &plan, nil
	})
}

// GetMission retrieves a mission by ID.
func (s *MissionServiceImpl) GetMission(ctx context.Context, missionID string) (*primary.Mission, error) {
	record, err := s.missions.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	return s.recordToMission(record), nil
}

// ListMissions lists missions with optional filters.
func (s *MissionServiceImpl) ListMissions(ctx context.Context, filters primary.MissionFilters) ([]*primary.Mission, error) {
	if filters.State != "" {
		if _, ok := coremission.ParseState(filters.State); !ok {
			return nil, errs.InvalidInput(fmt.Sprintf("unknown mission state %q", filters.State))
		}
	}

	records, err := s.missions.List(ctx, secondary.MissionFilters{
		DriverID:    filters.DriverID,
		RequesterID: filters.RequesterID,
		State:       filters.State,
		Limit:       filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}

	missions := make([]*primary.Mission, len(records))
	for i, r := range records {
		missions[i] = s.recordToMission(r)
	}
	return missions, nil
}

// decideFunc evaluates guards against the locked mission and returns the plan
// to apply. A nil plan with a nil error means the call is a no-op.
type decideFunc func(ctx context.Context, uow secondary.UnitOfWork, m coremission.Snapshot) (*coremission.Plan, error)

// transition runs one lifecycle operation on an existing mission.
func (s *MissionServiceImpl) transition(ctx context.Context, op, missionID string, decide decideFunc) (*primary.Mission, error) {
	if missionID == "" {
		return nil, s.record(ctx, op, missionID, errs.InvalidInput("mission id is required"))
	}

	unlock := s.locks.Lock(missionID)
	defer unlock()

	var plan *coremission.Plan
	var record *secondary.MissionRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow secondary.UnitOfWork) error {
		// 1. Fetch mission under lock
		current, err := uow.Missions().GetForUpdate(ctx, missionID)
		if err != nil {
			return err
		}
		record = current

		// 2. Guard and plan (pure)
		plan, err = decide(ctx, uow, recordToSnapshot(current))
		if err != nil || plan == nil {
			return err
		}

		// 3. Persist the new state
		if err := coremission.CheckConsistency(plan.Mission); err != nil {
			return fmt.Errorf("refusing to persist mission %s: %w", missionID, err)
		}
		record = snapshotToRecord(plan.Mission, current)
		if err := uow.Missions().Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update mission: %w", err)
		}

		// 4. Ledger effects in the same unit of work
		inTx, _ := effects.Split(plan.Effects())
		return s.executor.WithLedger(uow.Ledger()).Execute(ctx, inTx)
	})
	if err != nil {
		return nil, s.record(ctx, op, missionID, err)
	}

	if plan == nil {
		metrics.MissionTransitions.WithLabelValues(op, "noop").Inc()
		s.logger.WithFields(ctxutil.LogFields(ctx)).WithFields(log.Fields{"operation": op, "mission_id": missionID}).
			Debug("mission already in target state")
		return s.recordToMission(record), nil
	}
	s.record(ctx, op, missionID, nil)

	// 5. Notify after commit
	s.afterCommit(ctx, *plan)

	return s.recordToMission(record), nil
}

func (s *MissionServiceImpl) afterCommit(ctx context.Context, plan coremission.Plan) {
	_, after := effects.Split(plan.Effects())
	if err := s.executor.Execute(ctx, after); err != nil {
		s.logger.WithFields(ctxutil.LogFields(ctx)).WithField("mission_id", plan.Mission.ID).WithError(err).Error("failed to dispatch notifications")
	}
}

// record counts the outcome of op and passes err through. Failures are logged
// here; successes are logged by the plan's audit effect after commit.
func (s *MissionServiceImpl) record(ctx context.Context, op, missionID string, err error) error {
	fields := ctxutil.LogFields(ctx)
	fields["operation"] = op
	fields["mission_id"] = missionID
	if err != nil {
		code := errs.CodeOf(err)
		metrics.MissionTransitions.WithLabelValues(op, string(code)).Inc()
		entry := s.logger.WithFields(fields).WithField("code", code).WithError(err)
		if code == errs.CodeInternal {
			entry.Error("mission operation failed")
		} else {
			entry.Info("mission operation rejected")
		}
		return err
	}
	metrics.MissionTransitions.WithLabelValues(op, "ok").Inc()
	return nil
}

// driverName resolves a display name, falling back to the ID.
func (s *MissionServiceImpl) driverName(ctx context.Context, uow secondary.UnitOfWork, driverID string) string {
	if driverID == "" {
		return "dispatcher"
	}
	driver, err := uow.Directory().GetDriver(ctx, driverID)
	if err != nil {
		return driverID
	}
	return directory.FullName(driver.FirstName, driver.LastName)
}

// Helper methods

// mergeDetails overlays the non-nil request fields on the mission's current details.
func mergeDetails(m coremission.Snapshot, req primary.UpdateMissionDetailsRequest) coremission.Details {
	d := coremission.Details{
		Origin:       m.Origin,
		Destination:  m.Destination,
		ScheduledAt:  m.ScheduledAt,
		Type:         m.Type,
		Instructions: m.Instructions,
	}
	if req.Origin != nil {
		d.Origin = *req.Origin
	}
	if req.Destination != nil {
		d.Destination = *req.Destination
	}
	if req.ScheduledAt != nil {
		d.ScheduledAt = *req.ScheduledAt
	}
	if req.Type != nil {
		d.Type = coremission.Type(*req.Type)
	}
	if req.Instructions != nil {
		d.Instructions = *req.Instructions
	}
	return d
}

func recordToSnapshot(r *secondary.MissionRecord) coremission.Snapshot {
	return coremission.Snapshot{
		ID:              r.ID,
		Origin:          r.Origin,
		Destination:     r.Destination,
		ScheduledAt:     r.ScheduledAt,
		Type:            coremission.Type(r.Type),
		Instructions:    r.Instructions,
		State:           coremission.State(r.State),
		DriverID:        r.DriverID,
		VehicleID:       r.VehicleID,
		VehicleReserved: r.VehicleReserved,
		RequesterID:     r.RequesterID,
		ReportedProblem: r.ReportedProblem,
		WasEverAccepted: r.WasEverAccepted,
	}
}

// snapshotToRecord copies snapshot fields over base, keeping timestamps.
func snapshotToRecord(m coremission.Snapshot, base *secondary.MissionRecord) *secondary.MissionRecord {
	return &secondary.MissionRecord{
		ID:              m.ID,
		Origin:          m.Origin,
		Destination:     m.Destination,
		ScheduledAt:     m.ScheduledAt,
		Type:            string(m.Type),
		Instructions:    m.Instructions,
		State:           string(m.State),
		DriverID:        m.DriverID,
		VehicleID:       m.VehicleID,
		VehicleReserved: m.VehicleReserved,
		RequesterID:     m.RequesterID,
		ReportedProblem: m.ReportedProblem,
		WasEverAccepted: m.WasEverAccepted,
		CreatedAt:       base.CreatedAt,
		UpdatedAt:       base.UpdatedAt,
	}
}

func (s *MissionServiceImpl) recordToMission(r *secondary.MissionRecord) *primary.Mission {
	return &primary.Mission{
		ID:              r.ID,
		Origin:          r.Origin,
		Destination:     r.Destination,
		ScheduledAt:     r.ScheduledAt,
		Type:            r.Type,
		Instructions:    r.Instructions,
		State:           r.State,
		DriverID:        r.DriverID,
		VehicleID:       r.VehicleID,
		VehicleReserved: r.VehicleReserved,
		RequesterID:     r.RequesterID,
		ReportedProblem: r.ReportedProblem,
		WasEverAccepted: r.WasEverAccepted,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Ensure MissionServiceImpl implements the interface
var _ primary.MissionService = (*MissionServiceImpl)(nil)
