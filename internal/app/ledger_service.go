package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/example/fleetdesk/internal/core/directory"
	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// LedgerServiceImpl implements the LedgerService interface.
// It never reserves or releases; those go through mission operations.
type LedgerServiceImpl struct {
	tx     secondary.Transactor
	ledger secondary.VehicleLedger
	locks  *keyLock
	logger log.FieldLogger
}

// NewLedgerService creates a new LedgerService with injected dependencies.
func NewLedgerService(tx secondary.Transactor, ledger secondary.VehicleLedger, logger log.FieldLogger) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		tx:     tx,
		ledger: ledger,
		locks:  newKeyLock(),
		logger: logger,
	}
}

// RegisterVehicle adds a vehicle to the pool.
func (s *LedgerServiceImpl) RegisterVehicle(ctx context.Context, req primary.RegisterVehicleRequest) (*primary.Vehicle, error) {
	// 1. Validate
	registration := directory.NormalizeRegistration(req.Registration)
	if err := directory.ValidateVehicle(registration, req.CapacityKg); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(directory.VehiclePrefix)
	defer unlock()

	// 2. Allocate ID and insert
	var record *secondary.VehicleRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow secondary.UnitOfWork) error {
		nextID, err := uow.Ledger().GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate vehicle ID: %w", err)
		}
		record = &secondary.VehicleRecord{
			ID:           nextID,
			Registration: registration,
			Make:         req.Make,
			Model:        req.Model,
			CapacityKg:   req.CapacityKg,
			Available:    true,
		}
		return uow.Ledger().Register(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register vehicle: %w", err)
	}

	s.logger.WithFields(log.Fields{"vehicle_id": record.ID, "registration": registration}).Info("vehicle registered")
	return recordToVehicle(record), nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *LedgerServiceImpl) GetVehicle(ctx context.Context, vehicleID string) (*primary.Vehicle, error) {
	record, err := s.ledger.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return recordToVehicle(record), nil
}

// ListVehicles lists vehicles, optionally only available ones.
func (s *LedgerServiceImpl) ListVehicles(ctx context.Context, availableOnly bool) ([]*primary.Vehicle, error) {
	records, err := s.ledger.ListVehicles(ctx, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	vehicles := make([]*primary.Vehicle, len(records))
	for i, r := range records {
		vehicles[i] = recordToVehicle(r)
	}
	return vehicles, nil
}

// CountAvailable returns how many vehicles are free.
func (s *LedgerServiceImpl) CountAvailable(ctx context.Context) (int, error) {
	return s.ledger.CountAvailable(ctx)
}

// IsAvailable reads one vehicle's availability.
func (s *LedgerServiceImpl) IsAvailable(ctx context.Context, vehicleID string) (bool, error) {
	return s.ledger.IsAvailable(ctx, vehicleID)
}

func recordToVehicle(r *secondary.VehicleRecord) *primary.Vehicle {
	return &primary.Vehicle{
		ID:           r.ID,
		Registration: r.Registration,
		Make:         r.Make,
		Model:        r.Model,
		CapacityKg:   r.CapacityKg,
		Available:    r.Available,
	}
}

// Ensure LedgerServiceImpl implements the interface
var _ primary.LedgerService = (*LedgerServiceImpl)(nil)
