package app

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/example/fleetdesk/internal/core/directory"
	"github.com/example/fleetdesk/internal/core/errs"
	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// DirectoryServiceImpl implements the DirectoryService interface.
type DirectoryServiceImpl struct {
	tx     secondary.Transactor
	repo   secondary.DirectoryRepository
	locks  *keyLock
	logger log.FieldLogger
}

// NewDirectoryService creates a new DirectoryService with injected dependencies.
func NewDirectoryService(tx secondary.Transactor, repo secondary.DirectoryRepository, logger log.FieldLogger) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{
		tx:     tx,
		repo:   repo,
		locks:  newKeyLock(),
		logger: logger,
	}
}

// RegisterDriver adds an active driver.
func (s *DirectoryServiceImpl) RegisterDriver(ctx context.Context, req primary.RegisterDriverRequest) (*primary.Driver, error) {
	if err := directory.ValidatePerson(req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	var record *secondary.DriverRecord
	err := s.create(ctx, directory.DriverPrefix, func(ctx context.Context, repo secondary.DirectoryRepository, id string) error {
		record = &secondary.DriverRecord{
			ID:        id,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Phone:     req.Phone,
			Active:    true,
		}
		return repo.CreateDriver(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register driver: %w", err)
	}
	return recordToDriver(record), nil
}

// GetDriver retrieves a driver by ID.
func (s *DirectoryServiceImpl) GetDriver(ctx context.Context, driverID string) (*primary.Driver, error) {
	record, err := s.repo.GetDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return recordToDriver(record), nil
}

// ListDrivers lists drivers, optionally only those on duty.
func (s *DirectoryServiceImpl) ListDrivers(ctx context.Context, activeOnly bool) ([]*primary.Driver, error) {
	records, err := s.repo.ListDrivers(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	drivers := make([]*primary.Driver, len(records))
	for i, r := range records {
		drivers[i] = recordToDriver(r)
	}
	return drivers, nil
}

// ReactivateDriver puts a driver back on duty.
func (s *DirectoryServiceImpl) ReactivateDriver(ctx context.Context, driverID string) (*primary.Driver, error) {
	var record *secondary.DriverRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow secondary.UnitOfWork) error {
		current, err := uow.Directory().GetDriver(ctx, driverID)
		if err != nil {
			return err
		}
		if current.Active {
			return errs.InvalidTransition(fmt.Sprintf("driver %s is already active", driverID))
		}
		if err := uow.Directory().SetDriverActive(ctx, driverID, true); err != nil {
			return err
		}
		current.Active = true
		record = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("driver_id", driverID).Info("driver reactivated")
	return recordToDriver(record), nil
}

// RegisterEmployee adds a requester.
func (s *DirectoryServiceImpl) RegisterEmployee(ctx context.Context, req primary.RegisterEmployeeRequest) (*primary.Employee, error) {
	if err := directory.ValidatePerson(req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	var record *secondary.EmployeeRecord
	err := s.create(ctx, directory.EmployeePrefix, func(ctx context.Context, repo secondary.DirectoryRepository, id string) error {
		record = &secondary.EmployeeRecord{
			ID:         id,
			FirstName:  strings.TrimSpace(req.FirstName),
			LastName:   strings.TrimSpace(req.LastName),
			Department: req.Department,
		}
		return repo.CreateEmployee(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register employee: %w", err)
	}
	return recordToEmployee(record), nil
}

// GetEmployee retrieves a requester by ID.
func (s *DirectoryServiceImpl) GetEmployee(ctx context.Context, employeeID string) (*primary.Employee, error) {
	record, err := s.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return recordToEmployee(record), nil
}

// ListEmployees lists all requesters.
func (s *DirectoryServiceImpl) ListEmployees(ctx context.Context) ([]*primary.Employee, error) {
	records, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	employees := make([]*primary.Employee, len(records))
	for i, r := range records {
		employees[i] = recordToEmployee(r)
	}
	return employees, nil
}

// RegisterDispatcher adds a dispatcher.
func (s *DirectoryServiceImpl) RegisterDispatcher(ctx context.Context, req primary.RegisterDispatcherRequest) (*primary.Dispatcher, error) {
	if err := directory.ValidateDispatcher(req.Name, req.Email); err != nil {
		return nil, err
	}

	var record *secondary.DispatcherRecord
	err := s.create(ctx, directory.DispatcherPrefix, func(ctx context.Context, repo secondary.DirectoryRepository, id string) error {
		record = &secondary.DispatcherRecord{
			ID:    id,
			Name:  strings.TrimSpace(req.Name),
			Email: strings.TrimSpace(req.Email),
		}
		return repo.CreateDispatcher(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register dispatcher: %w", err)
	}
	return recordToDispatcher(record), nil
}

// GetDispatcher retrieves a dispatcher by ID.
func (s *DirectoryServiceImpl) GetDispatcher(ctx context.Context, dispatcherID string) (*primary.Dispatcher, error) {
	record, err := s.repo.GetDispatcher(ctx, dispatcherID)
	if err != nil {
		return nil, err
	}
	return recordToDispatcher(record), nil
}

// ListDispatchers lists all dispatchers.
func (s *DirectoryServiceImpl) ListDispatchers(ctx context.Context) ([]*primary.Dispatcher, error) {
	records, err := s.repo.ListDispatchers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatchers: %w", err)
	}
	dispatchers := make([]*primary.Dispatcher, len(records))
	for i, r := range records {
		dispatchers[i] = recordToDispatcher(r)
	}
	return dispatchers, nil
}

// create allocates the next ID for prefix and runs insert with it.
func (s *DirectoryServiceImpl) create(ctx context.Context, prefix string, insert func(ctx context.Context, repo secondary.DirectoryRepository, id string) error) error {
	unlock := s.locks.Lock(prefix)
	defer unlock()

	var id string
	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow secondary.UnitOfWork) error {
		nextID, err := uow.Directory().GetNextID(ctx, prefix)
		if err != nil {
			return fmt.Errorf("failed to generate %s ID: %w", prefix, err)
		}
		id = nextID
		return insert(ctx, uow.Directory(), nextID)
	})
	if err != nil {
		return err
	}
	s.logger.WithField("id", id).Info("directory entry registered")
	return nil
}

func recordToDriver(r *secondary.DriverRecord) *primary.Driver {
	return &primary.Driver{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Active:    r.Active,
	}
}

func recordToEmployee(r *secondary.EmployeeRecord) *primary.Employee {
	return &primary.Employee{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Department: r.Department,
	}
}

func recordToDispatcher(r *secondary.DispatcherRecord) *primary.Dispatcher {
	return &primary.Dispatcher{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
	}
}

// Ensure DirectoryServiceImpl implements the interface
var _ primary.DirectoryService = (*DirectoryServiceImpl)(nil)
