// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// Transactor runs fn inside a single unit of work. Repositories handed to fn
// through the UnitOfWork share the transaction; returning an error rolls it back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}

// UnitOfWork exposes the repositories bound to one transaction.
type UnitOfWork interface {
	Missions() MissionRepository
	Ledger() VehicleLedger
	Directory() DirectoryRepository
	Leaves() LeaveRepository
}

// MissionRepository defines the secondary port for mission persistence.
type MissionRepository interface {
	// Create persists a new mission. ID and State must be pre-populated.
	Create(ctx context.Context, mission *MissionRecord) error

	// GetByID retrieves a mission by its ID. Returns an errs NOT_FOUND error when missing.
	GetByID(ctx context.Context, id string) (*MissionRecord, error)

	// GetForUpdate is GetByID with a row lock where the backend supports one.
	GetForUpdate(ctx context.Context, id string) (*MissionRecord, error)

	// Update writes every mutable field of an existing mission.
	Update(ctx context.Context, mission *MissionRecord) error

	// Delete removes a mission. Drivers and requesters are left untouched.
	Delete(ctx context.Context, id string) error

	// List retrieves missions matching the given filters, newest first.
	List(ctx context.Context, filters MissionFilters) ([]*MissionRecord, error)

	// CountOpenForDriver counts missions a driver still has to finish.
	CountOpenForDriver(ctx context.Context, driverID string) (int, error)

	// GetNextID returns the next available mission ID.
	GetNextID(ctx context.Context) (string, error)
}

// MissionRecord represents a mission as stored in persistence.
type MissionRecord struct {
	ID              string
	Origin          string
	Destination     string
	ScheduledAt     time.Time
	Type            string
	Instructions    string
	State           string
	DriverID        string
	VehicleID       string
	VehicleReserved bool
	RequesterID     string
	ReportedProblem string
	WasEverAccepted bool
	CreatedAt       string
	UpdatedAt       string
}

// MissionFilters contains filter options for querying missions.
type MissionFilters struct {
	DriverID    string
	RequesterID string
	State       string
	Limit       int
}

// VehicleLedger is the only writer of vehicle availability.
type VehicleLedger interface {
	// Reserve flips an available vehicle to unavailable in one compare-and-set.
	// Returns NOT_FOUND for an unknown vehicle and RESOURCE_CONFLICT when already held.
	Reserve(ctx context.Context, vehicleID string) error

	// Release flips the vehicle back to available. Idempotent.
	Release(ctx context.Context, vehicleID string) error

	// IsAvailable reads the flag.
	IsAvailable(ctx context.Context, vehicleID string) (bool, error)

	// Register adds a vehicle; new vehicles start available.
	Register(ctx context.Context, vehicle *VehicleRecord) error

	// GetVehicle retrieves a vehicle by ID.
	GetVehicle(ctx context.Context, id string) (*VehicleRecord, error)

	// ListVehicles lists vehicles, optionally only the available ones.
	ListVehicles(ctx context.Context, availableOnly bool) ([]*VehicleRecord, error)

	// CountAvailable counts available vehicles.
	CountAvailable(ctx context.Context) (int, error)

	// GetNextID returns the next available vehicle ID.
	GetNextID(ctx context.Context) (string, error)
}

// VehicleRecord represents a vehicle as stored in persistence.
type VehicleRecord struct {
	ID           string
	Registration string
	Make         string
	Model        string
	CapacityKg   int
	Available    bool
	CreatedAt    string
}

// DirectoryRepository stores the people missions refer to.
type DirectoryRepository interface {
	CreateDriver(ctx context.Context, driver *DriverRecord) error
	GetDriver(ctx context.Context, id string) (*DriverRecord, error)
	ListDrivers(ctx context.Context, activeOnly bool) ([]*DriverRecord, error)
	SetDriverActive(ctx context.Context, id string, active bool) error

	CreateEmployee(ctx context.Context, employee *EmployeeRecord) error
	GetEmployee(ctx context.Context, id string) (*EmployeeRecord, error)
	ListEmployees(ctx context.Context) ([]*EmployeeRecord, error)

	CreateDispatcher(ctx context.Context, dispatcher *DispatcherRecord) error
	GetDispatcher(ctx context.Context, id string) (*DispatcherRecord, error)
	ListDispatchers(ctx context.Context) ([]*DispatcherRecord, error)

	// GetNextID returns the next ID for the given prefix (DRV, EMP, DSP).
	GetNextID(ctx context.Context, prefix string) (string, error)
}

// DriverRecord represents a driver as stored in persistence.
type DriverRecord struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Active    bool
	CreatedAt string
}

// EmployeeRecord represents a requester as stored in persistence.
type EmployeeRecord struct {
	ID         string
	FirstName  string
	LastName   string
	Department string
	CreatedAt  string
}

// DispatcherRecord represents a dispatcher as stored in persistence.
type DispatcherRecord struct {
	ID        string
	Name      string
	Email     string
	CreatedAt string
}

// LeaveRepository defines the secondary port for leave request persistence.
type LeaveRepository interface {
	Create(ctx context.Context, leave *LeaveRecord) error
	GetByID(ctx context.Context, id string) (*LeaveRecord, error)
	UpdateDecision(ctx context.Context, id, status, note string) error
	List(ctx context.Context, filters LeaveFilters) ([]*LeaveRecord, error)
	GetNextID(ctx context.Context) (string, error)
}

// LeaveRecord represents a leave request as stored in persistence.
type LeaveRecord struct {
	ID           string
	DriverID     string
	StartsAt     time.Time
	EndsAt       time.Time
	Kind         string
	Reason       string
	Status       string
	DecisionNote string
	CreatedAt    string
}

// LeaveFilters contains filter options for querying leave requests.
type LeaveFilters struct {
	DriverID string
	Status   string
}

// NotificationRepository appends and reads notification records.
// It is deliberately outside the UnitOfWork: notifications are written after commit.
type NotificationRepository interface {
	Create(ctx context.Context, n *NotificationRecord) error
	GetByID(ctx context.Context, id string) (*NotificationRecord, error)
	List(ctx context.Context, filters NotificationFilters) ([]*NotificationRecord, error)
	CountUnread(ctx context.Context, targetKind, targetID string) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, targetKind, targetID string) (int, error)
}

// NotificationRecord represents a notification as stored in persistence.
type NotificationRecord struct {
	ID         string
	TargetKind string
	TargetID   string
	Type       string
	Message    string
	MissionID  string
	Read       bool
	CreatedAt  time.Time
}

// NotificationFilters contains filter options for querying notifications.
type NotificationFilters struct {
	TargetKind string
	TargetID   string
	UnreadOnly bool
	Limit      int
}

// StatsRepository reads the counters behind the dashboard.
type StatsRepository interface {
	FleetCounts(ctx context.Context) (*FleetCountsRecord, error)
}

// FleetCountsRecord holds raw counts as read from persistence.
type FleetCountsRecord struct {
	MissionsByState   map[string]int
	Drivers           int
	ActiveDrivers     int
	Employees         int
	Vehicles          int
	AvailableVehicles int
}
