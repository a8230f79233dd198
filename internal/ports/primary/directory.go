package primary

import "context"

// DirectoryService manages the drivers, requesters and dispatchers missions refer to.
type DirectoryService interface {
	RegisterDriver(ctx context.Context, req RegisterDriverRequest) (*Driver, error)
	GetDriver(ctx context.Context, driverID string) (*Driver, error)
	ListDrivers(ctx context.Context, activeOnly bool) ([]*Driver, error)

	// ReactivateDriver puts a driver back on duty after leave.
	ReactivateDriver(ctx context.Context, driverID string) (*Driver, error)

	RegisterEmployee(ctx context.Context, req RegisterEmployeeRequest) (*Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)

	RegisterDispatcher(ctx context.Context, req RegisterDispatcherRequest) (*Dispatcher, error)
	GetDispatcher(ctx context.Context, dispatcherID string) (*Dispatcher, error)
	ListDispatchers(ctx context.Context) ([]*Dispatcher, error)
}

// RegisterDriverRequest contains parameters for registering a driver.
type RegisterDriverRequest struct {
	FirstName string
	LastName  string
	Phone     string
}

// RegisterEmployeeRequest contains parameters for registering a requester.
type RegisterEmployeeRequest struct {
	FirstName  string
	LastName   string
	Department string
}

// RegisterDispatcherRequest contains parameters for registering a dispatcher.
type RegisterDispatcherRequest struct {
	Name  string
	Email string
}

// Driver represents a driver at the port boundary.
type Driver struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Active    bool   `json:"active"`
}

// Employee represents a requester at the port boundary.
type Employee struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department,omitempty"`
}

// Dispatcher represents a dispatcher at the port boundary.
type Dispatcher struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
