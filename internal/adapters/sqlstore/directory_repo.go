package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fleetdesk/internal/core/directory"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// DirectoryRepository implements secondary.DirectoryRepository.
type DirectoryRepository struct {
	base
}

// CreateDriver inserts a driver.
func (r *DirectoryRepository) CreateDriver(ctx context.Context, d *secondary.DriverRecord) error {
	ts := now()
	_, err := r.exec(ctx,
		"INSERT INTO drivers (id, first_name, last_name, phone, active, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		d.ID, d.FirstName, d.LastName, nullString(d.Phone), d.Active, ts,
	)
	if err != nil {
		return translate(err, "driver "+d.ID)
	}
	d.CreatedAt = formatTime(ts)
	return nil
}

// GetDriver retrieves a driver by ID.
func (r *DirectoryRepository) GetDriver(ctx context.Context, id string) (*secondary.DriverRecord, error) {
	row := r.queryRow(ctx, "SELECT id, first_name, last_name, phone, active, created_at FROM drivers WHERE id = ?", id)
	d, err := scanDriver(row)
	if err == sql.ErrNoRows {
		return nil, notFound("driver", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return d, nil
}

// ListDrivers lists drivers by ID, optionally only active ones.
func (r *DirectoryRepository) ListDrivers(ctx context.Context, activeOnly bool) ([]*secondary.DriverRecord, error) {
	query := "SELECT id, first_name, last_name, phone, active, created_at FROM drivers"
	var args []any
	if activeOnly {
		query += " WHERE active = ?"
		args = append(args, true)
	}
	query += " ORDER BY id"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	drivers := make([]*secondary.DriverRecord, 0)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// SetDriverActive toggles whether the driver can take missions.
func (r *DirectoryRepository) SetDriverActive(ctx context.Context, id string, active bool) error {
	res, err := r.exec(ctx, "UPDATE drivers SET active = ? WHERE id = ?", active, id)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	return affected(res, "driver", id)
}

// CreateEmployee inserts a requester.
func (r *DirectoryRepository) CreateEmployee(ctx context.Context, e *secondary.EmployeeRecord) error {
	ts := now()
	_, err := r.exec(ctx,
		"INSERT INTO employees (id, first_name, last_name, department, created_at) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.FirstName, e.LastName, nullString(e.Department), ts,
	)
	if err != nil {
		return translate(err, "employee "+e.ID)
	}
	e.CreatedAt = formatTime(ts)
	return nil
}

// GetEmployee retrieves a requester by ID.
func (r *DirectoryRepository) GetEmployee(ctx context.Context, id string) (*secondary.EmployeeRecord, error) {
	row := r.queryRow(ctx, "SELECT id, first_name, last_name, department, created_at FROM employees WHERE id = ?", id)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, notFound("employee", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// ListEmployees lists requesters by ID.
func (r *DirectoryRepository) ListEmployees(ctx context.Context) ([]*secondary.EmployeeRecord, error) {
	rows, err := r.query(ctx, "SELECT id, first_name, last_name, department, created_at FROM employees ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*secondary.EmployeeRecord, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// CreateDispatcher inserts a dispatcher.
func (r *DirectoryRepository) CreateDispatcher(ctx context.Context, d *secondary.DispatcherRecord) error {
	ts := now()
	_, err := r.exec(ctx,
		"INSERT INTO dispatchers (id, name, email, created_at) VALUES (?, ?, ?, ?)",
		d.ID, d.Name, d.Email, ts,
	)
	if err != nil {
		return translate(err, "dispatcher "+d.Email)
	}
	d.CreatedAt = formatTime(ts)
	return nil
}

// GetDispatcher retrieves a dispatcher by ID.
func (r *DirectoryRepository) GetDispatcher(ctx context.Context, id string) (*secondary.DispatcherRecord, error) {
	row := r.queryRow(ctx, "SELECT id, name, email, created_at FROM dispatchers WHERE id = ?", id)
	d, err := scanDispatcher(row)
	if err == sql.ErrNoRows {
		return nil, notFound("dispatcher", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatcher: %w", err)
	}
	return d, nil
}

// ListDispatchers lists dispatchers by ID.
func (r *DirectoryRepository) ListDispatchers(ctx context.Context) ([]*secondary.DispatcherRecord, error) {
	rows, err := r.query(ctx, "SELECT id, name, email, created_at FROM dispatchers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatchers: %w", err)
	}
	defer rows.Close()

	dispatchers := make([]*secondary.DispatcherRecord, 0)
	for rows.Next() {
		d, err := scanDispatcher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dispatcher: %w", err)
		}
		dispatchers = append(dispatchers, d)
	}
	return dispatchers, rows.Err()
}

// GetNextID returns the next ID for a directory prefix.
func (r *DirectoryRepository) GetNextID(ctx context.Context, prefix string) (string, error) {
	tables := map[string]string{
		directory.DriverPrefix:     "drivers",
		directory.EmployeePrefix:   "employees",
		directory.DispatcherPrefix: "dispatchers",
	}
	table, ok := tables[prefix]
	if !ok {
		return "", fmt.Errorf("unknown directory prefix %q", prefix)
	}
	maxID, err := r.maxSuffix(ctx, table, len(prefix)+1)
	if err != nil {
		return "", err
	}
	return directory.GenerateID(prefix, maxID), nil
}

func scanDriver(row rowScanner) (*secondary.DriverRecord, error) {
	var (
		phone     sql.NullString
		createdAt time.Time
	)
	d := &secondary.DriverRecord{}
	if err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &phone, &d.Active, &createdAt); err != nil {
		return nil, err
	}
	d.Phone = phone.String
	d.CreatedAt = formatTime(createdAt)
	return d, nil
}

func scanEmployee(row rowScanner) (*secondary.EmployeeRecord, error) {
	var (
		department sql.NullString
		createdAt  time.Time
	)
	e := &secondary.EmployeeRecord{}
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &department, &createdAt); err != nil {
		return nil, err
	}
	e.Department = department.String
	e.CreatedAt = formatTime(createdAt)
	return e, nil
}

func scanDispatcher(row rowScanner) (*secondary.DispatcherRecord, error) {
	var createdAt time.Time
	d := &secondary.DispatcherRecord{}
	if err := row.Scan(&d.ID, &d.Name, &d.Email, &createdAt); err != nil {
		return nil, err
	}
	d.CreatedAt = formatTime(createdAt)
	return d, nil
}

var _ secondary.DirectoryRepository = (*DirectoryRepository)(nil)
