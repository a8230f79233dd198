// Package sqlstore implements the persistence ports over database/sql for
// SQLite (mattn/go-sqlite3) and PostgreSQL (pgx stdlib).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/example/fleetdesk/internal/core/errs"
	"github.com/example/fleetdesk/internal/db"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Store is the SQL-backed Transactor. Its repository accessors run outside
// any transaction; WithinTx hands out transaction-bound ones.
type Store struct {
	db     *sql.DB
	driver string
}

// New creates a Store over an open connection. driver is db.DriverSQLite or db.DriverPostgres.
func New(conn *sql.DB, driver string) *Store {
	if driver == "" {
		driver = db.DriverSQLite
	}
	return &Store{db: conn, driver: driver}
}

// WithinTx runs fn in one transaction, committing when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow secondary.UnitOfWork) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(ctx, &unitOfWork{base{q: tx, driver: s.driver}}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Missions returns a mission repository outside any transaction.
func (s *Store) Missions() *MissionRepository {
	return &MissionRepository{base{q: s.db, driver: s.driver}}
}

// Ledger returns a vehicle ledger outside any transaction.
func (s *Store) Ledger() *VehicleLedger {
	return &VehicleLedger{base{q: s.db, driver: s.driver}}
}

// Directory returns a directory repository outside any transaction.
func (s *Store) Directory() *DirectoryRepository {
	return &DirectoryRepository{base{q: s.db, driver: s.driver}}
}

// Leaves returns a leave repository outside any transaction.
func (s *Store) Leaves() *LeaveRepository {
	return &LeaveRepository{base{q: s.db, driver: s.driver}}
}

// Notifications returns the notification repository.
func (s *Store) Notifications() *NotificationRepository {
	return &NotificationRepository{base{q: s.db, driver: s.driver}}
}

type unitOfWork struct {
	b base
}

func (u *unitOfWork) Missions() secondary.MissionRepository    { return &MissionRepository{u.b} }
func (u *unitOfWork) Ledger() secondary.VehicleLedger          { return &VehicleLedger{u.b} }
func (u *unitOfWork) Directory() secondary.DirectoryRepository { return &DirectoryRepository{u.b} }
func (u *unitOfWork) Leaves() secondary.LeaveRepository        { return &LeaveRepository{u.b} }

// base carries the querier and dialect shared by every repository.
type base struct {
	q      querier
	driver string
}

func (b base) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return b.q.ExecContext(ctx, db.Rebind(b.driver, query), args...)
}

func (b base) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return b.q.QueryContext(ctx, db.Rebind(b.driver, query), args...)
}

func (b base) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return b.q.QueryRowContext(ctx, db.Rebind(b.driver, query), args...)
}

// forUpdate returns the row-lock suffix. SQLite relies on immediate
// transactions instead.
func (b base) forUpdate() string {
	if b.driver == db.DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

// maxSuffix returns the highest numeric suffix of ids in table with a prefix
// of prefixLen characters, e.g. 8 for "MISSION-".
func (b base) maxSuffix(ctx context.Context, table string, prefixLen int) (int, error) {
	var maxID int
	err := b.queryRow(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM %s", prefixLen+1, table),
	).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("failed to get next %s ID: %w", table, err)
	}
	return maxID, nil
}

// affected returns NOT_FOUND for entity when res touched no rows.
func affected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return errs.NotFound(entity, id)
	}
	return nil
}

// translate maps constraint violations onto domain errors. A duplicate
// natural key (registration, email) is a RESOURCE_CONFLICT; a duplicate
// primary key means two writers allocated the same ID and stays INTERNAL.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("failed to write %s: id already allocated: %w", what, err)
		case sqlite3.ErrConstraintUnique:
			return &errs.Error{Code: errs.CodeResourceConflict, Reason: what + " already exists", Err: err}
		case sqlite3.ErrConstraintForeignKey:
			return &errs.Error{Code: errs.CodeInvalidInput, Reason: what + " refers to an unknown record", Err: err}
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if strings.HasSuffix(pgErr.ConstraintName, "_pkey") {
				return fmt.Errorf("failed to write %s: id already allocated: %w", what, err)
			}
			return &errs.Error{Code: errs.CodeResourceConflict, Reason: what + " already exists", Err: err}
		case "23503":
			return &errs.Error{Code: errs.CodeInvalidInput, Reason: what + " refers to an unknown record", Err: err}
		}
	}

	return fmt.Errorf("failed to write %s: %w", what, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

var _ secondary.Transactor = (*Store)(nil)

func notFound(entity, id string) error {
	return errs.NotFound(entity, id)
}
