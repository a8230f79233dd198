package db

// SchemaSQL is the complete schema for fresh SQLite installs.
// It reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the SQLite schema. Repository tests
// load it through GetSchemaSQL() instead of declaring their own tables, so a
// query that references a missing column fails with "no such column" at test
// time. PostgresSchemaSQL must describe the same tables and columns.
const SchemaSQL = `
-- People
CREATE TABLE IF NOT EXISTS drivers (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	phone TEXT,
	active BOOLEAN NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	department TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS dispatchers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Vehicle pool; availability is written only by the ledger
CREATE TABLE IF NOT EXISTS vehicles (
	id TEXT PRIMARY KEY,
	registration TEXT NOT NULL UNIQUE,
	make TEXT,
	model TEXT,
	capacity_kg INTEGER NOT NULL DEFAULT 0,
	available BOOLEAN NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vehicles_available ON vehicles(available);

-- Missions
CREATE TABLE IF NOT EXISTS missions (
	id TEXT PRIMARY KEY,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	scheduled_at DATETIME NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('MATERIAL', 'DOCUMENT', 'PERSONNEL')),
	instructions TEXT,
	state TEXT NOT NULL CHECK(state IN ('PENDING', 'ACCEPTED_WAITING', 'IN_PROGRESS', 'COMPLETED', 'REFUSED')) DEFAULT 'PENDING',
	driver_id TEXT,
	vehicle_id TEXT,
	vehicle_reserved BOOLEAN NOT NULL DEFAULT 0,
	requester_id TEXT NOT NULL,
	reported_problem TEXT,
	was_ever_accepted BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (driver_id) REFERENCES drivers(id),
	FOREIGN KEY (vehicle_id) REFERENCES vehicles(id),
	FOREIGN KEY (requester_id) REFERENCES employees(id)
);

CREATE INDEX IF NOT EXISTS idx_missions_state ON missions(state);
CREATE INDEX IF NOT EXISTS idx_missions_driver ON missions(driver_id);
CREATE INDEX IF NOT EXISTS idx_missions_requester ON missions(requester_id);

-- Leave requests
CREATE TABLE IF NOT EXISTS leave_requests (
	id TEXT PRIMARY KEY,
	driver_id TEXT NOT NULL,
	starts_at DATETIME NOT NULL,
	ends_at DATETIME NOT NULL,
	kind TEXT NOT NULL,
	reason TEXT,
	status TEXT NOT NULL CHECK(status IN ('PENDING', 'APPROVED', 'REFUSED')) DEFAULT 'PENDING',
	decision_note TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (driver_id) REFERENCES drivers(id)
);

CREATE INDEX IF NOT EXISTS idx_leave_requests_driver ON leave_requests(driver_id);

-- Notifications (append-only apart from the read flag)
CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	target_kind TEXT NOT NULL CHECK(target_kind IN ('driver', 'requester', 'dispatcher')),
	target_id TEXT NOT NULL,
	type TEXT NOT NULL,
	message TEXT NOT NULL,
	mission_id TEXT,
	read BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_target ON notifications(target_kind, target_id, read);
`

// PostgresSchemaSQL is SchemaSQL for PostgreSQL.
const PostgresSchemaSQL = `
CREATE TABLE IF NOT EXISTS drivers (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	phone TEXT,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	department TEXT,
	created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS dispatchers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS vehicles (
	id TEXT PRIMARY KEY,
	registration TEXT NOT NULL UNIQUE,
	make TEXT,
	model TEXT,
	capacity_kg INTEGER NOT NULL DEFAULT 0,
	available BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_vehicles_available ON vehicles(available);

CREATE TABLE IF NOT EXISTS missions (
	id TEXT PRIMARY KEY,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	scheduled_at TIMESTAMPTZ NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('MATERIAL', 'DOCUMENT', 'PERSONNEL')),
	instructions TEXT,
	state TEXT NOT NULL CHECK(state IN ('PENDING', 'ACCEPTED_WAITING', 'IN_PROGRESS', 'COMPLETED', 'REFUSED')) DEFAULT 'PENDING',
	driver_id TEXT REFERENCES drivers(id),
	vehicle_id TEXT REFERENCES vehicles(id),
	vehicle_reserved BOOLEAN NOT NULL DEFAULT FALSE,
	requester_id TEXT NOT NULL REFERENCES employees(id),
	reported_problem TEXT,
	was_ever_accepted BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ DEFAULT NOW(),
	updated_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_missions_state ON missions(state);
CREATE INDEX IF NOT EXISTS idx_missions_driver ON missions(driver_id);
CREATE INDEX IF NOT EXISTS idx_missions_requester ON missions(requester_id);

CREATE TABLE IF NOT EXISTS leave_requests (
	id TEXT PRIMARY KEY,
	driver_id TEXT NOT NULL REFERENCES drivers(id),
	starts_at TIMESTAMPTZ NOT NULL,
	ends_at TIMESTAMPTZ NOT NULL,
	kind TEXT NOT NULL,
	reason TEXT,
	status TEXT NOT NULL CHECK(status IN ('PENDING', 'APPROVED', 'REFUSED')) DEFAULT 'PENDING',
	decision_note TEXT,
	created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_leave_requests_driver ON leave_requests(driver_id);

CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	target_kind TEXT NOT NULL CHECK(target_kind IN ('driver', 'requester', 'dispatcher')),
	target_id TEXT NOT NULL,
	type TEXT NOT NULL,
	message TEXT NOT NULL,
	mission_id TEXT,
	read BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_target ON notifications(target_kind, target_id, read);
`

// GetSchemaSQL returns the authoritative SQLite schema for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}

// SchemaFor returns the schema for a driver name.
func SchemaFor(driver string) string {
	if driver == DriverPostgres {
		return PostgresSchemaSQL
	}
	return SchemaSQL
}
