// Package wire provides dependency injection for fleetdesk.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	cliadapter "github.com/example/fleetdesk/internal/adapters/cli"
	"github.com/example/fleetdesk/internal/adapters/httpapi"
	"github.com/example/fleetdesk/internal/adapters/notify"
	"github.com/example/fleetdesk/internal/adapters/sqlstore"
	"github.com/example/fleetdesk/internal/app"
	"github.com/example/fleetdesk/internal/config"
	"github.com/example/fleetdesk/internal/db"
	"github.com/example/fleetdesk/internal/logging"
	"github.com/example/fleetdesk/internal/metrics"
	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

var (
	configPath string

	cfg      *config.Config
	database *sql.DB
	notifier *app.Notifier

	missionService      primary.MissionService
	ledgerService       primary.LedgerService
	directoryService    primary.DirectoryService
	leaveService        primary.LeaveService
	notificationService primary.NotificationService
	statsService        primary.StatsService

	once    sync.Once
	initErr error
)

// SetConfigPath selects the YAML file read on first use. Empty means the default path.
func SetConfigPath(path string) {
	configPath = path
}

// Init builds every service. Later calls return the first result.
func Init() error {
	once.Do(initServices)
	return initErr
}

func mustInit() {
	if err := Init(); err != nil {
		log.WithError(err).Fatal("failed to initialize fleetdesk")
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	mustInit()
	return cfg
}

// DB returns the shared database handle.
func DB() *sql.DB {
	mustInit()
	return database
}

// MissionService returns the singleton MissionService instance.
func MissionService() primary.MissionService {
	mustInit()
	return missionService
}

// LedgerService returns the singleton LedgerService instance.
func LedgerService() primary.LedgerService {
	mustInit()
	return ledgerService
}

// DirectoryService returns the singleton DirectoryService instance.
func DirectoryService() primary.DirectoryService {
	mustInit()
	return directoryService
}

// LeaveService returns the singleton LeaveService instance.
func LeaveService() primary.LeaveService {
	mustInit()
	return leaveService
}

// NotificationService returns the singleton NotificationService instance.
func NotificationService() primary.NotificationService {
	mustInit()
	return notificationService
}

// StatsService returns the singleton StatsService instance.
func StatsService() primary.StatsService {
	mustInit()
	return statsService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	path := configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	loaded, err := config.Load(path)
	if err != nil {
		initErr = err
		return
	}
	cfg = loaded

	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		initErr = err
		return
	}
	logger := log.StandardLogger()
	metrics.RegisterDefault()

	dsn := cfg.Database.DSN
	if cfg.Database.Driver == db.DriverSQLite && dsn == "" {
		if dsn, err = db.DefaultPath(); err != nil {
			initErr = err
			return
		}
	}
	database, err = db.Open(context.Background(), cfg.Database.Driver, dsn)
	if err != nil {
		initErr = err
		return
	}

	sinks, err := buildSinks(cfg.Notifications)
	if err != nil {
		initErr = err
		return
	}

	// Repositories (secondary ports) share one store; units of work come from it.
	store := sqlstore.New(database, cfg.Database.Driver)
	notifier = app.NewNotifier(store.Notifications(), logger, sinks...)
	executor := app.NewEffectExecutor(notifier, logger)

	// Services (primary ports implementation)
	missionService = app.NewMissionService(store, store.Missions(), executor, logger)
	ledgerService = app.NewLedgerService(store, store.Ledger(), logger)
	directoryService = app.NewDirectoryService(store, store.Directory(), logger)
	leaveService = app.NewLeaveService(store, store.Leaves(), notifier, cfg.Notifications.DispatcherID, logger)
	notificationService = app.NewNotificationService(store.Notifications())
	statsService = app.NewStatsService(store.Stats())
}

// buildSinks connects the enabled broker sinks.
func buildSinks(c config.NotificationsConfig) ([]secondary.NotificationSink, error) {
	var sinks []secondary.NotificationSink
	if c.Redis.Enabled {
		s, err := notify.NewRedisSink(c.Redis.URL, c.Redis.Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to configure redis sink: %w", err)
		}
		sinks = append(sinks, s)
	}
	if c.MQTT.Enabled {
		s, err := notify.NewMQTTSink(c.MQTT.Broker, c.MQTT.ClientID, c.MQTT.TopicPrefix, c.MQTT.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to configure mqtt sink: %w", err)
		}
		sinks = append(sinks, s)
	}
	if c.Kafka.Enabled {
		sinks = append(sinks, notify.NewKafkaSink(c.Kafka.Brokers, c.Kafka.Topic))
	}
	return sinks, nil
}

// Close releases sinks and the database. Safe to call when Init never ran.
func Close() {
	if notifier != nil {
		notifier.Close()
	}
	if database != nil {
		database.Close()
	}
}

// HTTPServices returns the singleton services for the HTTP router.
func HTTPServices() httpapi.Services {
	mustInit()
	return httpapi.Services{
		Missions:      missionService,
		Ledger:        ledgerService,
		Directory:     directoryService,
		Leaves:        leaveService,
		Notifications: notificationService,
		Stats:         statsService,
	}
}

// MissionAdapter returns a new MissionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func MissionAdapter() *cliadapter.MissionAdapter {
	return MissionAdapterWithOutput(os.Stdout)
}

// MissionAdapterWithOutput returns a new MissionAdapter writing to the given output.
func MissionAdapterWithOutput(out io.Writer) *cliadapter.MissionAdapter {
	return cliadapter.NewMissionAdapter(MissionService(), out)
}

// VehicleAdapter returns a new VehicleAdapter writing to stdout.
func VehicleAdapter() *cliadapter.VehicleAdapter {
	return cliadapter.NewVehicleAdapter(LedgerService(), os.Stdout)
}

// DirectoryAdapter returns a new DirectoryAdapter writing to stdout.
func DirectoryAdapter() *cliadapter.DirectoryAdapter {
	return cliadapter.NewDirectoryAdapter(DirectoryService(), os.Stdout)
}

// LeaveAdapter returns a new LeaveAdapter writing to stdout.
func LeaveAdapter() *cliadapter.LeaveAdapter {
	return cliadapter.NewLeaveAdapter(LeaveService(), os.Stdout)
}

// NotificationAdapter returns a new NotificationAdapter writing to stdout.
func NotificationAdapter() *cliadapter.NotificationAdapter {
	return cliadapter.NewNotificationAdapter(NotificationService(), os.Stdout)
}

// StatsAdapter returns a new StatsAdapter writing to stdout.
func StatsAdapter() *cliadapter.StatsAdapter {
	return cliadapter.NewStatsAdapter(StatsService(), os.Stdout)
}
