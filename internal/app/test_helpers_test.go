package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/example/fleetdesk/internal/core/errs"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// memStore is an in-memory Transactor. A unit of work holds the store lock
// and works on live maps; on error the maps are restored from a copy.
type memStore struct {
	mu sync.Mutex

	missions      map[string]secondary.MissionRecord
	vehicles      map[string]secondary.VehicleRecord
	drivers       map[string]secondary.DriverRecord
	employees     map[string]secondary.EmployeeRecord
	dispatchers   map[string]secondary.DispatcherRecord
	leaves        map[string]secondary.LeaveRecord
	notifications []secondary.NotificationRecord

	// failUpdate makes every mission update fail.
	failUpdate error
	// failNotify makes every notification insert fail.
	failNotify error
}

func newMemStore() *memStore {
	return &memStore{
		missions:    make(map[string]secondary.MissionRecord),
		vehicles:    make(map[string]secondary.VehicleRecord),
		drivers:     make(map[string]secondary.DriverRecord),
		employees:   make(map[string]secondary.EmployeeRecord),
		dispatchers: make(map[string]secondary.DispatcherRecord),
		leaves:      make(map[string]secondary.LeaveRecord),
	}
}

type memSnapshot struct {
	missions    map[string]secondary.MissionRecord
	vehicles    map[string]secondary.VehicleRecord
	drivers     map[string]secondary.DriverRecord
	employees   map[string]secondary.EmployeeRecord
	dispatchers map[string]secondary.DispatcherRecord
	leaves      map[string]secondary.LeaveRecord
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, uow secondary.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := memSnapshot{
		missions:    copyMap(s.missions),
		vehicles:    copyMap(s.vehicles),
		drivers:     copyMap(s.drivers),
		employees:   copyMap(s.employees),
		dispatchers: copyMap(s.dispatchers),
		leaves:      copyMap(s.leaves),
	}
	if err := fn(ctx, &memRepos{s: s, inTx: true}); err != nil {
		s.missions = saved.missions
		s.vehicles = saved.vehicles
		s.drivers = saved.drivers
		s.employees = saved.employees
		s.dispatchers = saved.dispatchers
		s.leaves = saved.leaves
		return err
	}
	return nil
}

// repos returns repositories usable outside a unit of work.
func (s *memStore) repos() *memRepos { return &memRepos{s: s} }

// memRepos implements every repository port over a memStore.
type memRepos struct {
	s    *memStore
	inTx bool
}

func (r *memRepos) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memRepos) Missions() secondary.MissionRepository    { return (*memMissions)(r) }
func (r *memRepos) Ledger() secondary.VehicleLedger          { return (*memLedger)(r) }
func (r *memRepos) Directory() secondary.DirectoryRepository { return (*memDirectory)(r) }
func (r *memRepos) Leaves() secondary.LeaveRepository        { return (*memLeaves)(r) }
func (r *memRepos) Notifications() secondary.NotificationRepository {
	return (*memNotifications)(r)
}

func (r *memRepos) Stats() secondary.StatsRepository { return (*memStats)(r) }

type memStats memRepos

func (r *memStats) FleetCounts(ctx context.Context) (*secondary.FleetCountsRecord, error) {
	defer (*memRepos)(r).lock()()
	counts := &secondary.FleetCountsRecord{MissionsByState: make(map[string]int)}
	for _, m := range r.s.missions {
		counts.MissionsByState[m.State]++
	}
	for _, d := range r.s.drivers {
		counts.Drivers++
		if d.Active {
			counts.ActiveDrivers++
		}
	}
	counts.Employees = len(r.s.employees)
	for _, v := range r.s.vehicles {
		counts.Vehicles++
		if v.Available {
			counts.AvailableVehicles++
		}
	}
	return counts, nil
}

func nextSeq[V any](m map[string]V, prefix string) string {
	max := 0
	for id := range m {
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(id, prefix+"-"), "%d", &n); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}

// missions

type memMissions memRepos

func (r *memMissions) Create(ctx context.Context, m *secondary.MissionRecord) error {
	defer (*memRepos)(r).lock()()
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	m.UpdatedAt = m.CreatedAt
	r.s.missions[m.ID] = *m
	return nil
}

func (r *memMissions) GetByID(ctx context.Context, id string) (*secondary.MissionRecord, error) {
	defer (*memRepos)(r).lock()()
	m, ok := r.s.missions[id]
	if !ok {
		return nil, errs.NotFound("mission", id)
	}
	return &m, nil
}

func (r *memMissions) GetForUpdate(ctx context.Context, id string) (*secondary.MissionRecord, error) {
	return r.GetByID(ctx, id)
}

func (r *memMissions) Update(ctx context.Context, m *secondary.MissionRecord) error {
	defer (*memRepos)(r).lock()()
	if r.s.failUpdate != nil {
		return r.s.failUpdate
	}
	if _, ok := r.s.missions[m.ID]; !ok {
		return errs.NotFound("mission", m.ID)
	}
	m.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.s.missions[m.ID] = *m
	return nil
}

func (r *memMissions) Delete(ctx context.Context, id string) error {
	defer (*memRepos)(r).lock()()
	if _, ok := r.s.missions[id]; !ok {
		return errs.NotFound("mission", id)
	}
	delete(r.s.missions, id)
	return nil
}

func (r *memMissions) List(ctx context.Context, f secondary.MissionFilters) ([]*secondary.MissionRecord, error) {
	defer (*memRepos)(r).lock()()
	var out []*secondary.MissionRecord
	for _, m := range r.s.missions {
		if (f.DriverID == "" || m.DriverID == f.DriverID) &&
			(f.RequesterID == "" || m.RequesterID == f.RequesterID) &&
			(f.State == "" || m.State == f.State) {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memMissions) CountOpenForDriver(ctx context.Context, driverID string) (int, error) {
	defer (*memRepos)(r).lock()()
	n := 0
	for _, m := range r.s.missions {
		if m.DriverID == driverID && (m.State == "ACCEPTED_WAITING" || m.State == "IN_PROGRESS" || m.State == "PENDING") {
			n++
		}
	}
	return n, nil
}

func (r *memMissions) GetNextID(ctx context.Context) (string, error) {
	defer (*memRepos)(r).lock()()
	return nextSeq(r.s.missions, "MISSION"), nil
}

// ledger

type memLedger memRepos

func (r *memLedger) Reserve(ctx context.Context, id string) error {
	defer (*memRepos)(r).lock()()
	v, ok := r.s.vehicles[id]
	if !ok {
		return errs.NotFound("vehicle", id)
	}
	if !v.Available {
		return errs.ResourceConflict(fmt.Sprintf("vehicle %s is not available", id))
	}
	v.Available = false
	r.s.vehicles[id] = v
	return nil
}

func (r *memLedger) Release(ctx context.Context, id string) error {
	defer (*memRepos)(r).lock()()
	v, ok := r.s.vehicles[id]
	if !ok {
		return errs.NotFound("vehicle", id)
	}
	v.Available = true
	r.s.vehicles[id] = v
	return nil
}

func (r *memLedger) IsAvailable(ctx context.Context, id string) (bool, error) {
	v, err := r.GetVehicle(ctx, id)
	if err != nil {
		return false, err
	}
	return v.Available, nil
}

func (r *memLedger) Register(ctx context.Context, v *secondary.VehicleRecord) error {
	defer (*memRepos)(r).lock()()
	for _, existing := range r.s.vehicles {
		if existing.Registration == v.Registration {
			return errs.ResourceConflict(fmt.Sprintf("registration %s already exists", v.Registration))
		}
	}
	r.s.vehicles[v.ID] = *v
	return nil
}

func (r *memLedger) GetVehicle(ctx context.Context, id string) (*secondary.VehicleRecord, error) {
	defer (*memRepos)(r).lock()()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, errs.NotFound("vehicle", id)
	}
	return &v, nil
}

func (r *memLedger) ListVehicles(ctx context.Context, availableOnly bool) ([]*secondary.VehicleRecord, error) {
	defer (*memRepos)(r).lock()()
	var out []*secondary.VehicleRecord
	for _, v := range r.s.vehicles {
		if !availableOnly || v.Available {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memLedger) CountAvailable(ctx context.Context) (int, error) {
	list, err := r.ListVehicles(ctx, true)
	return len(list), err
}

func (r *memLedger) GetNextID(ctx context.Context) (string, error) {
	defer (*memRepos)(r).lock()()
	return nextSeq(r.s.vehicles, "VEH"), nil
}

// directory

type memDirectory memRepos

func (r *memDirectory) CreateDriver(ctx context.Context, d *secondary.DriverRecord) error {
	defer (*memRepos)(r).lock()()
	r.s.drivers[d.ID] = *d
	return nil
}

func (r *memDirectory) GetDriver(ctx context.Context, id string) (*secondary.DriverRecord, error) {
	defer (*memRepos)(r).lock()()
	d, ok := r.s.drivers[id]
	if !ok {
		return nil, errs.NotFound("driver", id)
	}
	return &d, nil
}

func (r *memDirectory) ListDrivers(ctx context.Context, activeOnly bool) ([]*secondary.DriverRecord, error) {
	defer (*memRepos)(r).lock()()
	var out []*secondary.DriverRecord
	for _, d := range r.s.drivers {
		if !activeOnly || d.Active {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDirectory) SetDriverActive(ctx context.Context, id string, active bool) error {
	defer (*memRepos)(r).lock()()
	d, ok := r.s.drivers[id]
	if !ok {
		return errs.NotFound("driver", id)
	}
	d.Active = active
	r.s.drivers[id] = d
	return nil
}

func (r *memDirectory) CreateEmployee(ctx context.Context, e *secondary.EmployeeRecord) error {
	defer (*memRepos)(r).lock()()
	r.s.employees[e.ID] = *e
	return nil
}

func (r *memDirectory) GetEmployee(ctx context.Context, id string) (*secondary.EmployeeRecord, error) {
	defer (*memRepos)(r).lock()()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, errs.NotFound("employee", id)
	}
	return &e, nil
}

func (r *memDirectory) ListEmployees(ctx context.Context) ([]*secondary.EmployeeRecord, error) {
	defer (*memRepos)(r).lock()()
	var out []*secondary.EmployeeRecord
	for _, e := range r.s.employees {
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDirectory) CreateDispatcher(ctx context.Context, d *secondary.DispatcherRecord) error {
	defer (*memRepos)(r).lock()()
	r.s.dispatchers[d.ID] = *d
	return nil
}

func (r *memDirectory) GetDispatcher(ctx context.Context, id string) (*secondary.DispatcherRecord, error) {
	defer (*memRepos)(r).lock()()
	d, ok := r.s.dispatchers[id]
	if !ok {
		return nil, errs.NotFound("dispatcher", id)
	}
	return &d, nil
}

func (r *memDirectory) ListDispatchers(ctx context.Context) ([]*secondary.DispatcherRecord, error) {
	defer (*memRepos)(r).lock()()
	var out []*secondary.DispatcherRecord
	for _, d := range r.s.dispatchers {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDirectory) GetNextID(ctx context.Context, prefix string) (string, error) {
	defer (*memRepos)(r).lock()()
	switch prefix {
	case "DRV":
		return nextSeq(r.s.drivers, prefix), nil
	case "EMP":
		return nextSeq(r.s.employees, prefix), nil
	case "DSP":
		return nextSeq(r.s.dispatchers, prefix), nil
	}
	return "", fmt.Errorf("unknown prefix %s", prefix)
}

// leaves

type memLeaves memRepos

func (r *memLeaves) Create(ctx context.Context, l *secondary.LeaveRecord) error {
	defer (*memRepos)(r).lock()()
	r.s.leaves[l.ID] = *l
	return nil
}

func (r *memLeaves) GetByID(ctx context.Context, id string) (*secondary.LeaveRecord, error) {
	defer (*memRepos)(r).lock()()
	l, ok := r.s.leaves[id]
	if !ok {
		return nil, errs.NotFound("leave request", id)
	}
	return &l, nil
}

func (r *memLeaves) UpdateDecision(ctx context.Context, id, status, note string) error {
	defer (*memRepos)(r).lock()()
	l, ok := r.s.leaves[id]
	if !ok {
		return errs.NotFound("leave request", id)
	}
	l.Status = status
	l.DecisionNote = note
	r.s.leaves[id] = l
	return nil
}

func (r *memLeaves) List(ctx context.Context, f secondary.LeaveFilters) ([]*secondary.LeaveRecord, error) {
	defer (*memRepos)(r).lock()()
	var out []*secondary.LeaveRecord
	for _, l := range r.s.leaves {
		if (f.DriverID == "" || l.DriverID == f.DriverID) && (f.Status == "" || l.Status == f.Status) {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memLeaves) GetNextID(ctx context.Context) (string, error) {
	defer (*memRepos)(r).lock()()
	return nextSeq(r.s.leaves, "LEAVE"), nil
}

// notifications

type memNotifications memRepos

func (r *memNotifications) Create(ctx context.Context, n *secondary.NotificationRecord) error {
	defer (*memRepos)(r).lock()()
	if r.s.failNotify != nil {
		return r.s.failNotify
	}
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r *memNotifications) GetByID(ctx context.Context, id string) (*secondary.NotificationRecord, error) {
	defer (*memRepos)(r).lock()()
	for _, n := range r.s.notifications {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, errs.NotFound("notification", id)
}

func (r *memNotifications) List(ctx context.Context, f secondary.NotificationFilters) ([]*secondary.NotificationRecord, error) {
	defer (*memRepos)(r).lock()()
	var out []*secondary.NotificationRecord
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if n.TargetKind == f.TargetKind && n.TargetID == f.TargetID && (!f.UnreadOnly || !n.Read) {
			out = append(out, &n)
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memNotifications) CountUnread(ctx context.Context, kind, id string) (int, error) {
	list, err := r.List(ctx, secondary.NotificationFilters{TargetKind: kind, TargetID: id, UnreadOnly: true})
	return len(list), err
}

func (r *memNotifications) MarkRead(ctx context.Context, id string) error {
	defer (*memRepos)(r).lock()()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id {
			r.s.notifications[i].Read = true
			return nil
		}
	}
	return errs.NotFound("notification", id)
}

func (r *memNotifications) MarkAllRead(ctx context.Context, kind, id string) (int, error) {
	defer (*memRepos)(r).lock()()
	n := 0
	for i := range r.s.notifications {
		rec := &r.s.notifications[i]
		if rec.TargetKind == kind && rec.TargetID == id && !rec.Read {
			rec.Read = true
			n++
		}
	}
	return n, nil
}

// notificationsFor returns the type tags sent to one actor, oldest first.
func (s *memStore) notificationsFor(kind, id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var types []string
	for _, n := range s.notifications {
		if n.TargetKind == kind && n.TargetID == id {
			types = append(types, n.Type)
		}
	}
	return types
}

// failingSink is a NotificationSink that always errors.
type failingSink struct{ published int }

func (f *failingSink) Name() string { return "failing" }

func (f *failingSink) Publish(ctx context.Context, n *secondary.NotificationRecord) error {
	f.published++
	return fmt.Errorf("broker unavailable")
}

func (f *failingSink) Close() error { return nil }

// newTestLogger returns a silent logger with a capturing hook.
func newTestLogger() (*log.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	logger.SetOutput(io.Discard)
	return logger, hook
}

// fixture wires every service over one memStore with a small directory.
type fixture struct {
	store      *memStore
	notifier   *Notifier
	missions   *MissionServiceImpl
	ledger     *LedgerServiceImpl
	directory  *DirectoryServiceImpl
	leaves     *LeaveServiceImpl
	hook       *test.Hook
	failingBus *failingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	repos := store.repos()
	logger, hook := newTestLogger()
	sink := &failingSink{}

	store.employees["EMP-001"] = secondary.EmployeeRecord{ID: "EMP-001", FirstName: "Lena", LastName: "Moreau"}
	store.drivers["DRV-001"] = secondary.DriverRecord{ID: "DRV-001", FirstName: "Sam", LastName: "Diallo", Active: true}
	store.drivers["DRV-002"] = secondary.DriverRecord{ID: "DRV-002", FirstName: "Ana", LastName: "Costa", Active: true}
	store.drivers["DRV-003"] = secondary.DriverRecord{ID: "DRV-003", FirstName: "Off", LastName: "Duty", Active: false}
	store.dispatchers["DSP-001"] = secondary.DispatcherRecord{ID: "DSP-001", Name: "Control Room", Email: "control@example.com"}
	store.vehicles["VEH-001"] = secondary.VehicleRecord{ID: "VEH-001", Registration: "AB123CD", CapacityKg: 1200, Available: true}
	store.vehicles["VEH-002"] = secondary.VehicleRecord{ID: "VEH-002", Registration: "EF456GH", CapacityKg: 800, Available: true}

	notifier := NewNotifier(repos.Notifications(), logger, sink)
	executor := NewEffectExecutor(notifier, logger)

	return &fixture{
		store:      store,
		notifier:   notifier,
		missions:   NewMissionService(store, repos.Missions(), executor, logger),
		ledger:     NewLedgerService(store, repos.Ledger(), logger),
		directory:  NewDirectoryService(store, repos.Directory(), logger),
		leaves:     NewLeaveService(store, repos.Leaves(), notifier, "DSP-001", logger),
		hook:       hook,
		failingBus: sink,
	}
}

func (f *fixture) vehicleAvailable(t *testing.T, id string) bool {
	t.Helper()
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.vehicles[id].Available
}

var _ secondary.Transactor = (*memStore)(nil)
