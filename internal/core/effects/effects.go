// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect is an operations log line describing an applied change.
// Log effects run after commit, so only committed changes are reported.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// Ledger operations.
const (
	LedgerReserve = "reserve"
	LedgerRelease = "release"
)

// LedgerEffect represents a vehicle availability change.
// Ledger effects run inside the mission's unit of work.
type LedgerEffect struct {
	Operation string // LedgerReserve or LedgerRelease
	VehicleID string
	MissionID string
}

func (e LedgerEffect) EffectType() string { return "ledger" }

// NotifyEffect represents a notification to a single actor.
// Notify effects run after the unit of work commits.
type NotifyEffect struct {
	TargetKind string // driver, requester, dispatcher
	TargetID   string
	Type       string
	Message    string
	MissionID  string
}

func (e NotifyEffect) EffectType() string { return "notify" }

// Split partitions effects into those that belong inside a transaction
// (ledger, and anything unknown so the executor rejects it before commit)
// and those that must wait for commit (notify, log). Order is preserved.
func Split(effs []Effect) (inTx, afterCommit []Effect) {
	for _, eff := range effs {
		switch eff.(type) {
		case NotifyEffect, LogEffect:
			afterCommit = append(afterCommit, eff)
		default:
			inTx = append(inTx, eff)
		}
	}
	return inTx, afterCommit
}
