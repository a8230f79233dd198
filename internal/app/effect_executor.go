// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/example/fleetdesk/internal/core/effects"
	"github.com/example/fleetdesk/internal/core/errs"
	"github.com/example/fleetdesk/internal/ctxutil"
	"github.com/example/fleetdesk/internal/metrics"
	"github.com/example/fleetdesk/internal/ports/secondary"
)

// Dispatcher delivers notify effects. Implementations never fail the caller.
type Dispatcher interface {
	Notify(ctx context.Context, eff effects.NotifyEffect)
}

// EffectExecutor interprets and executes effects produced by core planners.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error

	// WithLedger returns an executor whose ledger effects go to ledger,
	// typically the ledger bound to the current unit of work.
	WithLedger(ledger secondary.VehicleLedger) EffectExecutor
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	ledger     secondary.VehicleLedger
	dispatcher Dispatcher
	logger     log.FieldLogger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
// The executor has no ledger until WithLedger is called.
func NewEffectExecutor(dispatcher Dispatcher, logger log.FieldLogger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// WithLedger returns a copy of the executor bound to ledger.
func (e *DefaultEffectExecutor) WithLedger(ledger secondary.VehicleLedger) EffectExecutor {
	bound := *e
	bound.ledger = ledger
	return &bound
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.LedgerEffect:
		return e.executeLedger(ctx, typed)
	case effects.NotifyEffect:
		if e.dispatcher != nil {
			e.dispatcher.Notify(ctx, typed)
		}
		return nil
	case effects.LogEffect:
		level, err := log.ParseLevel(typed.Level)
		if err != nil {
			level = log.InfoLevel
		}
		e.logger.WithFields(ctxutil.LogFields(ctx)).WithFields(log.Fields(typed.Fields)).Log(level, typed.Message)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeLedger(ctx context.Context, eff effects.LedgerEffect) error {
	if e.ledger == nil {
		return fmt.Errorf("ledger effect for vehicle %s outside a unit of work", eff.VehicleID)
	}

	var err error
	switch eff.Operation {
	case effects.LedgerReserve:
		err = e.ledger.Reserve(ctx, eff.VehicleID)
	case effects.LedgerRelease:
		err = e.ledger.Release(ctx, eff.VehicleID)
	default:
		return fmt.Errorf("unknown ledger operation: %s", eff.Operation)
	}

	outcome := "ok"
	if err != nil {
		outcome = string(errs.CodeOf(err))
	}
	metrics.VehicleLedgerOps.WithLabelValues(eff.Operation, outcome).Inc()

	fields := log.Fields{"vehicle_id": eff.VehicleID, "mission_id": eff.MissionID, "operation": eff.Operation}
	if err != nil {
		e.logger.WithFields(ctxutil.LogFields(ctx)).WithFields(fields).WithError(err).Info("ledger operation rejected")
		return err
	}
	e.logger.WithFields(ctxutil.LogFields(ctx)).WithFields(fields).Debug("ledger operation applied")
	return nil
}
