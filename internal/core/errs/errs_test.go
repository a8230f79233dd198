package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"not found matches sentinel", NotFound("mission", "MISSION-001"), ErrNotFound, true},
		{"wrapped not found matches sentinel", fmt.Errorf("failed to get mission: %w", NotFound("mission", "MISSION-001")), ErrNotFound, true},
		{"conflict does not match invalid transition", ResourceConflict("vehicle VEH-001 is not available"), ErrInvalidTransition, false},
		{"invalid transition matches sentinel", InvalidTransition("mission is not in progress"), ErrInvalidTransition, true},
		{"plain error matches nothing", errors.New("boom"), ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", InvalidInput("reason is required"), CodeInvalidInput},
		{"wrapped coded", fmt.Errorf("outer: %w", ResourceConflict("taken")), CodeResourceConflict},
		{"foreign", errors.New("disk full"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReasonOf(t *testing.T) {
	err := fmt.Errorf("failed to start mission: %w", InvalidTransition("mission MISSION-002 has not been accepted"))
	if got := ReasonOf(err); got != "mission MISSION-002 has not been accepted" {
		t.Errorf("ReasonOf() = %q", got)
	}
	if got := ReasonOf(errors.New("disk full")); got != "disk full" {
		t.Errorf("ReasonOf() = %q", got)
	}
	if got := ReasonOf(nil); got != "" {
		t.Errorf("ReasonOf(nil) = %q, want empty", got)
	}
}
