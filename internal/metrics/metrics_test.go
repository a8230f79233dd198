package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaultIsIdempotent(t *testing.T) {
	RegisterDefault()
	RegisterDefault()

	MissionTransitions.WithLabelValues("start", "ok").Inc()

	families, err := Registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["fleetdesk_mission_transitions_total"])
	assert.True(t, names["go_goroutines"])
}

func TestCounterLabels(t *testing.T) {
	before := testutil.ToFloat64(NotificationFailures.WithLabelValues("store"))
	NotificationFailures.WithLabelValues("store").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(NotificationFailures.WithLabelValues("store")))
}
