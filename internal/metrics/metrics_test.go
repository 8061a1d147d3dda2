package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, metrics *Metrics, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestCountersAreIndependentPerInstance(t *testing.T) {
	first := New()
	second := New()

	first.WinLogged("experiment")
	first.WinLogged("experiment")
	first.PersistenceFailure("delete_win")

	require.Equal(t, 2.0, counterValue(t, first, "ssclab_wins_logged_total", map[string]string{"source": "experiment"}))
	require.Equal(t, 0.0, counterValue(t, second, "ssclab_wins_logged_total", map[string]string{"source": "experiment"}))
	require.Equal(t, 1.0, counterValue(t, first, "ssclab_persistence_failures_total", map[string]string{"operation": "delete_win"}))
}

func TestUndoOutcomesAreLabelled(t *testing.T) {
	metrics := New()
	metrics.Undo("win", "restored")
	metrics.Undo("win", "expired")
	metrics.Undo("win", "expired")

	require.Equal(t, 1.0, counterValue(t, metrics, "ssclab_undo_requests_total", map[string]string{"kind": "win", "outcome": "restored"}))
	require.Equal(t, 2.0, counterValue(t, metrics, "ssclab_undo_requests_total", map[string]string{"kind": "win", "outcome": "expired"}))
}
