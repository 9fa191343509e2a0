package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiccgo/swicc/pkg/apdu"
)

func TestNewCardMetricsRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCardMetrics(reg)
	require.NotNil(t, m)
	assert.True(t, m.registered)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewCardMetricsWithNilRegistryStaysUnregistered(t *testing.T) {
	m := NewCardMetrics(nil)
	require.NotNil(t, m)
	assert.False(t, m.registered)
	// Still safe to call — just not visible to any registry.
	m.RecordCommand(0xA4)
}

func TestRecordCommandIncrementsByINS(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCardMetrics(reg)

	m.RecordCommand(0xA4)
	m.RecordCommand(0xA4)
	m.RecordCommand(0xB0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.commandsTotal.WithLabelValues("0xA4")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.commandsTotal.WithLabelValues("0xB0")))
}

func TestRecordStatusWordBucketsBySW1Class(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCardMetrics(reg)

	m.RecordStatusWord(apdu.SW1NormNone)
	m.RecordStatusWord(apdu.SW1CherIns)
	m.RecordStatusWord(apdu.SW1ProcAckAll)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.statusWordsTotal.WithLabelValues("normal")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.statusWordsTotal.WithLabelValues("checking_error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.statusWordsTotal.WithLabelValues("procedure")))
}

func TestSetFSMStateZeroesOtherStates(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCardMetrics(reg)
	states := []string{"Off", "CmdWait", "CmdData"}

	m.SetFSMState(states, "CmdWait")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fsmState.WithLabelValues("CmdWait")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.fsmState.WithLabelValues("Off")))

	m.SetFSMState(states, "CmdData")
	assert.Equal(t, float64(0), testutil.ToFloat64(m.fsmState.WithLabelValues("CmdWait")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fsmState.WithLabelValues("CmdData")))
}

func TestRecordResetByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCardMetrics(reg)

	m.RecordReset("cold")
	m.RecordReset("cold")
	m.RecordReset("warm")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.resetsTotal.WithLabelValues("cold")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.resetsTotal.WithLabelValues("warm")))
}

func TestSetActiveConnections(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCardMetrics(reg)

	m.SetActiveConnections(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.activeConnections))
}

func TestNilCardMetricsMethodsAreNoOps(t *testing.T) {
	var m *CardMetrics
	assert.NotPanics(t, func() {
		m.RecordCommand(0xA4)
		m.RecordStatusWord(apdu.SW1NormNone)
		m.SetFSMState([]string{"Off"}, "Off")
		m.RecordReset("cold")
		m.SetActiveConnections(1)
	})
}
