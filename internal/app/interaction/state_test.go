package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpilot-voice/internal/platform/errors"
)

func TestMachine_FullCycle(t *testing.T) {
	var seen []State
	m := NewMachine(func(s State) { seen = append(seen, s) })

	require.NoError(t, m.StartListening())
	require.NoError(t, m.BeginProcessing())
	require.NoError(t, m.BeginSpeaking())
	assert.True(t, m.ToIdle())

	assert.Equal(t, []State{StateListening, StateProcessing, StateSpeaking, StateIdle}, seen)
}

func TestMachine_RejectsDoubleStart(t *testing.T) {
	m := NewMachine(nil)
	require.NoError(t, m.StartListening())

	err := m.StartListening()
	assert.ErrorIs(t, err, errors.ErrAlreadyActive)
	assert.Equal(t, StateListening, m.State())
}

func TestMachine_ListeningCannotReachSpeaking(t *testing.T) {
	m := NewMachine(nil)
	require.NoError(t, m.StartListening())

	err := m.BeginSpeaking()
	assert.ErrorIs(t, err, errors.ErrAlreadyActive)
}

func TestMachine_MutualExclusion(t *testing.T) {
	m := NewMachine(func(s State) {
		assert.False(t, s.IsRecording() && s.IsSpeaking())
	})

	require.NoError(t, m.StartListening())
	assert.True(t, m.State().IsRecording())
	assert.False(t, m.State().IsSpeaking())

	require.NoError(t, m.BeginProcessing())
	require.NoError(t, m.BeginSpeaking())
	assert.False(t, m.State().IsRecording())
	assert.True(t, m.State().IsSpeaking())
}

func TestMachine_IdempotentStop(t *testing.T) {
	calls := 0
	m := NewMachine(func(State) { calls++ })

	require.NoError(t, m.StartListening())
	assert.True(t, m.ToIdle())
	callsAfterFirstStop := calls

	// second stop from Idle: no transition, no callback
	assert.False(t, m.ToIdle())
	assert.Equal(t, callsAfterFirstStop, calls)
	assert.Equal(t, StateIdle, m.State())
}

func TestMachine_TypedTextSkipsListening(t *testing.T) {
	m := NewMachine(nil)
	require.NoError(t, m.BeginProcessingDirect())
	assert.Equal(t, StateProcessing, m.State())

	// busy while processing
	assert.ErrorIs(t, m.StartListening(), errors.ErrAlreadyActive)
}
