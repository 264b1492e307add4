// Package interaction owns the voice cycle: capture, transcription,
// routing, generation, synthesis and playback, sequenced by a single
// state machine.
package interaction

import (
	"sync"

	"taskpilot-voice/internal/platform/errors"
)

type State int

const (
	StateIdle State = iota
	StateListening
	StateProcessing
	StateSpeaking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateProcessing:
		return "processing"
	case StateSpeaking:
		return "speaking"
	default:
		return "unknown"
	}
}

// IsRecording and IsSpeaking are the two flags the UI layer sees.
// They are projections of the single state, so both can never be true.
func (s State) IsRecording() bool { return s == StateListening }
func (s State) IsSpeaking() bool  { return s == StateSpeaking }

// Machine is the only mutation point for interaction state. Every
// successful transition synchronously invokes the transition hook.
type Machine struct {
	mu           sync.Mutex
	state        State
	onTransition func(State)
}

// NewMachine creates a machine in Idle. onTransition may be nil.
func NewMachine(onTransition func(State)) *Machine {
	return &Machine{onTransition: onTransition}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// StartListening moves Idle to Listening. Any other state means an
// interaction is already running and the request is rejected, never
// interleaved.
func (m *Machine) StartListening() error {
	return m.transition(StateListening, StateIdle)
}

// BeginProcessing moves Listening to Processing, after the capture
// device has been released.
func (m *Machine) BeginProcessing() error {
	return m.transition(StateProcessing, StateListening)
}

// BeginProcessingDirect moves Idle straight to Processing, for typed
// text input that skips the capture phase.
func (m *Machine) BeginProcessingDirect() error {
	return m.transition(StateProcessing, StateIdle)
}

// BeginSpeaking moves Processing to Speaking. Listening can never
// reach Speaking directly, which keeps capture and playback exclusive.
func (m *Machine) BeginSpeaking() error {
	return m.transition(StateSpeaking, StateProcessing)
}

// ToIdle forces Idle from any state and reports whether a transition
// happened. Calling it while already Idle is a no-op without a hook
// invocation, which makes stop() idempotent.
func (m *Machine) ToIdle() bool {
	m.mu.Lock()
	if m.state == StateIdle {
		m.mu.Unlock()
		return false
	}
	m.state = StateIdle
	hook := m.onTransition
	m.mu.Unlock()

	if hook != nil {
		hook(StateIdle)
	}
	return true
}

func (m *Machine) transition(to State, from State) error {
	m.mu.Lock()
	if m.state != from {
		current := m.state
		m.mu.Unlock()
		return errors.Wrap(errors.KindState, "transition",
			"cannot enter "+to.String()+" from "+current.String(), errors.ErrAlreadyActive)
	}
	m.state = to
	hook := m.onTransition
	m.mu.Unlock()

	if hook != nil {
		hook(to)
	}
	return nil
}
