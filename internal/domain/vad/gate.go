// Package vad classifies capture blocks as speech or silence by
// absolute amplitude and decides when an utterance has ended.
package vad

import (
	"time"

	"taskpilot-voice/internal/domain/audio"
)

// EndReason says why the gate ended the utterance.
type EndReason int

const (
	// EndNone means capture continues.
	EndNone EndReason = iota
	// EndSilence means the trailing silence timeout elapsed after speech.
	EndSilence
	// EndHardCap means the overall utterance cap was hit.
	EndHardCap
)

// Verdict is the gate's decision for one block.
type Verdict struct {
	// HasSound is true when any sample in the block crosses the
	// amplitude threshold. Silent blocks are not added to the payload.
	HasSound bool
	Reason   EndReason
}

func (v Verdict) Ended() bool { return v.Reason != EndNone }

// Gate tracks speech activity across a capture session. One Gate
// instance covers exactly one utterance; create a new one per cycle.
type Gate struct {
	threshold      int
	silenceTimeout time.Duration
	maxUtterance   time.Duration

	clock            func() time.Time
	captureStartedAt time.Time
	lastSoundAt      time.Time
	started          bool
	soundSeen        bool
}

func NewGate(threshold int, silenceTimeout, maxUtterance time.Duration) *Gate {
	return &Gate{
		threshold:      threshold,
		silenceTimeout: silenceTimeout,
		maxUtterance:   maxUtterance,
		clock:          time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (g *Gate) WithClock(clock func() time.Time) *Gate {
	g.clock = clock
	return g
}

// Process classifies one block and advances the timeout clocks.
// The silence timeout only starts counting once speech has been heard;
// until then only the hard cap can end the session.
func (g *Gate) Process(block audio.Block) Verdict {
	now := g.clock()
	if !g.started {
		g.started = true
		g.captureStartedAt = now
	}

	hasSound := block.MaxAmplitude() >= g.threshold
	if hasSound {
		g.soundSeen = true
		g.lastSoundAt = now
	}

	if g.maxUtterance > 0 && now.Sub(g.captureStartedAt) >= g.maxUtterance {
		return Verdict{HasSound: hasSound, Reason: EndHardCap}
	}
	if g.soundSeen && now.Sub(g.lastSoundAt) > g.silenceTimeout {
		return Verdict{HasSound: hasSound, Reason: EndSilence}
	}
	return Verdict{HasSound: hasSound}
}

// SoundSeen reports whether any speech was detected this session.
// When false at end of capture, the payload is discarded without a
// transcription call.
func (g *Gate) SoundSeen() bool { return g.soundSeen }
