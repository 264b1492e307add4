package interaction

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"taskpilot-voice/internal/domain/asr"
	"taskpilot-voice/internal/domain/audio"
	"taskpilot-voice/internal/domain/eventbus"
	"taskpilot-voice/internal/domain/intent"
	"taskpilot-voice/internal/domain/llm"
	"taskpilot-voice/internal/domain/playback"
	"taskpilot-voice/internal/domain/tts"
	"taskpilot-voice/internal/domain/vad"
	"taskpilot-voice/internal/platform/config"
	"taskpilot-voice/internal/platform/errors"
	"taskpilot-voice/internal/platform/logging"
)

// Dispatcher receives each routed action exactly once.
type Dispatcher func(intent.Action)

// StatusCallback mirrors the two flags the mobile UI renders. Invoked
// synchronously on every state transition.
type StatusCallback func(isRecording, isSpeaking bool)

// Deps bundles the boundary adapters the engine orchestrates. Every
// field must be set except Status, which may be nil.
type Deps struct {
	NewSource   func() audio.FrameSource
	Transcriber asr.Transcriber
	Generator   llm.Generator
	Fallback    *llm.FallbackResponder
	Synthesizer tts.Synthesizer
	Player      playback.Player
	Dispatch    Dispatcher
	Status      StatusCallback
}

// Engine runs one interaction cycle at a time: capture and gate audio,
// transcribe, route or generate, then optionally speak the reply. It
// is the sole owner of the audio device on both directions.
type Engine struct {
	cfg     *config.Config
	logger  *logging.Logger
	bus     *eventbus.Bus
	machine *Machine
	router  *intent.Router
	history *llm.History
	deps    Deps

	mu      sync.Mutex
	active  bool
	cancel  context.CancelFunc
	done    chan struct{}
	cycleID string
}

func NewEngine(cfg *config.Config, logger *logging.Logger, bus *eventbus.Bus, deps Deps) *Engine {
	e := &Engine{
		cfg:     cfg,
		logger:  logger,
		bus:     bus,
		router:  intent.NewRouter(),
		history: llm.NewHistory(cfg.LLM.Prompt, cfg.LLM.MaxHistory),
		deps:    deps,
	}
	e.machine = NewMachine(e.onTransition)
	return e
}

func (e *Engine) onTransition(s State) {
	e.logger.InfoTag("STATE", "entered %s", s)
	e.bus.PublishState(eventbus.StateEventData{
		CycleID:     e.currentCycleID(),
		State:       s.String(),
		IsRecording: s.IsRecording(),
		IsSpeaking:  s.IsSpeaking(),
	})
	if e.deps.Status != nil {
		e.deps.Status(s.IsRecording(), s.IsSpeaking())
	}
}

// Status reports the current state and its UI projections.
func (e *Engine) Status() (string, bool, bool) {
	s := e.machine.State()
	return s.String(), s.IsRecording(), s.IsSpeaking()
}

// StartListening begins a voice cycle. Fails with AlreadyActive when
// any cycle is in flight; a request while speaking is rejected, never
// interleaved with playback.
func (e *Engine) StartListening() error {
	ctx, err := e.beginCycle()
	if err != nil {
		return err
	}
	if err := e.machine.StartListening(); err != nil {
		e.endCycle()
		return err
	}
	e.logger.InfoTag("AUDIO", "capture cycle %s started", e.currentCycleID())

	go func() {
		defer e.endCycle()
		e.runCaptureCycle(ctx)
	}()
	return nil
}

// SubmitText runs the routing and reply pipeline on typed text,
// skipping capture and transcription.
func (e *Engine) SubmitText(text string) error {
	if text == "" {
		return errors.New(errors.KindState, "submit-text", "text is empty")
	}
	ctx, err := e.beginCycle()
	if err != nil {
		return err
	}
	if err := e.machine.BeginProcessingDirect(); err != nil {
		e.endCycle()
		return err
	}
	e.logger.InfoTag("INTENT", "text cycle %s started", e.currentCycleID())

	go func() {
		defer e.endCycle()
		e.bus.PublishTranscript(eventbus.TranscriptEventData{CycleID: e.currentCycleID(), Text: text})
		e.respond(ctx, text)
	}()
	return nil
}

// Stop cancels whatever the engine is doing and returns once the
// device is released and the machine is Idle. Calling it while Idle
// is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	done := e.done
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	e.machine.ToIdle()
}

// beginCycle reserves the engine for one cycle. A second caller gets
// AlreadyActive until endCycle runs.
func (e *Engine) beginCycle() (context.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		return nil, errors.Wrap(errors.KindState, "begin-cycle",
			"an interaction cycle is already running", errors.ErrAlreadyActive)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.active = true
	e.cancel = cancel
	e.done = make(chan struct{})
	e.cycleID = uuid.NewString()
	return ctx, nil
}

func (e *Engine) endCycle() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.cancel = nil
	e.active = false
	done := e.done
	e.done = nil
	e.mu.Unlock()

	if done != nil {
		close(done)
	}
}

func (e *Engine) currentCycleID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cycleID
}

// runCaptureCycle owns the microphone from open to close. Silent
// blocks advance the gate's clock but never reach the encoder, so the
// payload stays free of leading and trailing silence.
func (e *Engine) runCaptureCycle(ctx context.Context) {
	source := e.deps.NewSource()
	if err := source.Open(); err != nil {
		e.failCycle("capture", err)
		return
	}

	gate := vad.NewGate(
		e.cfg.VAD.AmplitudeThreshold,
		e.cfg.VAD.SilenceTimeout(),
		e.cfg.VAD.MaxUtterance(),
	)
	encoder := audio.NewContainerEncoder(e.cfg.Audio.SampleRate)

	cancelled := false
	for {
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		block, err := source.ReadNext()
		if err != nil {
			source.Close()
			e.failCycle("capture", err)
			return
		}

		verdict := gate.Process(block)
		if verdict.HasSound {
			encoder.Append(block)
		}
		if verdict.Ended() {
			if verdict.Reason == vad.EndHardCap {
				e.logger.WarnTag("VAD", "utterance hit hard cap, finalizing")
			}
			break
		}
	}

	if err := source.Close(); err != nil {
		e.logger.WarnTag("AUDIO", "close capture source: %v", err)
	}

	// A cancelled capture never reaches transcription.
	if cancelled {
		e.logger.InfoTag("AUDIO", "capture cycle cancelled")
		e.machine.ToIdle()
		return
	}

	if !gate.SoundSeen() {
		e.logger.InfoTag("VAD", "no speech detected, discarding utterance")
		e.machine.ToIdle()
		return
	}

	container, err := encoder.Finalize()
	if err != nil {
		e.failCycle("encode", err)
		return
	}

	if err := e.machine.BeginProcessing(); err != nil {
		e.machine.ToIdle()
		return
	}

	if e.cfg.Audio.SaveUserAudio {
		if path, err := audio.SaveDebugCopy(e.cfg.Audio.OutputDir, container); err == nil {
			e.logger.DebugTag("AUDIO", "utterance saved to %s", path)
		}
	}

	e.process(ctx, container)
}

// transcriptionApology is surfaced to the user when the transcription
// gateway fails; the raw error stays in the log.
const transcriptionApology = "Entschuldigung, ich habe dich leider nicht verstanden."

func (e *Engine) process(ctx context.Context, container []byte) {
	result, err := e.deps.Transcriber.Transcribe(ctx, container)
	if err != nil {
		// A user-initiated stop resolves cleanly, without an error event.
		if ctx.Err() != nil {
			e.logger.InfoTag("ASR", "transcription cancelled")
			e.machine.ToIdle()
			return
		}
		e.logger.ErrorTag("ASR", "transcription failed: %v", err)
		e.bus.PublishNotice(eventbus.NoticeEventData{
			CycleID: e.currentCycleID(),
			Message: transcriptionApology,
		})
		e.machine.ToIdle()
		return
	}
	// Empty transcription means no speech: no action, no reply.
	if result.Text == "" {
		e.logger.InfoTag("ASR", "empty transcription, cycle ends")
		e.machine.ToIdle()
		return
	}

	e.logger.InfoTag("ASR", "recognized: %s", result.Text)
	e.bus.PublishTranscript(eventbus.TranscriptEventData{CycleID: e.currentCycleID(), Text: result.Text})

	e.respond(ctx, result.Text)
}

// respond routes the text locally first; only unmatched text goes to
// the generator. The machine is in Processing when this is called.
func (e *Engine) respond(ctx context.Context, text string) {
	if action := e.router.Route(text); action != nil {
		e.dispatchAction(ctx, action)
		return
	}

	e.history.Add(llm.RoleUser, text)

	reply, err := e.deps.Generator.Generate(ctx, e.history.Messages())
	usedFallback := false
	if err != nil {
		if ctx.Err() != nil {
			e.machine.ToIdle()
			return
		}
		e.logger.WarnTag("LLM", "generation failed, using local fallback: %v", err)
		reply = e.deps.Fallback.Respond(text)
		usedFallback = true
	}

	e.history.Add(llm.RoleAssistant, reply)
	e.bus.PublishReply(eventbus.ReplyEventData{
		CycleID:  e.currentCycleID(),
		Text:     reply,
		Fallback: usedFallback,
	})

	e.speak(ctx, reply)
}

// dispatchAction applies per-action adjustments, hands the action to
// the dispatcher exactly once, then voices a short confirmation.
func (e *Engine) dispatchAction(ctx context.Context, action intent.Action) {
	if timer, ok := action.(intent.SetTimer); ok {
		minutes, clamped := intent.ClampMinutes(timer.Minutes)
		if clamped {
			notice := fmt.Sprintf("Der Timer wurde auf %d Minuten begrenzt.", intent.MaxMinutes)
			e.logger.InfoTag("INTENT", "timer request %d clamped to %d", timer.Minutes, minutes)
			e.bus.PublishNotice(eventbus.NoticeEventData{CycleID: e.currentCycleID(), Message: notice})
		}
		action = intent.SetTimer{Minutes: minutes}
	}
	if _, ok := action.(intent.ClearHistory); ok {
		e.history.Clear()
	}

	kind, detail, minutes := describeAction(action)
	e.logger.InfoTag("INTENT", "dispatching %s", kind)
	e.bus.PublishAction(eventbus.ActionEventData{
		CycleID: e.currentCycleID(),
		Kind:    kind,
		Detail:  detail,
		Minutes: minutes,
	})
	if e.deps.Dispatch != nil {
		e.deps.Dispatch(action)
	}

	e.speak(ctx, confirmationText(action))
}

// speak synthesizes and plays the reply. Any failure lands in Idle so
// the next cycle can start cleanly.
func (e *Engine) speak(ctx context.Context, text string) {
	clip, err := e.deps.Synthesizer.Synthesize(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			e.machine.ToIdle()
			return
		}
		e.failCycle("synthesize", err)
		return
	}
	if ctx.Err() != nil {
		e.machine.ToIdle()
		return
	}

	if err := e.machine.BeginSpeaking(); err != nil {
		e.machine.ToIdle()
		return
	}

	if err := e.deps.Player.Play(ctx, clip); err != nil && ctx.Err() == nil {
		e.logger.ErrorTag("PLAY", "playback failed: %v", err)
		e.bus.PublishError(eventbus.ErrorEventData{
			CycleID: e.currentCycleID(),
			Stage:   "playback",
			Message: err.Error(),
		})
	}
	e.machine.ToIdle()
}

func (e *Engine) failCycle(stage string, err error) {
	e.logger.ErrorTag("STATE", "%s failed: %v", stage, err)
	e.bus.PublishError(eventbus.ErrorEventData{
		CycleID: e.currentCycleID(),
		Stage:   stage,
		Message: err.Error(),
	})
	e.machine.ToIdle()
}

func describeAction(action intent.Action) (kind, detail string, minutes int) {
	switch a := action.(type) {
	case intent.CreateTask:
		return "create_task", a.Title, 0
	case intent.SetTimer:
		return "set_timer", "", a.Minutes
	case intent.ClearHistory:
		return "clear_history", "", 0
	case intent.OpenCalendar:
		return "open_calendar", a.EventTitle, 0
	case intent.PlayMedia:
		return "play_media", a.Playlist, 0
	case intent.StartVoiceInput:
		return "start_voice_input", "", 0
	default:
		return "unknown", "", 0
	}
}

func confirmationText(action intent.Action) string {
	switch a := action.(type) {
	case intent.CreateTask:
		return fmt.Sprintf("Aufgabe %q wurde erstellt.", a.Title)
	case intent.SetTimer:
		return fmt.Sprintf("Fokus-Timer auf %d Minuten gestellt.", a.Minutes)
	case intent.ClearHistory:
		return "Der Chatverlauf wurde gelöscht."
	case intent.OpenCalendar:
		return "Ich öffne den Kalender."
	case intent.PlayMedia:
		return "Ich starte die Wiedergabe."
	case intent.StartVoiceInput:
		return "Ich höre zu."
	default:
		return "Erledigt."
	}
}
