// Package bootstrap wires the voice pipeline together and owns the
// service lifecycle: config, logging, adapters, engine, transport.
package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"taskpilot-voice/internal/app/interaction"
	"taskpilot-voice/internal/domain/asr"
	"taskpilot-voice/internal/domain/audio"
	"taskpilot-voice/internal/domain/eventbus"
	"taskpilot-voice/internal/domain/intent"
	"taskpilot-voice/internal/domain/llm"
	"taskpilot-voice/internal/domain/playback"
	"taskpilot-voice/internal/domain/tts"
	"taskpilot-voice/internal/platform/config"
	"taskpilot-voice/internal/platform/errors"
	"taskpilot-voice/internal/platform/logging"
	transporthttp "taskpilot-voice/internal/transport/http"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      errors.Kind
	Execute   stepFn
}

type appState struct {
	config     *config.Config
	configPath string
	logger     *logging.Logger
	bus        *eventbus.Bus
	engine     *interaction.Engine
	server     *transporthttp.Server
}

// Run starts the whole service lifecycle: init graph, transport, and
// graceful shutdown on SIGINT/SIGTERM.
func Run(ctx context.Context) error {
	state := &appState{}

	steps := InitGraph()
	if err := executeInitSteps(ctx, steps, state); err != nil {
		return err
	}

	logger := state.logger
	if state.config == nil || logger == nil {
		return errors.New(errors.KindBootstrap, "bootstrap state validation", "config/logger not initialised")
	}
	if state.engine == nil {
		return errors.New(errors.KindBootstrap, "bootstrap state validation", "engine not initialised")
	}

	logBootstrapGraph(steps, logger)

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	if state.server != nil {
		server := state.server
		group.Go(func() error {
			return server.Run(groupCtx)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		state.engine.Stop()
		return nil
	})

	if err := waitForShutdown(signalCtx, cancel, logger, group); err != nil {
		return err
	}

	logger.InfoTag("BOOT", "service stopped cleanly")
	logger.Close()
	return nil
}

func logBootstrapGraph(steps []initStep, logger *logging.Logger) {
	logger.InfoTag("BOOT", "initialisation order")
	for _, step := range steps {
		logger.InfoTag("BOOT", "  %s", step.Title)
	}
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	if state == nil {
		return errors.New(errors.KindBootstrap, "execute init steps", "nil bootstrap state")
	}

	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return errors.New(errors.KindBootstrap, step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep))
			}
		}
		if step.Execute == nil {
			return errors.New(errors.KindBootstrap, step.ID, "missing execute function")
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *errors.Error
			if stderrors.As(err, &typed) {
				return err
			}

			kind := step.Kind
			if kind == "" {
				kind = errors.KindBootstrap
			}
			return errors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    errors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load"},
			Kind:      errors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "eventbus:init",
			Title:     "Initialise event bus",
			DependsOn: []string{"logging:init-provider"},
			Kind:      errors.KindBootstrap,
			Execute:   initEventBusStep,
		},
		{
			ID:        "engine:init",
			Title:     "Initialise interaction engine",
			DependsOn: []string{"logging:init-provider", "eventbus:init"},
			Kind:      errors.KindBootstrap,
			Execute:   initEngineStep,
		},
		{
			ID:        "http:init-server",
			Title:     "Initialise control api",
			DependsOn: []string{"engine:init"},
			Kind:      errors.KindTransport,
			Execute:   initServerStep,
		},
	}
}

func loadConfigStep(_ context.Context, state *appState) error {
	result, err := config.NewLoader().Load()
	if err != nil {
		return errors.Wrap(errors.KindConfig, "config:load", "failed to load configuration", err)
	}
	state.config = result.Config
	state.configPath = result.Path
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	if state.config == nil {
		return errors.New(errors.KindBootstrap, "logging:init-provider", "config not loaded")
	}

	logger, err := logging.New(logging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return errors.Wrap(errors.KindBootstrap, "logging:init-provider", "failed to initialize logging provider", err)
	}

	state.logger = logger
	logging.DefaultLogger = logger
	logger.InfoTag("BOOT", "logging ready [%s] config from %s", state.config.Log.Level, state.configPath)
	return nil
}

func initEventBusStep(_ context.Context, state *appState) error {
	state.bus = eventbus.New()
	return nil
}

func initEngineStep(_ context.Context, state *appState) error {
	if state.config == nil || state.logger == nil || state.bus == nil {
		return errors.New(errors.KindBootstrap, "engine:init", "missing config/logger/bus")
	}

	cfg := state.config
	logger := state.logger

	deps := interaction.Deps{
		NewSource: func() audio.FrameSource {
			return audio.NewMicrophoneSource(cfg.Audio.SampleRate, cfg.Audio.FramesPerBlock)
		},
		Transcriber: asr.NewOpenAITranscriber(cfg.ASR),
		Generator:   llm.NewOpenAIGenerator(cfg.LLM),
		Fallback:    llm.NewFallbackResponder(),
		Synthesizer: tts.NewEdgeSynthesizer(cfg.TTS),
		Player:      playback.NewSpeakerPlayer(),
		Dispatch: func(a intent.Action) {
			logger.DebugTag("INTENT", "action delivered: %T", a)
		},
	}

	state.engine = interaction.NewEngine(cfg, logger, state.bus, deps)
	logger.InfoTag("BOOT", "interaction engine ready")
	return nil
}

func initServerStep(_ context.Context, state *appState) error {
	if !state.config.Web.Enabled {
		state.logger.InfoTag("BOOT", "control api disabled by config")
		return nil
	}

	server, err := transporthttp.NewServer(state.config, state.logger, state.bus, state.engine)
	if err != nil {
		return errors.Wrap(errors.KindTransport, "http:init-server", "failed to create control api", err)
	}
	state.server = server
	return nil
}

func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *logging.Logger,
	g *errgroup.Group,
) error {
	<-ctx.Done()
	logger.InfoTag("BOOT", "shutdown signal received, cleaning up")

	cancel()

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("BOOT", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("BOOT", "all services stopped")
	case <-time.After(15 * time.Second):
		logger.ErrorTag("BOOT", "shutdown timed out, forcing exit")
		return errors.New(errors.KindBootstrap, "shutdown", "shutdown timed out")
	}
	return nil
}
