// Package bridge composes the handle registry with the generation and
// transcription backends and exposes the boundary operations. All calls are
// synchronous and run on the caller's thread; the bridge never retains
// references to caller-owned buffers past a call's return.
package bridge

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rs/xid"

	"github.com/frozo/ambientscribe-bridge/internal/bridgeinfo"
	"github.com/frozo/ambientscribe-bridge/internal/config"
	"github.com/frozo/ambientscribe-bridge/internal/dsp"
	"github.com/frozo/ambientscribe-bridge/internal/generate"
	"github.com/frozo/ambientscribe-bridge/internal/modelfile"
	"github.com/frozo/ambientscribe-bridge/internal/registry"
	"github.com/frozo/ambientscribe-bridge/internal/telemetry"
	"github.com/frozo/ambientscribe-bridge/internal/transcribe"
)

// Bridge owns the handle table and backends for one bridge context.
// Multiple independent bridges may coexist within a process.
type Bridge struct {
	cfg       config.Config
	log       *slog.Logger
	validator modelfile.Validator
	reg       *registry.Registry
	genB      generate.Backend
	sttB      transcribe.Backend
	metrics   *telemetry.Recorder
}

// New constructs a Bridge with the default heuristic backends.
func New(cfg config.Config, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return NewWithBackends(cfg, logger,
		generate.NewKeywordBackend(logger),
		transcribe.NewHeuristicBackend(logger),
	)
}

// NewWithBackends constructs a Bridge around explicit backends, so a real
// model implementation can replace the heuristics without touching the
// registry, validator, or callers.
func NewWithBackends(cfg config.Config, logger *slog.Logger, genB generate.Backend, sttB transcribe.Backend) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	if genB == nil || sttB == nil {
		panic("bridge: backends must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid bridge configuration, using defaults", "error", err)
		cfg = config.Config{}
		_ = cfg.Validate()
	}
	return &Bridge{
		cfg: cfg,
		log: logger.With(
			"component", "bridge.Bridge",
			"bridge", bridgeinfo.Info.Slug,
		),
		validator: modelfile.NewValidator(logger, cfg.MinModelBytes),
		reg:       registry.New(logger),
		genB:      genB,
		sttB:      sttB,
		metrics:   telemetry.NewRecorder(logger),
	}
}

// Metrics exposes the bridge's telemetry recorder.
func (b *Bridge) Metrics() *telemetry.Recorder { return b.metrics }

// InitializeGenerationModel validates and loads a text-generation model.
func (b *Bridge) InitializeGenerationModel(path string, contextLength int, temperature, topP float32) (registry.Handle, error) {
	const op = "initialize_generation_model"
	call := b.startCall(op)

	if err := b.checkModelFile(op, path); err != nil {
		call.Finish(err)
		return 0, err
	}

	params := registry.GenerationParams{
		ContextLength: contextLength,
		Temperature:   temperature,
		TopP:          topP,
	}
	if params.ContextLength <= 0 {
		params.ContextLength = b.cfg.Generation.ContextLength
	}
	if params.Temperature <= 0 {
		params.Temperature = b.cfg.Generation.Temperature
	}
	if params.TopP <= 0 || params.TopP > 1 {
		params.TopP = b.cfg.Generation.TopP
	}

	handle := b.reg.Create(&registry.Instance{
		Path:       path,
		Kind:       registry.KindGeneration,
		Generation: params,
		Loaded:     true,
	})
	b.metrics.RecordLoad()

	b.log.Info("generation model initialised",
		"handle", int64(handle),
		"path", path,
		"context_length", params.ContextLength,
		"temperature", params.Temperature,
		"top_p", params.TopP,
	)
	call.Finish(nil)
	return handle, nil
}

// Generate runs the generation backend for the prompt and returns the
// serialised note. Concurrent calls on the same handle execute strictly
// one-after-another; calls on distinct handles never block each other.
func (b *Bridge) Generate(handle registry.Handle, prompt string) (string, error) {
	const op = "generate"
	call := b.startCall(op)

	inst, err := b.resolve(op, handle, registry.KindGeneration)
	if err != nil {
		call.Finish(err)
		return "", err
	}

	inst.LockInference()
	defer inst.UnlockInference()

	note, err := b.genB.Generate(prompt)
	if err != nil {
		wrapped := newError(KindInferenceFailure, op, err)
		call.Finish(wrapped)
		return "", wrapped
	}

	encoded, err := note.Encode()
	if err != nil {
		wrapped := newError(KindInferenceFailure, op, fmt.Errorf("encode note: %w", err))
		call.Finish(wrapped)
		return "", wrapped
	}

	b.metrics.RecordGeneration()
	call.Finish(nil)
	return encoded, nil
}

// ReleaseGenerationModel destroys the instance addressed by handle. It
// reports false for unknown, already-destroyed, or wrong-family handles.
func (b *Bridge) ReleaseGenerationModel(handle registry.Handle) bool {
	return b.release("release_generation_model", handle, registry.KindGeneration)
}

// InitializeTranscriptionModel validates and loads a speech-to-text model.
// threadCount and contextSize are stored as hints for a real backend.
func (b *Bridge) InitializeTranscriptionModel(path string, threadCount, contextSize int) (registry.Handle, error) {
	const op = "initialize_transcription_model"
	call := b.startCall(op)

	if err := b.checkModelFile(op, path); err != nil {
		call.Finish(err)
		return 0, err
	}

	params := registry.TranscriptionParams{
		Threads:       threadCount,
		ContextWindow: contextSize,
	}
	if params.Threads <= 0 {
		params.Threads = b.cfg.Transcription.Threads
	}
	if params.ContextWindow <= 0 {
		params.ContextWindow = b.cfg.Transcription.ContextWindow
	}

	handle := b.reg.Create(&registry.Instance{
		Path:          path,
		Kind:          registry.KindTranscription,
		Transcription: params,
		Loaded:        true,
	})
	b.metrics.RecordLoad()

	b.log.Info("transcription model initialised",
		"handle", int64(handle),
		"path", path,
		"threads", params.Threads,
		"context_window", params.ContextWindow,
	)
	call.Finish(nil)
	return handle, nil
}

// Transcribe extracts features from the audio buffer and runs the
// transcription backend. The buffer is caller-owned and only read for the
// duration of the call.
func (b *Bridge) Transcribe(handle registry.Handle, audio []float32, threadCount, contextSize int) (transcribe.Result, error) {
	const op = "transcribe"
	call := b.startCall(op)

	inst, err := b.resolve(op, handle, registry.KindTranscription)
	if err != nil {
		call.Finish(err)
		return transcribe.Result{}, err
	}

	if audio == nil {
		wrapped := newError(KindInferenceFailure, op, errors.New("nil audio buffer"))
		call.Finish(wrapped)
		return transcribe.Result{}, wrapped
	}

	// Call-level hints are stored for forward compatibility; the heuristic
	// does not act on them.
	if threadCount > 0 || contextSize > 0 {
		inst.LockInference()
		if threadCount > 0 {
			inst.Transcription.Threads = threadCount
		}
		if contextSize > 0 {
			inst.Transcription.ContextWindow = contextSize
		}
		inst.UnlockInference()
	}

	features := dsp.Extract(audio)
	result := b.sttB.Transcribe(features, len(audio))

	b.metrics.RecordTranscription()
	b.log.Debug("transcription completed",
		"handle", int64(handle),
		"samples", len(audio),
		"rms", features.RMS,
		"zero_crossings", features.ZeroCrossings,
		"text_len", len(result.Text),
	)
	call.Finish(nil)
	return result, nil
}

// ReleaseTranscriptionModel destroys the instance addressed by handle.
func (b *Bridge) ReleaseTranscriptionModel(handle registry.Handle) bool {
	return b.release("release_transcription_model", handle, registry.KindTranscription)
}

// Close destroys every live instance exactly once and returns how many were
// released. Safe to call repeatedly.
func (b *Bridge) Close() int {
	released := b.reg.Close()
	for i := 0; i < released; i++ {
		b.metrics.RecordRelease()
	}
	if released > 0 {
		b.log.Info("bridge closed", "released", released)
	}
	return released
}

func (b *Bridge) checkModelFile(op, path string) error {
	err := b.validator.Check(path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, modelfile.ErrTooSmall):
		return newError(KindModelTooSmall, op, err)
	default:
		return newError(KindInvalidPath, op, err)
	}
}

func (b *Bridge) resolve(op string, handle registry.Handle, kind registry.Kind) (*registry.Instance, error) {
	inst, ok := b.reg.Lookup(handle)
	if !ok {
		return nil, newError(KindInvalidHandle, op, fmt.Errorf("handle %d not found", int64(handle)))
	}
	if inst.Kind != kind || !inst.Loaded {
		return nil, newError(KindInvalidHandle, op,
			fmt.Errorf("handle %d is %s, want %s", int64(handle), inst.Kind, kind))
	}
	return inst, nil
}

func (b *Bridge) release(op string, handle registry.Handle, kind registry.Kind) bool {
	call := b.startCall(op)

	inst, ok := b.reg.Lookup(handle)
	if !ok || inst.Kind != kind {
		err := newError(KindInvalidHandle, op, fmt.Errorf("handle %d not found", int64(handle)))
		call.Finish(err)
		return false
	}
	if !b.reg.Destroy(handle) {
		err := newError(KindInvalidHandle, op, fmt.Errorf("handle %d already destroyed", int64(handle)))
		call.Finish(err)
		return false
	}

	b.metrics.RecordRelease()
	call.Finish(nil)
	return true
}

func (b *Bridge) startCall(op string) *telemetry.CallMetrics {
	callID := xid.New().String()
	b.log.Debug("boundary call", "metadata", bridgeinfo.DiagnosticMetadata(op, callID))
	return b.metrics.StartCall(op, callID)
}
