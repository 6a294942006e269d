// Package telemetry tracks bridge-level counters that can be surfaced to the
// managed-side diagnostics pipeline.
package telemetry

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Recorder tracks cumulative bridge telemetry.
type Recorder struct {
	log *slog.Logger

	totalLoads          atomic.Uint64
	totalReleases       atomic.Uint64
	totalGenerations    atomic.Uint64
	totalTranscriptions atomic.Uint64
	totalFailures       atomic.Uint64
	activeModels        atomic.Int64
}

// Snapshot captures cumulative metrics recorded so far.
type Snapshot struct {
	TotalLoads          uint64
	TotalReleases       uint64
	TotalGenerations    uint64
	TotalTranscriptions uint64
	TotalFailures       uint64
	ActiveModels        int64
}

// NewRecorder constructs a Recorder using the provided logger.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		log: logger.With("component", "telemetry.Recorder"),
	}
}

// Snapshot returns an immutable view of the recorder totals.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{
		TotalLoads:          r.totalLoads.Load(),
		TotalReleases:       r.totalReleases.Load(),
		TotalGenerations:    r.totalGenerations.Load(),
		TotalTranscriptions: r.totalTranscriptions.Load(),
		TotalFailures:       r.totalFailures.Load(),
		ActiveModels:        r.activeModels.Load(),
	}
}

// RecordLoad updates counters for a successful model load.
func (r *Recorder) RecordLoad() {
	if r == nil {
		return
	}
	r.totalLoads.Add(1)
	r.activeModels.Add(1)
}

// RecordRelease updates counters for a released model.
func (r *Recorder) RecordRelease() {
	if r == nil {
		return
	}
	r.totalReleases.Add(1)
	r.activeModels.Add(-1)
}

// RecordGeneration increments the generation counter.
func (r *Recorder) RecordGeneration() {
	if r == nil {
		return
	}
	r.totalGenerations.Add(1)
}

// RecordTranscription increments the transcription counter.
func (r *Recorder) RecordTranscription() {
	if r == nil {
		return
	}
	r.totalTranscriptions.Add(1)
}

// CallMetrics accumulates statistics for a single boundary call.
type CallMetrics struct {
	recorder *Recorder
	log      *slog.Logger

	operation string
	callID    string

	started time.Time
	closed  atomic.Bool
}

// StartCall initialises a CallMetrics instance bound to the recorder.
func (r *Recorder) StartCall(operation, callID string) *CallMetrics {
	if r == nil {
		return nil
	}
	return &CallMetrics{
		recorder: r,
		log: r.log.With(
			"operation", operation,
			"call_id", callID,
		),
		operation: operation,
		callID:    callID,
		started:   time.Now(),
	}
}

// Finish logs a call summary and updates failure counters. It is safe to
// call more than once; only the first call takes effect.
func (c *CallMetrics) Finish(err error) {
	if c == nil {
		return
	}
	if !c.closed.CompareAndSwap(false, true) {
		return
	}

	duration := time.Since(c.started)
	if err != nil {
		c.recorder.totalFailures.Add(1)
		c.log.Warn("call failed",
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return
	}
	c.log.Debug("call completed", "duration_ms", duration.Milliseconds())
}
