// Package registry owns the set of live model instances and the opaque
// handles that address them across the boundary.
package registry

import (
	"log/slog"
	"sync"
)

// Kind identifies the model family an instance belongs to.
type Kind int

const (
	KindGeneration Kind = iota + 1
	KindTranscription
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindGeneration:
		return "generation"
	case KindTranscription:
		return "transcription"
	default:
		return "unknown"
	}
}

// Handle is an opaque identifier referencing a live instance. Zero is never
// issued and doubles as the boundary's failure sentinel.
type Handle int64

// GenerationParams capture the decoding configuration of a generation model.
type GenerationParams struct {
	ContextLength int
	Temperature   float32
	TopP          float32
}

// TranscriptionParams capture the decoding hints of a transcription model.
// They are stored for forward compatibility with a real backend.
type TranscriptionParams struct {
	Threads       int
	ContextWindow int
}

// Instance is the in-memory record of a loaded model. It is exclusively
// owned by the Registry; callers obtain references via Lookup and must not
// retain them across Destroy.
type Instance struct {
	Path          string
	Kind          Kind
	Generation    GenerationParams
	Transcription TranscriptionParams
	Loaded        bool

	inferMu sync.Mutex
}

// LockInference serialises inference calls on this instance. Calls on
// distinct instances never contend.
func (i *Instance) LockInference() { i.inferMu.Lock() }

// UnlockInference releases the per-instance inference lock.
func (i *Instance) UnlockInference() { i.inferMu.Unlock() }

// Registry is the single source of truth for instance liveness. Handles are
// allocated from a monotonically increasing counter and never reused, so a
// destroyed handle can never alias a later instance.
type Registry struct {
	log *slog.Logger

	mu        sync.Mutex
	next      Handle
	instances map[Handle]*Instance
}

// New constructs an empty Registry using the provided logger.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		log:       logger.With("component", "registry.Registry"),
		next:      1,
		instances: make(map[Handle]*Instance),
	}
}

// Create stores the instance and returns its new handle.
func (r *Registry) Create(inst *Instance) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := r.next
	r.next++
	r.instances[handle] = inst

	r.log.Debug("instance created",
		"handle", int64(handle),
		"kind", inst.Kind.String(),
		"path", inst.Path,
	)
	return handle
}

// Lookup returns the instance addressed by handle. The reference is valid
// only while no concurrent Destroy targets the same handle.
func (r *Registry) Lookup(handle Handle) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inst, ok := r.instances[handle]
	return inst, ok
}

// Destroy removes and releases the instance. It reports false when the
// handle is unknown or already destroyed; double-destroy is not fatal.
func (r *Registry) Destroy(handle Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	inst, ok := r.instances[handle]
	if !ok {
		r.log.Warn("destroy of unknown handle", "handle", int64(handle))
		return false
	}
	delete(r.instances, handle)

	r.log.Debug("instance destroyed",
		"handle", int64(handle),
		"kind", inst.Kind.String(),
	)
	return true
}

// Len reports the number of live instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Close destroys every live instance and returns how many were released.
// Used at process teardown.
func (r *Registry) Close() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	released := len(r.instances)
	r.instances = make(map[Handle]*Instance)
	if released > 0 {
		r.log.Info("registry closed", "released", released)
	}
	return released
}
