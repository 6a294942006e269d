package bridge

import "fmt"

// ErrorKind classifies a boundary failure. Every fallible operation returns
// a tagged *Error internally; only the FFI shims collapse it into the
// sentinel/absent convention.
type ErrorKind int

const (
	// KindInvalidPath: the model file is missing or unreadable.
	KindInvalidPath ErrorKind = iota + 1
	// KindModelTooSmall: the file fails the minimum-size heuristic.
	KindModelTooSmall
	// KindInvalidHandle: the handle is unknown, destroyed, or addresses a
	// model of the wrong family.
	KindInvalidHandle
	// KindLoadFailure: an unexpected fault during load.
	KindLoadFailure
	// KindInferenceFailure: an unexpected fault during generation or
	// transcription.
	KindInferenceFailure
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidPath:
		return "invalid_path"
	case KindModelTooSmall:
		return "model_too_small"
	case KindInvalidHandle:
		return "invalid_handle"
	case KindLoadFailure:
		return "load_failure"
	case KindInferenceFailure:
		return "inference_failure"
	default:
		return "unknown"
	}
}

// Error is the bridge's tagged failure value.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("bridge: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("bridge: %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
