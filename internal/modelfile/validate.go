// Package modelfile performs shallow plausibility checks on candidate model
// artefacts. Deep validation belongs to the real model loader; this package
// only guards against missing files and truncated downloads.
package modelfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// DefaultMinBytes is the smallest file accepted as a plausible model.
const DefaultMinBytes = 1 << 20

var (
	// ErrUnreadable indicates the file could not be opened for binary read.
	ErrUnreadable = errors.New("modelfile: file unreadable")
	// ErrTooSmall indicates the file is below the minimum plausible size.
	ErrTooSmall = errors.New("modelfile: file too small")
)

// Validator checks candidate model paths before a model is considered
// loadable.
type Validator struct {
	log *slog.Logger

	// MinBytes overrides DefaultMinBytes when > 0.
	MinBytes int64
}

// NewValidator constructs a Validator using the provided logger.
func NewValidator(logger *slog.Logger, minBytes int64) Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return Validator{
		log:      logger.With("component", "modelfile.Validator"),
		MinBytes: minBytes,
	}
}

// Check opens the file for binary read and verifies its size. The returned
// error wraps ErrUnreadable or ErrTooSmall so callers can map it onto their
// own taxonomy.
func (v Validator) Check(path string) error {
	min := v.MinBytes
	if min <= 0 {
		min = DefaultMinBytes
	}

	f, err := os.Open(path)
	if err != nil {
		v.log.Error("cannot open model file", "path", path, "error", err)
		return fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		v.log.Error("cannot stat model file", "path", path, "error", err)
		return fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	if info.Size() < min {
		v.log.Error("model file too small", "path", path, "bytes", info.Size(), "min_bytes", min)
		return fmt.Errorf("%w: %s: %d bytes", ErrTooSmall, path, info.Size())
	}

	v.log.Info("model file validated", "path", path, "bytes", info.Size())
	return nil
}

// Validate reports whether the path points at a plausible model artefact. It
// fails closed and never panics.
func (v Validator) Validate(path string) bool {
	return v.Check(path) == nil
}
