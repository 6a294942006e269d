package modelfile

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testValidator(minBytes int64) Validator {
	return NewValidator(slog.New(slog.NewTextHandler(io.Discard, nil)), minBytes)
}

func TestCheckMissingFile(t *testing.T) {
	v := testValidator(0)
	err := v.Check(filepath.Join(t.TempDir(), "missing.gguf"))
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if v.Validate(filepath.Join(t.TempDir(), "missing.gguf")) {
		t.Fatalf("expected Validate to fail closed")
	}
}

func TestCheckTooSmall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.gguf")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	v := testValidator(0)
	err := v.Check(path)
	if !errors.Is(err, ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall, got %v", err)
	}
}

func TestCheckAcceptsPlausibleModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gguf")
	if err := os.WriteFile(path, bytes.Repeat([]byte{0xAB}, DefaultMinBytes), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	v := testValidator(0)
	if err := v.Check(path); err != nil {
		t.Fatalf("Check() returned error: %v", err)
	}
	if !v.Validate(path) {
		t.Fatalf("expected Validate to accept %s", path)
	}
}

func TestCheckHonoursMinBytesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gguf")
	if err := os.WriteFile(path, []byte("0123456789abcdef"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	if err := testValidator(16).Check(path); err != nil {
		t.Fatalf("expected 16-byte floor to accept file, got %v", err)
	}
	if err := testValidator(17).Check(path); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall with 17-byte floor, got %v", err)
	}
}
