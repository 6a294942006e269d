package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader loads configuration from environment variables and an optional YAML
// file. Tests can override Lookup and ReadFile to inject deterministic
// fixtures.
type Loader struct {
	Lookup   func(string) (string, bool)
	ReadFile func(string) ([]byte, error)
}

// Load retrieves the bridge configuration, applying sources in increasing
// precedence: YAML file, JSON payload, individual environment overrides.
func (l Loader) Load() (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}
	if l.ReadFile == nil {
		l.ReadFile = os.ReadFile
	}

	var cfg Config

	if path, ok := l.Lookup("AMBIENT_BRIDGE_CONFIG_FILE"); ok && strings.TrimSpace(path) != "" {
		if err := l.applyYAMLFile(strings.TrimSpace(path), &cfg); err != nil {
			return Config{}, err
		}
	}

	if raw, ok := l.Lookup("AMBIENT_BRIDGE_CONFIG"); ok && strings.TrimSpace(raw) != "" {
		if err := applyJSON(raw, &cfg); err != nil {
			return Config{}, err
		}
	}

	overrideString(l.Lookup, "AMBIENT_BRIDGE_LOG_LEVEL", &cfg.LogLevel)
	overrideInt64(l.Lookup, "AMBIENT_BRIDGE_MIN_MODEL_BYTES", &cfg.MinModelBytes)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l Loader) applyYAMLFile(path string, cfg *Config) error {
	raw, err := l.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func applyJSON(raw string, cfg *Config) error {
	type jsonConfig struct {
		LogLevel      string                 `json:"log_level"`
		MinModelBytes *int64                 `json:"min_model_bytes"`
		Generation    *GenerationDefaults    `json:"generation"`
		Transcription *TranscriptionDefaults `json:"transcription"`
	}
	var payload jsonConfig
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fmt.Errorf("config: decode AMBIENT_BRIDGE_CONFIG: %w", err)
	}
	if payload.LogLevel != "" {
		cfg.LogLevel = payload.LogLevel
	}
	if payload.MinModelBytes != nil {
		cfg.MinModelBytes = *payload.MinModelBytes
	}
	if payload.Generation != nil {
		cfg.Generation = *payload.Generation
	}
	if payload.Transcription != nil {
		cfg.Transcription = *payload.Transcription
	}
	return nil
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if lookup == nil || target == nil {
		return
	}
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func overrideInt64(lookup func(string) (string, bool), key string, target *int64) {
	if lookup == nil || target == nil {
		return
	}
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return
	}
	*target = parsed
}
