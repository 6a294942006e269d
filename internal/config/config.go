package config

import "fmt"

const (
	DefaultLogLevel = "info"

	// DefaultMinModelBytes is the smallest file accepted as a plausible model
	// artefact.
	DefaultMinModelBytes = 1 << 20

	DefaultContextLength = 2048
	DefaultTemperature   = 0.7
	DefaultTopP          = 0.9

	DefaultThreads       = 4
	DefaultContextWindow = 3000
)

// GenerationDefaults hold the decoding parameters applied when the caller
// passes zero values at initialisation time.
type GenerationDefaults struct {
	ContextLength int     `yaml:"context_length" json:"context_length"`
	Temperature   float32 `yaml:"temperature" json:"temperature"`
	TopP          float32 `yaml:"top_p" json:"top_p"`
}

// TranscriptionDefaults hold the decoding hints applied when the caller
// passes zero values at initialisation time. The heuristic backend stores but
// does not act on them.
type TranscriptionDefaults struct {
	Threads       int `yaml:"threads" json:"threads"`
	ContextWindow int `yaml:"context_window" json:"context_window"`
}

// Config captures bootstrap configuration extracted from environment
// variables, an injected JSON payload (`AMBIENT_BRIDGE_CONFIG`), or a YAML
// file (`AMBIENT_BRIDGE_CONFIG_FILE`).
type Config struct {
	LogLevel      string                `yaml:"log_level"`
	MinModelBytes int64                 `yaml:"min_model_bytes"`
	Generation    GenerationDefaults    `yaml:"generation"`
	Transcription TranscriptionDefaults `yaml:"transcription"`
}

// Validate applies defaults, checks required fields, and rejects
// out-of-range values.
func (c *Config) Validate() error {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.MinModelBytes == 0 {
		c.MinModelBytes = DefaultMinModelBytes
	}
	if c.MinModelBytes < 0 {
		return fmt.Errorf("config: min_model_bytes must be >= 0, got %d", c.MinModelBytes)
	}
	if c.Generation.ContextLength == 0 {
		c.Generation.ContextLength = DefaultContextLength
	}
	if c.Generation.ContextLength < 0 {
		return fmt.Errorf("config: generation context_length must be >= 0, got %d", c.Generation.ContextLength)
	}
	if c.Generation.Temperature == 0 {
		c.Generation.Temperature = DefaultTemperature
	}
	if c.Generation.Temperature < 0 {
		return fmt.Errorf("config: generation temperature must be >= 0, got %v", c.Generation.Temperature)
	}
	if c.Generation.TopP == 0 {
		c.Generation.TopP = DefaultTopP
	}
	if c.Generation.TopP < 0 || c.Generation.TopP > 1 {
		return fmt.Errorf("config: generation top_p must be in [0, 1], got %v", c.Generation.TopP)
	}
	if c.Transcription.Threads == 0 {
		c.Transcription.Threads = DefaultThreads
	}
	if c.Transcription.Threads < 0 {
		return fmt.Errorf("config: transcription threads must be >= 0, got %d", c.Transcription.Threads)
	}
	if c.Transcription.ContextWindow == 0 {
		c.Transcription.ContextWindow = DefaultContextWindow
	}
	if c.Transcription.ContextWindow < 0 {
		return fmt.Errorf("config: transcription context_window must be >= 0, got %d", c.Transcription.ContextWindow)
	}
	return nil
}
