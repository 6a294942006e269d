// Package transcribe maps audio features to transcription results. The
// heuristic backend stands in for a real speech-to-text model and hides
// behind the same Backend contract, so a real implementation can be
// substituted without changing callers.
package transcribe

import "github.com/frozo/ambientscribe-bridge/internal/dsp"

// WordAlignment carries per-word timing and confidence.
type WordAlignment struct {
	Word       string  `json:"word"`
	StartTime  float64 `json:"startTime"`
	EndTime    float64 `json:"endTime"`
	Confidence float64 `json:"confidence"`
}

// Result represents a completed transcription. LogProbs holds one entry per
// token-like unit; its length may differ from the word count.
type Result struct {
	Text       string          `json:"text"`
	LogProbs   []float32       `json:"logProbabilities"`
	Alignments []WordAlignment `json:"alignments"`
}

// Backend produces a transcription from extracted features. Implementations
// must be deterministic: identical features and buffer length always yield
// an identical result.
type Backend interface {
	Transcribe(features dsp.Features, bufferLen int) Result
}
