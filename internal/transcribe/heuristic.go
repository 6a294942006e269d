package transcribe

import (
	"log/slog"

	"github.com/frozo/ambientscribe-bridge/internal/dsp"
)

// NoSpeechText is the fixed placeholder returned when the gate declares the
// buffer silent.
const NoSpeechText = "[BLANK_AUDIO]"

// noSpeechLogProbs is heavily negative so downstream consumers treat the
// placeholder as near-zero confidence.
var noSpeechLogProbs = []float32{-10, -10, -10}

// tier is one bucket in the ordered, first-match-wins classification. A
// feature set matches when speech energy and spectral proxy both meet the
// tier's floors; the last tier uses zero floors and acts as the catch-all.
type tier struct {
	name        string
	minEnergy   float64 // speech energy floor, rms * 100
	minSpectral float64
	text        string
	logProbs    []float32
	alignments  []WordAlignment
}

// defaultTiers map feature strength to canned clinical dictation snippets.
// The literal transcripts are configuration data; only the ordered threshold
// walk is load-bearing.
var defaultTiers = []tier{
	{
		name:        "loud_complex",
		minEnergy:   5.0,
		minSpectral: 0.5,
		text:        "Patient reports severe throbbing headache with nausea since yesterday evening",
		logProbs:    []float32{-0.08, -0.12, -0.1, -0.2, -0.15, -0.1, -0.25, -0.18, -0.12, -0.1},
		alignments: []WordAlignment{
			{Word: "Patient", StartTime: 0.0, EndTime: 0.4, Confidence: 0.95},
			{Word: "reports", StartTime: 0.4, EndTime: 0.8, Confidence: 0.93},
			{Word: "severe", StartTime: 0.8, EndTime: 1.2, Confidence: 0.9},
			{Word: "throbbing", StartTime: 1.2, EndTime: 1.7, Confidence: 0.85},
			{Word: "headache", StartTime: 1.7, EndTime: 2.2, Confidence: 0.92},
			{Word: "with", StartTime: 2.2, EndTime: 2.4, Confidence: 0.94},
			{Word: "nausea", StartTime: 2.4, EndTime: 2.9, Confidence: 0.88},
			{Word: "since", StartTime: 2.9, EndTime: 3.2, Confidence: 0.91},
			{Word: "yesterday", StartTime: 3.2, EndTime: 3.8, Confidence: 0.9},
			{Word: "evening", StartTime: 3.8, EndTime: 4.3, Confidence: 0.89},
		},
	},
	{
		name:      "moderate",
		minEnergy: 2.0,
		text:      "Patient has mild fever and sore throat for two days",
		logProbs:  []float32{-0.1, -0.15, -0.2, -0.18, -0.12, -0.22, -0.16, -0.14, -0.2, -0.17},
		alignments: []WordAlignment{
			{Word: "Patient", StartTime: 0.0, EndTime: 0.4, Confidence: 0.9},
			{Word: "has", StartTime: 0.4, EndTime: 0.6, Confidence: 0.92},
			{Word: "mild", StartTime: 0.6, EndTime: 0.9, Confidence: 0.87},
			{Word: "fever", StartTime: 0.9, EndTime: 1.3, Confidence: 0.89},
			{Word: "and", StartTime: 1.3, EndTime: 1.5, Confidence: 0.93},
			{Word: "sore", StartTime: 1.5, EndTime: 1.8, Confidence: 0.85},
			{Word: "throat", StartTime: 1.8, EndTime: 2.2, Confidence: 0.86},
			{Word: "for", StartTime: 2.2, EndTime: 2.4, Confidence: 0.9},
			{Word: "two", StartTime: 2.4, EndTime: 2.6, Confidence: 0.88},
			{Word: "days", StartTime: 2.6, EndTime: 3.0, Confidence: 0.9},
		},
	},
	{
		name:      "quiet",
		minEnergy: 0.5,
		text:      "Patient is feeling better today",
		logProbs:  []float32{-0.2, -0.25, -0.3, -0.28, -0.22},
		alignments: []WordAlignment{
			{Word: "Patient", StartTime: 0.0, EndTime: 0.5, Confidence: 0.8},
			{Word: "is", StartTime: 0.5, EndTime: 0.7, Confidence: 0.82},
			{Word: "feeling", StartTime: 0.7, EndTime: 1.2, Confidence: 0.78},
			{Word: "better", StartTime: 1.2, EndTime: 1.7, Confidence: 0.76},
			{Word: "today", StartTime: 1.7, EndTime: 2.2, Confidence: 0.79},
		},
	},
	{
		// Catch-all: speech was gated in but barely registers.
		name:     "faint",
		text:     "Patient speaking very softly",
		logProbs: []float32{-0.4, -0.45, -0.5, -0.42},
		alignments: []WordAlignment{
			{Word: "Patient", StartTime: 0.0, EndTime: 0.6, Confidence: 0.6},
			{Word: "speaking", StartTime: 0.6, EndTime: 1.2, Confidence: 0.55},
			{Word: "very", StartTime: 1.2, EndTime: 1.5, Confidence: 0.58},
			{Word: "softly", StartTime: 1.5, EndTime: 2.1, Confidence: 0.52},
		},
	},
}

// HeuristicBackend classifies feature summaries into fixed transcripts via
// an ordered threshold walk.
type HeuristicBackend struct {
	log   *slog.Logger
	tiers []tier
}

// NewHeuristicBackend returns a Backend driven by the default tier table.
func NewHeuristicBackend(logger *slog.Logger) *HeuristicBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &HeuristicBackend{
		log:   logger.With("component", "transcribe.Heuristic"),
		tiers: defaultTiers,
	}
}

// Transcribe implements the Backend interface.
func (b *HeuristicBackend) Transcribe(features dsp.Features, bufferLen int) Result {
	hasSpeech := features.RMS > 0.01 && features.ZeroCrossings > bufferLen/100

	audioQuality := features.RMS * 10
	if audioQuality > 1 {
		audioQuality = 1
	}
	confidenceFactor := audioQuality
	if !hasSpeech {
		confidenceFactor *= 0.1
	}

	if !hasSpeech {
		b.log.Debug("no speech detected",
			"rms", features.RMS,
			"zero_crossings", features.ZeroCrossings,
			"buffer_len", bufferLen,
		)
		return Result{
			Text:       NoSpeechText,
			LogProbs:   scaleLogProbs(noSpeechLogProbs, confidenceFactor),
			Alignments: []WordAlignment{},
		}
	}

	speechEnergy := features.RMS * 100
	selected := b.tiers[len(b.tiers)-1]
	for _, t := range b.tiers {
		if speechEnergy >= t.minEnergy && features.SpectralProxy >= t.minSpectral {
			selected = t
			break
		}
	}

	b.log.Debug("tier selected",
		"tier", selected.name,
		"speech_energy", speechEnergy,
		"spectral_proxy", features.SpectralProxy,
		"confidence_factor", confidenceFactor,
	)

	return Result{
		Text:       selected.text,
		LogProbs:   scaleLogProbs(selected.logProbs, confidenceFactor),
		Alignments: cloneAlignments(selected.alignments),
	}
}

// scaleLogProbs multiplies every entry by factor. With factor in [0, 1] this
// only ever flattens magnitudes, never inflates them.
func scaleLogProbs(probs []float32, factor float64) []float32 {
	out := make([]float32, len(probs))
	for i, p := range probs {
		out[i] = float32(float64(p) * factor)
	}
	return out
}

func cloneAlignments(in []WordAlignment) []WordAlignment {
	out := make([]WordAlignment, len(in))
	copy(out, in)
	return out
}
