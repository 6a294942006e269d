package transcribe

import (
	"io"
	"log/slog"
	"math"
	"reflect"
	"testing"

	"github.com/frozo/ambientscribe-bridge/internal/dsp"
)

func testBackend() *HeuristicBackend {
	return NewHeuristicBackend(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// sine produces a 48 kHz sine buffer with the given frequency and amplitude.
func sine(n int, freq, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(dsp.SampleRate)))
	}
	return out
}

func transcribeBuffer(b *HeuristicBackend, samples []float32) Result {
	return b.Transcribe(dsp.Extract(samples), len(samples))
}

func TestSilenceYieldsNoSpeechPlaceholder(t *testing.T) {
	b := testBackend()
	res := transcribeBuffer(b, make([]float32, 48000))

	if res.Text != NoSpeechText {
		t.Fatalf("expected placeholder %q, got %q", NoSpeechText, res.Text)
	}
	if len(res.Alignments) != 0 {
		t.Fatalf("expected empty alignments, got %d", len(res.Alignments))
	}
	if len(res.LogProbs) != 3 {
		t.Fatalf("expected 3 log probs, got %d", len(res.LogProbs))
	}
	for i, p := range res.LogProbs {
		if p > 0 {
			t.Fatalf("log prob %d must not be positive, got %v", i, p)
		}
	}
}

func TestLoudButTonelessBufferFailsGate(t *testing.T) {
	// High energy with almost no zero crossings: a DC-offset hum.
	samples := make([]float32, 48000)
	for i := range samples {
		samples[i] = 0.5
	}
	res := transcribeBuffer(testBackend(), samples)
	if res.Text != NoSpeechText {
		t.Fatalf("expected gate to reject toneless buffer, got %q", res.Text)
	}
}

func TestTierSelectionIsOrderedFirstMatchWins(t *testing.T) {
	b := testBackend()

	loud := transcribeBuffer(b, sine(48000, 440, 0.5))
	if loud.Text != defaultTiers[0].text {
		t.Fatalf("expected loud tier transcript, got %q", loud.Text)
	}

	moderate := transcribeBuffer(b, sine(48000, 440, 0.04))
	if moderate.Text != defaultTiers[1].text {
		t.Fatalf("expected moderate tier transcript, got %q", moderate.Text)
	}

	quiet := transcribeBuffer(b, sine(48000, 440, 0.02))
	if quiet.Text != defaultTiers[2].text {
		t.Fatalf("expected quiet tier transcript, got %q", quiet.Text)
	}
}

func TestTranscribeDeterministic(t *testing.T) {
	b := testBackend()
	samples := sine(48000, 440, 0.1)

	first := transcribeBuffer(b, samples)
	second := transcribeBuffer(b, samples)

	if first.Text != second.Text {
		t.Fatalf("text differs: %q vs %q", first.Text, second.Text)
	}
	if !reflect.DeepEqual(first.LogProbs, second.LogProbs) {
		t.Fatalf("log probs differ: %v vs %v", first.LogProbs, second.LogProbs)
	}
	if !reflect.DeepEqual(first.Alignments, second.Alignments) {
		t.Fatalf("alignments differ")
	}
}

func TestConfidenceShapingNeverInflatesMagnitude(t *testing.T) {
	b := testBackend()

	for _, amp := range []float64{0.005, 0.02, 0.04, 0.2, 0.8} {
		samples := sine(48000, 440, amp)
		features := dsp.Extract(samples)
		res := b.Transcribe(features, len(samples))

		factor := features.RMS * 10
		if factor > 1 {
			factor = 1
		}
		if factor < 0 || factor > 1 {
			t.Fatalf("confidence factor out of [0,1]: %v", factor)
		}

		raw := noSpeechLogProbs
		if res.Text != NoSpeechText {
			for _, tr := range defaultTiers {
				if tr.text == res.Text {
					raw = tr.logProbs
					break
				}
			}
		}
		if len(res.LogProbs) != len(raw) {
			t.Fatalf("amp %v: expected %d log probs, got %d", amp, len(raw), len(res.LogProbs))
		}
		for i, p := range res.LogProbs {
			if math.Abs(float64(p)) > math.Abs(float64(raw[i]))+1e-9 {
				t.Fatalf("amp %v: entry %d magnitude grew from %v to %v", amp, i, raw[i], p)
			}
			if raw[i] <= 0 && p > 0 {
				t.Fatalf("amp %v: entry %d flipped sign from %v to %v", amp, i, raw[i], p)
			}
		}
	}
}

func TestAlignmentsAreWellFormed(t *testing.T) {
	b := testBackend()

	for _, amp := range []float64{0.02, 0.04, 0.5} {
		res := transcribeBuffer(b, sine(48000, 440, amp))
		prevEnd := 0.0
		for i, a := range res.Alignments {
			if a.StartTime < prevEnd {
				t.Fatalf("alignment %d overlaps previous: start %v before %v", i, a.StartTime, prevEnd)
			}
			if a.EndTime < a.StartTime {
				t.Fatalf("alignment %d ends before it starts: %+v", i, a)
			}
			if a.Confidence < 0 || a.Confidence > 1 {
				t.Fatalf("alignment %d confidence out of [0,1]: %v", i, a.Confidence)
			}
			prevEnd = a.EndTime
		}
	}
}
