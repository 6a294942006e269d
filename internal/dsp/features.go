// Package dsp computes summary statistics over raw audio buffers. All
// functions are pure: identical buffers always yield identical features.
package dsp

import "math"

// SampleRate is the sample rate the bridge assumes for incoming audio.
const SampleRate = 48000

// Features summarises a single audio buffer. Values are recomputed per call
// and never cached.
type Features struct {
	// RMS is sqrt(mean(sample^2)) over the buffer.
	RMS float64
	// MaxAmplitude is max(|sample|) over the buffer.
	MaxAmplitude float64
	// ZeroCrossings counts adjacent sample pairs whose signs differ, with
	// zero treated as non-negative.
	ZeroCrossings int
	// SpectralProxy is the mean of |sample[i+1]-sample[i]| * i over adjacent
	// pairs. It is a cheap proxy for high-frequency content, not a true
	// spectral centroid.
	SpectralProxy float64
}

// Extract computes the features of the buffer. Buffers of length 0 or 1
// yield the zero value.
func Extract(samples []float32) Features {
	if len(samples) < 2 {
		return Features{}
	}

	var (
		sumSquares float64
		maxAmp     float64
		crossings  int
		diffSum    float64
	)

	for i, s := range samples {
		v := float64(s)
		sumSquares += v * v
		if abs := math.Abs(v); abs > maxAmp {
			maxAmp = abs
		}
		if i == 0 {
			continue
		}
		prev := float64(samples[i-1])
		if negative(prev) != negative(v) {
			crossings++
		}
		diffSum += math.Abs(v-prev) * float64(i-1)
	}

	pairs := float64(len(samples) - 1)
	return Features{
		RMS:           math.Sqrt(sumSquares / float64(len(samples))),
		MaxAmplitude:  maxAmp,
		ZeroCrossings: crossings,
		SpectralProxy: diffSum / pairs,
	}
}

func negative(v float64) bool { return v < 0 }
