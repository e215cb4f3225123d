package analysis

import (
	"math"
	"sort"

	"github.com/mjibson/go-dsp/window"
)

// Peak is one local maximum of a spectrum.
type Peak struct {
	Bin       int
	Frequency float64
	Power     float64
}

// Wavelength returns the free-space wavelength in cells for Courant number s.
func (p Peak) Wavelength(s float64) float64 {
	if p.Frequency == 0 {
		return math.Inf(1)
	}
	return s / p.Frequency
}

// Spectrum applies a Hann window, zero-pads to at least pad samples (rounded
// up to a power of two) and returns the power spectrum together with the
// frequency of each bin in cycles per step.
func Spectrum(samples []float64, pad int) (power, freqs []float64) {
	if len(samples) == 0 {
		return nil, nil
	}
	n := NextPow2(max(len(samples), pad, 2))
	data := make([]float64, n)
	copy(data, samples)
	window.Apply(data[:len(samples)], window.Hann)

	power = PowerSpectrum(data)
	freqs = make([]float64, len(power))
	for i := range freqs {
		freqs[i] = float64(i) / float64(n)
	}
	return power, freqs
}

// Resonances returns up to k local maxima of power, strongest first. The DC
// bin is never a peak.
func Resonances(power, freqs []float64, k int) []Peak {
	peaks := make([]Peak, 0)
	for i := 1; i < len(power); i++ {
		left := power[i-1]
		right := 0.0
		if i+1 < len(power) {
			right = power[i+1]
		}
		if power[i] > left && power[i] >= right && power[i] > 0 {
			peaks = append(peaks, Peak{Bin: i, Frequency: freqs[i], Power: power[i]})
		}
	}
	sort.SliceStable(peaks, func(a, b int) bool { return peaks[a].Power > peaks[b].Power })
	if k > 0 && len(peaks) > k {
		peaks = peaks[:k]
	}
	return peaks
}
