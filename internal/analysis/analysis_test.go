package analysis

import (
	"math"
	"testing"
)

func sine(n int, cycles float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * cycles * float64(i) / float64(n))
	}
	return out
}

func TestPowerSpectrum(t *testing.T) {
	ps := PowerSpectrum(sine(64, 8))
	if len(ps) != 32 {
		t.Fatalf("expected 32 bins, got %d", len(ps))
	}
	for i, p := range ps {
		if i == 8 {
			if math.Abs(p-32) > 1e-9 {
				t.Errorf("expected peak 32 at bin 8, got %v", p)
			}
		} else if p > 1e-9 {
			t.Errorf("expected bin %d empty, got %v", i, p)
		}
	}
}

func TestNextPow2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {64, 64}, {65, 128},
	}
	for _, tt := range tests {
		if got := NextPow2(tt.in); got != tt.want {
			t.Errorf("NextPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSpectrumResonance(t *testing.T) {
	samples := make([]float64, 300)
	for i := range samples {
		samples[i] = math.Sin(2*math.Pi*0.1*float64(i)) + 0.3*math.Sin(2*math.Pi*0.25*float64(i))
	}

	power, freqs := Spectrum(samples, 1024)
	if len(power) != 512 || len(freqs) != 512 {
		t.Fatalf("expected 512 bins, got %d/%d", len(power), len(freqs))
	}

	peaks := Resonances(power, freqs, 2)
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(peaks))
	}
	if math.Abs(peaks[0].Frequency-0.1) > 1.0/1024 {
		t.Errorf("expected strongest peak near 0.1, got %v", peaks[0].Frequency)
	}
	if math.Abs(peaks[1].Frequency-0.25) > 1.0/1024 {
		t.Errorf("expected second peak near 0.25, got %v", peaks[1].Frequency)
	}
	if got := peaks[0].Wavelength(0.5); math.Abs(got-5) > 0.1 {
		t.Errorf("expected wavelength near 5 cells, got %v", got)
	}
}

func TestSpectrumEmpty(t *testing.T) {
	if p, f := Spectrum(nil, 16); p != nil || f != nil {
		t.Error("expected nil spectrum for no samples")
	}
	if peaks := Resonances(nil, nil, 3); len(peaks) != 0 {
		t.Errorf("expected no peaks, got %v", peaks)
	}
}

func TestPowerSpectrumAnyLength(t *testing.T) {
	ps := PowerSpectrum([]float64{1, 1, 1, 1, 1, 1})
	if len(ps) != 3 {
		t.Fatalf("expected 3 bins, got %d", len(ps))
	}
	if math.Abs(ps[0]-6) > 1e-9 {
		t.Errorf("expected DC 6, got %v", ps[0])
	}
	for i := 1; i < 3; i++ {
		if ps[i] > 1e-9 {
			t.Errorf("expected bin %d empty, got %v", i, ps[i])
		}
	}
}
