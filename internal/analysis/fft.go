package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the transform of
// data. Any length works; powers of two are fastest.
func PowerSpectrum(data []float64) []float64 {
	f := fft.FFTReal(data)
	ps := make([]float64, len(f)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}

	return ps
}

// NextPow2 returns the smallest power of two not below n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
