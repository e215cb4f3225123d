// Package analysis extracts resonances from probe time series.
//
//   - [PowerSpectrum]: magnitude spectrum of a series
//   - [Spectrum]: windowed, zero-padded spectrum of an arbitrary series
//   - [Resonances]: the strongest spectral peaks
//
// # Units
//
// Frequencies are in cycles per step. On a grid normalised to unit cell size
// with Courant number S, a peak at f cycles per step has a wavelength of
// S/f cells; see [Peak.Wavelength].
package analysis
