package audio

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum returns the Hann-windowed magnitude spectrum of the latest
// snapshot, len/2 bins normalised by the buffer length.
func (m *Monitor) Spectrum() []float64 {
	return Spectrum(m.Snapshot())
}

// Bands averages the spectrum into n equal-width groups for meters.
func (m *Monitor) Bands(n int) []float64 {
	return Bands(m.Spectrum(), n)
}

func Spectrum(samples []float32) []float64 {
	n := len(samples)
	if n < 2 {
		return nil
	}

	x := make([]float64, n)
	for i, s := range samples {
		x[i] = float64(s)
	}
	window.Apply(x, window.Hann)

	bins := fft.FFTReal(x)
	mags := make([]float64, n/2)
	for i := range mags {
		mags[i] = cmplx.Abs(bins[i]) / float64(n)
	}
	return mags
}

func Bands(spectrum []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	bands := make([]float64, n)
	if len(spectrum) == 0 {
		return bands
	}
	for b := 0; b < n; b++ {
		lo := b * len(spectrum) / n
		hi := (b + 1) * len(spectrum) / n
		if hi <= lo {
			hi = lo + 1
		}
		if hi > len(spectrum) {
			hi = len(spectrum)
		}
		sum := 0.0
		for _, v := range spectrum[lo:hi] {
			sum += v
		}
		bands[b] = sum / float64(hi-lo)
	}
	return bands
}
