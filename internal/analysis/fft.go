package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/stat"
)

// FFT computes the discrete Fourier transform with a recursive radix-2
// split. The input length must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns |X(k)|² over the positive-frequency half. The signal
// is truncated to the largest power-of-two window so the radix-2 transform
// applies to any sample count.
func PowerSpectrum(data []float64) []float64 {
	n := powerOfTwoBelow(len(data))
	if n < 2 {
		return nil
	}

	fft := FFT(data[:n])
	ps := make([]float64, n/2)
	for i := range ps {
		a := cmplx.Abs(fft[i])
		ps[i] = a * a
	}
	return ps
}

// DominantFrequency estimates the strongest oscillation frequency (Hz) of a
// uniformly sampled signal, ignoring the DC bin. Returns 0 for signals too
// short to analyze.
func DominantFrequency(data []float64, dt float64) float64 {
	if dt <= 0 || len(data) < 4 {
		return 0
	}

	mean := stat.Mean(data, nil)
	centered := make([]float64, powerOfTwoBelow(len(data)))
	for i := range centered {
		centered[i] = data[i] - mean
	}

	ps := PowerSpectrum(centered)
	if len(ps) < 2 {
		return 0
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] == 0 {
		// No oscillatory content at all.
		return 0
	}
	return float64(best) / (float64(len(centered)) * dt)
}

func powerOfTwoBelow(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
