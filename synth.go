package wavetable

import "math"

const twoPi = 2 * math.Pi

// sawHarmonics caps the additive series of the band-limited shapes. With a
// 2048-sample cycle the 31st harmonic stays well below Nyquist for any
// realistic playback rate.
const sawHarmonics = 31

// Sine evaluates a unit sine cycle at the given phase in [0,1).
func Sine(phase float64) float64 {
	return math.Sin(twoPi * phase)
}

// Saw evaluates a band-limited sawtooth built from the first 31 harmonics
// with alternating sign and 1/k amplitudes.
func Saw(phase float64) float64 {
	var sum float64

	sign := 1.0
	for k := 1; k <= sawHarmonics; k++ {
		sum += sign * math.Sin(twoPi*float64(k)*phase) / float64(k)
		sign = -sign
	}

	return sum * 0.5
}

// Square evaluates a band-limited square from odd harmonics up to 31.
func Square(phase float64) float64 {
	var sum float64

	for k := 1; k <= sawHarmonics; k += 2 {
		sum += math.Sin(twoPi*float64(k)*phase) / float64(k)
	}

	return sum * 0.6
}

// Triangle evaluates a band-limited triangle from 15 odd harmonics with
// 1/n² amplitudes and alternating sign.
func Triangle(phase float64) float64 {
	var sum float64

	sign := 1.0
	for k := 1; k <= 15; k++ {
		n := float64(2*k - 1)
		sum += sign * math.Sin(twoPi*n*phase) / (n * n)
		sign = -sign
	}

	return sum * 0.8
}

// Pulse evaluates a naive ±1 pulse with the given duty cycle. It is not
// band-limited; recipes that need a band-limited pulse build one additively.
func Pulse(phase, width float64) float64 {
	if math.Mod(phase, 1) < width {
		return 1
	}

	return -1
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
