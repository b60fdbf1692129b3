package wavetable

import (
	"math"
	"math/rand"
)

// segmentAt splits the morph position t in [0,1] into a segment index and
// a blend fraction for piecewise recipes. The final position clamps to the
// last segment with blend 1 so interpolation never extrapolates.
func segmentAt(t float64, segments int) (int, float64) {
	pos := t * float64(segments)

	idx := int(pos)
	blend := pos - float64(idx)

	if idx >= segments {
		idx = segments - 1
		blend = 1
	}

	return idx, blend
}

// basicShapes cross-fades sine → triangle → saw → square → sine across
// four equal sub-ranges of the table.
func basicShapes(format Format, index int) Waveform {
	t := format.morphPos(index)

	w := make(Waveform, format.SamplesPerWaveform)
	for j := range w {
		phase := format.phase(j)

		switch {
		case t < 0.25:
			w[j] = lerp(Sine(phase), Triangle(phase), t*4)
		case t < 0.5:
			w[j] = lerp(Triangle(phase), Saw(phase), (t-0.25)*4)
		case t < 0.75:
			w[j] = lerp(Saw(phase), Square(phase), (t-0.5)*4)
		default:
			w[j] = lerp(Square(phase), Sine(phase), (t-0.75)*4)
		}
	}

	return w
}

// harmonicSeries grows the partial count linearly from a pure sine at
// index 0 to 32 harmonics at the final index, each with 1/k amplitude.
func harmonicSeries(format Format, index int) Waveform {
	harmonics := 1 + index*31/(format.WaveformsPerTable-1)

	w := make(Waveform, format.SamplesPerWaveform)
	for j := range w {
		phase := format.phase(j)

		var sum float64
		for h := 1; h <= harmonics; h++ {
			sum += math.Sin(twoPi*float64(h)*phase) / float64(h)
		}

		w[j] = sum
	}

	return w
}

// fmBellRatio is the carrier:modulator ratio of the FM Bells recipe. The
// inharmonic 3.5 ratio is what gives the bell character.
const fmBellRatio = 3.5

// fmBells is 2-operator FM with the modulation index sweeping 0 → 8.
func fmBells(format Format, index int) Waveform {
	modIndex := format.morphPos(index) * 8

	w := make(Waveform, format.SamplesPerWaveform)
	for j := range w {
		phase := format.phase(j)

		modulator := math.Sin(twoPi * fmBellRatio * phase)
		w[j] = math.Sin(twoPi*phase + modIndex*modulator)
	}

	return w
}

// pwmSweep builds a band-limited pulse from its Fourier series with the
// duty cycle sweeping 0.5 → 0.05.
func pwmSweep(format Format, index int) Waveform {
	duty := 0.5 - format.morphPos(index)*0.45

	w := make(Waveform, format.SamplesPerWaveform)
	for j := range w {
		phase := format.phase(j)

		var sum float64
		for k := 1; k <= sawHarmonics; k++ {
			coef := math.Sin(math.Pi*float64(k)*duty) / float64(k)
			sum += coef * math.Sin(twoPi*float64(k)*phase)
		}

		w[j] = sum
	}

	return w
}

// syncSweep simulates hard sync: the slave phase wraps at a sweep of
// 1x → 8x the master rate and drives the band-limited saw.
func syncSweep(format Format, index int) Waveform {
	syncRatio := 1 + format.morphPos(index)*7

	w := make(Waveform, format.SamplesPerWaveform)
	for j := range w {
		slavePhase := math.Mod(format.phase(j)*syncRatio, 1)
		w[j] = Saw(slavePhase)
	}

	return w
}

type formant struct {
	freq, amp float64
}

// vowelFormants holds the first three formants (Hz, relative amplitude)
// of each vowel in cycle order A, E, I, O, U.
var vowelFormants = [5][3]formant{
	{{730, 1.0}, {1090, 0.5}, {2440, 0.3}},
	{{530, 1.0}, {1840, 0.5}, {2480, 0.3}},
	{{270, 1.0}, {2290, 0.5}, {3010, 0.3}},
	{{570, 1.0}, {840, 0.5}, {2410, 0.3}},
	{{440, 1.0}, {1020, 0.5}, {2240, 0.3}},
}

// vowelOrder cycles A → E → I → O → U → A so the table loops smoothly.
var vowelOrder = [6]int{0, 1, 2, 3, 4, 0}

// formantBaseHz is the reference fundamental used to place formant peaks
// on the harmonic grid of a single cycle.
const formantBaseHz = 100

// formantVowels interpolates vowel formant triples along a six-step vowel
// cycle. Each formant contributes resonance-weighted harmonics around
// freq/formantBaseHz with exponential falloff by harmonic distance.
func formantVowels(format Format, index int) Waveform {
	idx, blend := segmentAt(format.morphPos(index), len(vowelOrder)-1)

	from := vowelFormants[vowelOrder[idx]]
	to := vowelFormants[vowelOrder[idx+1]]

	var formants [3]formant
	for i := range formants {
		formants[i] = formant{
			freq: lerp(from[i].freq, to[i].freq, blend),
			amp:  lerp(from[i].amp, to[i].amp, blend),
		}
	}

	w := make(Waveform, format.SamplesPerWaveform)
	for j := range w {
		phase := format.phase(j)

		var sum float64
		for _, f := range formants {
			ratio := f.freq / formantBaseHz
			for h := -2; h <= 2; h++ {
				harmonic := int(ratio) + h
				if harmonic <= 0 {
					continue
				}

				distance := math.Abs(ratio - float64(harmonic))
				peakAmp := f.amp * math.Exp(-distance*2)
				sum += peakAmp * math.Sin(twoPi*float64(harmonic)*phase) / float64(harmonic)
			}
		}

		w[j] = sum
	}

	return w
}

// superSawVoices returns the unison voice count at a table index, growing
// from 1 to 7 across the sweep.
func superSawVoices(format Format, index int) int {
	return 1 + index*6/(format.WaveformsPerTable-1)
}

// superSaw layers detuned saw voices spread symmetrically around zero
// detune; the spread sweeps 0 → 3%.
func superSaw(format Format, index int) Waveform {
	detune := format.morphPos(index) * 0.03
	voices := superSawVoices(format, index)

	w := make(Waveform, format.SamplesPerWaveform)
	for j := range w {
		phase := format.phase(j)

		var sum float64
		for v := 0; v < voices; v++ {
			voiceDetune := (float64(v) - float64(voices-1)/2) * detune
			sum += Saw(phase * (1 + voiceDetune))
		}

		w[j] = sum / float64(voices)
	}

	return w
}

// noiseHarmonics is the number of randomized partials the Noise Shapes
// recipe layers over the base saw.
const noiseHarmonics = 63

// noiseShapesGen blends a band-limited saw with randomized harmonics, the
// noise fraction sweeping 0 → 1. Draws are derived per (index, harmonic)
// from the seed — amplitude then phase offset, harmonics ascending — so
// output is reproducible regardless of which waveforms are computed, or
// in what order.
func noiseShapesGen(seed int64) waveformFunc {
	return func(format Format, index int) Waveform {
		noiseAmount := format.morphPos(index)
		rng := rand.New(rand.NewSource(seed + int64(index)))

		amps := make([]float64, noiseHarmonics+1)
		offsets := make([]float64, noiseHarmonics+1)

		for h := 1; h <= noiseHarmonics; h++ {
			amps[h] = rng.Float64() * noiseAmount / float64(h)
			offsets[h] = rng.Float64() * twoPi * noiseAmount
		}

		w := make(Waveform, format.SamplesPerWaveform)
		for j := range w {
			phase := format.phase(j)

			var noise float64
			for h := 1; h <= noiseHarmonics; h++ {
				noise += amps[h] * math.Sin(twoPi*float64(h)*phase+offsets[h])
			}

			w[j] = Saw(phase)*(1-noiseAmount*0.5) + noise
		}

		return w
	}
}

// organRegistrations are eight 9-drawbar settings, each value 0-8.
var organRegistrations = [8][9]float64{
	{0, 8, 0, 0, 0, 0, 0, 0, 0}, // pure fundamental
	{8, 8, 0, 0, 0, 0, 0, 0, 0}, // with sub
	{8, 8, 8, 0, 0, 0, 0, 0, 0}, // jazz
	{8, 8, 8, 8, 0, 0, 0, 0, 0}, // gospel
	{8, 8, 8, 8, 8, 8, 8, 8, 8}, // full organ
	{0, 0, 8, 8, 0, 0, 0, 0, 8}, // percussive
	{8, 0, 0, 0, 0, 0, 0, 8, 8}, // nasal
	{0, 8, 8, 0, 8, 0, 0, 0, 0}, // smooth
}

// drawbarRatios maps each drawbar to its harmonic ratio, matching the
// classic 16' through 1' footages.
var drawbarRatios = [9]float64{0.5, 1.5, 1, 2, 3, 4, 5, 6, 8}

// organ interpolates drawbar registrations across a 7-step sequence and
// sums a sine per non-silent drawbar.
func organ(format Format, index int) Waveform {
	idx, blend := segmentAt(format.morphPos(index), len(organRegistrations)-1)

	var drawbars [9]float64
	for d := range drawbars {
		drawbars[d] = lerp(organRegistrations[idx][d], organRegistrations[idx+1][d], blend) / 8
	}

	w := make(Waveform, format.SamplesPerWaveform)
	for j := range w {
		phase := format.phase(j)

		var sum float64
		for d, amp := range drawbars {
			if amp > 0 {
				sum += amp * math.Sin(twoPi*drawbarRatios[d]*phase)
			}
		}

		w[j] = sum
	}

	return w
}

// acid sums a saw-like 31-harmonic series with a resonance peak moving
// up the spectrum: the cutoff harmonic sweeps 4 → 16, harmonics within 3
// of it are boosted up to 5x with exponential falloff, and harmonics
// above it roll off exponentially.
func acid(format Format, index int) Waveform {
	resonance := format.morphPos(index)
	cutoff := 4 + int(resonance*12)

	w := make(Waveform, format.SamplesPerWaveform)
	for j := range w {
		phase := format.phase(j)

		var sum float64
		for h := 1; h <= sawHarmonics; h++ {
			amp := 1 / float64(h)

			distance := h - cutoff
			if distance < 0 {
				distance = -distance
			}

			if distance < 3 {
				amp *= 1 + resonance*4*math.Exp(-float64(distance))
			}

			if h > cutoff {
				amp *= math.Exp(-float64(h-cutoff) * 0.5)
			}

			sum += amp * math.Sin(twoPi*float64(h)*phase)
		}

		w[j] = sum
	}

	return w
}
