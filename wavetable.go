package wavetable

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

const (
	// DefaultWaveformsPerTable is the number of single-cycle waveforms per table.
	DefaultWaveformsPerTable = 64
	// DefaultSamplesPerWaveform is the number of samples in one cycle.
	DefaultSamplesPerWaveform = 2048
	// DefaultSampleRate is the sample rate stored in the container header.
	DefaultSampleRate = 48000
)

var (
	// ErrWaveformLength is returned when a recipe produces a waveform whose
	// length does not match the table format.
	ErrWaveformLength = errors.New("unexpected waveform length")
	// ErrIndexOutOfRange is returned for a table index outside the format's
	// waveform count.
	ErrIndexOutOfRange = errors.New("table index out of range")
)

// Format is the fixed geometry of a wavetable. It is passed explicitly to
// every component instead of living in package-level state; downstream
// playback engines index into files by this geometry, so all three fields
// are part of the output contract.
type Format struct {
	WaveformsPerTable  int
	SamplesPerWaveform int
	SampleRate         int
}

// DefaultFormat returns the geometry every shipped wavetable file uses:
// 64 waveforms of 2048 samples at 48000 Hz.
func DefaultFormat() Format {
	return Format{
		WaveformsPerTable:  DefaultWaveformsPerTable,
		SamplesPerWaveform: DefaultSamplesPerWaveform,
		SampleRate:         DefaultSampleRate,
	}
}

// phase returns the oscillator phase in [0,1) of sample j.
func (f Format) phase(j int) float64 {
	return float64(j) / float64(f.SamplesPerWaveform)
}

// morphPos maps table index i to the morph position in [0,1].
func (f Format) morphPos(i int) float64 {
	return float64(i) / float64(f.WaveformsPerTable-1)
}

// Waveform holds one single cycle of a periodic signal, read left to right
// as phase 0 to 1 (exclusive). Sample values are unbounded until normalized.
type Waveform []float64

// Peak returns max(|min|, |max|) over the samples.
func (w Waveform) Peak() float64 {
	var peak float64
	for _, s := range w {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	return peak
}

// Normalize rescales the waveform in place so its peak absolute value is
// exactly 1. A silent waveform is left untouched.
func (w Waveform) Normalize() {
	peak := w.Peak()
	if peak == 0 {
		return
	}

	for i := range w {
		w[i] /= peak
	}
}

// Wavetable is an ordered sequence of single-cycle waveforms forming one
// morph axis. Index order is meaningful: adjacent waveforms are close in
// spectral content.
type Wavetable []Waveform

// Buffer flattens the table into a mono Float32Buffer in waveform-major
// order, ready for encoding.
func (t Wavetable) Buffer(format Format) *audio.Float32Buffer {
	data := make([]float32, 0, len(t)*format.SamplesPerWaveform)
	for _, w := range t {
		for _, s := range w {
			data = append(data, float32(s))
		}
	}

	return &audio.Float32Buffer{
		Data:           data,
		SourceBitDepth: 16,
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  format.SampleRate,
		},
	}
}

// BuildTable runs the recipe across every table index, normalizing each
// waveform. A waveform of the wrong length is a programming-contract
// violation and aborts the build.
func BuildTable(format Format, recipe Recipe) (Wavetable, error) {
	table := make(Wavetable, 0, format.WaveformsPerTable)

	for i := 0; i < format.WaveformsPerTable; i++ {
		w, err := recipe.WaveformAt(format, i)
		if err != nil {
			return nil, err
		}

		if len(w) != format.SamplesPerWaveform {
			return nil, fmt.Errorf("%w: recipe %s index %d produced %d samples, want %d",
				ErrWaveformLength, recipe.Name, i, len(w), format.SamplesPerWaveform)
		}

		w.Normalize()
		table = append(table, w)
	}

	return table, nil
}
