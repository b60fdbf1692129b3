package wavetable

import (
	"fmt"
	"strings"
)

// RecipeID identifies one of the ten catalog recipes.
type RecipeID int

// The catalog is a closed set; Catalog returns one Recipe per ID, in order.
const (
	BasicShapes RecipeID = iota
	HarmonicSeries
	FMBells
	PWMSweep
	SyncSweep
	FormantVowels
	SuperSaw
	NoiseShapes
	Organ
	Acid
)

// NoiseSeed seeds the Noise Shapes pseudo-random stream. Changing it
// changes the shipped Noise_Shapes.wav bit-for-bit.
const NoiseSeed int64 = 42

// waveformFunc computes the raw (un-normalized) waveform at one table index.
type waveformFunc func(format Format, index int) Waveform

// Recipe is a named rule mapping a table index to one single-cycle
// waveform. Recipes are pure given their index; the Noise Shapes recipe
// derives its randomness deterministically from its seed.
type Recipe struct {
	ID   RecipeID
	Name string

	gen waveformFunc
}

// FileName returns the output file name for the recipe, e.g.
// "Basic_Shapes.wav".
func (r Recipe) FileName() string {
	return strings.ReplaceAll(r.Name, " ", "_") + ".wav"
}

// WaveformAt computes the raw waveform at the given table index.
func (r Recipe) WaveformAt(format Format, index int) (Waveform, error) {
	if index < 0 || index >= format.WaveformsPerTable {
		return nil, fmt.Errorf("%w: recipe %s index %d, table holds %d waveforms",
			ErrIndexOutOfRange, r.Name, index, format.WaveformsPerTable)
	}

	return r.gen(format, index), nil
}

// NoiseShapesRecipe returns the Noise Shapes recipe with an explicit seed.
// Catalog uses NoiseSeed; tests may inject their own.
func NoiseShapesRecipe(seed int64) Recipe {
	return Recipe{ID: NoiseShapes, Name: "Noise Shapes", gen: noiseShapesGen(seed)}
}

// Catalog returns the ten shipped recipes in table order.
func Catalog() []Recipe {
	return []Recipe{
		{ID: BasicShapes, Name: "Basic Shapes", gen: basicShapes},
		{ID: HarmonicSeries, Name: "Harmonic Series", gen: harmonicSeries},
		{ID: FMBells, Name: "FM Bells", gen: fmBells},
		{ID: PWMSweep, Name: "PWM Sweep", gen: pwmSweep},
		{ID: SyncSweep, Name: "Sync Sweep", gen: syncSweep},
		{ID: FormantVowels, Name: "Formant Vowels", gen: formantVowels},
		{ID: SuperSaw, Name: "SuperSaw", gen: superSaw},
		NoiseShapesRecipe(NoiseSeed),
		{ID: Organ, Name: "Organ", gen: organ},
		{ID: Acid, Name: "Acid", gen: acid},
	}
}
