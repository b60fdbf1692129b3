package wavetable

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// smallFormat keeps catalog tests fast while exercising every recipe.
var smallFormat = Format{WaveformsPerTable: 8, SamplesPerWaveform: 256, SampleRate: 48000}

func TestGenerateWritesAllRecipes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wavetables")

	written, err := Generate(smallFormat, dir, Catalog())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(written) != 10 {
		t.Fatalf("wrote %d files, want 10", len(written))
	}

	for i, recipe := range Catalog() {
		want := filepath.Join(dir, recipe.FileName())
		if written[i] != want {
			t.Fatalf("written[%d]=%q, want %q", i, written[i], want)
		}

		f, err := os.Open(want)
		if err != nil {
			t.Fatalf("output missing for %s: %v", recipe.Name, err)
		}

		dec := NewDecoder(f)

		buf, err := dec.FullPCMBuffer()
		if err != nil {
			t.Fatalf("decode of %s failed: %v", want, err)
		}

		f.Close()

		wantSamples := smallFormat.WaveformsPerTable * smallFormat.SamplesPerWaveform
		if len(buf.Data) != wantSamples {
			t.Fatalf("%s holds %d samples, want %d", want, len(buf.Data), wantSamples)
		}
	}
}

func TestGenerateOutputContract(t *testing.T) {
	// the playback engine indexes by the fixed geometry, so the payload
	// must be exactly 64*2048 16-bit samples behind a 44-byte header
	dir := t.TempDir()
	format := DefaultFormat()

	table, err := BuildTable(format, recipeByID(t, HarmonicSeries))
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	path := filepath.Join(dir, "Harmonic_Series.wav")
	if err := WriteFile(path, format, table); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}

	want := int64(44 + 2*format.WaveformsPerTable*format.SamplesPerWaveform)
	if fi.Size() != want {
		t.Fatalf("file size=%d, want %d", fi.Size(), want)
	}
}

func TestGenerateContinuesPastFailingRecipe(t *testing.T) {
	dir := t.TempDir()

	broken := Recipe{
		Name: "Broken",
		gen: func(format Format, index int) Waveform {
			return make(Waveform, format.SamplesPerWaveform+1)
		},
	}

	recipes := []Recipe{broken, {ID: BasicShapes, Name: "Basic Shapes", gen: basicShapes}}

	written, err := Generate(smallFormat, dir, recipes)
	if !errors.Is(err, ErrWaveformLength) {
		t.Fatalf("Generate error=%v, want ErrWaveformLength", err)
	}

	if !strings.Contains(err.Error(), "Broken") {
		t.Fatalf("error %q does not name the failing recipe", err)
	}

	if len(written) != 1 {
		t.Fatalf("wrote %d files, want the surviving recipe only", len(written))
	}

	if _, err := os.Stat(filepath.Join(dir, "Basic_Shapes.wav")); err != nil {
		t.Fatalf("surviving recipe not written: %v", err)
	}
}

func TestGenerateCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "nested", "dir")

	_, err := Generate(smallFormat, dir, Catalog()[:1])
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
}

func TestWriteFileLeavesNothingBehindOnFailure(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	table, err := BuildTable(smallFormat, recipeByID(t, BasicShapes))
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	err = WriteFile(filepath.Join(missing, "out.wav"), smallFormat, table)
	if err == nil {
		t.Fatal("expected failure writing into a missing directory")
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("readdir failed: %v", readErr)
	}

	if len(entries) != 0 {
		t.Fatalf("stray files left behind: %v", entries)
	}
}
