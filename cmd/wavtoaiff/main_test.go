package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/wavetable"
	"github.com/go-audio/aiff"
)

func writeTestTable(t *testing.T, path string) wavetable.Format {
	t.Helper()

	format := wavetable.Format{WaveformsPerTable: 4, SamplesPerWaveform: 128, SampleRate: 48000}

	table, err := wavetable.BuildTable(format, wavetable.Catalog()[0])
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	err = wavetable.WriteFile(path, format, table)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	return format
}

func TestRunConvertsToAiff(t *testing.T) {
	dir := t.TempDir()
	wavPath := filepath.Join(dir, "table.wav")
	format := writeTestTable(t, wavPath)

	err := run([]string{"-path", wavPath})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	aifPath := filepath.Join(dir, "table.aif")

	f, err := os.Open(aifPath)
	if err != nil {
		t.Fatalf("converted file missing: %v", err)
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("converted file is not a valid aiff")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("aiff decode failed: %v", err)
	}

	wantSamples := format.WaveformsPerTable * format.SamplesPerWaveform
	if len(buf.Data) != wantSamples {
		t.Fatalf("aiff holds %d samples, want %d", len(buf.Data), wantSamples)
	}
}

func TestRunRequiresPath(t *testing.T) {
	err := run(nil)
	if err == nil {
		t.Fatal("expected failure without -path")
	}
}

func TestRunRejectsMissingFile(t *testing.T) {
	err := run([]string{"-path", filepath.Join(t.TempDir(), "nope.wav")})
	if err == nil {
		t.Fatal("expected failure for a missing input file")
	}
}

func TestRunRejectsNonWavInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-wav.wav")

	err := os.WriteFile(path, []byte("not audio"), 0o644)
	if err != nil {
		t.Fatalf("fixture write failed: %v", err)
	}

	err = run([]string{"-path", path})
	if err == nil {
		t.Fatal("expected failure for a non-wav input")
	}
}
