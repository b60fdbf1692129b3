package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/wavetable"
)

func TestRunGeneratesCatalog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wavetables")

	err := run([]string{"-output", dir})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("output dir missing: %v", err)
	}

	if len(entries) != 10 {
		t.Fatalf("generated %d files, want 10", len(entries))
	}

	f, err := os.Open(filepath.Join(dir, "Basic_Shapes.wav"))
	if err != nil {
		t.Fatalf("open generated file: %v", err)
	}
	defer f.Close()

	dec := wavetable.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatalf("generated file is not a valid wav: %v", dec.Err())
	}

	if dec.SampleRate != 48000 {
		t.Fatalf("sample rate=%d, want 48000", dec.SampleRate)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(buf.Data) != 64*2048 {
		t.Fatalf("payload holds %d samples, want %d", len(buf.Data), 64*2048)
	}
}

func TestRunFlagParseError(t *testing.T) {
	err := run([]string{"-no-such-flag"})
	if err == nil {
		t.Fatal("expected failure for unknown flag")
	}
}

func TestRunInvalidOutputDir(t *testing.T) {
	err := run([]string{"-output", "/dev/null/wavetables"})
	if err == nil {
		t.Fatal("expected failure creating the output directory")
	}
}
