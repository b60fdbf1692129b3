package wavetable

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultOutputDir is where Generate writes when no directory is given.
var DefaultOutputDir = filepath.Join("data", "audio", "wavetables")

// WriteFile serializes an assembled table to path. The file is written to
// a temporary sibling first and renamed into place, so a failed write
// never leaves a truncated file behind.
func WriteFile(path string, format Format, table Wavetable) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}

	err = writeTable(tmp, format, table)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

func writeTable(f *os.File, format Format, table Wavetable) error {
	enc := NewEncoder(f, format.SampleRate)

	err := enc.WriteTable(format, table)
	if err != nil {
		return err
	}

	return enc.Close()
}

// Generate builds every recipe and writes one file per recipe into dir,
// creating it if absent. A failing recipe does not abort the batch: the
// remaining recipes are still generated and the failures are reported
// together in the returned error. The paths of the files actually written
// are returned in recipe order.
func Generate(format Format, dir string, recipes []Recipe) ([]string, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	var (
		written []string
		errs    []error
	)

	for _, recipe := range recipes {
		table, err := BuildTable(format, recipe)
		if err != nil {
			errs = append(errs, fmt.Errorf("recipe %s: %w", recipe.Name, err))
			continue
		}

		path := filepath.Join(dir, recipe.FileName())

		err = WriteFile(path, format, table)
		if err != nil {
			errs = append(errs, fmt.Errorf("recipe %s: %w", recipe.Name, err))
			continue
		}

		written = append(written, path)
	}

	return written, errors.Join(errs...)
}
