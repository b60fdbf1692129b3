// gen-wavetables writes the full wavetable catalog: one WAV file per
// recipe, each holding 64 single-cycle waveforms of 2048 samples.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/cwbudde/wavetable"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-wavetables", flag.ContinueOnError)

	output := flagSet.String("output", wavetable.DefaultOutputDir, "directory to write the wavetable files to")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	format := wavetable.DefaultFormat()
	recipes := wavetable.Catalog()

	log.Printf("generating %d wavetables (%d x %d samples at %d Hz) into %s",
		len(recipes), format.WaveformsPerTable, format.SamplesPerWaveform, format.SampleRate, *output)

	written, err := wavetable.Generate(format, *output, recipes)

	for _, path := range written {
		log.Printf("created %s", path)
	}

	if err != nil {
		return err
	}

	log.Printf("generated %d wavetable files", len(written))

	return nil
}
