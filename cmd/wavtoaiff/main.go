// wavtoaiff converts a generated wavetable WAV file into an identical
// AIFF file next to the source, for samplers that only load AIFF.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/wavetable"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)

	path := flagSet.String("path", "", "path of the wavetable wav file to convert")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("the -path flag is required")
	}

	file, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", *path, err)
	}
	defer file.Close()

	decoder := wavetable.NewDecoder(file)
	if !decoder.IsValidFile() {
		return fmt.Errorf("%s is not a valid wavetable wav file: %w", *path, decoder.Err())
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", *path, err)
	}

	outPath := (*path)[:len(*path)-len(filepath.Ext(*path))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile,
		buf.Format.SampleRate,
		int(decoder.BitDepth),
		buf.Format.NumChannels)

	err = encoder.Write(intBuffer(buf))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", outPath, err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("failed to finalize %s: %w", outPath, err)
	}

	log.Printf("converted %s to %s", *path, outPath)

	return nil
}

// intBuffer requantizes the decoded float samples back to 16-bit ints for
// the aiff encoder.
func intBuffer(buf *audio.Float32Buffer) *audio.IntBuffer {
	out := &audio.IntBuffer{
		Format:         buf.Format,
		SourceBitDepth: 16,
		Data:           make([]int, len(buf.Data)),
	}

	for i, v := range buf.Data {
		out.Data[i] = int(math.Round(float64(v) * 32767))
	}

	return out
}
