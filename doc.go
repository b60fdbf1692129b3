// Package wavetable generates fixed-format wavetable audio files.
//
// A wavetable is a sequence of 64 single-cycle waveforms of 2048 samples
// each. Sweeping the table position on a wavetable synthesizer morphs
// continuously between the timbres stored at adjacent positions. The
// package provides band-limited single-cycle synthesizers, a catalog of
// ten morphing recipes, per-waveform normalization, and a serializer
// producing mono 16-bit PCM WAV files at 48000 Hz.
//
// Typical use:
//
//	format := wavetable.DefaultFormat()
//	written, err := wavetable.Generate(format, "out", wavetable.Catalog())
//
// Generation is deterministic: the one recipe that uses randomness
// (Noise Shapes) derives its draws from a fixed seed, so repeated runs
// produce byte-identical files.
package wavetable
