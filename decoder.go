package wavetable

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// ErrPCMDataNotFound is returned when no data chunk is present.
	ErrPCMDataNotFound = errors.New("PCM data not found")
	// ErrUnsupportedFormat is returned for anything other than the fixed
	// wavetable contract: mono 16-bit integer PCM.
	ErrUnsupportedFormat = errors.New("unsupported wav format")
)

// Decoder reads back wavetable WAV files. It only understands the fixed
// format the Encoder produces; it exists for round-trip validation and
// offline conversion, not as a general WAV reader.
type Decoder struct {
	r      io.ReadSeeker
	parser *riff.Parser

	NumChans   uint16
	BitDepth   uint16
	SampleRate uint32

	WavAudioFormat uint16

	PCMSize  int
	PCMChunk *riff.Chunk

	err error
}

// NewDecoder creates a decoder for the passed wav reader.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
	}
}

// IsValidFile verifies the reader holds a readable fixed-format file.
func (d *Decoder) IsValidFile() bool {
	d.err = d.readHeaders()
	if d.err != nil {
		return false
	}

	return d.NumChans == 1 && d.BitDepth == 16
}

// Err returns the first non-EOF error encountered by the decoder.
func (d *Decoder) Err() error {
	if errors.Is(d.err, io.EOF) {
		return nil
	}

	return d.err
}

// readHeaders parses the RIFF header and the fmt chunk. Safe to call
// multiple times.
func (d *Decoder) readHeaders() error {
	if d == nil || d.NumChans > 0 {
		return nil
	}

	id, size, err := d.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read the RIFF header: %w", err)
	}

	d.parser.ID = id
	if d.parser.ID != riff.RiffID {
		return fmt.Errorf("%s: %w", d.parser.ID, riff.ErrFmtNotSupported)
	}

	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return fmt.Errorf("failed to read the RIFF format: %w", err)
	}

	if d.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%s: %w", d.parser.Format, riff.ErrFmtNotSupported)
	}

	var chunk *riff.Chunk
	for {
		chunk, err = d.parser.NextChunk()
		if err != nil {
			return fmt.Errorf("fmt chunk not found: %w", err)
		}

		if chunk.ID == riff.FmtID {
			break
		}

		chunk.Drain()
	}

	return d.readFmtChunk(chunk)
}

func (d *Decoder) readFmtChunk(chunk *riff.Chunk) error {
	err := chunk.ReadLE(&d.WavAudioFormat)
	if err != nil {
		return fmt.Errorf("failed to read the format tag: %w", err)
	}

	err = chunk.ReadLE(&d.NumChans)
	if err != nil {
		return fmt.Errorf("failed to read the channel count: %w", err)
	}

	err = chunk.ReadLE(&d.SampleRate)
	if err != nil {
		return fmt.Errorf("failed to read the sample rate: %w", err)
	}

	var avgBytesPerSec uint32

	err = chunk.ReadLE(&avgBytesPerSec)
	if err != nil {
		return fmt.Errorf("failed to read the avg bytes/sec: %w", err)
	}

	var blockAlign uint16

	err = chunk.ReadLE(&blockAlign)
	if err != nil {
		return fmt.Errorf("failed to read the block align: %w", err)
	}

	err = chunk.ReadLE(&d.BitDepth)
	if err != nil {
		return fmt.Errorf("failed to read the bit depth: %w", err)
	}

	chunk.Drain()

	return nil
}

// FwdToPCM forwards the underlying reader to the start of the data chunk.
func (d *Decoder) FwdToPCM() error {
	if d == nil {
		return ErrPCMDataNotFound
	}

	d.err = d.readHeaders()
	if d.err != nil {
		return d.err
	}

	for {
		chunk, err := d.parser.NextChunk()
		if err != nil {
			d.err = ErrPCMDataNotFound
			return d.err
		}

		if chunk.ID == riff.DataFormatID {
			d.PCMSize = chunk.Size
			d.PCMChunk = chunk

			return nil
		}

		chunk.Drain()
	}
}

// FullPCMBuffer decodes the entire data chunk into memory. Wavetable
// payloads are small and bounded, so there is no streaming path.
func (d *Decoder) FullPCMBuffer() (*audio.Float32Buffer, error) {
	if d.PCMChunk == nil {
		err := d.FwdToPCM()
		if err != nil {
			return nil, err
		}
	}

	if d.WavAudioFormat != 1 || d.BitDepth != 16 {
		return nil, fmt.Errorf("%w: format tag %d at %d bits",
			ErrUnsupportedFormat, d.WavAudioFormat, d.BitDepth)
	}

	raw := make([]byte, d.PCMSize)

	_, err := io.ReadFull(d.PCMChunk.R, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	data := make([]float32, len(raw)/2)
	for i := range data {
		sample := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		data[i] = float32(sample) / pcmScale
	}

	return &audio.Float32Buffer{
		Data:           data,
		SourceBitDepth: int(d.BitDepth),
		Format: &audio.Format{
			NumChannels: int(d.NumChans),
			SampleRate:  int(d.SampleRate),
		},
	}, nil
}
