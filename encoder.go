package wavetable

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	errNilBuffer  = errors.New("can't encode a nil buffer")
	errNilEncoder = errors.New("can't write with a nil encoder")
)

// pcmScale is the 16-bit quantization scale. Samples round symmetrically,
// so ±1.0 maps to ±32767.
const pcmScale = 32767

// Encoder serializes wavetable PCM data into a mono 16-bit little-endian
// WAV container. Header size fields are patched in Close, so the writer
// must be seekable.
type Encoder struct {
	w   io.WriteSeeker
	buf *bytes.Buffer

	SampleRate int

	WrittenBytes int

	frames          int
	wroteHeader     bool
	dataChunkOpen   bool
	dataSizePos int
}

// NewEncoder creates an encoder writing a wavetable WAV file at the given
// sample rate. Don't forget to Close or the header stays incomplete.
func NewEncoder(w io.WriteSeeker, sampleRate int) *Encoder {
	return &Encoder{
		w:          w,
		buf:        new(bytes.Buffer),
		SampleRate: sampleRate,
	}
}

// addLE serializes the value little endian and tracks written bytes.
func (e *Encoder) addLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

func (e *Encoder) writeHeader() error {
	if e == nil || e.w == nil {
		return errNilEncoder
	}

	e.wroteHeader = true

	err := e.addLE(riff.RiffID)
	if err != nil {
		return err
	}

	// total size placeholder, patched in Close
	err = e.addLE(uint32(math.MaxUint32))
	if err != nil {
		return err
	}

	err = e.addLE(riff.WavFormatID)
	if err != nil {
		return err
	}

	return e.writeFmtChunk()
}

func (e *Encoder) writeFmtChunk() error {
	const (
		fmtChunkSize   = 16
		pcmFormatTag   = 1
		numChannels    = 1
		bytesPerSample = 2
	)

	err := e.addLE(riff.FmtID)
	if err != nil {
		return err
	}

	err = e.addLE(uint32(fmtChunkSize))
	if err != nil {
		return err
	}

	err = e.addLE(uint16(pcmFormatTag))
	if err != nil {
		return fmt.Errorf("error encoding the format tag: %w", err)
	}

	err = e.addLE(uint16(numChannels))
	if err != nil {
		return fmt.Errorf("error encoding the number of channels: %w", err)
	}

	err = e.addLE(uint32(e.SampleRate))
	if err != nil {
		return fmt.Errorf("error encoding the sample rate: %w", err)
	}

	err = e.addLE(uint32(e.SampleRate * numChannels * bytesPerSample))
	if err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec: %w", err)
	}

	err = e.addLE(uint16(numChannels * bytesPerSample))
	if err != nil {
		return fmt.Errorf("error encoding the block align: %w", err)
	}

	err = e.addLE(uint16(8 * bytesPerSample))
	if err != nil {
		return fmt.Errorf("error encoding bits per sample: %w", err)
	}

	return nil
}

func (e *Encoder) startDataChunk() error {
	err := e.addLE(riff.DataFormatID)
	if err != nil {
		return fmt.Errorf("error encoding the data chunk header: %w", err)
	}

	e.dataChunkOpen = true
	e.dataSizePos = e.WrittenBytes

	// data size placeholder, patched in Close
	err = e.addLE(uint32(math.MaxUint32))
	if err != nil {
		return fmt.Errorf("error encoding the data chunk size placeholder: %w", err)
	}

	return nil
}

// Write quantizes and appends the buffer's samples to the data chunk,
// writing headers first if needed. Samples are clamped to [-1,1] and
// rounded to 16-bit.
func (e *Encoder) Write(buf *audio.Float32Buffer) error {
	if buf == nil {
		return errNilBuffer
	}

	if !e.wroteHeader {
		err := e.writeHeader()
		if err != nil {
			return err
		}
	}

	if !e.dataChunkOpen {
		err := e.startDataChunk()
		if err != nil {
			return err
		}
	}

	// batch the sample writes so the underlying writer sees one block
	for _, s := range buf.Data {
		err := binary.Write(e.buf, binary.LittleEndian, pcmInt16(float64(s)))
		if err != nil {
			return fmt.Errorf("failed to encode 16-bit sample: %w", err)
		}

		e.frames++
	}

	n, err := e.w.Write(e.buf.Bytes())
	e.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to write sample data: %w", err)
	}

	e.buf.Reset()

	return nil
}

// WriteTable encodes a full wavetable in waveform-major order.
func (e *Encoder) WriteTable(format Format, table Wavetable) error {
	return e.Write(table.Buffer(format))
}

// Close patches the header size fields. The underlying writer is not
// closed; an *os.File gets synced.
func (e *Encoder) Close() error {
	if e == nil || e.w == nil {
		return nil
	}

	if !e.wroteHeader {
		err := e.writeHeader()
		if err != nil {
			return err
		}
	}

	if !e.dataChunkOpen {
		err := e.startDataChunk()
		if err != nil {
			return err
		}
	}

	if _, err := e.w.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the total size field: %w", err)
	}

	err := e.addLE(uint32(e.WrittenBytes) - 8)
	if err != nil {
		return fmt.Errorf("%w when patching the total size", err)
	}

	if _, err := e.w.Seek(int64(e.dataSizePos), io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the data chunk size field: %w", err)
	}

	err = e.addLE(uint32(2 * e.frames))
	if err != nil {
		return fmt.Errorf("%w when patching the data chunk size", err)
	}

	if _, err := e.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek back to the end: %w", err)
	}

	if f, ok := e.w.(*os.File); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to sync output file: %w", err)
		}
	}

	return nil
}

// pcmInt16 converts a sample in [-1,1] to its 16-bit PCM value.
func pcmInt16(s float64) int16 {
	s = clampFloat(s, -1, 1)

	return int16(math.Round(s * pcmScale))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
