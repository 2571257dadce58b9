package wavfx

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

// Header is the canonical 44-byte WAV header, laid out exactly as on disk.
type Header struct {
	ChunkID   [4]byte // "RIFF"
	ChunkSize uint32  // file size minus the first 8 bytes
	Format    [4]byte // "WAVE"

	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample/8
	BlockAlign    uint16 // NumChannels * BitsPerSample/8
	BitsPerSample uint16

	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // payload length in bytes
}

// NewHeader returns a valid header for numSamples samples in the supported
// format.
func NewHeader(numSamples int) *Header {
	dataSize := uint32(numSamples * bytesPerSample)

	return &Header{
		ChunkID:       riff.RiffID,
		ChunkSize:     36 + dataSize,
		Format:        riff.WavFormatID,
		Subchunk1ID:   riff.FmtID,
		Subchunk1Size: 16,
		AudioFormat:   wavFormatPCM,
		NumChannels:   NumChans,
		SampleRate:    SampleRate,
		ByteRate:      SampleRate * NumChans * bytesPerSample,
		BlockAlign:    NumChans * bytesPerSample,
		BitsPerSample: BitDepth,
		Subchunk2ID:   riff.DataFormatID,
		Subchunk2Size: dataSize,
	}
}

// ReadHeader reads exactly HeaderSize bytes from r. The header is not
// validated.
func ReadHeader(r io.Reader) (*Header, error) {
	h := &Header{}

	err := binary.Read(r, binary.LittleEndian, h)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav header: %w", err)
	}

	return h, nil
}

// Validate checks the header against the only format the tool supports,
// laid out as the canonical 44 bytes with data right after fmt.
func (h *Header) Validate() error {
	if h.ChunkID != riff.RiffID || h.Format != riff.WavFormatID {
		return fmt.Errorf("%w: chunk id %q, format %q", ErrNotRiffWave, h.ChunkID[:], h.Format[:])
	}

	if h.Subchunk1ID != riff.FmtID || h.Subchunk2ID != riff.DataFormatID {
		return fmt.Errorf("%w: expected fmt and data chunks only, got %q and %q",
			ErrNotRiffWave, h.Subchunk1ID[:], h.Subchunk2ID[:])
	}

	if h.Subchunk1Size != 16 {
		return fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedFormat, h.Subchunk1Size)
	}

	if h.AudioFormat != wavFormatPCM || h.NumChannels != NumChans ||
		h.SampleRate != SampleRate || h.BitsPerSample != BitDepth {
		return fmt.Errorf("%w: format %d, %d channel(s), %d Hz, %d bits",
			ErrUnsupportedFormat, h.AudioFormat, h.NumChannels, h.SampleRate, h.BitsPerSample)
	}

	return nil
}

// DurationSeconds returns the payload length in whole seconds. Any trailing
// partial second is dropped.
func (h *Header) DurationSeconds() int {
	if h.SampleRate == 0 {
		return 0
	}

	return int(h.Subchunk2Size / (bytesPerSample * h.SampleRate))
}

// WriteTo serializes the header in little endian.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	err := binary.Write(w, binary.LittleEndian, h)
	if err != nil {
		return 0, fmt.Errorf("failed to write wav header: %w", err)
	}

	return HeaderSize, nil
}

// Format returns the audio format described by the header.
func (h *Header) Format() *audio.Format {
	if h == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(h.NumChannels),
		SampleRate:  int(h.SampleRate),
	}
}

// String implements the Stringer interface.
func (h *Header) String() string {
	return fmt.Sprintf("%d Hz @ %d bits, %d channel(s), %d avg bytes/sec, duration: %ds",
		h.SampleRate, h.BitsPerSample, h.NumChannels, h.ByteRate, h.DurationSeconds())
}
