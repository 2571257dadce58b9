package wavfx

import (
	"errors"
	"math"
)

const (
	// HeaderSize is the byte length of the canonical WAV header.
	HeaderSize = 44
	// SampleRate is the only sample rate the tool processes.
	SampleRate = 44100
	// BitDepth is the only sample width the tool processes.
	BitDepth = 16
	// NumChans is the only channel layout the tool processes.
	NumChans = 1

	wavFormatPCM   = 1
	bytesPerSample = BitDepth / 8
)

var (
	// ErrFileOpen is returned when a path can't be opened for reading or writing.
	ErrFileOpen = errors.New("failed to open the file, check the file name or path")
	// ErrNotRiffWave is returned when the header tags are not RIFF/WAVE.
	ErrNotRiffWave = errors.New("not a valid RIFF/WAVE file")
	// ErrUnsupportedFormat is returned for anything but PCM, mono, 16 bit, 44100 Hz.
	ErrUnsupportedFormat = errors.New("only PCM, mono, 16 bit, 44100 Hz audio is supported")
	// ErrConfigParameter is returned for malformed or out of range directive arguments.
	ErrConfigParameter = errors.New("invalid directive parameter")
	// ErrUnknownDirective flags a directive the parser does not know. It is
	// only ever reported as a warning.
	ErrUnknownDirective = errors.New("unknown directive")
)

// byteOffset returns the file offset of the first sample of second sec.
func byteOffset(sampleRate uint32, sec int) int64 {
	return int64(sec)*int64(sampleRate)*bytesPerSample + HeaderSize
}

func clampInt16(value float64) int16 {
	if value > math.MaxInt16 {
		return math.MaxInt16
	}

	if value < math.MinInt16 {
		return math.MinInt16
	}

	return int16(value)
}
