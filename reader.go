package wavfx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader streams chunks of samples out of a WAV file, one second at a time.
// The header is parsed when the reader is created and owned by the reader.
type Reader struct {
	r      io.ReadSeeker
	closer io.Closer
	header Header

	// pos mirrors the read cursor of r.
	pos       int64
	remaining int64
	buf       []byte
}

// NewReader parses the header from rs and returns a reader positioned right
// after it. The header is not validated.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	h, err := ReadHeader(rs)
	if err != nil {
		return nil, err
	}

	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to get the read position: %w", err)
	}

	return &Reader{r: rs, header: *h, pos: pos}, nil
}

// OpenReader opens the file at path and parses its header.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}

	rd, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rd.closer = f

	return rd, nil
}

// openValidated opens path and rejects unsupported formats.
func openValidated(path string) (*Reader, error) {
	rd, err := OpenReader(path)
	if err != nil {
		return nil, err
	}

	err = rd.header.Validate()
	if err != nil {
		rd.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rd, nil
}

// Header returns a copy of the parsed header.
func (r *Reader) Header() *Header {
	h := r.header
	return &h
}

// ChunkSize is the maximum number of samples returned by ReadChunk: one
// second of audio.
func (r *Reader) ChunkSize() int {
	return int(r.header.SampleRate)
}

// ReadChunk returns the next chunk of the [start, end) window, in seconds.
//
// The first call for a window seeks to start; later calls continue forward
// from where the previous one stopped. A call whose start lies at or after the
// cursor starts the window over. io.EOF is returned once the window, or the
// data chunk, is exhausted.
func (r *Reader) ReadChunk(start, end int) ([]int16, error) {
	offset := byteOffset(r.header.SampleRate, start)

	if r.pos <= offset {
		_, err := r.r.Seek(offset, io.SeekStart)
		if err != nil {
			return nil, fmt.Errorf("failed to seek to second %d: %w", start, err)
		}

		r.pos = offset
		r.remaining = min(
			int64(end-start)*int64(r.header.SampleRate),
			(HeaderSize+int64(r.header.Subchunk2Size)-offset)/bytesPerSample,
		)
	}

	if r.remaining <= 0 {
		return nil, io.EOF
	}

	n := min(int64(r.ChunkSize()), r.remaining)
	if int64(cap(r.buf)) < n*bytesPerSample {
		r.buf = make([]byte, n*bytesPerSample)
	}

	buf := r.buf[:n*bytesPerSample]

	read, err := io.ReadFull(r.r, buf)
	r.pos += int64(read)
	r.remaining -= n

	if err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("failed to read PCM data: %w", err)
		}

		// the file is shorter than its header claims
		r.remaining = 0
		if read < bytesPerSample {
			return nil, io.EOF
		}
	}

	samples := make([]int16, read/bytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(buf[i*bytesPerSample:]))
	}

	return samples, nil
}

// Close releases the underlying file, if the reader opened one. It is safe to
// call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}

	err := r.closer.Close()
	r.closer = nil

	return err
}
