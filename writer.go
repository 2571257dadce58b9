package wavfx

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Writer overwrites samples of an existing WAV file in place.
// It never truncates the file; the destination is expected to be a full-size
// copy of the source.
type Writer struct {
	w      io.WriteSeeker
	closer io.Closer

	// pos mirrors the write cursor of w.
	pos int64
	buf []byte
}

// NewWriter returns a writer over ws, starting at its current position.
func NewWriter(ws io.WriteSeeker) (*Writer, error) {
	pos, err := ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to get the write position: %w", err)
	}

	return &Writer{w: ws, pos: pos}, nil
}

// OpenWriter opens the existing file at path for reading and writing.
func OpenWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}

	wr, err := NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	wr.closer = f

	return wr, nil
}

// WriteChunk writes samples at the offset of startSecond, computed from the
// sample rate of ref. The writer only seeks when its cursor is before that
// offset, so consecutive chunks of one window land one after the other.
func (w *Writer) WriteChunk(ref *Header, samples []int16, startSecond int) error {
	offset := byteOffset(ref.SampleRate, startSecond)

	if w.pos < offset {
		_, err := w.w.Seek(offset, io.SeekStart)
		if err != nil {
			return fmt.Errorf("failed to seek to second %d: %w", startSecond, err)
		}

		w.pos = offset
	}

	size := len(samples) * bytesPerSample
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}

	buf := w.buf[:size]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*bytesPerSample:], uint16(s))
	}

	n, err := w.w.Write(buf)
	w.pos += int64(n)

	if err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}

	return nil
}

// Close flushes and releases the underlying file, if the writer opened one.
// It is safe to call more than once.
func (w *Writer) Close() error {
	if w == nil || w.closer == nil {
		return nil
	}

	if f, ok := w.closer.(*os.File); ok {
		err := f.Sync()
		if err != nil {
			f.Close()
			w.closer = nil

			return fmt.Errorf("failed to sync %s: %w", f.Name(), err)
		}
	}

	err := w.closer.Close()
	w.closer = nil

	return err
}
