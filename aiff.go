package wavfx

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

// ExportAIFF streams the WAV file at wavPath into w as an AIFF file.
// The whole data chunk is exported, including a trailing partial second.
func ExportAIFF(wavPath string, w io.WriteSeeker) error {
	src, err := openValidated(wavPath)
	if err != nil {
		return err
	}
	defer src.Close()

	h := src.Header()
	enc := aiff.NewEncoder(w, int(h.SampleRate), int(h.BitsPerSample), int(h.NumChannels))

	numSamples := int(h.Subchunk2Size) / bytesPerSample
	end := (numSamples + src.ChunkSize() - 1) / src.ChunkSize()

	buf := &audio.IntBuffer{
		Format:         h.Format(),
		SourceBitDepth: int(h.BitsPerSample),
		Data:           make([]int, 0, src.ChunkSize()),
	}

	for {
		chunk, err := src.ReadChunk(0, end)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("failed to read %s: %w", wavPath, err)
		}

		buf.Data = buf.Data[:0]
		for _, s := range chunk {
			buf.Data = append(buf.Data, int(s))
		}

		err = enc.Write(buf)
		if err != nil {
			return fmt.Errorf("failed to encode aiff: %w", err)
		}
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("failed to close aiff encoder: %w", err)
	}

	return nil
}
