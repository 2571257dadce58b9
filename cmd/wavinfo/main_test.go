package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/wavfx"
)

func writeWav(t *testing.T, path string, h *wavfx.Header) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	_, err = h.WriteTo(f)
	if err != nil {
		t.Fatalf("write header: %v", err)
	}

	_, err = f.Write(make([]byte, h.Subchunk2Size))
	if err != nil {
		t.Fatalf("write samples: %v", err)
	}
}

func TestRunMissingPath(t *testing.T) {
	err := run(nil, &bytes.Buffer{})
	if !errors.Is(err, errMissingPath) {
		t.Fatalf("err=%v, want %v", err, errMissingPath)
	}
}

func TestRunPrintsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.wav")
	writeWav(t, path, wavfx.NewHeader(2*wavfx.SampleRate))

	var out bytes.Buffer

	err := run([]string{path}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, want := range []string{
		"ChunkID: RIFF",
		"Format: WAVE",
		"SampleRate: 44100",
		"BitsPerSample: 16",
		"Duration: 2s",
		"Supported: yes",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")

	h := wavfx.NewHeader(wavfx.SampleRate)
	h.NumChannels = 2
	writeWav(t, path, h)

	var out bytes.Buffer

	err := run([]string{path}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(out.String(), "Supported: no") {
		t.Fatalf("output does not flag the format:\n%s", out.String())
	}
}

func TestRunMissingFile(t *testing.T) {
	err := run([]string{filepath.Join(t.TempDir(), "missing.wav")}, &bytes.Buffer{})
	if !errors.Is(err, wavfx.ErrFileOpen) {
		t.Fatalf("err=%v, want %v", err, wavfx.ErrFileOpen)
	}
}
