package wavfx

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

// writeFixture writes a supported WAV file holding samples.
func writeFixture(t *testing.T, path string, samples []int16) {
	t.Helper()

	writeFixtureHeader(t, path, NewHeader(len(samples)), samples)
}

// writeFixtureHeader writes h followed by samples, even if they disagree.
func writeFixtureHeader(t *testing.T, path string, h *Header, samples []int16) {
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

	err = binary.Write(f, binary.LittleEndian, samples)
	if err != nil {
		t.Fatalf("write samples: %v", err)
	}

	err = f.Close()
	if err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}

// readFixture returns every sample stored after the header of path.
func readFixture(t *testing.T, path string) []int16 {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	if len(data) < HeaderSize {
		t.Fatalf("%s is %d bytes, shorter than a header", path, len(data))
	}

	samples := make([]int16, (len(data)-HeaderSize)/bytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[HeaderSize+i*bytesPerSample:]))
	}

	return samples
}

func constant(n int, value int16) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = value
	}

	return samples
}

// checkSeconds verifies that every sample of second i equals want[i].
func checkSeconds(t *testing.T, samples []int16, want ...int16) {
	t.Helper()

	if len(samples) != len(want)*SampleRate {
		t.Fatalf("samples=%d, want %d", len(samples), len(want)*SampleRate)
	}

	for i, s := range samples {
		if s != want[i/SampleRate] {
			t.Fatalf("sample %d (second %d)=%d, want %d", i, i/SampleRate, s, want[i/SampleRate])
		}
	}
}

// prepare writes samples to in.wav and a copy to out.wav, the way the
// pipeline readies a buffer before an effect.
func prepare(t *testing.T, samples []int16) (in, out string) {
	t.Helper()

	dir := t.TempDir()
	in = filepath.Join(dir, "in.wav")
	out = filepath.Join(dir, "out.wav")

	writeFixture(t, in, samples)

	err := copyFile(in, out)
	if err != nil {
		t.Fatalf("copy fixture: %v", err)
	}

	return in, out
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}
