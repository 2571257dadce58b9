package wavfx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// BufferPair holds the two files effects ping-pong between. Each effect reads
// Input and writes Output; Swap then hands the result to the next effect.
type BufferPair struct {
	A, B    string
	swapped bool
}

// NewBufferPair returns the pair tmp1.wav / tmp2.wav inside dir.
func NewBufferPair(dir string) BufferPair {
	return BufferPair{
		A: filepath.Join(dir, "tmp1.wav"),
		B: filepath.Join(dir, "tmp2.wav"),
	}
}

// Input is the buffer holding the latest result.
func (b *BufferPair) Input() string {
	if b.swapped {
		return b.B
	}

	return b.A
}

// Output is the buffer the next effect writes to.
func (b *BufferPair) Output() string {
	if b.swapped {
		return b.A
	}

	return b.B
}

// Swap exchanges the roles of the two buffers.
func (b *BufferPair) Swap() {
	b.swapped = !b.swapped
}

// State is a step of a pipeline run.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRunning
	StateFinalizing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRunning:
		return "running"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	errPipelineUsed   = errors.New("pipeline already ran")
	errBuffersOverlap = errors.New("buffer files must be two distinct paths")
)

// Pipeline runs a queue of converters over Input and stores the result in
// Output. A pipeline runs once.
type Pipeline struct {
	Input      string
	Output     string
	Converters []Converter
	Buffers    BufferPair
	// Log receives one entry per effect. Defaults to the logrus standard logger.
	Log logrus.FieldLogger

	state State
	err   error
}

// NewPipeline returns a pipeline whose buffers live in tmpDir.
func NewPipeline(input, output string, convs []Converter, tmpDir string) *Pipeline {
	return &Pipeline{
		Input:      input,
		Output:     output,
		Converters: convs,
		Buffers:    NewBufferPair(tmpDir),
	}
}

// State returns the current step of the run.
func (p *Pipeline) State() State {
	return p.state
}

// Err returns the error that failed the run, if any.
func (p *Pipeline) Err() error {
	return p.err
}

// Run validates the input, applies every converter in order and moves the
// final buffer to Output. Output is only touched once every converter has
// succeeded. On failure the buffer files are left for the caller to remove.
func (p *Pipeline) Run() error {
	if p.state != StateIdle {
		return errPipelineUsed
	}

	if p.Log == nil {
		p.Log = logrus.StandardLogger()
	}

	err := p.run()
	if err != nil {
		p.state = StateFailed
		p.err = err

		p.Log.WithError(err).Debug("pipeline failed")

		return err
	}

	p.state = StateDone

	return nil
}

func (p *Pipeline) run() error {
	p.state = StateValidating

	err := p.validate()
	if err != nil {
		return err
	}

	p.state = StateRunning

	err = copyFile(p.Input, p.Buffers.Input())
	if err != nil {
		return err
	}

	for len(p.Converters) > 0 {
		conv := p.Converters[0]
		p.Converters = p.Converters[1:]

		in, out := p.Buffers.Input(), p.Buffers.Output()

		p.Log.WithFields(logrus.Fields{"in": in, "out": out}).Debug("preparing buffer")

		err = copyFile(in, out)
		if err != nil {
			return err
		}

		err = Apply(conv, in, out, p.Log)
		if err != nil {
			return fmt.Errorf("%s: %w", conv, err)
		}

		p.Buffers.Swap()
	}

	p.state = StateFinalizing

	err = removeIfExists(p.Buffers.Output())
	if err != nil {
		return err
	}

	err = removeIfExists(p.Output)
	if err != nil {
		return err
	}

	p.Log.WithFields(logrus.Fields{"from": p.Buffers.Input(), "to": p.Output}).Debug("writing output")

	return moveFile(p.Buffers.Input(), p.Output)
}

func (p *Pipeline) validate() error {
	if p.Buffers.A == "" || p.Buffers.B == "" || filepath.Clean(p.Buffers.A) == filepath.Clean(p.Buffers.B) {
		return errBuffersOverlap
	}

	src, err := openValidated(p.Input)
	if err != nil {
		return err
	}

	header := src.Header()
	src.Close()

	p.Log.WithFields(logrus.Fields{"input": p.Input, "format": header.String()}).Debug("input validated")

	duration, err := availableSeconds(p.Input, header)
	if err != nil {
		return err
	}

	for _, conv := range p.Converters {
		err = checkWindow(conv, duration)
		if err != nil {
			return err
		}
	}

	return nil
}

// availableSeconds is the header duration, capped by the samples actually
// stored in the file at path.
func availableSeconds(path string, h *Header) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}

	stored := (info.Size() - HeaderSize) / (bytesPerSample * int64(h.SampleRate))

	return int(min(int64(h.DurationSeconds()), max(stored, 0))), nil
}
