package wavfx

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// Converter is one effect of a pipeline. The set of converters is closed:
// Mute, Mix and Reverb.
type Converter interface {
	fmt.Stringer
	converter()
}

// Mute silences the [Start, End) window.
type Mute struct {
	Start int
	End   int
}

// Mix averages the Source file into the primary stream from second Start on.
type Mix struct {
	Source string
	Start  int
}

// Reverb feeds the output back into itself over the [Start, End) window.
// Feedback is both the delay in seconds and the gain applied to the delayed
// output.
type Reverb struct {
	Start    int
	End      int
	Feedback float64
}

func (Mute) converter()   {}
func (Mix) converter()    {}
func (Reverb) converter() {}

func (m Mute) String() string { return fmt.Sprintf("mute %d %d", m.Start, m.End) }
func (m Mix) String() string  { return fmt.Sprintf("mix %d %s", m.Start, m.Source) }

func (r Reverb) String() string {
	return fmt.Sprintf("reverberation %d %d %g", r.Start, r.End, r.Feedback)
}

var errUnknownConverter = errors.New("unknown converter")

// Apply runs conv, reading samples from in and overwriting them in out.
// out must already be a byte copy of in.
func Apply(conv Converter, in, out string, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}

	switch c := conv.(type) {
	case Mute:
		log.WithFields(logrus.Fields{
			"effect": "mute",
			"start":  c.Start,
			"end":    c.End,
		}).Info(c.String())

		return applyMute(c, in, out)
	case Mix:
		log.WithFields(logrus.Fields{
			"effect": "mix",
			"source": c.Source,
			"start":  c.Start,
		}).Info(c.String())

		return applyMix(c, in, out)
	case Reverb:
		log.WithFields(logrus.Fields{
			"effect":   "reverberation",
			"start":    c.Start,
			"end":      c.End,
			"feedback": c.Feedback,
		}).Info(c.String())

		return applyReverb(c, in, out)
	default:
		return fmt.Errorf("%w: %T", errUnknownConverter, conv)
	}
}

// checkWindow verifies that conv stays within a stream of duration seconds.
func checkWindow(conv Converter, duration int) error {
	var start, end int

	switch c := conv.(type) {
	case Mute:
		start, end = c.Start, c.End
	case Reverb:
		if math.IsNaN(c.Feedback) || c.Feedback < 0 || c.Feedback > 1 {
			return fmt.Errorf("%w: %q: coefficient must be in [0, 1]", ErrConfigParameter, conv)
		}

		start, end = c.Start, c.End
	case Mix:
		start, end = c.Start, c.Start
	default:
		return fmt.Errorf("%w: %T", errUnknownConverter, conv)
	}

	if start < 0 || end < start {
		return fmt.Errorf("%w: %q: bad window [%d, %d)", ErrConfigParameter, conv, start, end)
	}

	if end > duration {
		return fmt.Errorf("%w: %q: window ends after the input (%ds)", ErrConfigParameter, conv, duration)
	}

	return nil
}

func applyMute(m Mute, in, out string) error {
	src, err := openValidated(in)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := OpenWriter(out)
	if err != nil {
		return err
	}
	defer dst.Close()

	ref := src.Header()
	silence := make([]int16, src.ChunkSize())

	for range m.End - m.Start {
		err = dst.WriteChunk(ref, silence, m.Start)
		if err != nil {
			return fmt.Errorf("mute: %w", err)
		}
	}

	return dst.Close()
}

func applyMix(m Mix, in, out string) error {
	primary, err := openValidated(in)
	if err != nil {
		return err
	}
	defer primary.Close()

	donor, err := openValidated(m.Source)
	if err != nil {
		return err
	}
	defer donor.Close()

	dst, err := OpenWriter(out)
	if err != nil {
		return err
	}
	defer dst.Close()

	ref := primary.Header()
	primaryEnd := ref.DurationSeconds()
	donorEnd := donor.Header().DurationSeconds()

	for {
		donorChunk, err := donor.ReadChunk(0, donorEnd)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("mix: %s: %w", m.Source, err)
		}

		chunk, err := primary.ReadChunk(m.Start, primaryEnd)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("mix: %s: %w", in, err)
		}

		mixSamples(chunk, donorChunk)

		err = dst.WriteChunk(ref, chunk, m.Start)
		if err != nil {
			return fmt.Errorf("mix: %w", err)
		}
	}

	return dst.Close()
}

// mixSamples averages src into dst over the shorter of the two.
func mixSamples(dst, src []int16) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = int16((int32(dst[i]) + int32(src[i])) / 2)
	}
}

func applyReverb(r Reverb, in, out string) error {
	src, err := openValidated(in)
	if err != nil {
		return err
	}
	defer src.Close()

	ref := src.Header()

	line := newDelayLine(r.Feedback, ref.SampleRate)
	if line == nil {
		// no delay, no feedback: out already holds the input
		return nil
	}

	dst, err := OpenWriter(out)
	if err != nil {
		return err
	}
	defer dst.Close()

	for {
		chunk, err := src.ReadChunk(r.Start, r.End)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("reverberation: %w", err)
		}

		line.process(chunk)

		err = dst.WriteChunk(ref, chunk, r.Start)
		if err != nil {
			return fmt.Errorf("reverberation: %w", err)
		}
	}

	return dst.Close()
}

// delayLine is a feedback comb filter: every output sample is fed back into
// the circular buffer, so echoes repeat and decay.
type delayLine struct {
	feedback float64
	buf      []int16
	i        int
}

// newDelayLine returns nil when the delay rounds down to zero samples.
func newDelayLine(feedback float64, sampleRate uint32) *delayLine {
	size := int(feedback * float64(sampleRate))
	if size <= 0 {
		return nil
	}

	return &delayLine{feedback: feedback, buf: make([]int16, size)}
}

// process rewrites samples in place. The position in the line carries over
// from one call to the next.
func (d *delayLine) process(samples []int16) {
	for j, x := range samples {
		k := d.i % len(d.buf)
		y := clampInt16(float64(x) + d.feedback*float64(d.buf[k]))
		d.buf[k] = y
		samples[j] = y
		d.i++
	}
}
