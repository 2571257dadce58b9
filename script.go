package wavfx

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Directive documents one keyword of the directive language.
type Directive struct {
	Name     string
	Synopsis string
	Summary  string
	Example  string
}

// Directives lists the keywords ParseScript understands.
var Directives = []Directive{
	{
		Name:     "mute",
		Synopsis: "mute <left> <right>",
		Summary:  "Silences the interval from second left up to second right.",
		Example:  "mute 0 30",
	},
	{
		Name:     "mix",
		Synopsis: "mix $<n> <start>",
		Summary: "Averages input file n into the stream from second start on.\n" +
			"$0 is the main input, $1 the first extra input and so on.",
		Example: "mix $2 10",
	},
	{
		Name:     "reverberation",
		Synopsis: "reverberation <left> <right> <coefficient>",
		Summary: "Adds a decaying echo to the interval from second left up to second right.\n" +
			"The coefficient in [0, 1] is both the delay in seconds and the feedback gain.",
		Example: "reverberation 1 5 0.4",
	},
}

func isDirective(word string) bool {
	for _, d := range Directives {
		if d.Name == word {
			return true
		}
	}

	return false
}

// Inputs are the WAV files named on the command line. Main is $0, Extra[i]
// is $i+1.
type Inputs struct {
	Main  string
	Extra []string
}

// Lookup resolves a $n file reference.
func (in Inputs) Lookup(ref string) (string, error) {
	num, ok := strings.CutPrefix(ref, "$")
	if !ok {
		return "", fmt.Errorf("%w: file reference %q must look like $n", ErrConfigParameter, ref)
	}

	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return "", fmt.Errorf("%w: file reference %q must look like $n", ErrConfigParameter, ref)
	}

	if n == 0 {
		return in.Main, nil
	}

	if n > len(in.Extra) {
		return "", fmt.Errorf("%w: file reference %s but only %d extra input(s) given", ErrConfigParameter, ref, len(in.Extra))
	}

	return in.Extra[n-1], nil
}

// Script is the result of parsing a directive file.
type Script struct {
	Converters []Converter
	// Warnings holds the directives that were skipped, each wrapping
	// ErrUnknownDirective.
	Warnings []error
}

// ParseScript reads whitespace separated directives from r.
// Malformed arguments fail the parse with ErrConfigParameter. Unknown
// directives are skipped, together with their arguments, and reported in
// Script.Warnings.
func ParseScript(r io.Reader, in Inputs) (*Script, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	ts := &tokens{}
	for scanner.Scan() {
		ts.words = append(ts.words, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read directives: %w", err)
	}

	script := &Script{}

	for ts.more() {
		word := ts.next()

		var (
			conv Converter
			err  error
		)

		switch word {
		case "mute":
			conv, err = parseMute(ts)
		case "mix":
			conv, err = parseMix(ts, in)
		case "reverberation":
			conv, err = parseReverb(ts)
		default:
			script.Warnings = append(script.Warnings, fmt.Errorf("%w: %q", ErrUnknownDirective, word))

			for ts.more() && !isDirective(ts.peek()) {
				ts.next()
			}

			continue
		}

		if err != nil {
			return nil, err
		}

		script.Converters = append(script.Converters, conv)
	}

	return script, nil
}

func parseMute(ts *tokens) (Converter, error) {
	left, err := ts.seconds("mute", "left")
	if err != nil {
		return nil, err
	}

	right, err := ts.seconds("mute", "right")
	if err != nil {
		return nil, err
	}

	if left >= right {
		return nil, fmt.Errorf("%w: mute %d %d: left must be before right", ErrConfigParameter, left, right)
	}

	return Mute{Start: left, End: right}, nil
}

func parseMix(ts *tokens, in Inputs) (Converter, error) {
	if !ts.more() {
		return nil, fmt.Errorf("%w: mix: missing file reference", ErrConfigParameter)
	}

	path, err := in.Lookup(ts.next())
	if err != nil {
		return nil, err
	}

	start, err := ts.seconds("mix", "start")
	if err != nil {
		return nil, err
	}

	return Mix{Source: path, Start: start}, nil
}

func parseReverb(ts *tokens) (Converter, error) {
	left, err := ts.seconds("reverberation", "left")
	if err != nil {
		return nil, err
	}

	right, err := ts.seconds("reverberation", "right")
	if err != nil {
		return nil, err
	}

	if left >= right {
		return nil, fmt.Errorf("%w: reverberation %d %d: left must be before right", ErrConfigParameter, left, right)
	}

	if !ts.more() {
		return nil, fmt.Errorf("%w: reverberation: missing coefficient", ErrConfigParameter)
	}

	word := ts.next()

	k, err := strconv.ParseFloat(word, 64)
	if err != nil || math.IsNaN(k) || k < 0 || k > 1 {
		return nil, fmt.Errorf("%w: reverberation: coefficient %q must be in [0, 1]", ErrConfigParameter, word)
	}

	return Reverb{Start: left, End: right, Feedback: k}, nil
}

type tokens struct {
	words []string
	pos   int
}

func (t *tokens) more() bool { return t.pos < len(t.words) }

func (t *tokens) peek() string { return t.words[t.pos] }

func (t *tokens) next() string {
	w := t.words[t.pos]
	t.pos++

	return w
}

// seconds consumes a non-negative whole number of seconds.
func (t *tokens) seconds(directive, name string) (int, error) {
	if !t.more() {
		return 0, fmt.Errorf("%w: %s: missing %s", ErrConfigParameter, directive, name)
	}

	word := t.next()

	n, err := strconv.Atoi(word)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s: %s %q must be a whole number of seconds", ErrConfigParameter, directive, name, word)
	}

	return n, nil
}
