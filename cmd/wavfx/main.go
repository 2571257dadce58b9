// This tool applies the effects listed in a directive file to a mono, 16 bit,
// 44.1 kHz WAV file and writes the result to a new file.
//
//	wavfx -c config.txt out.wav in.wav [extra.wav ...]
//	wavfx -h
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wavfx"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

var (
	errUsage      = errors.New("usage error")
	errNoConfig   = errors.New("the configuration file was not given, use -c <file.txt>")
	errConfigName = errors.New("the configuration file must be a .txt file")
	errWavName    = errors.New("audio files must be .wav files")
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}

	red.Fprintf(os.Stderr, "Error: %v\n", err)

	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, "Run wavfx -h for help.")
	}

	os.Exit(1)
}

func run(args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("wavfx", flag.ContinueOnError)
	flagSet.SetOutput(stderr)

	help := flagSet.Bool("h", false, "print help and exit")
	config := flagSet.String("c", "", "directive file (.txt)")
	verbose := flagSet.Bool("v", false, "verbose logging")
	aiffPath := flagSet.String("aiff", "", "also export the result to this AIFF file")
	tmpDir := flagSet.String("tmp", "", "directory for the working buffers (default: the output directory)")

	err := flagSet.Parse(args)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if *help {
		printHelp(stdout, flagSet)
		return nil
	}

	if *config == "" {
		return fmt.Errorf("%w: %w", errUsage, errNoConfig)
	}

	if !hasNamedSuffix(*config, ".txt") {
		return fmt.Errorf("%w: %w: %q", errUsage, errConfigName, *config)
	}

	files := flagSet.Args()
	if len(files) < 2 {
		return fmt.Errorf("%w: need an output and an input .wav file", errUsage)
	}

	for _, name := range files {
		if !hasNamedSuffix(name, ".wav") {
			return fmt.Errorf("%w: %w: %q", errUsage, errWavName, name)
		}
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	output := files[0]
	inputs := wavfx.Inputs{Main: files[1], Extra: files[2:]}

	script, err := loadScript(*config, inputs)
	if err != nil {
		return err
	}

	for _, warning := range script.Warnings {
		log.Warn(warning)
	}

	dir := *tmpDir
	if dir == "" {
		dir = filepath.Dir(output)
	}

	workDir, err := os.MkdirTemp(dir, ".wavfx-")
	if err != nil {
		return fmt.Errorf("failed to create the working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	pipeline := wavfx.NewPipeline(inputs.Main, output, script.Converters, workDir)
	pipeline.Log = log

	err = pipeline.Run()
	if err != nil {
		return err
	}

	log.WithField("output", output).Info("done")

	if *aiffPath != "" {
		return exportAIFF(output, *aiffPath)
	}

	return nil
}

func loadScript(path string, inputs wavfx.Inputs) (*wavfx.Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wavfx.ErrFileOpen, err)
	}
	defer file.Close()

	return wavfx.ParseScript(file, inputs)
}

func exportAIFF(wavPath, aiffPath string) error {
	out, err := os.Create(aiffPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", aiffPath, err)
	}

	err = wavfx.ExportAIFF(wavPath, out)
	if err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// hasNamedSuffix reports whether name ends with suffix and has a non-empty
// base name in front of it.
func hasNamedSuffix(name, suffix string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, suffix) && len(base) > len(suffix)
}

func printHelp(out io.Writer, flagSet *flag.FlagSet) {
	yellow.Fprintln(out, "wavfx")
	fmt.Fprintln(out, "Applies effects to a mono, 16 bit, 44100 Hz PCM WAV file.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  wavfx -c <config.txt> <output.wav> <input.wav> [extra.wav ...]")
	fmt.Fprintln(out, "  wavfx -h")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	flagSet.SetOutput(out)
	flagSet.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "The configuration file holds directives applied in order:")
	fmt.Fprintln(out)

	for _, d := range wavfx.Directives {
		yellow.Fprintf(out, "  %s\n", d.Synopsis)

		for _, line := range strings.Split(d.Summary, "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}

		fmt.Fprintf(out, "    example: %s\n\n", d.Example)
	}
}
