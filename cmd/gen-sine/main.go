// This tool writes a mono, 16 bit, 44.1 kHz sine wav file, handy as input for
// wavfx. A frequency of 0 writes silence.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/wavfx"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Int("length", 5, "length in seconds of output file")
	amplitude := flagSet.Float64("amplitude", 0.5, "peak amplitude in [0, 1]")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *length < 0 {
		return fmt.Errorf("length must not be negative: %d", *length)
	}

	log.Printf("generating a %d sec sine wav at %f hz", *length, *frequency)

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer file.Close()

	header := wavfx.NewHeader(*length * wavfx.SampleRate)

	_, err = header.WriteTo(file)
	if err != nil {
		return err
	}

	wavOut, err := wavfx.NewWriter(file)
	if err != nil {
		return err
	}

	peak := math.Min(math.Max(*amplitude, 0), 1) * math.MaxInt16
	step := 2 * math.Pi * *frequency / wavfx.SampleRate
	chunk := make([]int16, wavfx.SampleRate)

	for sec := range *length {
		for i := range chunk {
			n := sec*wavfx.SampleRate + i
			chunk[i] = int16(peak * math.Sin(step*float64(n)))
		}

		err := wavOut.WriteChunk(header, chunk, sec)
		if err != nil {
			return err
		}
	}

	return file.Close()
}
