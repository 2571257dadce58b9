// This tool prints the header of the passed wav file and whether wavfx can
// process it.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/wavfx"
)

const missingPathMessage = "You must pass the path of the file to inspect"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	rd, err := wavfx.OpenReader(args[0])
	if err != nil {
		return err
	}
	defer rd.Close()

	h := rd.Header()

	fmt.Fprintf(out, "ChunkID: %s\n", h.ChunkID[:])
	fmt.Fprintf(out, "ChunkSize: %d\n", h.ChunkSize)
	fmt.Fprintf(out, "Format: %s\n", h.Format[:])
	fmt.Fprintf(out, "AudioFormat: %d\n", h.AudioFormat)
	fmt.Fprintf(out, "NumChannels: %d\n", h.NumChannels)
	fmt.Fprintf(out, "SampleRate: %d\n", h.SampleRate)
	fmt.Fprintf(out, "ByteRate: %d\n", h.ByteRate)
	fmt.Fprintf(out, "BlockAlign: %d\n", h.BlockAlign)
	fmt.Fprintf(out, "BitsPerSample: %d\n", h.BitsPerSample)
	fmt.Fprintf(out, "DataSize: %d\n", h.Subchunk2Size)
	fmt.Fprintf(out, "Duration: %ds\n", h.DurationSeconds())

	if err := h.Validate(); err != nil {
		fmt.Fprintf(out, "Supported: no (%v)\n", err)
		return nil
	}

	fmt.Fprintln(out, "Supported: yes")

	return nil
}
