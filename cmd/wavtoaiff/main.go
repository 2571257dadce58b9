// This tool converts a wav file wavfx can process into an identical aiff file
// and stores it in the same folder as the source.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wavfx"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)
	flagPath := flagSet.String("path", "", "The path to the wav file to convert to aiff")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *flagPath == "" {
		return fmt.Errorf("you must set the -path flag")
	}

	sourcePath, err := expandHome(*flagPath)
	if err != nil {
		return err
	}

	outPath := aiffPath(sourcePath)

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	err = wavfx.ExportAIFF(sourcePath, outFile)
	if err != nil {
		return err
	}

	log.Printf("Wav file converted to %s\n", outPath)

	return outFile.Close()
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get the user home directory: %w", err)
	}

	return filepath.Join(usr.HomeDir, path[2:]), nil
}

func aiffPath(sourcePath string) string {
	return sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"
}
