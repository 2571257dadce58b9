package wavfx

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

func ExampleNewHeader() {
	h := NewHeader(3*SampleRate + 100)

	fmt.Println(h)
	fmt.Println("valid:", h.Validate() == nil)
	// Output:
	// 44100 Hz @ 16 bits, 1 channel(s), 88200 avg bytes/sec, duration: 3s
	// valid: true
}

func ExampleParseScript() {
	src := "mute 0 30\nmix $1 10\necho 3\nreverberation 1 5 0.4\n"

	script, err := ParseScript(strings.NewReader(src), Inputs{Main: "in.wav", Extra: []string{"drums.wav"}})
	if err != nil {
		log.Fatal(err)
	}

	for _, conv := range script.Converters {
		fmt.Println(conv)
	}

	for _, warning := range script.Warnings {
		fmt.Println("warning:", warning)
	}
	// Output:
	// mute 0 30
	// mix 10 drums.wav
	// reverberation 1 5 0.4
	// warning: unknown directive: "echo"
}

func ExamplePipeline_Run() {
	dir, err := os.MkdirTemp("", "wavfx-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "in.wav")
	output := filepath.Join(dir, "out.wav")

	file, err := os.Create(input)
	if err != nil {
		log.Fatal(err)
	}

	// two seconds of silence
	h := NewHeader(2 * SampleRate)
	if _, err := h.WriteTo(file); err != nil {
		log.Fatal(err)
	}

	if _, err := file.Write(make([]byte, h.Subchunk2Size)); err != nil {
		log.Fatal(err)
	}

	file.Close()

	p := NewPipeline(input, output, []Converter{
		Mute{Start: 0, End: 1},
		Reverb{Start: 0, End: 2, Feedback: 0.5},
	}, dir)
	p.Log = quietLogger()

	if err := p.Run(); err != nil {
		log.Fatal(err)
	}

	rd, err := OpenReader(output)
	if err != nil {
		log.Fatal(err)
	}
	defer rd.Close()

	fmt.Println(p.State(), rd.Header())
	// Output: done 44100 Hz @ 16 bits, 1 channel(s), 88200 avg bytes/sec, duration: 2s
}
