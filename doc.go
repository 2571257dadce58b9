// Package wavfx applies a chain of editing effects to mono, 16-bit, 44.1 kHz
// PCM WAV files without loading them into memory.
//
// The package is built from a few small pieces:
//
//   - Header reads, validates and writes the canonical 44-byte WAV header.
//   - Reader streams one-second chunks of samples out of a time window.
//   - Writer overwrites samples in place at a time offset.
//   - Mute, Mix and Reverb are the effects, run through Apply.
//   - Pipeline chains the effects through two alternating buffer files.
//   - ParseScript turns a directive file into an ordered list of effects.
//
// Time is always addressed in whole seconds; the byte offset of second s is
// s*SampleRate*2 + HeaderSize.
package wavfx
