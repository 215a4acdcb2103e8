// Package audio renders the game's sound effects to WAV so browsers can
// fetch them once and play them on demand.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sort"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// ErrUnknownSound is returned for names the bank has no generator for.
var ErrUnknownSound = errors.New("unknown sound")

const DefaultSampleRate = 22050

type generator func(beep.SampleRate, *rand.Rand) beep.Streamer

// Bank synthesizes and caches named sound effects.
type Bank struct {
	rate       beep.SampleRate
	generators map[string]generator
	cache      map[string][]byte
	mu         sync.Mutex
}

// NewBank creates a bank with the game's sound effects. Names match the
// sound names the game plays.
func NewBank(sampleRate int) *Bank {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Bank{
		rate: beep.SampleRate(sampleRate),
		generators: map[string]generator{
			"pocket":     pocketSound,
			"shot":       shotSound,
			"foul":       foulSound,
			"round_won":  roundWonSound,
			"match_over": matchOverSound,
		},
		cache: make(map[string][]byte),
	}
}

// Names returns the available sound names, sorted.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.generators))
	for n := range b.generators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (b *Bank) Has(name string) bool {
	_, ok := b.generators[name]
	return ok
}

// WAV returns the rendered sound, synthesizing it on first use.
func (b *Bank) WAV(name string) ([]byte, error) {
	gen, ok := b.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSound, name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if data, ok := b.cache[name]; ok {
		return data, nil
	}

	// fixed seed keeps noise based sounds byte-identical between renders
	rng := rand.New(rand.NewSource(int64(len(name))))
	var buf writeSeeker
	format := beep.Format{SampleRate: b.rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(&buf, gen(b.rate, rng), format); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	b.cache[name] = buf.data
	return buf.data, nil
}

// Preload renders every sound so the first request does not pay for it.
func (b *Bank) Preload() error {
	for _, name := range b.Names() {
		data, err := b.WAV(name)
		if err != nil {
			return err
		}
		log.Printf("[AUDIO] Rendered %s (%d bytes)", name, len(data))
	}
	return nil
}

// writeSeeker is an in-memory io.WriteSeeker; wav.Encode seeks back to
// patch the header sizes.
type writeSeeker struct {
	data []byte
	pos  int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	if need := w.pos + len(p); need > len(w.data) {
		w.data = append(w.data, make([]byte, need-len(w.data))...)
	}
	copy(w.data[w.pos:], p)
	w.pos += len(p)
	return len(p), nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(w.pos) + offset
	case io.SeekEnd:
		abs = int64(len(w.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("negative position")
	}
	w.pos = int(abs)
	return abs, nil
}
