package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
	waveNoise
)

// tone streams a fixed length oscillator.
func tone(rate beep.SampleRate, freq float64, d time.Duration, w wave, rng *rand.Rand) beep.Streamer {
	total := rate.N(d)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if pos >= total {
				return i, i > 0
			}
			var v float64
			switch w {
			case waveSine:
				v = math.Sin(2 * math.Pi * phase)
			case waveSquare:
				v = 1
				if phase >= 0.5 {
					v = -1
				}
			case waveSaw:
				v = 2 * (phase - 0.5)
			case waveNoise:
				v = rng.Float64()*2 - 1
			}
			samples[i][0], samples[i][1] = v, v

			phase += freq / float64(rate)
			phase -= math.Floor(phase)
			pos++
		}
		return len(samples), true
	})
}

// shape applies a linear attack and release to s.
func shape(s beep.Streamer, rate beep.SampleRate, d, attack, release time.Duration) beep.Streamer {
	total := rate.N(d)
	att := rate.N(attack)
	rel := rate.N(release)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			if pos >= total {
				return i, i > 0
			}
			g := 1.0
			if att > 0 && pos < att {
				g = float64(pos) / float64(att)
			}
			if rel > 0 && pos >= total-rel {
				g = math.Max(0, float64(total-pos)/float64(rel))
			}
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// gain wraps s in a volume effect. Volume is linear, 0 mutes.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is a shaped sine with a soft octave overtone.
func note(rate beep.SampleRate, freq float64, d time.Duration, rng *rand.Rand) beep.Streamer {
	fund := shape(tone(rate, freq, d, waveSine, rng), rate, d, 5*time.Millisecond, d*2/3)
	over := shape(tone(rate, freq*2, d, waveSine, rng), rate, d, 5*time.Millisecond, d/3)
	return beep.Take(rate.N(d), beep.Mix(gain(fund, 0.7), gain(over, 0.3)))
}

func pocketSound(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	d := 180 * time.Millisecond
	thud := shape(tone(rate, 90, d, waveSine, rng), rate, d, 2*time.Millisecond, 150*time.Millisecond)
	click := shape(tone(rate, 0, 30*time.Millisecond, waveNoise, rng), rate, 30*time.Millisecond, time.Millisecond, 25*time.Millisecond)
	return beep.Take(rate.N(d), beep.Mix(gain(thud, 0.9), gain(click, 0.3)))
}

func shotSound(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	d := 60 * time.Millisecond
	return gain(shape(tone(rate, 0, d, waveNoise, rng), rate, d, time.Millisecond, 50*time.Millisecond), 0.5)
}

func foulSound(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	d := 220 * time.Millisecond
	return gain(shape(tone(rate, 110, d, waveSaw, rng), rate, d, 5*time.Millisecond, 60*time.Millisecond), 0.4)
}

func roundWonSound(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return beep.Seq(
		note(rate, 659.25, 120*time.Millisecond, rng), // E5
		note(rate, 987.77, 220*time.Millisecond, rng), // B5
	)
}

func matchOverSound(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return beep.Seq(
		note(rate, 523.25, 140*time.Millisecond, rng), // C5
		note(rate, 659.25, 140*time.Millisecond, rng), // E5
		note(rate, 783.99, 140*time.Millisecond, rng), // G5
		beep.Silence(rate.N(40*time.Millisecond)),
		note(rate, 1046.5, 360*time.Millisecond, rng), // C6
	)
}
