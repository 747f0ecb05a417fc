// Package audio plays short synthesized sounds for engine events: a rising
// whoosh when a rocket launches and a decaying pop, pitched by the rocket's
// hue, when it explodes.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/fireworks"
)

// DefaultSampleRate is used when Options.SampleRate is zero.
const DefaultSampleRate = beep.SampleRate(44100)

const (
	whooshDuration = 180 * time.Millisecond
	popDuration    = 300 * time.Millisecond
	whooshFrom     = 300.0 // Hz
	whooshTo       = 900.0
	popBase        = 220.0 // Hz at hue 0
	popOctaves     = 2.0   // pitch range across the hue circle
	whooshGain     = 0.15
	popGain        = 0.35
)

// Options configures a Player.
type Options struct {
	SampleRate beep.SampleRate
	// Volume scales every sound; 0 means 1.
	Volume float64
	Logger *slog.Logger
}

// Player turns engine events into sounds. It implements fireworks.EventSink.
type Player struct {
	sr     beep.SampleRate
	volume float64
	play   func(...beep.Streamer)
	log    *slog.Logger
	muted  atomic.Bool
}

// New initializes the speaker and returns a player writing to it.
func New(opts Options) (*Player, error) {
	p := newPlayer(opts, speaker.Play)
	if err := speaker.Init(p.sr, p.sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return p, nil
}

// NewWithOutput returns a player handing its streamers to play instead of
// the speaker.
func NewWithOutput(opts Options, play func(...beep.Streamer)) *Player {
	return newPlayer(opts, play)
}

func newPlayer(opts Options, play func(...beep.Streamer)) *Player {
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Volume <= 0 {
		opts.Volume = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Player{sr: opts.SampleRate, volume: opts.Volume, play: play, log: opts.Logger}
}

// SetMuted silences or restores playback.
func (p *Player) SetMuted(m bool) { p.muted.Store(m) }

// Muted reports whether playback is silenced.
func (p *Player) Muted() bool { return p.muted.Load() }

// EmitEvent plays the sound for ev. State changes are silent.
func (p *Player) EmitEvent(ev fireworks.Event) {
	if p.muted.Load() {
		return
	}
	switch ev.Type {
	case fireworks.EventLaunch:
		p.play(p.Whoosh())
	case fireworks.EventExplode:
		s, err := p.Pop(ev.Color.Hue(), ev.Count)
		if err != nil {
			p.log.Warn("pop sound", "error", err)
			return
		}
		p.play(s)
	}
}

// Whoosh returns a short rising chirp.
func (p *Player) Whoosh() beep.Streamer {
	n := p.sr.N(whooshDuration)
	return envelope(chirp(p.sr, whooshFrom, whooshTo, n), n, whooshGain*p.volume)
}

// Pop returns a decaying tone whose pitch rises with hue over popOctaves.
// Bigger explosions are slightly louder.
func (p *Player) Pop(hue float64, sparks int) (beep.Streamer, error) {
	tone, err := generators.SineTone(p.sr, PopFrequency(hue))
	if err != nil {
		return nil, fmt.Errorf("creating tone: %w", err)
	}
	n := p.sr.N(popDuration)
	gain := popGain * p.volume * (0.75 + 0.25*math.Min(float64(sparks)/480, 1))
	return envelope(tone, n, gain), nil
}

// PopFrequency maps a hue in degrees to the explosion pitch in Hz.
func PopFrequency(hue float64) float64 {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	return popBase * math.Pow(2, popOctaves*hue/360)
}

// envelope limits s to n samples with a short linear attack and a
// quadratic decay, scaled by gain.
func envelope(s beep.Streamer, n int, gain float64) beep.Streamer {
	attack := max(n/50, 1)
	pos := 0
	src := beep.Take(n, s)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		k, ok := src.Stream(samples)
		for i := 0; i < k; i++ {
			var g float64
			if pos < attack {
				g = float64(pos) / float64(attack)
			} else {
				rest := 1 - float64(pos-attack)/float64(n-attack)
				g = rest * rest
			}
			samples[i][0] *= g * gain
			samples[i][1] *= g * gain
			pos++
		}
		return k, ok
	})
}

// chirp is a sine sweeping linearly from f0 to f1 Hz over n samples.
func chirp(sr beep.SampleRate, f0, f1 float64, n int) beep.Streamer {
	phase := 0.0
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		k := min(len(samples), n-pos)
		for i := 0; i < k; i++ {
			f := f0 + (f1-f0)*float64(pos)/float64(n)
			phase += 2 * math.Pi * f / float64(sr)
			v := math.Sin(phase)
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return k, true
	})
}
