package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/phanxgames/fireworks"
)

// drain reads s to the end and returns the sample count and peak amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestSoundLengths(t *testing.T) {
	p := NewWithOutput(Options{}, func(...beep.Streamer) {})

	pop, err := p.Pop(120, 80)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		s       beep.Streamer
		samples int
		maxPeak float64
	}{
		{"whoosh", p.Whoosh(), DefaultSampleRate.N(whooshDuration), whooshGain},
		{"pop", pop, DefaultSampleRate.N(popDuration), popGain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(tt.s)
			if n != tt.samples {
				t.Errorf("samples = %d, want %d", n, tt.samples)
			}
			if peak <= 0 || peak > tt.maxPeak+1e-9 {
				t.Errorf("peak = %v, want in (0, %v]", peak, tt.maxPeak)
			}
		})
	}
}

func TestPopFrequency(t *testing.T) {
	tests := []struct {
		hue  float64
		want float64
	}{
		{0, popBase},
		{180, popBase * 2},
		{360, popBase},
		{-180, popBase * 2},
	}
	for _, tt := range tests {
		if got := PopFrequency(tt.hue); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PopFrequency(%v) = %v, want %v", tt.hue, got, tt.want)
		}
	}
	if PopFrequency(90) >= PopFrequency(270) {
		t.Error("pitch should rise with hue")
	}
}

func TestEmitEvent(t *testing.T) {
	var played int
	p := NewWithOutput(Options{}, func(s ...beep.Streamer) { played += len(s) })

	p.EmitEvent(fireworks.Event{Type: fireworks.EventLaunch})
	p.EmitEvent(fireworks.Event{Type: fireworks.EventExplode, Color: fireworks.ColorGold, Count: 120})
	p.EmitEvent(fireworks.Event{Type: fireworks.EventStateChange, State: fireworks.Paused})
	if played != 2 {
		t.Fatalf("played = %d, want 2", played)
	}

	p.SetMuted(true)
	p.EmitEvent(fireworks.Event{Type: fireworks.EventLaunch})
	if played != 2 {
		t.Errorf("muted player played a sound")
	}
}
