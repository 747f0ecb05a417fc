package fireworks

import (
	"testing"
)

func TestRocketReachesApogee(t *testing.T) {
	tuning := DefaultConfig().Tuning
	tuning.Rocket.StraightChance = 1 // no drift
	tuning.Rocket.TrailChance = 0
	env := NewEnv(5, tuning, nil)
	reg := NewRegistry()

	const framerate = 60
	p := NewRocketAt(env, 200, 400, 800, 100, framerate)
	if p.Location() != (Vector{200, 800}) {
		t.Fatalf("launch location = %+v, want (200, 800)", p.Location())
	}
	if p.Apogee() != 100 {
		t.Fatalf("apogee = %v, want 100", p.Apogee())
	}

	tick := 1000.0 / framerate
	y := p.Location().Y
	ticks := 0
	for !p.IsDone() {
		if ticks >= 300 {
			t.Fatalf("rocket not done after 300 ticks, y = %v", p.Location().Y)
		}
		p.Update(reg, tick)
		ticks++
		if p.Location().Y > y {
			t.Fatalf("tick %d: y increased from %v to %v", ticks, y, p.Location().Y)
		}
		y = p.Location().Y
	}
	if p.Location().Y >= 100 {
		t.Errorf("done at y = %v, want above apogee 100", p.Location().Y)
	}
	if p.Location().X != 200 {
		t.Errorf("straight rocket drifted to x = %v", p.Location().X)
	}
	if reg.Len() != 0 {
		t.Errorf("rocket without trail added %d particles", reg.Len())
	}
}

func TestRocketTerminatesFromAnyLaunch(t *testing.T) {
	sizes := []struct{ w, h float64 }{
		{400, 800},
		{1920, 1080},
		{320, 200},
	}
	for _, sz := range sizes {
		for seed := uint64(1); seed <= 20; seed++ {
			env := testEnv(seed)
			reg := NewRegistry()
			p := NewRocket(env, sz.w, sz.h, 60)
			ticks := 0
			for !p.IsDone() {
				p.Update(reg, 1000.0/60)
				ticks++
				if ticks > 10000 {
					t.Fatalf("%vx%v seed %d: rocket never finished", sz.w, sz.h, seed)
				}
			}
		}
	}
}

func TestRocketConstruction(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		env := testEnv(seed)
		p := NewRocket(env, 1000, 500, 60)
		r := env.Tuning.Rocket

		if p.Kind() != KindRocket {
			t.Fatalf("kind = %v", p.Kind())
		}
		x := p.Location().X
		if x < 1000*r.Margin || x > 1000*(1-r.Margin) {
			t.Errorf("seed %d: launch x %v outside the margins", seed, x)
		}
		if p.Location().Y != 500 {
			t.Errorf("seed %d: launch y = %v, want canvas height", seed, p.Location().Y)
		}
		if a := p.Apogee(); a <= 0 || a > 500*r.ApogeeMax {
			t.Errorf("seed %d: apogee %v outside (0, %v]", seed, a, 500*r.ApogeeMax)
		}
		if v := p.Velocity().Y; v != r.Speed/60 {
			t.Errorf("seed %d: launch speed = %v, want %v", seed, v, r.Speed/60)
		}
		if p.Color().A != 255 {
			t.Errorf("seed %d: color not opaque", seed)
		}
	}
}

func TestRocketEmitsTrail(t *testing.T) {
	env := testEnv(9)
	reg := NewRegistry()
	p := NewRocketAt(env, 200, 400, 800, 100, 60)
	p.SetEmitsTrail(true)

	for !p.Decelerating() {
		if reg.Len() != 0 {
			t.Fatalf("trail emitted before the midpoint: %d", reg.Len())
		}
		p.Update(reg, 1000.0/60)
	}
	if reg.Len() != 1 {
		t.Fatalf("registry len = %d, want one trail", reg.Len())
	}
	tr := reg.At(0)
	if tr.Kind() != KindTrail {
		t.Fatalf("kind = %v, want trail", tr.Kind())
	}
	if tr.Location() != p.Location() {
		t.Errorf("trail end = %+v, want rocket location %+v", tr.Location(), p.Location())
	}
	if tr.Previous().Y <= tr.Location().Y {
		t.Errorf("trail start %+v should be below its end %+v", tr.Previous(), tr.Location())
	}
}

func TestRocketDoneOutsideCorridor(t *testing.T) {
	env := testEnv(4)
	p := NewRocketAt(env, 200, 400, 800, 100, 60)
	if p.IsDone() {
		t.Fatal("fresh rocket is done")
	}
	p.location.X = 10 // inside the 15% margin
	if !p.IsDone() {
		t.Error("rocket outside the corridor should be done")
	}
	p.location.X = 200
	p.velocity.Y = 0
	if !p.IsDone() {
		t.Error("rocket with no upward speed should be done")
	}
}

func TestExplodeRocketSpawnsSparks(t *testing.T) {
	env := testEnv(6)
	reg := NewRegistry()
	p := NewRocketAt(env, 200, 400, 800, 100, 60)
	p.location.Y = 90

	b := p.Explode(reg)
	if b.Count == 0 || b.Count != reg.Len() {
		t.Fatalf("burst %+v, registry len %d", b, reg.Len())
	}
	for i := 0; i < reg.Len(); i++ {
		s := reg.At(i)
		if s.Kind() != KindSpark || s.Location() != p.Location() {
			t.Fatalf("spark %d: kind %v at %+v", i, s.Kind(), s.Location())
		}
	}
}
