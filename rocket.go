package fireworks

// NewRocket creates a rocket sized to a width x height canvas with a random
// apogee, launch position, drift, color and trail setting.
func NewRocket(env *Env, width, height, framerate float64) *Particle {
	p := &Particle{}
	initRocket(p, env, width, height, framerate)
	return p
}

// NewRocketAt creates a rocket launched from x at the bottom of the canvas
// that explodes once it climbs past apogee. Drift, color and trail are still
// drawn from env.
func NewRocketAt(env *Env, x, width, height, apogee, framerate float64) *Particle {
	p := &Particle{}
	initRocketAt(p, env, x, width, height, apogee, framerate)
	return p
}

// LaunchRocket acquires a rocket from reg's pool, initializes it for the
// canvas and appends it.
func LaunchRocket(env *Env, reg *Registry, width, height, framerate float64) *Particle {
	p := reg.Acquire(KindRocket)
	initRocket(p, env, width, height, framerate)
	reg.Add(p)
	return p
}

func initRocket(p *Particle, env *Env, width, height, framerate float64) {
	t := env.Tuning.Rocket
	rng := env.Rand

	fraction := t.ApogeeMin + rng.Float64()*(t.ApogeeMax-t.ApogeeMin)
	apogee := height * fraction / float64(1+rng.IntN(t.ApogeeDivisors))

	margin := width * t.Margin
	corridor := Range{margin, width - margin}
	span := corridor.Span() * t.LaunchSpan
	x := corridor.Start + (corridor.Span()-span)/2 + rng.Float64()*span

	initRocketAt(p, env, x, width, height, apogee, framerate)
}

func initRocketAt(p *Particle, env *Env, x, width, height, apogee, framerate float64) {
	t := env.Tuning.Rocket
	rng := env.Rand

	p.reset(KindRocket, env, framerate)
	margin := width * t.Margin
	p.rangeX = Range{margin, width - margin}
	p.rangeY = Range{height, apogee}
	p.location = Vector{x, height}

	p.launchSpeed = t.Speed / framerate
	var vx float64
	if rng.Float64() >= t.StraightChance {
		vx = (rng.Float64()*2 - 1) * height * t.Drift / framerate
	}
	p.velocity = Vector{vx, p.launchSpeed}

	if rng.Float64() < t.AccentChance {
		p.color = ColorDarkRed
	} else {
		p.color = HueToColor(rng, 0)
	}
	p.tint = p.color
	p.trail = rng.Float64() < t.TrailChance
}

// Apogee returns the Y coordinate the rocket explodes above.
func (p *Particle) Apogee() float64 { return p.rangeY.End }

// EmitsTrail reports whether the rocket leaves trail segments.
func (p *Particle) EmitsTrail() bool { return p.trail }

// SetEmitsTrail overrides the trail flag chosen at construction.
func (p *Particle) SetEmitsTrail(on bool) { p.trail = on }

// Decelerating reports whether the rocket has climbed past the midpoint of
// its ascent and is slowing down.
func (p *Particle) Decelerating() bool {
	return p.rangeY.Start-p.location.Y >= p.rangeY.Span()/2
}

func updateRocket(p *Particle, reg *Registry, elapsedMs float64) {
	prev := p.location
	p.location = Vector{p.location.X + p.velocity.X, p.location.Y - p.velocity.Y}

	half := p.rangeY.Span() / 2
	if half <= 0 {
		return
	}
	climbed := p.rangeY.Start - p.location.Y
	if climbed < half {
		// Full thrust up to the midpoint.
		p.velocity.Y = p.launchSpeed
		return
	}

	t := p.env.Tuning.Rocket
	remaining := p.location.Y - p.rangeY.End
	if remaining < 0 {
		remaining = 0
	}
	ticks := elapsedMs / 1000 * p.framerate
	v0 := p.launchSpeed
	vy := p.velocity.Y - t.Braking*v0*v0*ticks*remaining/(half*half)
	if floor := v0 * t.MinSpeedFraction; vy < floor {
		vy = floor
	}
	p.velocity.Y = vy

	if p.trail && reg != nil {
		AddTrail(p.env, reg, prev, p.location, p.framerate)
	}
}

func renderRocket(p *Particle, c Canvas) {
	p.drawBlock(c, p.color, p.env.Tuning.Rocket.Size)
}

func rocketDone(p *Particle) bool {
	return p.location.Y < p.rangeY.End ||
		!p.rangeX.Contains(p.location.X) ||
		p.velocity.Y <= 0
}

func explodeRocket(p *Particle, reg *Registry) Burst {
	return AddSparks(p.env, reg, p.location, p.color, p.framerate)
}
