package fireworks

// AddTrail appends a trail segment from previous to location. The segment
// never moves; only its alpha fades.
func AddTrail(env *Env, reg *Registry, previous, location Vector, framerate float64) *Particle {
	p := reg.Acquire(KindTrail)
	p.reset(KindTrail, env, framerate)
	p.location = location
	p.previous = previous
	// Gold keeps some contrast on light backgrounds too.
	p.color = ColorGold
	p.tint = ColorGold
	p.lifetime = env.Tuning.Trail.Lifetime
	p.fadeThreshold = env.Tuning.Trail.FadeThreshold
	reg.Add(p)
	return p
}

func updateTrail(p *Particle, _ *Registry, _ float64) {
	p.tint = p.Fade(p.fadeThreshold)
}

func renderTrail(p *Particle, c Canvas) {
	c.DrawLine(p.location.X, p.location.Y, p.previous.X, p.previous.Y, p.tint)
}
