package fireworks

import (
	"fmt"
	"math"
)

// SparkKind selects an explosion pattern.
type SparkKind uint8

const (
	SparkHeart SparkKind = iota // heart outline from a fitted velocity curve
	SparkBall                   // evenly spaced ring with random speeds
	SparkBurst                  // three concentric zones, each its own hue
)

// String returns the lower-case pattern name.
func (k SparkKind) String() string {
	switch k {
	case SparkHeart:
		return "heart"
	case SparkBall:
		return "ball"
	case SparkBurst:
		return "burst"
	default:
		return fmt.Sprintf("spark(%d)", uint8(k))
	}
}

// Burst zones, outer to inner.
var burstZones = [...]struct {
	count int
	scale float64
}{
	{60, 1.0},
	{40, 0.66},
	{20, 0.33},
}

const (
	heartCount = 60
	heartStep  = 6.0 // degrees
	ballCount  = 80
	ballStep   = 4.5
	burstStep  = 18.0

	// denseFactor multiplies every zone of a dense burst: 120 sparks
	// become 480.
	denseFactor = 4
)

// sparkDraw weights the pattern choice: bursts come up half the time.
var sparkDraw = [4]SparkKind{SparkHeart, SparkBall, SparkBurst, SparkBurst}

// AddSparks spawns a randomly chosen explosion pattern at location into reg.
func AddSparks(env *Env, reg *Registry, location Vector, c Color, framerate float64) Burst {
	return ForceSparks(env, reg, sparkDraw[env.Rand.IntN(len(sparkDraw))], location, c, framerate)
}

// ForceSparks spawns the given explosion pattern at location into reg and
// reports how many sparks were added.
func ForceSparks(env *Env, reg *Registry, kind SparkKind, location Vector, c Color, framerate float64) Burst {
	var n int
	switch kind {
	case SparkHeart:
		n = addHeart(env, reg, location, framerate)
	case SparkBall:
		n = addBall(env, reg, location, c, framerate)
	default:
		kind = SparkBurst
		n = addBurst(env, reg, location, framerate)
	}
	return Burst{Kind: kind, Count: n}
}

func addHeart(env *Env, reg *Registry, at Vector, framerate float64) int {
	rng := env.Rand
	shared := 0.8 + rng.Float64()*0.4
	base := env.Tuning.Spark.HeartVelocity / framerate
	for i := 0; i < heartCount; i++ {
		deg := float64(i) * heartStep
		side := 1.0
		if deg > 180 {
			side = -1
			deg = 360 - deg
		}
		vel := heartCurve(deg) * (0.7 + rng.Float64()*0.3) * shared * base
		rad := deg * math.Pi / 180
		v := Vector{math.Sin(rad) * vel * side, math.Cos(rad) * vel}
		spawnSpark(env, reg, SparkHeart, at, v, ColorRed, framerate)
	}
	return heartCount
}

// heartCurve is a cubic fit of spark speed against angle in degrees that
// traces a heart outline over [0, 180].
func heartCurve(x float64) float64 {
	const (
		a = 0.00001932
		b = -0.00580493
		c = 0.48038548
		d = 5
	)
	return (a*x*x*x + b*x*x + c*x + d) / 10
}

func addBall(env *Env, reg *Registry, at Vector, c Color, framerate float64) int {
	rng := env.Rand
	base := env.Tuning.Spark.BallVelocity / framerate
	for i := 0; i < ballCount; i++ {
		rad := float64(i) * ballStep * math.Pi / 180
		vel := (rng.Float64() + 0.2) * base
		v := Vector{math.Sin(rad) * vel, math.Cos(rad) * vel}
		spawnSpark(env, reg, SparkBall, at, v, c, framerate)
	}
	return ballCount
}

func addBurst(env *Env, reg *Registry, at Vector, framerate float64) int {
	rng := env.Rand
	t := env.Tuning.Spark
	mult := 1
	if rng.Float64() < t.DenseChance {
		mult = denseFactor
	}
	base := t.BurstVelocity / framerate
	total := 0
	for _, zone := range burstZones {
		c := HueToColor(rng, 0)
		n := zone.count * mult
		for i := 0; i < n; i++ {
			rad := float64(i) * burstStep * math.Pi / 180
			vel := zone.scale * (0.5 + rng.Float64()*0.5) * base
			v := Vector{math.Sin(rad) * vel, math.Cos(rad) * vel}
			spawnSpark(env, reg, SparkBurst, at, v, c, framerate)
		}
		total += n
	}
	return total
}

func spawnSpark(env *Env, reg *Registry, kind SparkKind, at, velocity Vector, c Color, framerate float64) {
	t := env.Tuning.Spark
	p := reg.Acquire(KindSpark)
	p.reset(KindSpark, env, framerate)
	p.sparkKind = kind
	p.location = at
	p.velocity = velocity
	p.color = c
	p.tint = c
	p.lifetime = t.LifetimeMin + env.Rand.Float64()*t.LifetimeJitter
	p.fadeThreshold = t.FadeThreshold
	reg.Add(p)
}

func updateSpark(p *Particle, _ *Registry, _ float64) {
	p.location = Vector{p.location.X + p.velocity.X, p.location.Y - p.velocity.Y}
	p.velocity.Y -= p.env.Tuning.Spark.Gravity / p.framerate
	p.tint = p.Fade(p.fadeThreshold)
}

func renderSpark(p *Particle, c Canvas) {
	p.drawBlock(c, p.tint, p.env.Tuning.Spark.Size)
}

func sparkDone(p *Particle) bool {
	return lifetimeDone(p) || p.tint.Transparent()
}
