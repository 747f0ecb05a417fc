package fireworks

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// Kind tags the particle variant. Each kind selects a row of the behavior
// table, so adding a kind means adding a row rather than a subtype.
type Kind uint8

const (
	KindRocket Kind = iota // ascends, then explodes into sparks
	KindSpark              // explosion debris
	KindTrail              // fading line behind a rocket
	kindCount
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindRocket:
		return "rocket"
	case KindSpark:
		return "spark"
	case KindTrail:
		return "trail"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Env is the spawn context shared by all particles of one engine: the random
// source, the physics tuning and the fade curve. It is not safe for
// concurrent use; the engine only touches it from the redraw pass.
type Env struct {
	Rand   *rand.Rand
	Tuning Tuning
	Fade   FadeCurve
}

// NewEnv returns an Env seeded deterministically from seed.
func NewEnv(seed uint64, tuning Tuning, fade FadeCurve) *Env {
	if fade == nil {
		fade = ease.Linear
	}
	return &Env{
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Tuning: tuning,
		Fade:   fade,
	}
}

// Burst describes the sparks produced by one explosion.
type Burst struct {
	Kind  SparkKind
	Count int
}

// Particle is a single simulated entity. All variants share this struct; the
// variant-specific fields are only meaningful for their kind.
type Particle struct {
	kind Kind
	env  *Env

	location  Vector
	velocity  Vector // per tick; positive Y moves up the screen
	color     Color  // base color
	tint      Color  // color used for rendering after fading
	age       float64
	lifetime  float64 // seconds; 0 means governed by another condition
	framerate float64

	// sizeMetric is canvas height / 100, refreshed on every Render.
	sizeMetric float64

	// rocket
	rangeX, rangeY Range
	trail          bool
	launchSpeed    float64

	// spark
	sparkKind     SparkKind
	fadeThreshold float64

	// trail
	previous Vector
}

// behavior is one row of the dispatch table.
type behavior struct {
	update  func(p *Particle, reg *Registry, elapsedMs float64)
	render  func(p *Particle, c Canvas)
	done    func(p *Particle) bool
	explode func(p *Particle, reg *Registry) Burst // nil when the kind never spawns children
}

var behaviors = [kindCount]behavior{
	KindRocket: {update: updateRocket, render: renderRocket, done: rocketDone, explode: explodeRocket},
	KindSpark:  {update: updateSpark, render: renderSpark, done: sparkDone},
	KindTrail:  {update: updateTrail, render: renderTrail, done: lifetimeDone},
}

// reset reinitializes p for reuse as a particle of the given kind.
func (p *Particle) reset(kind Kind, env *Env, framerate float64) {
	*p = Particle{kind: kind, env: env, framerate: framerate}
}

// Kind returns the particle variant.
func (p *Particle) Kind() Kind { return p.kind }

// Location returns the current position.
func (p *Particle) Location() Vector { return p.location }

// Velocity returns the per-tick displacement. Positive Y is upward.
func (p *Particle) Velocity() Vector { return p.velocity }

// Color returns the base color.
func (p *Particle) Color() Color { return p.color }

// Tint returns the color used by the most recent render, after fading.
func (p *Particle) Tint() Color { return p.tint }

// Age returns the seconds accumulated through Update.
func (p *Particle) Age() float64 { return p.age }

// Lifetime returns the maximum age in seconds, or 0 when the particle ends
// by another condition.
func (p *Particle) Lifetime() float64 { return p.lifetime }

// Framerate returns the ticks per second the particle was created for.
func (p *Particle) Framerate() float64 { return p.framerate }

// SparkKind returns the explosion pattern a spark belongs to.
func (p *Particle) SparkKind() SparkKind { return p.sparkKind }

// Previous returns the start point of a trail segment.
func (p *Particle) Previous() Vector { return p.previous }

// Update advances the age by elapsedMs and runs the kind's physics. Negative
// elapsed times are ignored so age never decreases. The physics may append
// particles to reg but never removes any.
func (p *Particle) Update(reg *Registry, elapsedMs float64) {
	if elapsedMs > 0 {
		p.age += elapsedMs / 1000
	}
	behaviors[p.kind].update(p, reg, elapsedMs)
}

// IsDone reports whether the particle has reached the end of its life.
func (p *Particle) IsDone() bool {
	return behaviors[p.kind].done(p)
}

// Render draws the particle. The size metric is recomputed from the canvas
// height on every call since the canvas may have been resized.
func (p *Particle) Render(c Canvas) {
	_, h := c.Size()
	p.sizeMetric = h / 100
	behaviors[p.kind].render(p, c)
}

// CanExplode reports whether the particle spawns children when done.
func (p *Particle) CanExplode() bool {
	return behaviors[p.kind].explode != nil
}

// Explode spawns the particle's children into reg. It returns the zero
// Burst for kinds that cannot explode.
func (p *Particle) Explode(reg *Registry) Burst {
	fn := behaviors[p.kind].explode
	if fn == nil {
		return Burst{}
	}
	return fn(p, reg)
}

// Fade returns the base color while age <= threshold; afterwards the alpha
// falls along the env's fade curve and reaches zero once age >= lifetime.
// Fade panics when the particle has no positive lifetime.
func (p *Particle) Fade(threshold float64) Color {
	if p.lifetime <= 0 {
		panic(fmt.Sprintf("fireworks: Fade on %s with non-positive lifetime %v", p.kind, p.lifetime))
	}
	if p.age <= threshold {
		return p.color
	}
	if p.age >= p.lifetime {
		return SetAlpha(p.color, 0)
	}
	curve := FadeCurve(ease.Linear)
	if p.env != nil && p.env.Fade != nil {
		curve = p.env.Fade
	}
	return SetAlpha(p.color, fadeAlpha(curve, p.color.A, p.age-threshold, p.lifetime-threshold))
}

func lifetimeDone(p *Particle) bool {
	return p.lifetime > 0 && p.age >= p.lifetime
}

// drawBlock renders the particle as a stack of rectangles narrowing upward,
// scale times the size metric across.
func (p *Particle) drawBlock(c Canvas, col Color, scale float64) {
	size := math.Round(p.sizeMetric * scale)
	if size < 1 {
		size = 1
	}
	for i := 0.0; i < size; i++ {
		x := p.location.X - (size - i)
		y := p.location.Y - 1 - i
		w := size*2 - 2*i
		h := 2 + 2*i
		c.DrawRect(x, y, w, h, col)
	}
}
