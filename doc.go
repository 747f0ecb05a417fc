// Package fireworks is a particle firework display engine.
//
// An [Engine] launches rockets from the bottom of a canvas at a configurable
// rate. Each rocket climbs to a random apogee, optionally leaving a trail,
// and explodes into one of several spark patterns that fall and fade out.
// The engine is independent of any windowing library: it draws through the
// [Canvas] interface and asks a [Host] for redraws from its own pacing loop.
//
// # Quick start
//
// The ebitenhost package opens a window and wires everything for you:
//
//	host := ebitenhost.NewHost()
//	engine := fireworks.New(host, fireworks.Options{})
//	err := ebitenhost.Run(engine, host, ebitenhost.RunConfig{Title: "Fireworks"})
//
// termhost does the same in a terminal with tcell. For headless runs, pass
// ManualPacing, drive [Engine.Redraw] yourself with a [DisplayList] and a
// simulated [Clock], and record every frame with a [CSVWriter].
//
// # Run states
//
// An engine is Stopped, Running or Paused. Running updates physics and
// launches rockets; Paused keeps rendering the frozen scene; Stopped draws
// nothing and holds no particles. Changing the canvas size while Running
// discards every particle.
//
// # Configuration
//
// [DefaultConfig] returns the embedded defaults.yaml. [LoadConfig] overlays
// a YAML file on top of it and [Config.Validate] clamps the rates to their
// legal ranges. The tuning section controls rocket speed, apogee, drift,
// spark lifetime, gravity and trail length.
//
// # Events
//
// Launches, explosions and state changes are delivered to every registered
// [EventSink] after the frame's locks are released. The audio package plays
// a sound per event; the ecs package forwards them to a donburi world.
package fireworks
