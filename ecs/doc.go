// Package ecs provides ECS adapters for fireworks engine events.
//
// The primary adapter is [NewDonburiSink], which bridges launch, explode and
// state-change events into a [Donburi] world as typed events. Subscribe to
// [EventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.AddEventSink(sink)
//	// each ECS tick, on the goroutine that owns world:
//	sink.Flush()
//	ecs.EventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
