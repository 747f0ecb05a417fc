package ecs

import (
	"sync"

	"github.com/phanxgames/fireworks"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type for fireworks engine events.
var EventType = events.NewEventType[fireworks.Event]()

// DonburiSink queues engine events and publishes them into a Donburi world
// on Flush. Engine events arrive from the redraw pass and from whichever
// goroutine changes the engine state, while a world is not safe for
// concurrent use, so publishing waits for the world's own goroutine.
type DonburiSink struct {
	world donburi.World

	mu      sync.Mutex
	queued  []fireworks.Event
	spare   []fireworks.Event
	dropped int
	limit   int
}

// defaultLimit bounds the queue when Flush is not called.
const defaultLimit = 4096

// NewDonburiSink creates a sink publishing into world.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, limit: defaultLimit}
}

// EmitEvent implements fireworks.EventSink. Events beyond the queue limit
// are dropped and counted.
func (s *DonburiSink) EmitEvent(event fireworks.Event) {
	s.mu.Lock()
	if len(s.queued) >= s.limit {
		s.dropped++
	} else {
		s.queued = append(s.queued, event)
	}
	s.mu.Unlock()
}

// Flush publishes the queued events to the world in arrival order and
// returns how many were published. Call it from the goroutine that owns
// the world, before ProcessEvents.
func (s *DonburiSink) Flush() int {
	s.mu.Lock()
	batch := s.queued
	s.queued = s.spare[:0]
	s.mu.Unlock()

	for _, ev := range batch {
		EventType.Publish(s.world, ev)
	}
	n := len(batch)

	s.mu.Lock()
	s.spare = batch[:0]
	s.mu.Unlock()
	return n
}

// Dropped returns the number of events discarded because the queue was
// full.
func (s *DonburiSink) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
