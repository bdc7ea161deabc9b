package ecs

import (
	"github.com/phanxgames/trackswipe"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for trackswipe pointer events.
var InteractionEventType = events.NewEventType[trackswipe.InteractionEvent]()

// ReviewEventType is the Donburi event type for completed reviews, failed
// ones included.
var ReviewEventType = events.NewEventType[trackswipe.ReviewEvent]()

// Store forwards trackswipe events into a Donburi world. It satisfies both
// trackswipe.EntityStore and trackswipe.ReviewSink.
type Store struct {
	world donburi.World
}

var (
	_ trackswipe.EntityStore = (*Store)(nil)
	_ trackswipe.ReviewSink  = (*Store)(nil)
)

// NewDonburiStore creates a Store backed by a Donburi world. Events are
// queued and delivered by events.ProcessAllEvents or the event type's
// ProcessEvents.
func NewDonburiStore(world donburi.World) *Store {
	return &Store{world: world}
}

// EmitEvent publishes a pointer event.
func (s *Store) EmitEvent(event trackswipe.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// EmitReview publishes a review outcome.
func (s *Store) EmitReview(event trackswipe.ReviewEvent) {
	ReviewEventType.Publish(s.world, event)
}
