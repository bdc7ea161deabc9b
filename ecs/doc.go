// Package ecs provides ECS adapters for trackswipe's pointer and review events.
//
// The adapter is [NewDonburiStore], which bridges trackswipe pointer events
// and completed reviews into a [Donburi] world as typed events. Subscribe to
// [InteractionEventType] or [ReviewEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	screen.Tracker().SetEntityStore(store)
//	reviewer := trackswipe.NewReviewer(db, trackswipe.WithReviewSink(store))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
