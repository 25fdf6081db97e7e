// Package ecs provides ECS adapters for cursorfx session events.
//
// The primary adapter is [NewDonburiSink], which forwards session
// notifications (spawns, prunes, evictions, lifecycle changes) into a
// [Donburi] world as typed events. Subscribe to [SessionEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	session, err := cursorfx.NewSession(cursorfx.SessionConfig{Sink: sink, ...})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
