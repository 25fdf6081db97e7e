package ecs

import (
	"github.com/folio-fx/cursorfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SessionEventType is the Donburi event type for cursorfx session events.
var SessionEventType = events.NewEventType[cursorfx.SessionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on SessionEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) cursorfx.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event cursorfx.SessionEvent) {
	SessionEventType.Publish(s.world, event)
}
