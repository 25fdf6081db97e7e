package cursorfx

// EventSink receives session notifications. Set one on SessionConfig to
// forward activity into an ECS or a test recorder.
type EventSink interface {
	EmitEvent(event SessionEvent)
}

// SessionEventKind identifies a session notification.
type SessionEventKind uint8

const (
	KindStateChanged SessionEventKind = iota // From and To are set
	KindSpawned                              // Count particles were added this frame
	KindPruned                               // Count expired particles were removed
	KindEvicted                              // Count live particles were dropped by the capacity ceiling
)

// String returns a short name for the kind.
func (k SessionEventKind) String() string {
	switch k {
	case KindStateChanged:
		return "state-changed"
	case KindSpawned:
		return "spawned"
	case KindPruned:
		return "pruned"
	case KindEvicted:
		return "evicted"
	default:
		return "unknown"
	}
}

// SessionEvent is one notification emitted by a Session.
type SessionEvent struct {
	Kind    SessionEventKind
	Session string
	Frame   uint64
	Count   int
	From    State
	To      State
}
