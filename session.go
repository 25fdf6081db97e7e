package cursorfx

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ErrNoInput is returned by NewSession when no InputSource is configured.
var ErrNoInput = errors.New("cursorfx: no input source")

// defaultFadeIn is the duration in seconds of the fade when a suspended layer resumes.
const defaultFadeIn = 0.4

// State is the lifecycle state of a Session.
type State uint8

const (
	StateUninitialized State = iota // created, Start not called
	StateRunning                    // listeners attached, frames advance
	StateSuspended                  // reduced motion or no drawable surface
	StateDestroyed                  // terminal
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// SessionConfig configures a Session.
type SessionConfig struct {
	// Name labels debug output and events.
	Name string
	// Policy is copied; later changes to it do not affect the session.
	Policy Policy
	Forces Forces
	// Input delivers pointer events. Required. The session polls it once per
	// Update, so each session needs its own source.
	Input InputSource
	// Sprites are shared and never disposed by the session. A nil or empty
	// set leaves the layer running without spawning.
	Sprites *SpriteSet
	// Bounds is the host element in screen coordinates. An empty rectangle
	// keeps the session suspended until Resize supplies a drawable one.
	Bounds Rect
	// ReducedMotion starts the session suspended.
	ReducedMotion bool
	// IgnoreKeyboard drops clicks synthesized from Enter or Space, for layers
	// that should not react to keys pressed for another element.
	IgnoreKeyboard bool
	// PruneEvery removes expired particles every N frames. Zero means 1.
	PruneEvery int
	BlendMode  BlendMode
	// FadeIn is the layer fade duration in seconds after a resume. Zero
	// selects the default; negative disables the fade.
	FadeIn float32
	Sink   EventSink
	// Rand seeds spawn and wander randomness. Nil selects an unseeded source.
	Rand *rand.Rand
	// ScreenshotDir receives PNGs queued with Screenshot. Defaults to "screenshots".
	ScreenshotDir string
}

// Stats is a snapshot of session counters.
type Stats struct {
	State   State
	Live    int
	Spawned int
	Pruned  int
	Evicted int
	Frames  uint64
}

// Session is one mounted particle layer. It owns its store, surface and
// listeners; several sessions may run side by side.
//
// All methods except SetReducedMotion must be called from the goroutine that
// drives Update and Draw.
type Session struct {
	name    string
	state   State
	store   *Store
	spawner *Spawner
	forces  Forces
	input   InputSource
	sprites *SpriteSet
	blend   BlendMode
	sink    EventSink
	rng     *rand.Rand

	handles  []CallbackHandle
	renderer *Renderer
	bounds   Rect
	cursor   Attractor // surface-local

	reduced    atomic.Bool
	noKeyboard bool
	pruneEvery uint64
	fadeIn     float32
	fade       *gween.Tween
	layerAlpha float64

	stats Stats
	debug *debugState

	screenshotDir   string
	screenshotQueue []string
}

// NewSession validates cfg and returns an uninitialized session.
func NewSession(cfg SessionConfig) (*Session, error) {
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}
	if cfg.Input == nil {
		return nil, ErrNoInput
	}
	rng := cfg.Rand
	if rng == nil {
		rng = newRand()
	}
	prune := cfg.PruneEvery
	if prune <= 0 {
		prune = 1
	}
	fadeIn := cfg.FadeIn
	if fadeIn == 0 {
		fadeIn = defaultFadeIn
	}
	name := cfg.Name
	if name == "" {
		name = "cursorfx"
	}
	shots := cfg.ScreenshotDir
	if shots == "" {
		shots = defaultScreenshotDir
	}

	s := &Session{
		name:       name,
		store:      NewStore(cfg.Policy.Capacity),
		spawner:    NewSpawner(cfg.Policy, rng),
		forces:     cfg.Forces,
		input:      cfg.Input,
		sprites:    cfg.Sprites,
		blend:      cfg.BlendMode,
		sink:       cfg.Sink,
		rng:        rng,
		bounds:     cfg.Bounds,
		pruneEvery: uint64(prune),
		fadeIn:     fadeIn,
		layerAlpha: 1,
		noKeyboard: cfg.IgnoreKeyboard,

		screenshotDir: shots,
	}
	s.spawner.SetBounds(cfg.Bounds)
	s.reduced.Store(cfg.ReducedMotion)
	return s, nil
}

// Start mounts the layer. It is a no-op unless the session is uninitialized.
func (s *Session) Start() {
	if s.state != StateUninitialized {
		return
	}
	if s.reduced.Load() {
		s.setState(StateSuspended)
		return
	}
	s.resume(false)
}

// Destroy tears the layer down: listeners are removed, the surface is
// released and every particle is dropped. Safe to call more than once;
// Update and Draw are no-ops afterwards.
func (s *Session) Destroy() {
	if s.state == StateDestroyed {
		return
	}
	s.release()
	if s.debug != nil {
		s.debug.dispose()
	}
	s.setState(StateDestroyed)
}

// SetReducedMotion records the motion preference. It may be called from any
// goroutine; the change takes effect at the start of the next Update.
func (s *Session) SetReducedMotion(reduced bool) {
	s.reduced.Store(reduced)
}

// Resize moves or resizes the host element. An empty rectangle suspends a
// running layer until a drawable size arrives. Ignored after Destroy.
func (s *Session) Resize(bounds Rect) {
	if s.state == StateDestroyed {
		return
	}
	s.bounds = bounds
	s.spawner.SetBounds(bounds)
	if bounds.Empty() {
		if s.state == StateRunning {
			s.release()
			s.setState(StateSuspended)
		}
		return
	}
	if s.renderer != nil {
		s.renderer.Resize(int(bounds.Width), int(bounds.Height))
	}
}

// Update advances the layer by one frame: input is polled, queued spawns are
// flushed, physics steps every particle and expired particles are pruned.
func (s *Session) Update() {
	switch s.state {
	case StateUninitialized, StateDestroyed:
		return
	}
	s.applyMotionPreference()
	if s.state != StateRunning {
		return
	}

	s.input.Poll()

	spawned, evicted := s.spawner.Flush(s.store, s.sprites.Len())
	s.stats.Spawned += spawned
	s.stats.Evicted += evicted

	Step(s.store, s.forces, s.cursor, s.localBounds(), s.rng)

	s.stats.Frames++
	pruned := 0
	if s.stats.Frames%s.pruneEvery == 0 {
		pruned = s.store.Prune()
		s.stats.Pruned += pruned
	}

	if s.fade != nil {
		v, done := s.fade.Update(float32(1.0 / float64(ebiten.TPS())))
		s.layerAlpha = float64(v)
		if done {
			s.fade = nil
			s.layerAlpha = 1
		}
	}

	if spawned > 0 {
		s.emit(SessionEvent{Kind: KindSpawned, Count: spawned})
	}
	if evicted > 0 {
		s.emit(SessionEvent{Kind: KindEvicted, Count: evicted})
	}
	if pruned > 0 {
		s.emit(SessionEvent{Kind: KindPruned, Count: pruned})
	}
	if s.debug != nil {
		s.debug.record(s, spawned, pruned, evicted)
	}
}

// Draw paints the current particles onto screen at the bounds origin.
func (s *Session) Draw(screen *ebiten.Image) {
	if s.state != StateRunning || s.renderer == nil {
		return
	}
	drawn := s.renderer.Paint(s.store, s.layerAlpha)
	s.flushScreenshots()
	s.renderer.Composite(screen, s.bounds.Origin())
	if s.debug != nil {
		s.debug.draw(screen, s, drawn)
	}
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Store returns the particle store. Consumers must iterate it fresh each
// frame and not keep references to individual particles.
func (s *Session) Store() *Store {
	return s.store
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	st := s.stats
	st.State = s.state
	st.Live = s.store.Len()
	return st
}

// LayerAlpha returns the current layer opacity, below 1 while fading in.
func (s *Session) LayerAlpha() float64 {
	return s.layerAlpha
}

func (s *Session) applyMotionPreference() {
	reduced := s.reduced.Load()
	switch {
	case reduced && s.state == StateRunning:
		s.release()
		s.setState(StateSuspended)
	case !reduced && s.state == StateSuspended:
		s.resume(s.fadeIn > 0)
	}
}

// resume allocates the surface and attaches listeners. Without a drawable
// surface the session stays suspended.
func (s *Session) resume(fade bool) {
	if s.bounds.Empty() {
		if s.state != StateSuspended {
			s.setState(StateSuspended)
		}
		return
	}
	s.renderer = NewRenderer(int(s.bounds.Width), int(s.bounds.Height), s.sprites, s.blend)
	if s.renderer == nil {
		if s.state != StateSuspended {
			s.setState(StateSuspended)
		}
		return
	}
	s.attach()
	if fade {
		s.fade = gween.New(0, 1, s.fadeIn, ease.OutQuad)
		s.layerAlpha = 0
	} else {
		s.fade = nil
		s.layerAlpha = 1
	}
	s.setState(StateRunning)
}

// release detaches listeners, frees the surface and drops all particles.
func (s *Session) release() {
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
	if s.renderer != nil {
		s.renderer.Dispose()
		s.renderer = nil
	}
	s.store.Clear()
	s.spawner.Discard()
	s.cursor = Attractor{}
	s.fade = nil
	s.screenshotQueue = s.screenshotQueue[:0]
}

func (s *Session) attach() {
	s.handles = append(s.handles,
		s.input.OnPointerMove(s.onPointerMove),
		s.input.OnPointerDown(s.onPointerDown),
		s.input.OnPointerUp(s.onPointerUp),
		s.input.OnClick(s.onClick),
	)
}

// Handlers only queue spawns and update the cursor; the store is mutated in Update.

func (s *Session) onPointerMove(ev PointerEvent) {
	if !s.bounds.Contains(ev.X, ev.Y) {
		return
	}
	s.cursor.Pos = s.toLocal(ev.X, ev.Y)
	s.spawner.PointerMoved(ev.X, ev.Y)
}

func (s *Session) onPointerDown(ev PointerEvent) {
	if !s.bounds.Contains(ev.X, ev.Y) {
		return
	}
	s.cursor.Pos = s.toLocal(ev.X, ev.Y)
	s.cursor.Active = true
}

func (s *Session) onPointerUp(PointerEvent) {
	s.cursor.Active = false
}

func (s *Session) onClick(ev PointerEvent) {
	if ev.PointerID == KeyboardPointer {
		if s.noKeyboard {
			return
		}
		ev.X = s.bounds.X + s.bounds.Width/2
		ev.Y = s.bounds.Y + s.bounds.Height/2
	}
	if !s.bounds.Contains(ev.X, ev.Y) {
		return
	}
	s.spawner.Clicked(ev.X, ev.Y)
}

func (s *Session) toLocal(x, y float64) Vec2 {
	return Vec2{x - s.bounds.X, y - s.bounds.Y}
}

func (s *Session) localBounds() Rect {
	return Rect{Width: s.bounds.Width, Height: s.bounds.Height}
}

func (s *Session) setState(to State) {
	from := s.state
	s.state = to
	if from != to {
		s.emit(SessionEvent{Kind: KindStateChanged, From: from, To: to})
	}
}

func (s *Session) emit(ev SessionEvent) {
	if s.sink == nil {
		return
	}
	ev.Session = s.name
	ev.Frame = s.stats.Frames
	s.sink.EmitEvent(ev)
}
