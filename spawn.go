package cursorfx

import (
	"math"
	"math/rand/v2"
)

// trailJitter is the positional scatter of trail particles, in pixels.
const trailJitter = 2.0

type spawnRequest struct {
	pos   Vec2 // surface-local
	burst bool
}

// Spawner turns pointer input into spawn requests. Requests are queued by the
// input handlers and turned into particles once per frame by Flush, so the
// store is never mutated from inside an event callback.
type Spawner struct {
	policy Policy
	rng    *rand.Rand
	origin Vec2
	queue  []spawnRequest
}

// NewSpawner creates a Spawner. A nil rng selects an unseeded source.
func NewSpawner(policy Policy, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = newRand()
	}
	return &Spawner{policy: policy, rng: rng}
}

// SetBounds sets the surface rectangle in screen space. Incoming coordinates
// are translated by its origin.
func (sp *Spawner) SetBounds(bounds Rect) {
	sp.origin = bounds.Origin()
}

// PointerMoved queues one trail particle with probability SpawnProbability.
// Reports whether a request was queued.
func (sp *Spawner) PointerMoved(x, y float64) bool {
	if sp.rng.Float64() >= sp.policy.SpawnProbability {
		return false
	}
	sp.queue = append(sp.queue, spawnRequest{pos: sp.local(x, y)})
	return true
}

// Clicked queues a burst at (x, y). Clicks bypass the probability gate.
func (sp *Spawner) Clicked(x, y float64) {
	sp.queue = append(sp.queue, spawnRequest{pos: sp.local(x, y), burst: true})
}

// Pending returns the number of queued requests.
func (sp *Spawner) Pending() int {
	return len(sp.queue)
}

// Discard drops every queued request.
func (sp *Spawner) Discard() {
	sp.queue = sp.queue[:0]
}

// Flush drains the queue into store. With no sprites loaded the requests are
// dropped: the layer is not ready yet, which is not an error.
// Returns the number of particles spawned and the number evicted from a full store.
func (sp *Spawner) Flush(store *Store, spriteCount int) (spawned, evicted int) {
	if spriteCount <= 0 {
		sp.Discard()
		return 0, 0
	}
	for _, req := range sp.queue {
		if !req.burst {
			p := sp.newParticle(req.pos, trailJitter, spriteCount)
			evicted += store.Push(p)
			spawned++
			continue
		}
		n := sp.policy.BurstSize.Random(sp.rng)
		for range n {
			p := sp.newParticle(req.pos, sp.policy.Jitter, spriteCount)
			evicted += store.Push(p)
			spawned++
		}
	}
	sp.Discard()
	return spawned, evicted
}

func (sp *Spawner) local(x, y float64) Vec2 {
	return Vec2{x - sp.origin.X, y - sp.origin.Y}
}

func (sp *Spawner) newParticle(at Vec2, jitter float64, spriteCount int) Particle {
	r := sp.rng
	angle := r.Float64() * 2 * math.Pi
	speed := sp.policy.InitialSpeed.Random(r)
	life := sp.policy.Lifespan.Random(r)
	size := sp.policy.Size.Random(r)
	return Particle{
		Pos: Vec2{
			X: at.X + (r.Float64()*2-1)*jitter,
			Y: at.Y + (r.Float64()*2-1)*jitter,
		},
		Vel:             Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed},
		Rotation:        r.Float64() * 2 * math.Pi,
		RotationSpeed:   sp.policy.RotationSpeed.Random(r),
		Lifespan:        life,
		InitialLifespan: life,
		Size:            size,
		Scale:           size,
		Sprite:          r.IntN(spriteCount),
	}
}
