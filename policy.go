package cursorfx

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy is returned (wrapped) by Policy.Validate.
var ErrInvalidPolicy = errors.New("cursorfx: invalid policy")

// Policy holds the spawn tunables of a session. A Session copies its Policy
// at construction; later changes to the caller's value have no effect.
type Policy struct {
	// SpawnProbability gates emission on each pointer-move event.
	SpawnProbability float64 `env:"SPAWN_PROBABILITY"`
	// BurstSize is the number of particles emitted per click.
	BurstSize IntRange `envPrefix:"BURST_"`
	// Jitter is the maximum positional offset of burst particles.
	Jitter float64 `env:"JITTER"`
	// Lifespan is the range of particle lifespans in frames.
	Lifespan IntRange `envPrefix:"LIFESPAN_"`
	// Size is the range of scale factors at birth.
	Size Range `envPrefix:"SIZE_"`
	// Capacity is the live particle ceiling.
	Capacity int `env:"CAPACITY"`
	// InitialSpeed is the speed range of a particle at birth, in pixels per frame.
	InitialSpeed Range `envPrefix:"SPEED_"`
	// RotationSpeed is the spin range in radians per frame.
	RotationSpeed Range `envPrefix:"SPIN_"`
}

// DefaultPolicy favors sparse trails: roughly one move event in three spawns.
func DefaultPolicy() Policy {
	return Policy{
		SpawnProbability: 0.3,
		BurstSize:        IntRange{Min: 1, Max: 3},
		Jitter:           12,
		Lifespan:         IntRange{Min: 120, Max: 240},
		Size:             Range{Min: 0.5, Max: 1.0},
		Capacity:         defaultCapacity,
		InitialSpeed:     Range{Min: 0, Max: 1.5},
		RotationSpeed:    Range{Min: -0.05, Max: 0.05},
	}
}

// CompactPolicy is DefaultPolicy scaled down for narrow screens.
func CompactPolicy() Policy {
	p := DefaultPolicy()
	p.Size = Range{Min: 0.4, Max: 0.67}
	p.Capacity = 60
	return p
}

// Validate reports the first problem found in p.
func (p Policy) Validate() error {
	switch {
	case p.SpawnProbability < 0 || p.SpawnProbability > 1:
		return fmt.Errorf("%w: spawn probability %v outside [0, 1]", ErrInvalidPolicy, p.SpawnProbability)
	case p.BurstSize.Min < 0 || p.BurstSize.Min > p.BurstSize.Max:
		return fmt.Errorf("%w: burst size [%d, %d]", ErrInvalidPolicy, p.BurstSize.Min, p.BurstSize.Max)
	case p.Jitter < 0:
		return fmt.Errorf("%w: negative jitter %v", ErrInvalidPolicy, p.Jitter)
	case p.Lifespan.Min <= 0 || p.Lifespan.Min > p.Lifespan.Max:
		return fmt.Errorf("%w: lifespan [%d, %d]", ErrInvalidPolicy, p.Lifespan.Min, p.Lifespan.Max)
	case p.Size.Min < 0 || !p.Size.Valid():
		return fmt.Errorf("%w: size [%v, %v]", ErrInvalidPolicy, p.Size.Min, p.Size.Max)
	case p.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d", ErrInvalidPolicy, p.Capacity)
	case p.InitialSpeed.Min < 0 || !p.InitialSpeed.Valid():
		return fmt.Errorf("%w: initial speed [%v, %v]", ErrInvalidPolicy, p.InitialSpeed.Min, p.InitialSpeed.Max)
	case !p.RotationSpeed.Valid():
		return fmt.Errorf("%w: rotation speed [%v, %v]", ErrInvalidPolicy, p.RotationSpeed.Min, p.RotationSpeed.Max)
	}
	return nil
}
