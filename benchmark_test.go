package cursorfx

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchStore fills a store to capacity with freshly spawned particles.
func setupBenchStore(n int) *Store {
	p := DefaultPolicy()
	p.Capacity = n
	p.Lifespan = IntRange{Min: 1 << 20, Max: 1 << 20}
	sp := NewSpawner(p, seeded(1))
	s := NewStore(n)
	for i := 0; i < n; i++ {
		sp.Clicked(float64(i%40)*25, float64(i/40)*25)
	}
	sp.Flush(s, 2)
	return s
}

func BenchmarkStep_100Particles(b *testing.B) {
	s := setupBenchStore(100)
	f := DefaultForces()
	bounds := Rect{Width: 1000, Height: 1000}
	cursor := Attractor{Pos: Vec2{500, 500}, Active: true}
	rng := seeded(2)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Step(s, f, cursor, bounds, rng)
	}
}

func BenchmarkStep_10000Particles(b *testing.B) {
	s := setupBenchStore(10000)
	f := DefaultForces()
	bounds := Rect{Width: 1000, Height: 1000}
	rng := seeded(3)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Step(s, f, Attractor{}, bounds, rng)
	}
}

func BenchmarkPaint_100Particles(b *testing.B) {
	s := setupBenchStore(100)
	r := NewRenderer(1000, 1000, NewImageSprites(ebiten.NewImage(12, 18), ebiten.NewImage(12, 18)), BlendNormal)
	defer r.Dispose()

	r.Paint(s, 1) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Paint(s, 1)
	}
}

func BenchmarkPrune_Half(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s := NewStore(1000)
		for j := 0; j < 1000; j++ {
			s.Push(Particle{Lifespan: j%2 - 1, InitialLifespan: 1})
		}
		b.StartTimer()
		s.Prune()
	}
}

func BenchmarkSessionUpdate_Trail(b *testing.B) {
	in := &fakeInput{}
	s, err := NewSession(SessionConfig{
		Policy:  DefaultPolicy(),
		Forces:  DefaultForces(),
		Input:   in,
		Sprites: NewImageSprites(ebiten.NewImage(4, 4)),
		Bounds:  Rect{Width: 800, Height: 600},
		Rand:    seeded(4),
	})
	if err != nil {
		b.Fatal(err)
	}
	s.Start()
	defer s.Destroy()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		in.move(float64(i%800), 300)
		s.Update()
	}
}
