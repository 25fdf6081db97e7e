// Package cursorfx is a cursor-following particle layer for [Ebitengine].
//
// A [Session] scatters short-lived glyphs (binary digits by default) behind
// the pointer: roughly one move event in three leaves a trail particle, and
// every click or tap bursts a few more. Particles drift, spin and fade out
// over a few seconds; a held pointer gently pulls nearby particles toward it.
//
// # Quick start
//
//	input := cursorfx.NewEbitenInput()
//	sprites, err := cursorfx.NewGlyphSprites(cursorfx.BinaryGlyphs, cursorfx.ColorTeal, 18)
//	if err != nil {
//		return err
//	}
//	session, err := cursorfx.NewSession(cursorfx.SessionConfig{
//		Policy:  cursorfx.DefaultPolicy(),
//		Forces:  cursorfx.DefaultForces(),
//		Input:   input,
//		Sprites: sprites,
//		Bounds:  cursorfx.Rect{Width: 800, Height: 600},
//	})
//	if err != nil {
//		return err
//	}
//	session.Start()
//	defer session.Destroy()
//
// Then call [Session.Update] from your game's Update and [Session.Draw] from
// its Draw. Call [Session.Resize] from Layout when the host element moves.
//
// # Pipeline
//
// Input callbacks only queue spawn requests. Each Update drains the queue
// into the [Store], advances every particle with [Step] and prunes expired
// ones. Draw clears the session's surface and repaints it from the store.
// The store is bounded by [Policy.Capacity]; when full, the oldest particle
// is dropped.
//
// # Lifecycle
//
// A session starts uninitialized, runs after [Session.Start], suspends
// while reduced motion is requested (see [Session.SetReducedMotion]) and
// ends with [Session.Destroy]. Failures never reach the host: a layer that
// cannot allocate a surface simply stays suspended.
//
// [Ebitengine]: https://ebitengine.org
package cursorfx
