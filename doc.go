// Package thicket is a small 2D game engine for [Ebitengine] built around a
// fixed-timestep loop.
//
// An [Engine] runs simulation steps at a constant rate (Config.TPS) and
// renders once per display frame. Slow frames are caught up with a bounded
// number of steps; time beyond that is dropped rather than carried forward
// forever, so a long stall never turns into a burst of hundreds of steps.
//
// # Quick start
//
// The simplest way to get started is [Run], which wires the Ebitengine
// renderer and input and opens a window:
//
//	e := thicket.NewEngine()
//	err := thicket.Run(e, thicket.Settings{
//		Config: thicket.DefaultConfig(),
//		Init: func() error {
//			g := e.Game()
//			floor, err := g.NewPlatformer("floor", 0, 400, 800, 40, "#3c6e47")
//			if err != nil {
//				return err
//			}
//			return g.AddSprite(floor)
//		},
//	})
//
// For headless hosts and tests, call [Engine.Init] with a custom [Renderer],
// a [ManualClock] and a [FrameScheduler], and drive frames with
// [FrameScheduler.Pump].
//
// # Entities
//
// The [Game] registry holds sprites and particles. A [Sprite] has costumes,
// effects and a stage level that orders drawing. A [Platformer] is a sprite
// with gravity and collision resolution against other platformers. A
// [Particle] is a cheap drawable without collision.
//
// Hosts build their own entity types by embedding one of these and may tag
// them with a [Kind] from [RegisterKind]:
//
//	var KindCoin = thicket.RegisterKind("coin", thicket.KindSprite)
//
//	type coin struct{ *thicket.Sprite }
//
//	func (c *coin) Kind() thicket.Kind { return KindCoin }
//
// Registry queries such as [Game.GetByKind] match the kind and everything
// derived from it.
//
// # Camera
//
// The [Camera] offsets the world by its top-left corner. It can follow a
// sprite, centering on it every step, or scroll to a point with a [gween]
// tween.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package thicket
