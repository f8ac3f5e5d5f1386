// Package motion is a declarative animation orchestrator for laid-out visual
// elements.
//
// Motion decides when an element should animate (on mount, on entering the
// viewport, as the page scrolls, or as the pointer moves over it), drives
// every animated property from its start value toward its target with an
// eased tween or a damped spring, and hands the current values to whatever
// paints the frame. It never moves layout boxes itself.
//
// # Quick start
//
// Build an [Orchestrator] over a [Viewport], mount nodes against
// [Element]s, and call [Orchestrator.Update] once per frame:
//
//	vp := motion.NewViewport(800, 600)
//	orch := motion.NewOrchestrator(nil, vp)
//
//	card := motion.NewElement("card", 40, 900, 320, 200)
//	node, err := orch.MountNode(card, motion.InView(0.3, true), motion.MotionSpec{
//		Properties: map[string]motion.Property{
//			"opacity": motion.Animate(0, 1),
//			"y":       motion.Animate(60, 0),
//		},
//		Timing: motion.Eased(0.6, motion.EaseCSS.TweenFunc(), 0),
//	})
//
//	// each frame
//	orch.Update(dt)
//	y, _ := node.Value("y")
//
// The ebitenhost sub-package runs an Orchestrator inside an [Ebitengine]
// window, mapping wheel, cursor, and touch input.
//
// # Timing
//
// Eased timings use [gween] tweens and any [ease.TweenFunc], including
// CSS-style [CubicBezier] curves. Spring timings integrate
// acceleration = stiffness*(target-position) - damping*velocity and stop
// ticking once every component is at rest. Loop timings swing between
// start and target until the trigger reverses.
//
// # Stagger groups
//
// [Orchestrator.MountGroup] fires one trigger for a container and starts
// each child baseDelay + index*staggerDelay seconds later.
//
// # Scheduling
//
// All per-frame work runs through one [FrameClock]. Settled nodes and idle
// triggers hold no subscription, so [FrameClock.Scheduled] reports false
// when the page is at rest and hosts can stop redrawing.
//
// # Tokens
//
// Named easings, durations, spring presets, and variants load from YAML
// with [LoadTokens]; [DefaultTokens] returns the built-in set.
//
// Lifecycle transitions can be forwarded to a [Donburi] world with the
// motion/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package motion
