// Package anim2d is a 2D animation toolkit driven by a discrete-event
// simulation clock.
//
// Animation objects (figures, layers, paths, grids and camera views) are
// registered with an [Animation], change over simulation time, and are
// periodically composited into raster frames that an [ImageSequenceWriter]
// stores or displays.
//
// # Quick start
//
//	cfg := anim2d.DefaultAnimationConfig()
//	a, err := anim2d.NewAnimation(cfg,
//		anim2d.WithRenderer(raster.NewCanvas(cfg.Width, cfg.Height)))
//
//	_, err = anim2d.NewView(a, "view", anim2d.ViewConfig{
//		Init: &anim2d.ViewInit{XF: 0.5, YF: 0.5, ScaleX: 4, ScaleY: 4},
//	})
//
//	track, err := anim2d.SplinePath([]anim2d.Vec2{{0, 0}, {50, 40}, {100, 0}}, false)
//	dot, err := anim2d.NewFigure(a, "dot", anim2d.FigureConfig{
//		Motion: anim2d.Motion{PathVelocity: 20},
//		Shapes: []anim2d.Shape{{Kind: anim2d.ShapeEllipse, RX: 2, RY: 2, Style: style}},
//	})
//	err = dot.SetPath(track, anim2d.PathStart{AngleRelative: true})
//
//	dir, err := iswriter.NewDir("frames", nil)
//	err = a.SetWriter(dir, "")
//	err = a.ScheduleFrames(0, 120)
//	err = a.Run(ctx)
//	err = a.Close()
//
// # Objects
//
// Every object embeds [ObjectBase], which carries its name, z-order and
// visibility. Visible objects are drawn in ascending z-order; ties are broken
// by creation order. [PlacedObject] adds a position, an angle and a reference
// point; [DirectedObject] moves a placed object along a [Path] using either
// constant velocity/acceleration or injected [Func] values; [View] is a
// directed object that also controls the coordinate window and zoom.
//
// # Time
//
// Objects are updated with both a continuous time and an integer tick. An
// update whose time and tick are not newer than the last applied update is a
// no-op, so calling Update repeatedly for the same frame is safe.
//
// # Rendering
//
// The core draws only through the [Renderer] interface. Package raster
// provides a software implementation; package iswriter provides frame
// sequence writers (directory, zip, live window, terminal preview).
//
// # Scenes
//
// Package scene builds an animation from a YAML document, and the anim2d
// command renders such documents from the command line.
package anim2d
