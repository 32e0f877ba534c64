// Package turtle provides a turtle graphics cursor for Go 2D surfaces.
//
// # Overview
//
// A turtle is a virtual pen with a position and a heading. Moving it with
// the pen down strokes a line segment on a Surface; rotating it only turns
// the cursor glyph. The package is split into:
//
//   - State: an immutable snapshot (position, heading, pen, glyph box)
//   - Turtle: the controller (Forward, Rotate, PenUp, Reset, ...)
//   - Surface: the canvas-like drawing contract the turtle strokes on
//   - Host and Bridge: the frame ticker and resize relay between a
//     platform (window, terminal, headless loop) and the controller
//
// # Quick Start
//
//	host := headless.New(headless.Config{Width: 400, Height: 400, Hz: 60, Ticks: 120})
//	t := turtle.New(400, 400, turtle.WithOnChange(host.Invalidate))
//	b := turtle.NewBridge(t, host, turtle.WithFrameHook(func(ctx context.Context, t *turtle.Turtle) error {
//	    if err := t.Forward(ctx, 50); err != nil {
//	        return err
//	    }
//	    return t.Rotate(ctx, 144)
//	}))
//	defer b.Close()
//
//	if err := host.Run(ctx, b.Init); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordinate System
//
// Turtle space has its origin at the surface center with y growing up.
// Headings are degrees, 0 points up, and positive rotation is clockwise:
// Forward(d) moves by (d·sin θ, d·cos θ). Surface space is pixels with the
// origin at the top-left corner.
//
// # Hosts
//
// Host implementations live in sub-packages:
//
//   - host/headless: ticker loop, renders to PNG
//   - host/ebitenhost: ebiten desktop window
//   - host/termhost: tcell terminal, half-block pixels
//   - integration/gogpuhost: gogpu GPU window
//
// All of them draw through integration/ggsurface, a Surface backed by a
// gg.Context.
package turtle
