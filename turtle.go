// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// Turtle is the turtle controller. It owns the current State and the
// Surface it draws on.
//
// A Turtle moves through three phases: uninitialized (no surface),
// ready (after Bind) and disposed (after Close). Movement, Reset and
// OnResize need a ready turtle.
//
// Turtle is NOT safe for concurrent use. Hosts deliver all calls from a
// single goroutine.
type Turtle struct {
	state   State
	surface Surface
	width   int
	height  int
	closed  bool

	onChange func(State)
	sleep    SleepFunc
}

// New creates a turtle for a surface of the given size.
// The turtle has no surface until Bind is called.
func New(width, height int, opts ...Option) *Turtle {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	st := DefaultState().
		WithDelay(o.delay).
		WithGlyphBox(0, 0, o.glyphSize, o.glyphSize)

	t := &Turtle{
		state:    st,
		width:    width,
		height:   height,
		onChange: o.onChange,
		sleep:    o.sleep,
	}
	t.state = t.placeGlyph(t.state)
	return t
}

// Bind attaches the drawing surface and makes the turtle ready.
// Binding again replaces the surface without closing the old one.
func (t *Turtle) Bind(s Surface) error {
	if t.closed {
		return ErrClosed
	}
	t.surface = s
	Logger().Info("turtle: surface bound", "width", t.width, "height", t.height)
	return nil
}

// Ready reports whether a surface is bound and the turtle is not closed.
func (t *Turtle) Ready() bool {
	return t.surface != nil && !t.closed
}

// State returns the current state snapshot.
func (t *Turtle) State() State {
	return t.state
}

// Size returns the surface size the turtle centers on.
func (t *Turtle) Size() (width, height int) {
	return t.width, t.height
}

// ShowTurtle reports whether the cursor glyph is shown.
func (t *Turtle) ShowTurtle() bool { return t.state.ShowTurtle }

// SetShowTurtle shows or hides the cursor glyph.
func (t *Turtle) SetShowTurtle(show bool) { t.state = t.state.WithShowTurtle(show) }

// PenVisible reports whether the pen is down.
func (t *Turtle) PenVisible() bool { return t.state.PenVisible }

// SetPenVisible puts the pen down (true) or lifts it.
func (t *Turtle) SetPenVisible(down bool) { t.state = t.state.WithPenVisible(down) }

// PenColor returns the pen color.
func (t *Turtle) PenColor() Color { return t.state.PenColor }

// SetPenColor sets the pen color.
func (t *Turtle) SetPenColor(c Color) { t.state = t.state.WithPen(c, t.state.PenSize) }

// PenSize returns the pen stroke width.
func (t *Turtle) PenSize() float64 { return t.state.PenSize }

// SetPenSize sets the pen stroke width.
func (t *Turtle) SetPenSize(size float64) { t.state = t.state.WithPen(t.state.PenColor, size) }

// Delay returns the glyph redraw delay.
func (t *Turtle) Delay() time.Duration { return t.state.Delay }

// SetDelay sets the glyph redraw delay.
func (t *Turtle) SetDelay(d time.Duration) { t.state = t.state.WithDelay(d) }

// RotateStyle returns the heading as a CSS transform, for hosts that
// rotate the glyph with CSS.
func (t *Turtle) RotateStyle() string {
	return "rotate(" + strconv.FormatFloat(t.state.Angle(), 'f', -1, 64) + "deg)"
}

// Forward moves the turtle distance units along its heading.
// Heading 0 points up; headings grow clockwise.
func (t *Turtle) Forward(ctx context.Context, distance float64) error {
	rad := t.state.Radians()
	x := t.state.X + distance*math.Sin(rad)
	y := t.state.Y + distance*math.Cos(rad)
	return t.MoveTo(ctx, x, y)
}

// Backward moves the turtle distance units against its heading.
func (t *Turtle) Backward(ctx context.Context, distance float64) error {
	return t.Forward(ctx, -distance)
}

// MoveTo moves the turtle to (x, y) in turtle space. With the pen down
// it strokes a round-capped segment from the previous position and needs
// a bound surface; with the pen up it only moves. The glyph is redrawn
// afterwards either way.
func (t *Turtle) MoveTo(ctx context.Context, x, y float64) error {
	if t.closed {
		return ErrClosed
	}
	if t.state.PenVisible {
		if err := t.checkReady(); err != nil {
			return err
		}
	}

	fromX, fromY := t.toSurface(t.state.X, t.state.Y)
	t.state = t.state.WithPosition(x, y)

	if t.state.PenVisible {
		toX, toY := t.toSurface(x, y)
		if err := t.strokeSegment(fromX, fromY, toX, toY); err != nil {
			return err
		}
	}

	return t.drawTurtle(ctx)
}

// Rotate turns the turtle by delta degrees (clockwise for positive delta).
func (t *Turtle) Rotate(ctx context.Context, delta float64) error {
	return t.RotateTo(ctx, t.state.Angle()+delta)
}

// RotateTo sets the heading to angle degrees.
func (t *Turtle) RotateTo(ctx context.Context, angle float64) error {
	if t.closed {
		return ErrClosed
	}
	t.state = t.state.WithAngle(angle)
	return t.drawTurtle(ctx)
}

// PenUp lifts the pen; later moves do not draw.
func (t *Turtle) PenUp() {
	t.state = t.state.WithPenVisible(false)
}

// PenDown lowers the pen; later moves draw.
func (t *Turtle) PenDown() {
	t.state = t.state.WithPenVisible(true)
}

// Reset clears the surface and returns the turtle to the origin, heading
// up, with the default pen and the glyph shown. The delay is kept.
// A done ctx makes Reset return its error without touching anything.
func (t *Turtle) Reset(ctx context.Context) error {
	if err := t.checkReady(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.surface.ClearRect(0, 0, float64(t.width), float64(t.height))
	t.state = t.placeGlyph(t.state.reset())
	Logger().Debug("turtle: reset", "width", t.width, "height", t.height)

	t.invalidate()
	return nil
}

// OnResize records the new surface size and resets the turtle.
func (t *Turtle) OnResize(ctx context.Context, width, height int) error {
	t.width, t.height = width, height
	Logger().Debug("turtle: resize", "width", width, "height", height)
	return t.Reset(ctx)
}

// Step redraws the glyph (sleeping the delay first) and asks the host
// to re-render. Hosts call it once per frame.
func (t *Turtle) Step(ctx context.Context) error {
	if t.closed {
		return ErrClosed
	}
	if err := t.drawTurtle(ctx); err != nil {
		return err
	}
	t.invalidate()
	return nil
}

// Close releases the surface. Close is idempotent.
func (t *Turtle) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	var err error
	if c, ok := t.surface.(io.Closer); ok {
		err = c.Close()
	}
	t.surface = nil
	t.onChange = nil

	Logger().Info("turtle: closed")
	return err
}

func (t *Turtle) checkReady() error {
	if t.closed {
		return ErrClosed
	}
	if t.surface == nil {
		return ErrNotReady
	}
	return nil
}

// toSurface converts turtle space to surface pixels. The surface
// halves use integer division.
func (t *Turtle) toSurface(x, y float64) (float64, float64) {
	return float64(t.width/2) + x, float64(t.height/2) - y
}

func (t *Turtle) strokeSegment(fromX, fromY, toX, toY float64) error {
	s := t.surface
	s.SetLineCap(LineCapRound)
	s.BeginPath()
	s.SetLineWidth(t.state.PenSize)
	s.SetStrokeStyle(t.state.PenColor.CSS())
	s.MoveTo(fromX, fromY)
	s.LineTo(toX, toY)
	if err := s.Stroke(); err != nil {
		return fmt.Errorf("turtle: stroke: %w", err)
	}
	s.ClosePath()

	Logger().Debug("turtle: stroke",
		"from_x", fromX, "from_y", fromY, "to_x", toX, "to_y", toY,
		"color", t.state.PenColor.CSS(), "size", t.state.PenSize)
	return nil
}

// drawTurtle sleeps the configured delay and repositions the glyph box.
func (t *Turtle) drawTurtle(ctx context.Context) error {
	if err := t.sleep(ctx, t.state.Delay); err != nil {
		return err
	}
	t.state = t.placeGlyph(t.state)
	return nil
}

// placeGlyph centers the glyph box on the turtle position. The one pixel
// offset and banker's rounding keep the glyph aligned with the path.
func (t *Turtle) placeGlyph(s State) State {
	left := 1 + float64(t.width/2) + s.X - float64(s.Width/2)
	top := 1 + float64(t.height/2) - s.Y - float64(s.Height/2)
	return s.WithGlyphBox(int(math.RoundToEven(left)), int(math.RoundToEven(top)), s.Width, s.Height)
}

func (t *Turtle) invalidate() {
	if t.onChange != nil {
		t.onChange(t.state)
	}
}
