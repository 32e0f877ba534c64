// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle

import (
	"math"
	"time"
)

// Defaults restored by Reset.
const (
	// DefaultPenSize is the pen stroke width in pixels.
	DefaultPenSize = 7

	// DefaultGlyphSize is the width and height of the cursor glyph box.
	DefaultGlyphSize = 35

	// DefaultDistance is the conventional Forward/Backward step.
	DefaultDistance = 10
)

// DefaultColor is the pen color restored by Reset.
var DefaultColor = Blue

// State is an immutable snapshot of the turtle.
//
// Position is in turtle space: origin at the surface center, y grows up.
// The heading is in degrees, clockwise from up, and is always normalized
// to [0, 360). Every other field is stored as given, without range checks.
//
// State values are never mutated in place; the With* methods return
// modified copies.
type State struct {
	X, Y float64

	angle float64

	// PenVisible reports whether movement draws (pen down).
	PenVisible bool
	PenColor   Color
	PenSize    float64

	// ShowTurtle reports whether hosts draw the cursor glyph.
	ShowTurtle bool

	// Delay is slept before each glyph redraw.
	Delay time.Duration

	// Glyph box in surface pixels. Hosts use it only to draw the cursor.
	Left, Top     int
	Width, Height int
}

// DefaultState returns the state a turtle starts with.
func DefaultState() State {
	return State{
		PenVisible: true,
		PenColor:   DefaultColor,
		PenSize:    DefaultPenSize,
		ShowTurtle: true,
		Width:      DefaultGlyphSize,
		Height:     DefaultGlyphSize,
	}
}

// Angle returns the heading in degrees, in [0, 360).
func (s State) Angle() float64 {
	return s.angle
}

// WithAngle returns a copy of s heading at a, normalized.
func (s State) WithAngle(a float64) State {
	s.angle = NormalizeAngle(a)
	return s
}

// WithPosition returns a copy of s at (x, y).
func (s State) WithPosition(x, y float64) State {
	s.X, s.Y = x, y
	return s
}

// WithPen returns a copy of s with the given pen color and width.
func (s State) WithPen(c Color, size float64) State {
	s.PenColor, s.PenSize = c, size
	return s
}

// WithPenVisible returns a copy of s with the pen down (true) or up.
func (s State) WithPenVisible(down bool) State {
	s.PenVisible = down
	return s
}

// WithShowTurtle returns a copy of s with the glyph shown or hidden.
func (s State) WithShowTurtle(show bool) State {
	s.ShowTurtle = show
	return s
}

// WithDelay returns a copy of s with the glyph redraw delay set.
func (s State) WithDelay(d time.Duration) State {
	s.Delay = d
	return s
}

// WithGlyphBox returns a copy of s with the glyph box set.
func (s State) WithGlyphBox(left, top, width, height int) State {
	s.Left, s.Top, s.Width, s.Height = left, top, width, height
	return s
}

// reset returns s with the pen, position and heading restored.
// Delay and glyph size are kept.
func (s State) reset() State {
	s.X, s.Y = 0, 0
	s.angle = 0
	s.PenSize = DefaultPenSize
	s.PenColor = DefaultColor
	s.PenVisible = true
	s.ShowTurtle = true
	return s
}

// NormalizeAngle maps a (degrees) into [0, 360). NaN and infinities
// produce NaN.
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// Tiny negative inputs round up to exactly 360 after the add.
	if a >= 360 {
		a = 0
	}
	return a
}

// Radians returns the heading in radians.
func (s State) Radians() float64 {
	return s.angle * math.Pi / 180
}
