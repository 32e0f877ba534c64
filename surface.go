// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle

// LineCap specifies the shape of stroke endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// String returns the canvas name of the cap.
func (c LineCap) String() string {
	switch c {
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	default:
		return "butt"
	}
}

// Surface is the drawing target the turtle strokes its path on.
// The method set mirrors an HTML canvas 2D context.
//
// Coordinates are surface pixels with the origin at the top-left corner.
// A Surface is owned by exactly one Turtle. If it implements io.Closer,
// the Turtle closes it on Close.
type Surface interface {
	// ClearRect makes the given rectangle fully transparent.
	ClearRect(x, y, width, height float64)

	// BeginPath discards the current path.
	BeginPath()

	// ClosePath closes the current subpath.
	ClosePath()

	MoveTo(x, y float64)
	LineTo(x, y float64)

	SetLineWidth(width float64)
	SetLineCap(lineCap LineCap)

	// SetStrokeStyle sets the stroke color from a CSS color string.
	SetStrokeStyle(style string)

	// Stroke draws the current path with the current stroke settings.
	Stroke() error
}
