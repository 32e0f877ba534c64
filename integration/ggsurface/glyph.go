// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/turtle"
)

// Glyph colors.
var (
	glyphFill    = gg.RGBA2(0.18, 0.55, 0.34, 0.9)
	glyphOutline = gg.RGBA2(0.05, 0.2, 0.1, 1)
)

// GlyphCenter returns the pixel center of the glyph box in st.
func GlyphCenter(st turtle.State) (x, y float64) {
	// The box is offset by one pixel from the turtle position.
	x = float64(st.Left-1) + float64(st.Width)/2
	y = float64(st.Top-1) + float64(st.Height)/2
	return x, y
}

// DrawGlyph draws the turtle cursor, an arrowhead pointing along the
// heading, into dc. Nothing is drawn when st.ShowTurtle is false.
func DrawGlyph(dc *gg.Context, st turtle.State) {
	if !st.ShowTurtle || st.Width <= 0 || st.Height <= 0 {
		return
	}
	cx, cy := GlyphCenter(st)
	r := float64(min(st.Width, st.Height)) / 2

	dc.Push()
	defer dc.Pop()

	// Surface y grows down, so a positive rotation turns clockwise,
	// which is the turtle's heading direction.
	dc.RotateAbout(st.Radians(), cx, cy)

	dc.MoveTo(cx, cy-r)
	dc.LineTo(cx+r*0.6, cy+r*0.7)
	dc.LineTo(cx, cy+r*0.35)
	dc.LineTo(cx-r*0.6, cy+r*0.7)
	dc.ClosePath()
	dc.SetColor(glyphFill.Color())
	_ = dc.FillPreserve()

	dc.SetColor(glyphOutline.Color())
	dc.SetLineWidth(math.Max(1, r/10))
	_ = dc.Stroke()
}
