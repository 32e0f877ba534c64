// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/turtle"
)

// Common errors returned by Surface operations.
var (
	// ErrSurfaceClosed is returned when operations are attempted on a closed surface.
	ErrSurfaceClosed = errors.New("ggsurface: surface is closed")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("ggsurface: invalid dimensions")
)

// DefaultBackground is the color frames are composed on.
var DefaultBackground = gg.White

// Option configures a Surface.
type Option func(*Surface)

// WithBackground sets the frame background color.
func WithBackground(c gg.RGBA) Option {
	return func(s *Surface) {
		s.background = c
	}
}

// WithHUD draws a status line with position and heading in each frame.
func WithHUD(show bool) Option {
	return func(s *Surface) {
		s.hud = show
	}
}

// Surface is a turtle.Surface backed by a gg.Context.
type Surface struct {
	layer      *gg.Context
	background gg.RGBA
	hud        bool
	closed     bool
}

var _ turtle.Surface = (*Surface)(nil)

// New creates a surface of the given size with a transparent layer.
// Non-positive sizes are clamped to one pixel; use Resize for checked sizing.
func New(width, height int, opts ...Option) *Surface {
	s := &Surface{
		layer:      gg.NewContext(max(width, 1), max(height, 1)),
		background: DefaultBackground,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.layer.Width() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.layer.Height() }

// Size returns width and height as a convenience.
func (s *Surface) Size() (width, height int) {
	return s.layer.Width(), s.layer.Height()
}

// Layer returns the drawing layer. Returns nil if the surface is closed.
func (s *Surface) Layer() *gg.Context {
	if s.closed {
		return nil
	}
	return s.layer
}

// Resize changes the surface size. The layer is cleared.
func (s *Surface) Resize(width, height int) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if err := s.layer.Resize(width, height); err != nil {
		return fmt.Errorf("ggsurface: layer resize failed: %w", err)
	}
	turtle.Logger().Debug("ggsurface: resized", "width", width, "height", height)
	return nil
}

// ClearRect makes the rectangle transparent. Clearing the whole layer
// takes the fast path.
func (s *Surface) ClearRect(x, y, width, height float64) {
	if s.closed {
		return
	}
	w, h := s.Size()
	x0 := max(int(math.Floor(x)), 0)
	y0 := max(int(math.Floor(y)), 0)
	x1 := min(int(math.Ceil(x+width)), w)
	y1 := min(int(math.Ceil(y+height)), h)
	if x0 == 0 && y0 == 0 && x1 == w && y1 == h {
		s.layer.Clear()
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.layer.SetPixel(px, py, gg.Transparent)
		}
	}
}

// BeginPath discards the current path.
func (s *Surface) BeginPath() { s.layer.ClearPath() }

// ClosePath closes the current subpath.
func (s *Surface) ClosePath() { s.layer.ClosePath() }

// MoveTo starts a new subpath.
func (s *Surface) MoveTo(x, y float64) { s.layer.MoveTo(x, y) }

// LineTo adds a line to the current path.
func (s *Surface) LineTo(x, y float64) { s.layer.LineTo(x, y) }

// SetLineWidth sets the stroke width.
func (s *Surface) SetLineWidth(width float64) { s.layer.SetLineWidth(width) }

// SetLineCap sets the stroke cap.
func (s *Surface) SetLineCap(lineCap turtle.LineCap) {
	switch lineCap {
	case turtle.LineCapRound:
		s.layer.SetLineCap(gg.LineCapRound)
	case turtle.LineCapSquare:
		s.layer.SetLineCap(gg.LineCapSquare)
	default:
		s.layer.SetLineCap(gg.LineCapButt)
	}
}

// SetStrokeStyle sets the stroke color from a CSS color string.
// Unparseable styles fall back to black.
func (s *Surface) SetStrokeStyle(style string) {
	c, err := turtle.ParseColor(style)
	if err != nil {
		turtle.Logger().Warn("ggsurface: bad stroke style, using black", "style", style, "err", err)
		c = turtle.Black
	}
	s.layer.SetColor(c)
}

// Stroke strokes and clears the current path.
func (s *Surface) Stroke() error {
	if s.closed {
		return ErrSurfaceClosed
	}
	return s.layer.Stroke()
}

// Close releases the layer. Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.layer.Close()
}

// Compose draws the background, the layer, the glyph for st and the
// optional status line into dst. dst is usually the same size as the
// surface.
func (s *Surface) Compose(dst *gg.Context, st turtle.State) {
	if s.closed {
		return
	}
	dst.ClearWithColor(s.background)
	dst.DrawImage(gg.ImageBufFromImage(s.layer.Image()), 0, 0)
	DrawGlyph(dst, st)
	if s.hud {
		drawHUD(dst, st)
	}
}

// Frame composes a new image for st.
func (s *Surface) Frame(st turtle.State) *image.RGBA {
	w, h := s.Size()
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	s.Compose(dc, st)
	return toRGBA(dc.Image())
}

// SavePNG composes a frame for st and writes it to path.
func (s *Surface) SavePNG(path string, st turtle.State) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	w, h := s.Size()
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	s.Compose(dc, st)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("ggsurface: save %s: %w", path, err)
	}
	turtle.Logger().Info("ggsurface: frame saved", "path", path, "width", w, "height", h)
	return nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}
