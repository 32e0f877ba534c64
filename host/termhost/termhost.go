// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termhost runs a turtle in a terminal using tcell.
//
// The surface is rasterized at Scale pixels per cell column and 2·Scale
// pixels per cell row, then downsampled into upper-half-block cells
// (one surface pixel pair per cell). The cursor glyph is drawn as an
// arrow character pointing along the heading.
package termhost

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/integration/ggsurface"
)

// Config controls the terminal host.
type Config struct {
	// Hz is the frame rate. Defaults to 30.
	Hz int

	// Scale is the number of surface pixels per cell column. Defaults to 4.
	Scale int

	// Background is the color transparent pixels are blended onto.
	// Defaults to white.
	Background turtle.Color
}

// Host is a turtle.Host backed by a tcell screen.
type Host struct {
	cfg     Config
	screen  tcell.Screen
	surface *ggsurface.Surface
	state   turtle.State

	frame  turtle.FrameFunc
	resize turtle.ResizeFunc

	painted     bool
	initialized bool
	start       time.Time
}

var _ turtle.Host = (*Host)(nil)

// New creates a host on the process terminal.
func New(cfg Config) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termhost: %w", err)
	}
	return NewWithScreen(screen, cfg), nil
}

// NewWithScreen creates a host on an existing screen, such as a
// tcell simulation screen. Run initializes and finalizes the screen.
func NewWithScreen(screen tcell.Screen, cfg Config) *Host {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 4
	}
	if cfg.Background == (turtle.Color{}) {
		cfg.Background = turtle.White
	}
	return &Host{
		cfg:    cfg,
		screen: screen,
		state:  turtle.DefaultState(),
	}
}

// RegisterFrameCallback implements turtle.Host.
func (h *Host) RegisterFrameCallback(fn turtle.FrameFunc) { h.frame = fn }

// RegisterResizeCallback implements turtle.Host.
func (h *Host) RegisterResizeCallback(fn turtle.ResizeFunc) { h.resize = fn }

// UnregisterAll implements turtle.Host.
func (h *Host) UnregisterAll() {
	h.frame = nil
	h.resize = nil
}

// Invalidate records the state to render.
func (h *Host) Invalidate(st turtle.State) {
	h.state = st
}

// SurfaceSize returns the surface size for a terminal of cols x rows cells.
func (h *Host) SurfaceSize(cols, rows int) (width, height int) {
	return max(cols, 1) * h.cfg.Scale, max(rows, 1) * 2 * h.cfg.Scale
}

// Run takes over the terminal until ctx is done, the user quits (Esc, q
// or Ctrl-C) or a callback fails.
func (h *Host) Run(ctx context.Context, initFn turtle.InitFunc) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("termhost: init screen: %w", err)
	}
	defer h.screen.Fini()
	h.screen.HideCursor()

	cols, rows := h.screen.Size()
	sw, sh := h.SurfaceSize(cols, rows)
	h.surface = ggsurface.New(sw, sh)
	h.start = time.Now()

	// PollEvent blocks, so it gets its own goroutine; events are handled
	// on this one.
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.Hz))
	defer ticker.Stop()

	turtle.Logger().Info("termhost: running", "cols", cols, "rows", rows, "hz", h.cfg.Hz)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			done, err := h.handleEvent(ctx, ev)
			if err != nil || done {
				return err
			}
		case <-ticker.C:
			if err := h.tick(ctx, initFn); err != nil {
				return err
			}
		}
	}
}

func (h *Host) tick(ctx context.Context, initFn turtle.InitFunc) error {
	var err error
	switch {
	case !h.painted:
	case !h.initialized:
		h.initialized = true
		w, ht := h.surface.Size()
		err = initFn(ctx, h.surface, w, ht)
	case h.frame != nil:
		err = h.frame(ctx, time.Since(h.start))
	}
	if err != nil {
		return err
	}
	h.draw()
	h.painted = true
	return nil
}

func (h *Host) handleEvent(ctx context.Context, ev tcell.Event) (quit bool, err error) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC:
			return true, nil
		case e.Key() == tcell.KeyRune && e.Modifiers()&tcell.ModCtrl != 0 && e.Rune() == 'c':
			return true, nil
		case e.Key() == tcell.KeyRune && (e.Rune() == 'q' || e.Rune() == 'Q'):
			return true, nil
		}
	case *tcell.EventResize:
		cols, rows := e.Size()
		sw, sh := h.SurfaceSize(cols, rows)
		if sw == h.surface.Width() && sh == h.surface.Height() {
			return false, nil
		}
		if err := h.surface.Resize(sw, sh); err != nil {
			return false, err
		}
		h.screen.Sync()
		if h.initialized && h.resize != nil {
			return false, h.resize(ctx, sw, sh)
		}
	}
	return false, nil
}

// draw renders the layer as half blocks and the glyph as an arrow.
func (h *Host) draw() {
	layer := h.surface.Layer()
	if layer == nil {
		return
	}
	img := layer.Image()
	bg := toColorful(h.cfg.Background)
	cols, rows := h.screen.Size()
	scale := h.cfg.Scale

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			px := col*scale + scale/2
			upper := blend(bg, img.At(px, row*2*scale+scale/2))
			lower := blend(bg, img.At(px, row*2*scale+scale+scale/2))
			style := tcell.StyleDefault.Foreground(upper).Background(lower)
			h.screen.SetContent(col, row, '▀', nil, style)
		}
	}

	if h.state.ShowTurtle {
		cx, cy := ggsurface.GlyphCenter(h.state)
		col, row := int(cx)/scale, int(cy)/(2*scale)
		if col >= 0 && col < cols && row >= 0 && row < rows {
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(0x2e, 0x8b, 0x57)).
				Background(tcell.NewRGBColor(int32(h.cfg.Background.R), int32(h.cfg.Background.G), int32(h.cfg.Background.B))).
				Bold(true)
			h.screen.SetContent(col, row, HeadingArrow(h.state.Angle()), nil, style)
		}
	}
	h.screen.Show()
}

var arrows = []rune("↑↗→↘↓↙←↖")

// HeadingArrow returns the arrow closest to a heading in degrees
// (0 = up, clockwise).
func HeadingArrow(angle float64) rune {
	if math.IsNaN(angle) {
		return '•'
	}
	i := int(math.Round(turtle.NormalizeAngle(angle)/45)) % len(arrows)
	return arrows[i]
}

func toColorful(c turtle.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// blend composites a premultiplied pixel over bg.
func blend(bg colorful.Color, px color.Color) tcell.Color {
	r, g, b, a := px.RGBA()
	if a == 0 {
		r8, g8, b8 := bg.RGB255()
		return tcell.NewRGBColor(int32(r8), int32(g8), int32(b8))
	}
	alpha := float64(a) / 0xffff
	fg := colorful.Color{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
	}
	r8, g8, b8 := bg.BlendRgb(fg, alpha).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r8), int32(g8), int32(b8))
}
