// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenhost runs a turtle in an ebiten desktop window.
//
// Update delivers frames, Layout detects window resizes, and Draw copies
// the composed ggsurface frame into the window.
package ebitenhost

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/integration/ggsurface"
)

// Config controls the window.
type Config struct {
	Title  string
	Width  int
	Height int

	// TPS is the number of Update calls (frames) per second. Defaults to 60.
	TPS int

	HUD bool
}

type size struct{ w, h int }

// Host is a turtle.Host backed by an ebiten game loop. ebiten calls
// Update, Draw and Layout from one goroutine, so callbacks never overlap.
type Host struct {
	cfg     Config
	surface *ggsurface.Surface
	state   turtle.State

	frame  turtle.FrameFunc
	resize turtle.ResizeFunc

	ctx    context.Context
	initFn turtle.InitFunc

	painted     bool
	initialized bool
	pending     *size
	screenImg   *ebiten.Image
	start       time.Time
}

var (
	_ turtle.Host = (*Host)(nil)
	_ ebiten.Game = (*Host)(nil)
)

// New creates a window host. The window opens on Run.
func New(cfg Config) *Host {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "turtle"
	}
	return &Host{
		cfg:     cfg,
		surface: ggsurface.New(cfg.Width, cfg.Height, ggsurface.WithHUD(cfg.HUD)),
		state:   turtle.DefaultState(),
		ctx:     context.Background(),
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

// Invalidate records the state to render on the next Draw.
func (h *Host) Invalidate(st turtle.State) {
	h.state = st
}

// Surface returns the surface handed to the turtle on init.
func (h *Host) Surface() *ggsurface.Surface {
	return h.surface
}

// Run opens the window and blocks until it is closed, ctx is done or a
// callback fails.
func (h *Host) Run(ctx context.Context, initFn turtle.InitFunc) error {
	h.ctx = ctx
	h.initFn = initFn
	h.start = time.Now()

	ebiten.SetWindowTitle(h.cfg.Title)
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.cfg.TPS)

	turtle.Logger().Info("ebitenhost: window opening", "width", h.cfg.Width, "height", h.cfg.Height)
	return ebiten.RunGame(h)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.ctx.Err() != nil {
		return ebiten.Termination
	}
	if err := h.applyResize(); err != nil {
		return err
	}
	switch {
	case !h.painted:
		return nil
	case !h.initialized:
		h.initialized = true
		w, ht := h.surface.Size()
		return h.initFn(h.ctx, h.surface, w, ht)
	case h.frame != nil:
		return h.frame(h.ctx, time.Since(h.start))
	}
	return nil
}

func (h *Host) applyResize() error {
	if h.pending == nil {
		return nil
	}
	sz := *h.pending
	h.pending = nil
	if err := h.surface.Resize(sz.w, sz.h); err != nil {
		return err
	}
	// Before init the turtle picks the size up from the InitFunc.
	if !h.initialized || h.resize == nil {
		return nil
	}
	return h.resize(h.ctx, sz.w, sz.h)
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	frame := h.surface.Frame(h.state)
	w, ht := frame.Bounds().Dx(), frame.Bounds().Dy()
	if h.screenImg == nil || h.screenImg.Bounds().Dx() != w || h.screenImg.Bounds().Dy() != ht {
		if h.screenImg != nil {
			h.screenImg.Deallocate()
		}
		h.screenImg = ebiten.NewImage(w, ht)
	}
	h.screenImg.WritePixels(frame.Pix)
	screen.DrawImage(h.screenImg, nil)
	h.markPainted()
}

func (h *Host) markPainted() {
	h.painted = true
}

// Layout implements ebiten.Game. The surface follows the window size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return h.surface.Size()
	}
	w, ht := h.surface.Size()
	if outsideWidth != w || outsideHeight != ht {
		h.pending = &size{outsideWidth, outsideHeight}
	}
	return outsideWidth, outsideHeight
}
