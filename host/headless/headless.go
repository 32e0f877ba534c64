// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless runs a turtle without a window: a ticker loop drives
// frames and the drawing can be saved as PNG.
package headless

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/integration/ggsurface"
)

// Config controls the headless loop.
type Config struct {
	Width  int
	Height int

	// Hz is the frame rate. Defaults to 60.
	Hz int

	// Ticks stops the loop after N ticks (0 = run until ctx is done).
	// The first tick is the first paint; frames start on the second.
	Ticks uint64

	// HUD draws a status line in saved frames.
	HUD bool
}

type size struct{ w, h int }

// Host is a turtle.Host driven by a time.Ticker. All callbacks run on
// the goroutine that calls Run.
type Host struct {
	cfg     Config
	surface *ggsurface.Surface
	state   turtle.State

	frame   turtle.FrameFunc
	resize  turtle.ResizeFunc
	resizes chan size

	painted     bool
	initialized bool
	start       time.Time
}

var _ turtle.Host = (*Host)(nil)

// New creates a headless host.
func New(cfg Config) *Host {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	return &Host{
		cfg:     cfg,
		surface: ggsurface.New(cfg.Width, cfg.Height, ggsurface.WithHUD(cfg.HUD)),
		state:   turtle.DefaultState(),
		resizes: make(chan size, 16),
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

// Invalidate records the state to render. Pass it to turtle.WithOnChange.
func (h *Host) Invalidate(st turtle.State) {
	h.state = st
}

// State returns the last state passed to Invalidate.
func (h *Host) State() turtle.State {
	return h.state
}

// Surface returns the surface handed to the turtle on init.
func (h *Host) Surface() *ggsurface.Surface {
	return h.surface
}

// Resize queues a size change. It is applied on the loop goroutine
// before the next tick. Safe to call from any goroutine; changes beyond
// the queue capacity are dropped.
func (h *Host) Resize(width, height int) {
	select {
	case h.resizes <- size{width, height}:
	default:
		turtle.Logger().Warn("headless: resize dropped", "width", width, "height", height)
	}
}

// SavePNG writes the current frame to path.
func (h *Host) SavePNG(path string) error {
	return h.surface.SavePNG(path, h.state)
}

// Run drives the loop until ctx is done, the tick budget is spent or a
// callback fails. initFn is called once, on the tick after the first paint.
func (h *Host) Run(ctx context.Context, initFn turtle.InitFunc) error {
	d := time.Second / time.Duration(h.cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("headless: invalid hz: %d", h.cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	h.start = time.Now()
	turtle.Logger().Info("headless: running", "hz", h.cfg.Hz, "ticks", h.cfg.Ticks)

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sz := <-h.resizes:
			if err := h.applyResize(ctx, sz); err != nil {
				return err
			}
		case <-t.C:
			if err := h.tick(ctx, initFn); err != nil {
				return err
			}
			tick++
			if h.cfg.Ticks > 0 && tick >= h.cfg.Ticks {
				return nil
			}
		}
	}
}

func (h *Host) tick(ctx context.Context, initFn turtle.InitFunc) error {
	switch {
	case !h.painted:
		// Nothing to show yet; the first tick stands in for the first paint.
		h.painted = true
		return nil
	case !h.initialized:
		h.initialized = true
		w, ht := h.surface.Size()
		return initFn(ctx, h.surface, w, ht)
	case h.frame != nil:
		return h.frame(ctx, time.Since(h.start))
	}
	return nil
}

func (h *Host) applyResize(ctx context.Context, sz size) error {
	if err := h.surface.Resize(sz.w, sz.h); err != nil {
		return err
	}
	if h.resize == nil {
		return nil
	}
	return h.resize(ctx, sz.w, sz.h)
}
