// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuhost

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"

	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/integration/ggsurface"
)

// Config controls the window.
type Config struct {
	Title  string
	Width  int
	Height int
	HUD    bool
}

// Host is a turtle.Host backed by a gogpu App. gogpu calls OnDraw on the
// main thread, so callbacks never overlap.
//
// Host is NOT safe for concurrent use.
type Host struct {
	cfg     Config
	surface *ggsurface.Surface
	canvas  *ggcanvas.Canvas
	state   turtle.State

	frame  turtle.FrameFunc
	resize turtle.ResizeFunc

	painted     bool
	initialized bool
	start       time.Time
	err         error
}

var _ turtle.Host = (*Host)(nil)

// New creates a window host. The window opens on Run.
func New(cfg Config) *Host {
	if cfg.Title == "" {
		cfg.Title = "turtle"
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	return &Host{
		cfg:   cfg,
		state: turtle.DefaultState(),
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

// Invalidate records the state to render on the next draw.
func (h *Host) Invalidate(st turtle.State) {
	h.state = st
}

// Surface returns the CPU surface, or nil before the first draw.
func (h *Host) Surface() *ggsurface.Surface {
	return h.surface
}

// Run opens the window and blocks until it is closed, ctx is done or a
// callback fails.
func (h *Host) Run(ctx context.Context, initFn turtle.InitFunc) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(h.cfg.Title).
		WithSize(h.cfg.Width, h.cfg.Height))

	app.OnDraw(func(dc *gogpu.Context) {
		if h.err != nil {
			return
		}
		if err := ctx.Err(); err != nil {
			h.err = err
			app.Quit()
			return
		}

		w, ht := dc.Width(), dc.Height()
		if w <= 0 || ht <= 0 {
			return
		}

		if h.canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			canvas, err := ggcanvas.New(provider, w, ht)
			if err != nil {
				h.fail(app, fmt.Errorf("gogpuhost: create canvas: %w", err))
				return
			}
			h.canvas = canvas
			turtle.Logger().Info("gogpuhost: canvas created", "width", w, "height", ht, "backend", dc.Backend())
		}

		if err := h.advance(ctx, w, ht, initFn); err != nil {
			h.fail(app, err)
			return
		}
		if err := h.render(dc); err != nil {
			turtle.Logger().Warn("gogpuhost: render failed", "err", err)
		}
	})

	app.OnClose(func() {
		h.UnregisterAll()
		if h.canvas != nil {
			_ = h.canvas.Close()
			h.canvas = nil
		}
		gg.CloseAccelerator()
	})

	turtle.Logger().Info("gogpuhost: running", "width", h.cfg.Width, "height", h.cfg.Height)
	if err := app.Run(); err != nil {
		return fmt.Errorf("gogpuhost: %w", err)
	}
	if errors.Is(h.err, context.Canceled) {
		return nil
	}
	return h.err
}

// advance moves the host lifecycle one draw forward: paint, then init,
// then a resize or frame callback per draw.
func (h *Host) advance(ctx context.Context, width, height int, initFn turtle.InitFunc) error {
	if h.surface == nil {
		h.surface = ggsurface.New(width, height, ggsurface.WithHUD(h.cfg.HUD))
		h.start = time.Now()
	}

	resized := false
	if sw, sh := h.surface.Size(); sw != width || sh != height {
		if err := h.surface.Resize(width, height); err != nil {
			return err
		}
		resized = true
	}

	switch {
	case !h.painted:
		h.painted = true
		return nil
	case !h.initialized:
		h.initialized = true
		return initFn(ctx, h.surface, width, height)
	case resized:
		if h.resize != nil {
			return h.resize(ctx, width, height)
		}
		return nil
	case h.frame != nil:
		return h.frame(ctx, time.Since(h.start))
	}
	return nil
}

func (h *Host) render(dc *gogpu.Context) error {
	w, ht := h.surface.Size()
	if cw, ch := h.canvas.Size(); cw != w || ch != ht {
		if err := h.canvas.Resize(w, ht); err != nil {
			return err
		}
	}
	if err := h.canvas.Draw(func(cc *gg.Context) {
		h.surface.Compose(cc, h.state)
	}); err != nil {
		return err
	}
	return h.canvas.RenderTo(dc.AsTextureDrawer())
}

func (h *Host) fail(app *gogpu.App, err error) {
	h.err = err
	turtle.Logger().Error("gogpuhost: stopping", "err", err)
	app.Quit()
}
