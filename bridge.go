// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle

import (
	"context"
	"time"
)

// FrameFunc is invoked by a host once per animation frame. ts is the time
// since the host started.
type FrameFunc func(ctx context.Context, ts time.Duration) error

// ResizeFunc is invoked by a host when its drawing area changes size.
type ResizeFunc func(ctx context.Context, width, height int) error

// InitFunc is invoked by a host exactly once, after its first paint,
// with the surface the turtle should draw on.
type InitFunc func(ctx context.Context, s Surface, width, height int) error

// Host is the platform side of the bridge: a window, terminal or
// headless loop that produces frames and resize notifications.
//
// A host holds at most one frame callback and one resize callback;
// registering again replaces the previous one. Callbacks are delivered
// from a single goroutine.
type Host interface {
	RegisterFrameCallback(fn FrameFunc)
	RegisterResizeCallback(fn ResizeFunc)

	// UnregisterAll drops both callbacks. No callback runs after it returns.
	UnregisterAll()
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithFrameHook runs fn on every frame before the turtle steps.
// Drivers use it to issue turtle commands from the host loop.
func WithFrameHook(fn func(ctx context.Context, t *Turtle) error) BridgeOption {
	return func(b *Bridge) {
		b.hook = fn
	}
}

// Bridge relays host frames and resizes into Turtle calls.
//
//	t := turtle.New(w, h, turtle.WithOnChange(host.Invalidate))
//	b := turtle.NewBridge(t, host)
//	defer b.Close()
//	err := host.Run(ctx, b.Init)
type Bridge struct {
	turtle *Turtle
	host   Host
	hook   func(ctx context.Context, t *Turtle) error

	initialized bool
	closed      bool
	frames      uint64
}

// NewBridge creates a bridge between t and host. Nothing is registered
// until Init.
func NewBridge(t *Turtle, host Host, opts ...BridgeOption) *Bridge {
	b := &Bridge{turtle: t, host: host}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Turtle returns the controller driven by the bridge.
func (b *Bridge) Turtle() *Turtle {
	return b.turtle
}

// Frames returns the number of frames delivered so far.
func (b *Bridge) Frames() uint64 {
	return b.frames
}

// Init binds the surface, registers the frame and resize callbacks and
// applies the initial size. It has the InitFunc signature so it can be
// handed to a host directly. Only the first call has any effect.
func (b *Bridge) Init(ctx context.Context, s Surface, width, height int) error {
	if b.closed {
		return ErrClosed
	}
	if b.initialized {
		return ErrAlreadyInitialized
	}
	b.initialized = true

	if err := b.turtle.Bind(s); err != nil {
		return err
	}
	b.host.RegisterFrameCallback(b.onFrame)
	b.host.RegisterResizeCallback(b.onResize)

	Logger().Info("turtle: bridge initialized", "width", width, "height", height)
	return b.turtle.OnResize(ctx, width, height)
}

func (b *Bridge) onFrame(ctx context.Context, ts time.Duration) error {
	b.frames++
	if b.hook != nil {
		if err := b.hook(ctx, b.turtle); err != nil {
			return err
		}
	}
	return b.turtle.Step(ctx)
}

func (b *Bridge) onResize(ctx context.Context, width, height int) error {
	return b.turtle.OnResize(ctx, width, height)
}

// Close unregisters the host callbacks and closes the turtle.
// Close is idempotent.
func (b *Bridge) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.host.UnregisterAll()
	return b.turtle.Close()
}
