// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle

import (
	"context"
	"time"
)

// Option configures a Turtle during creation.
//
// Example:
//
//	t := turtle.New(800, 600,
//	    turtle.WithDelay(20*time.Millisecond),
//	    turtle.WithOnChange(host.Invalidate))
type Option func(*options)

// options holds optional configuration for Turtle creation.
type options struct {
	delay     time.Duration
	glyphSize int
	onChange  func(State)
	sleep     SleepFunc
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// defaultOptions returns the default turtle options.
func defaultOptions() options {
	return options{
		glyphSize: DefaultGlyphSize,
		sleep:     sleepContext,
	}
}

// WithDelay sets the delay slept before each glyph redraw.
// Reset keeps the delay.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// WithGlyphSize sets the width and height of the cursor glyph box.
func WithGlyphSize(size int) Option {
	return func(o *options) {
		o.glyphSize = size
	}
}

// WithOnChange registers the function the turtle calls when the host
// should re-render. It receives the current state.
func WithOnChange(fn func(State)) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// WithSleep replaces the delay implementation. Tests use it to observe
// delays without waiting.
func WithSleep(fn SleepFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.sleep = fn
		}
	}
}

// sleepContext is the default SleepFunc.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
