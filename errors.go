// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle

import "errors"

// Common errors returned by Turtle and Bridge operations.
var (
	// ErrNotReady is returned when an operation needs the drawing surface
	// before the host has bound one.
	ErrNotReady = errors.New("turtle: surface not bound")

	// ErrClosed is returned when operations are attempted on a closed turtle.
	ErrClosed = errors.New("turtle: turtle is closed")

	// ErrAlreadyInitialized is returned by Bridge.Init on every call after the first.
	ErrAlreadyInitialized = errors.New("turtle: bridge already initialized")

	// ErrInvalidColor is returned by ParseColor for strings that are neither
	// a CSS color name nor a hex color.
	ErrInvalidColor = errors.New("turtle: invalid color")
)
