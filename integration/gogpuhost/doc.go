// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gogpuhost runs a turtle in a gogpu window.
//
// The turtle draws on a CPU ggsurface; every OnDraw the composed frame is
// painted into a ggcanvas and uploaded as a GPU texture:
//
//	turtle -> ggsurface (gg.Context) -> ggcanvas.Canvas -> gogpu window
//
// Importing this package registers the gg GPU accelerator, so the glyph
// and HUD compositing run on the GPU where one is available.
//
// # Lifecycle
//
// The first OnDraw creates the canvas and paints an empty frame. The next
// one calls the InitFunc, and every later one delivers a frame callback.
// A change of window size resizes the surface and the canvas before the
// resize callback runs.
package gogpuhost
