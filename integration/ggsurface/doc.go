// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggsurface implements turtle.Surface on a gg drawing context.
//
// A Surface keeps two things apart: the drawing layer, which only the
// turtle strokes on and which persists between frames, and the frame,
// which hosts compose on every render from the background, the layer,
// the cursor glyph and an optional status line:
//
//	s := ggsurface.New(800, 600)
//	defer s.Close()
//
//	t := turtle.New(800, 600)
//	_ = t.Bind(s)
//	_ = t.Forward(ctx, 100)
//
//	img := s.Frame(t.State())
//
// # Thread Safety
//
// Surface is NOT safe for concurrent use. Hosts call it from their
// render loop only.
package ggsurface
