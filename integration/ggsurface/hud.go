// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/turtle"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const hudFontSize = 13

var (
	hudOnce sync.Once
	hudFace text.Face
)

// hudFontFace loads the built-in Go Regular face once. It returns nil if
// the font cannot be parsed, in which case the status line is skipped.
func hudFontFace() text.Face {
	hudOnce.Do(func() {
		source, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			turtle.Logger().Warn("ggsurface: hud font unavailable", "err", err)
			return
		}
		hudFace = source.Face(hudFontSize)
	})
	return hudFace
}

var hudPrinter = message.NewPrinter(language.English)

// StatusLine formats position, heading and pen state for display.
func StatusLine(st turtle.State) string {
	pen := "up"
	if st.PenVisible {
		pen = "down"
	}
	return hudPrinter.Sprintf("x %.1f  y %.1f  heading %.1f°  pen %s %s",
		st.X, st.Y, st.Angle(), pen, st.PenColor.CSS())
}

func drawHUD(dc *gg.Context, st turtle.State) {
	face := hudFontFace()
	if face == nil {
		return
	}
	dc.SetFont(face)
	dc.SetRGBA(0.2, 0.2, 0.2, 0.9)
	dc.DrawString(StatusLine(st), 8, float64(dc.Height())-8)
}
