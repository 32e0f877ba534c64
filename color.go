// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a pen color. Alpha is carried for hosts that composite, but
// CSS ignores it, matching how HTML color strings are produced.
type Color struct {
	R, G, B, A uint8
}

// Common pen colors.
var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
	Red   = Color{255, 0, 0, 255}
	Green = Color{0, 128, 0, 255}
	Blue  = Color{0, 0, 255, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// CSS returns the color as a CSS color string. Named CSS colors are
// returned by name ("blue"), everything else as "#rrggbb".
func (c Color) CSS() string {
	if name, ok := cssName(c); ok {
		return name
	}
	return c.Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.CSS()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// css4Names holds the CSS Color 4 names missing from colornames, which
// only carries the SVG 1.1 set.
var css4Names = map[string]color.RGBA{
	"rebeccapurple": {0x66, 0x33, 0x99, 0xff},
}

// ParseColor parses a CSS color name ("blue", "rebeccapurple") or a hex
// color ("#00f", "#0000ff"). Parsing is case-insensitive.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return FromColor(c), nil
	}
	if c, ok := css4Names[s]; ok {
		return FromColor(c), nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := cf.RGB255()
	return RGB(r, g, b), nil
}

// MustParseColor is like ParseColor but panics on error.
// Use only with constant color strings.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	cssNamesOnce sync.Once
	cssNames     map[[3]uint8]string
)

// cssName looks up the first CSS name (in colornames.Names order) whose
// RGB value equals c.
func cssName(c Color) (string, bool) {
	cssNamesOnce.Do(func() {
		cssNames = make(map[[3]uint8]string, len(colornames.Names))
		for _, name := range colornames.Names {
			v := colornames.Map[name]
			key := [3]uint8{v.R, v.G, v.B}
			if _, dup := cssNames[key]; !dup {
				cssNames[key] = name
			}
		}
		for name, v := range css4Names {
			key := [3]uint8{v.R, v.G, v.B}
			if _, dup := cssNames[key]; !dup {
				cssNames[key] = name
			}
		}
	})
	name, ok := cssNames[[3]uint8{c.R, c.G, c.B}]
	return name, ok
}
