// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle

import (
	"errors"
	"image/color"
	"testing"
)

func TestColorCSS(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want string
	}{
		{"blue", Blue, "blue"},
		{"black", Black, "black"},
		{"green is css green", Green, "green"},
		{"aqua wins over cyan", RGB(0, 255, 255), "aqua"},
		{"unnamed", RGB(0x12, 0x34, 0x56), "#123456"},
		{"alpha ignored", Color{255, 0, 0, 10}, "red"},
		{"css4 name", RGB(0x66, 0x33, 0x99), "rebeccapurple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.CSS(); got != tt.want {
				t.Errorf("CSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"blue", Blue, false},
		{"  Blue ", Blue, false},
		{"rebeccapurple", RGB(102, 51, 153), false},
		{"RebeccaPurple", RGB(102, 51, 153), false},
		{"#0000ff", Blue, false},
		{"#00F", Blue, false},
		{"123456", RGB(0x12, 0x34, 0x56), false},
		{"not-a-color", Color{}, true},
		{"#12345", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("error %v does not wrap ErrInvalidColor", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorCSSRoundTrip(t *testing.T) {
	for _, c := range []Color{Black, White, Red, Green, Blue, RGB(1, 2, 3), RGB(250, 128, 114), RGB(102, 51, 153)} {
		got, err := ParseColor(c.CSS())
		if err != nil {
			t.Fatalf("ParseColor(%q) = %v", c.CSS(), err)
		}
		if got != c {
			t.Errorf("round trip %+v -> %q -> %+v", c, c.CSS(), got)
		}
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.RGBA{R: 0, G: 0, B: 255, A: 255})
	if got != Blue {
		t.Errorf("FromColor(blue) = %+v, want %+v", got, Blue)
	}
	r, g, b, a := Blue.RGBA()
	if r != 0 || g != 0 || b != 0xffff || a != 0xffff {
		t.Errorf("Blue.RGBA() = %x %x %x %x", r, g, b, a)
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseColor should panic on invalid input")
		}
	}()
	MustParseColor("nope")
}
