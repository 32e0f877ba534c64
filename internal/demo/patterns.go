// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package demo

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/turtle"
)

// ErrUnknownPattern is returned by New for a name not in Names.
var ErrUnknownPattern = errors.New("demo: unknown pattern")

// Params tune a built-in pattern.
type Params struct {
	// Scale multiplies every distance. Zero means 1.
	Scale float64

	// Color is the pen color. The zero Color keeps the turtle's pen.
	// Spiral ignores it and cycles hues.
	Color turtle.Color

	// PenSize is the stroke width. Zero keeps the turtle's pen.
	PenSize float64
}

type pattern func(p Params) []Command

var patterns = map[string]pattern{
	"square": square,
	"star":   star,
	"spiral": spiral,
	"tree":   tree,
}

// Names returns the built-in pattern names in sorted order.
func Names() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the named pattern.
func New(name string, p Params) (*Program, error) {
	build, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	if p.Scale == 0 {
		p.Scale = 1
	}

	var cmds []Command
	if p.Color != (turtle.Color{}) || p.PenSize != 0 {
		cmds = append(cmds, func(ctx context.Context, t *turtle.Turtle) error {
			c, size := p.Color, p.PenSize
			if c == (turtle.Color{}) {
				c = t.PenColor()
			}
			if size == 0 {
				size = t.PenSize()
			}
			return Pen(c, size)(ctx, t)
		})
	}
	return NewProgram(name, append(cmds, build(p)...)...), nil
}

func square(p Params) []Command {
	side := 150 * p.Scale
	cmds := make([]Command, 0, 8)
	for range 4 {
		cmds = append(cmds, Forward(side), Rotate(90))
	}
	return cmds
}

func star(p Params) []Command {
	arm := 200 * p.Scale
	cmds := []Command{PenUp(), MoveTo(-arm/2, -arm/6), RotateTo(72), PenDown()}
	for range 5 {
		cmds = append(cmds, Forward(arm), Rotate(144))
	}
	return cmds
}

const spiralSteps = 72

func spiral(p Params) []Command {
	cmds := make([]Command, 0, 2*spiralSteps)
	for i := range spiralSteps {
		hue := float64(i) * 360 / spiralSteps
		r, g, b := colorful.Hsv(hue, 0.8, 0.9).Clamped().RGB255()
		size := p.PenSize
		cmds = append(cmds,
			func(_ context.Context, t *turtle.Turtle) error {
				t.SetPenColor(turtle.RGB(r, g, b))
				if size == 0 {
					t.SetPenSize(2)
				}
				return nil
			},
			Forward(float64(i)*4*p.Scale),
			Rotate(91),
		)
	}
	return cmds
}

const (
	treeDepth = 6
	treeAngle = 25.0
)

func tree(p Params) []Command {
	trunk := 90 * p.Scale
	cmds := []Command{PenUp(), MoveTo(0, -2*trunk), RotateTo(0), PenDown()}
	return branch(cmds, treeDepth, trunk)
}

// branch draws a branch and its two sub-branches, then returns the turtle
// to where it started with the same heading.
func branch(cmds []Command, depth int, length float64) []Command {
	cmds = append(cmds, Forward(length))
	if depth > 1 {
		cmds = append(cmds, Rotate(-treeAngle))
		cmds = branch(cmds, depth-1, length*0.72)
		cmds = append(cmds, Rotate(2*treeAngle))
		cmds = branch(cmds, depth-1, length*0.72)
		cmds = append(cmds, Rotate(-treeAngle))
	}
	return append(cmds, PenUp(), Backward(length), PenDown())
}
