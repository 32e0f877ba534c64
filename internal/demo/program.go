// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package demo provides built-in turtle drawing programs for the demo
// command. A Program is a queue of commands run one per host frame, so
// the drawing animates at the host frame rate.
package demo

import (
	"context"
	"time"

	"github.com/gogpu/turtle"
)

// Command is one turtle instruction.
type Command func(ctx context.Context, t *turtle.Turtle) error

// Program is a named command queue.
//
// Program is NOT safe for concurrent use.
type Program struct {
	name string
	cmds []Command
	next int
}

// NewProgram creates a program from explicit commands.
func NewProgram(name string, cmds ...Command) *Program {
	return &Program{name: name, cmds: cmds}
}

// Name returns the program name.
func (p *Program) Name() string { return p.name }

// Len returns the number of commands.
func (p *Program) Len() int { return len(p.cmds) }

// Done reports whether every command has run.
func (p *Program) Done() bool { return p.next >= len(p.cmds) }

// Rewind restarts the program from its first command.
func (p *Program) Rewind() { p.next = 0 }

// Next runs the next command, if any. It has the frame hook signature
// so it can be passed to turtle.WithFrameHook.
func (p *Program) Next(ctx context.Context, t *turtle.Turtle) error {
	if p.Done() {
		return nil
	}
	cmd := p.cmds[p.next]
	p.next++
	return cmd(ctx, t)
}

// Run executes the remaining commands at once.
func (p *Program) Run(ctx context.Context, t *turtle.Turtle) error {
	for !p.Done() {
		if err := p.Next(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// Forward moves forward by d.
func Forward(d float64) Command {
	return func(ctx context.Context, t *turtle.Turtle) error { return t.Forward(ctx, d) }
}

// Backward moves backward by d.
func Backward(d float64) Command {
	return func(ctx context.Context, t *turtle.Turtle) error { return t.Backward(ctx, d) }
}

// Rotate turns by delta degrees.
func Rotate(delta float64) Command {
	return func(ctx context.Context, t *turtle.Turtle) error { return t.Rotate(ctx, delta) }
}

// RotateTo sets the heading.
func RotateTo(angle float64) Command {
	return func(ctx context.Context, t *turtle.Turtle) error { return t.RotateTo(ctx, angle) }
}

// MoveTo moves to an absolute position.
func MoveTo(x, y float64) Command {
	return func(ctx context.Context, t *turtle.Turtle) error { return t.MoveTo(ctx, x, y) }
}

// PenUp lifts the pen.
func PenUp() Command {
	return func(_ context.Context, t *turtle.Turtle) error {
		t.PenUp()
		return nil
	}
}

// PenDown lowers the pen.
func PenDown() Command {
	return func(_ context.Context, t *turtle.Turtle) error {
		t.PenDown()
		return nil
	}
}

// Pen sets the pen color and size.
func Pen(c turtle.Color, size float64) Command {
	return func(_ context.Context, t *turtle.Turtle) error {
		t.SetPenColor(c)
		t.SetPenSize(size)
		return nil
	}
}

// Delay sets the glyph redraw delay.
func Delay(d time.Duration) Command {
	return func(_ context.Context, t *turtle.Turtle) error {
		t.SetDelay(d)
		return nil
	}
}

// Reset clears the surface and homes the turtle.
func Reset() Command {
	return func(ctx context.Context, t *turtle.Turtle) error { return t.Reset(ctx) }
}
