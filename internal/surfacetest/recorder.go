// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surfacetest provides a recording turtle.Surface for tests.
package surfacetest

import (
	"fmt"

	"github.com/gogpu/turtle"
)

// Call is one recorded surface call.
type Call struct {
	Op    string
	Args  []float64
	Style string
	Cap   turtle.LineCap
}

// String formats the call for test failure messages.
func (c Call) String() string {
	switch c.Op {
	case "SetStrokeStyle":
		return fmt.Sprintf("%s(%q)", c.Op, c.Style)
	case "SetLineCap":
		return fmt.Sprintf("%s(%s)", c.Op, c.Cap)
	default:
		return fmt.Sprintf("%s%v", c.Op, c.Args)
	}
}

// Recorder is a turtle.Surface that records every call.
type Recorder struct {
	Calls []Call

	// StrokeErr, if set, is returned by Stroke.
	StrokeErr error

	closes int
}

var _ turtle.Surface = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(op string, args ...float64) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

func (r *Recorder) ClearRect(x, y, width, height float64) { r.add("ClearRect", x, y, width, height) }
func (r *Recorder) BeginPath()                            { r.add("BeginPath") }
func (r *Recorder) ClosePath()                            { r.add("ClosePath") }
func (r *Recorder) MoveTo(x, y float64)                   { r.add("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)                   { r.add("LineTo", x, y) }
func (r *Recorder) SetLineWidth(width float64)            { r.add("SetLineWidth", width) }

func (r *Recorder) SetLineCap(lineCap turtle.LineCap) {
	r.Calls = append(r.Calls, Call{Op: "SetLineCap", Cap: lineCap})
}

func (r *Recorder) SetStrokeStyle(style string) {
	r.Calls = append(r.Calls, Call{Op: "SetStrokeStyle", Style: style})
}

func (r *Recorder) Stroke() error {
	r.add("Stroke")
	return r.StrokeErr
}

// Close implements io.Closer and counts calls.
func (r *Recorder) Close() error {
	r.closes++
	return nil
}

// Closes returns how many times Close was called.
func (r *Recorder) Closes() int {
	return r.closes
}

// Count returns the number of recorded calls named op.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
