// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/internal/demo"
)

// Host kinds.
const (
	HostHeadless = "headless"
	HostWindow   = "window"
	HostTerminal = "term"
	HostGPU      = "gpu"
)

var hostKinds = []string{HostHeadless, HostWindow, HostTerminal, HostGPU}

// Config is the demo configuration file.
//
//	[window]
//	title = "turtle"
//	width = 800
//	height = 600
//
//	[host]
//	kind = "headless"
//	hz = 60
//	output = "turtle.png"
//
//	[pen]
//	color = "darkgreen"
//	size = 3
//
//	[turtle]
//	delay_ms = 0
//	show = true
//
//	[demo]
//	pattern = "tree"
type Config struct {
	Window WindowConfig `toml:"window"`
	Host   HostConfig   `toml:"host"`
	Pen    PenConfig    `toml:"pen"`
	Turtle TurtleConfig `toml:"turtle"`
	Demo   DemoConfig   `toml:"demo"`
}

// WindowConfig sizes the drawing area. The terminal host ignores it.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// HostConfig selects and tunes the host.
type HostConfig struct {
	Kind string `toml:"kind"`
	Hz   int    `toml:"hz"`

	// Ticks bounds the headless loop. Zero runs until the program is done.
	Ticks uint64 `toml:"ticks"`

	// Output is the PNG the headless host writes when it stops.
	Output string `toml:"output"`

	HUD bool `toml:"hud"`
}

// PenConfig sets the pen. Empty or zero values keep the turtle defaults.
type PenConfig struct {
	Color string  `toml:"color"`
	Size  float64 `toml:"size"`
}

// TurtleConfig tunes the cursor.
type TurtleConfig struct {
	DelayMS int  `toml:"delay_ms"`
	Show    bool `toml:"show"`
}

// Delay returns the configured glyph delay.
func (c TurtleConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// DemoConfig picks the program to draw.
type DemoConfig struct {
	Pattern string  `toml:"pattern"`
	Scale   float64 `toml:"scale"`

	// Loop clears and restarts the program when it finishes.
	Loop bool `toml:"loop"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Title: "turtle", Width: 800, Height: 600},
		Host:   HostConfig{Kind: HostHeadless, Hz: 60, Output: "turtle.png"},
		Turtle: TurtleConfig{Show: true},
		Demo:   DemoConfig{Pattern: "tree", Scale: 1},
	}
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadConfig reads a TOML file over DefaultConfig. Keys missing from the
// file keep their defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parseConfig(path, data)
}

func parseConfig(source string, data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			perr.Message = serr.String()
		}
		return Config{}, perr
	}
	return cfg, nil
}

// Validate checks the values a host or program cannot work with.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(hostKinds, c.Host.Kind) {
		errs = append(errs, fmt.Errorf("host.kind %q: want one of %v", c.Host.Kind, hostKinds))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d: must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Host.Hz <= 0 || c.Host.Hz > 1000 {
		errs = append(errs, fmt.Errorf("host.hz %d: must be in 1..1000", c.Host.Hz))
	}
	if !slices.Contains(demo.Names(), c.Demo.Pattern) {
		errs = append(errs, fmt.Errorf("demo.pattern %q: want one of %v", c.Demo.Pattern, demo.Names()))
	}
	if c.Pen.Color != "" {
		if _, err := turtle.ParseColor(c.Pen.Color); err != nil {
			errs = append(errs, fmt.Errorf("pen.color: %w", err))
		}
	}
	if c.Pen.Size < 0 {
		errs = append(errs, fmt.Errorf("pen.size %v: must not be negative", c.Pen.Size))
	}
	if c.Turtle.DelayMS < 0 {
		errs = append(errs, fmt.Errorf("turtle.delay_ms %d: must not be negative", c.Turtle.DelayMS))
	}
	return errors.Join(errs...)
}

// Params converts the pen and demo sections to pattern parameters.
// Call Validate first.
func (c Config) Params() demo.Params {
	p := demo.Params{Scale: c.Demo.Scale, PenSize: c.Pen.Size}
	if c.Pen.Color != "" {
		p.Color, _ = turtle.ParseColor(c.Pen.Color)
	}
	return p
}
