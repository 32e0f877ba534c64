// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command turtledemo draws a built-in turtle program on one of the hosts.
//
// Usage:
//
//	turtledemo -pattern tree -output tree.png
//	turtledemo -host window -pattern spiral -delay 5ms
//	turtledemo -host term -pattern star
//	turtledemo -config turtle.toml
//
// Flags override values from the config file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/host/ebitenhost"
	"github.com/gogpu/turtle/host/headless"
	"github.com/gogpu/turtle/host/termhost"
	"github.com/gogpu/turtle/integration/gogpuhost"
	"github.com/gogpu/turtle/internal/demo"
)

// host is what the demo needs from every host package.
type host interface {
	turtle.Host
	Invalidate(turtle.State)
	Run(ctx context.Context, initFn turtle.InitFunc) error
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		kind       = flag.String("host", HostHeadless, "host: "+strings.Join(hostKinds, ", "))
		width      = flag.Int("width", 800, "surface width")
		height     = flag.Int("height", 600, "surface height")
		pattern    = flag.String("pattern", "tree", "pattern: "+strings.Join(demo.Names(), ", "))
		penColor   = flag.String("color", "", "pen color (CSS name or hex)")
		penSize    = flag.Float64("size", 0, "pen size")
		delay      = flag.Duration("delay", 0, "glyph redraw delay")
		hz         = flag.Int("hz", 60, "frames per second")
		ticks      = flag.Uint64("ticks", 0, "headless tick budget (0 = until the program is done)")
		output     = flag.String("output", "turtle.png", "headless PNG output")
		hud        = flag.Bool("hud", false, "draw the status line")
		loop       = flag.Bool("loop", false, "restart the program when it finishes")
		logLevel   = flag.String("log", "warn", "log level: debug, info, warn, error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "turtledemo: -log: %v\n", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	turtle.SetLogger(logger)

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			logger.Error("turtledemo: config", "err", err)
			os.Exit(1)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host.Kind = *kind
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "pattern":
			cfg.Demo.Pattern = *pattern
		case "color":
			cfg.Pen.Color = *penColor
		case "size":
			cfg.Pen.Size = *penSize
		case "delay":
			cfg.Turtle.DelayMS = int(*delay / time.Millisecond)
		case "hz":
			cfg.Host.Hz = *hz
		case "ticks":
			cfg.Host.Ticks = *ticks
		case "output":
			cfg.Host.Output = *output
		case "hud":
			cfg.Host.HUD = *hud
		case "loop":
			cfg.Demo.Loop = *loop
		}
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("turtledemo: invalid config", "err", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("turtledemo: failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	prog, err := demo.New(cfg.Demo.Pattern, cfg.Params())
	if err != nil {
		return err
	}

	h, err := newHost(cfg, prog)
	if err != nil {
		return err
	}

	t := turtle.New(cfg.Window.Width, cfg.Window.Height,
		turtle.WithDelay(cfg.Turtle.Delay()),
		turtle.WithOnChange(h.Invalidate))
	b := turtle.NewBridge(t, h, turtle.WithFrameHook(frameHook(cfg, prog)))
	defer func() { _ = b.Close() }()

	turtle.Logger().Info("turtledemo: start", "host", cfg.Host.Kind, "pattern", prog.Name(), "commands", prog.Len())
	if err := h.Run(ctx, b.Init); err != nil {
		return err
	}

	if hh, ok := h.(*headless.Host); ok && cfg.Host.Output != "" {
		if err := hh.SavePNG(cfg.Host.Output); err != nil {
			return err
		}
		turtle.Logger().Info("turtledemo: saved", "path", cfg.Host.Output, "frames", b.Frames())
	}
	return nil
}

// frameHook advances prog by one command per frame.
func frameHook(cfg Config, prog *demo.Program) func(context.Context, *turtle.Turtle) error {
	return func(ctx context.Context, t *turtle.Turtle) error {
		// Reset shows the glyph again, so hiding is reapplied every frame.
		if !cfg.Turtle.Show {
			t.SetShowTurtle(false)
		}
		if prog.Done() && cfg.Demo.Loop {
			prog.Rewind()
			if err := t.Reset(ctx); err != nil {
				return err
			}
		}
		return prog.Next(ctx, t)
	}
}

func newHost(cfg Config, prog *demo.Program) (host, error) {
	switch cfg.Host.Kind {
	case HostHeadless:
		ticks := cfg.Host.Ticks
		if ticks == 0 {
			// One paint tick, one init tick, then a frame per command.
			ticks = uint64(prog.Len()) + 2
		}
		return headless.New(headless.Config{
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Hz:     cfg.Host.Hz,
			Ticks:  ticks,
			HUD:    cfg.Host.HUD,
		}), nil
	case HostWindow:
		return ebitenhost.New(ebitenhost.Config{
			Title:  cfg.Window.Title,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			TPS:    cfg.Host.Hz,
			HUD:    cfg.Host.HUD,
		}), nil
	case HostTerminal:
		return termhost.New(termhost.Config{Hz: cfg.Host.Hz})
	case HostGPU:
		return gogpuhost.New(gogpuhost.Config{
			Title:  cfg.Window.Title,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			HUD:    cfg.Host.HUD,
		}), nil
	}
	return nil, fmt.Errorf("unknown host %q", cfg.Host.Kind)
}
