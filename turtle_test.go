// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/internal/surfacetest"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// newReady returns a bound turtle, its recorder and the recorded delays.
func newReady(t *testing.T, width, height int, opts ...turtle.Option) (*turtle.Turtle, *surfacetest.Recorder, *[]time.Duration) {
	t.Helper()
	var delays []time.Duration
	opts = append(opts, turtle.WithSleep(func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}))
	tt := turtle.New(width, height, opts...)
	rec := surfacetest.NewRecorder()
	if err := tt.Bind(rec); err != nil {
		t.Fatalf("Bind() = %v", err)
	}
	return tt, rec, &delays
}

func TestForwardFromOrigin(t *testing.T) {
	ctx := context.Background()
	tt, _, _ := newReady(t, 800, 600)

	if err := tt.Forward(ctx, 10); err != nil {
		t.Fatalf("Forward() = %v", err)
	}
	s := tt.State()
	if s.X != 0 || s.Y != 10 {
		t.Errorf("position = (%v, %v), want (0, 10)", s.X, s.Y)
	}

	if err := tt.Rotate(ctx, 90); err != nil {
		t.Fatalf("Rotate() = %v", err)
	}
	if err := tt.Forward(ctx, 10); err != nil {
		t.Fatalf("Forward() = %v", err)
	}
	s = tt.State()
	if !near(s.X, 10) || !near(s.Y, 10) {
		t.Errorf("position = (%v, %v), want (10, 10)", s.X, s.Y)
	}
}

func TestBackwardMatchesNegativeForward(t *testing.T) {
	ctx := context.Background()
	for _, d := range []float64{0, 1, -1, 10, -37.5, 250} {
		for _, heading := range []float64{0, 30, 90, 181, 359} {
			a, _, _ := newReady(t, 640, 480)
			b, _, _ := newReady(t, 640, 480)
			_ = a.RotateTo(ctx, heading)
			_ = b.RotateTo(ctx, heading)

			if err := a.Backward(ctx, d); err != nil {
				t.Fatal(err)
			}
			if err := b.Forward(ctx, -d); err != nil {
				t.Fatal(err)
			}
			if a.State() != b.State() {
				t.Errorf("Backward(%v) at %v = %+v, Forward(-d) = %+v", d, heading, a.State(), b.State())
			}
		}
	}
}

func TestMoveToStrokeSequence(t *testing.T) {
	tt, rec, _ := newReady(t, 200, 100)

	if err := tt.MoveTo(context.Background(), 10, 20); err != nil {
		t.Fatalf("MoveTo() = %v", err)
	}

	want := []surfacetest.Call{
		{Op: "SetLineCap", Cap: turtle.LineCapRound},
		{Op: "BeginPath"},
		{Op: "SetLineWidth", Args: []float64{turtle.DefaultPenSize}},
		{Op: "SetStrokeStyle", Style: "blue"},
		{Op: "MoveTo", Args: []float64{100, 50}},
		{Op: "LineTo", Args: []float64{110, 30}},
		{Op: "Stroke"},
		{Op: "ClosePath"},
	}
	if len(rec.Calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.Calls, want)
	}
	for i := range want {
		if !reflect.DeepEqual(normalize(rec.Calls[i]), normalize(want[i])) {
			t.Errorf("call %d = %v, want %v", i, rec.Calls[i], want[i])
		}
	}
}

// normalize makes nil and empty argument slices compare equal.
func normalize(c surfacetest.Call) surfacetest.Call {
	if len(c.Args) == 0 {
		c.Args = nil
	}
	return c
}

func TestMoveToUsesIntegerHalves(t *testing.T) {
	tt, rec, _ := newReady(t, 201, 101)
	if err := tt.MoveTo(context.Background(), 0, 0); err != nil {
		t.Fatal(err)
	}
	for _, c := range rec.Calls {
		if c.Op == "MoveTo" && (c.Args[0] != 100 || c.Args[1] != 50) {
			t.Errorf("MoveTo args = %v, want [100 50]", c.Args)
		}
	}
}

func TestPenColorAndSizeFlowIntoStroke(t *testing.T) {
	tt, rec, _ := newReady(t, 100, 100)
	tt.SetPenColor(turtle.RGB(0x12, 0x34, 0x56))
	tt.SetPenSize(2.5)

	if err := tt.Forward(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	var style string
	var width float64
	for _, c := range rec.Calls {
		switch c.Op {
		case "SetStrokeStyle":
			style = c.Style
		case "SetLineWidth":
			width = c.Args[0]
		}
	}
	if style != "#123456" || width != 2.5 {
		t.Errorf("stroke style/width = %q/%v, want #123456/2.5", style, width)
	}
}

func TestPenUpSuppressesStrokes(t *testing.T) {
	ctx := context.Background()
	tt, rec, _ := newReady(t, 300, 300)
	tt.PenUp()

	moves := [][2]float64{{10, 10}, {-40, 3}, {0, 0}, {99, -99}}
	for _, m := range moves {
		if err := tt.MoveTo(ctx, m[0], m[1]); err != nil {
			t.Fatal(err)
		}
	}
	if n := rec.Count("Stroke"); n != 0 {
		t.Errorf("Stroke calls = %d, want 0", n)
	}
	if s := tt.State(); s.X != 99 || s.Y != -99 {
		t.Errorf("position = (%v, %v), want (99, -99)", s.X, s.Y)
	}

	tt.PenDown()
	if err := tt.Forward(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if n := rec.Count("Stroke"); n != 1 {
		t.Errorf("Stroke calls after PenDown = %d, want 1", n)
	}
}

func TestRotateDoesNotDraw(t *testing.T) {
	ctx := context.Background()
	tt, rec, _ := newReady(t, 100, 100)

	if err := tt.Rotate(ctx, -90); err != nil {
		t.Fatal(err)
	}
	if got := tt.State().Angle(); got != 270 {
		t.Errorf("Angle() = %v, want 270", got)
	}
	if err := tt.RotateTo(ctx, 725); err != nil {
		t.Fatal(err)
	}
	if got := tt.State().Angle(); got != 5 {
		t.Errorf("Angle() = %v, want 5", got)
	}
	if len(rec.Calls) != 0 {
		t.Errorf("rotate issued surface calls: %v", rec.Calls)
	}
	if got := tt.RotateStyle(); got != "rotate(5deg)" {
		t.Errorf("RotateStyle() = %q", got)
	}
}

func TestResetRestoresDefaultsAndKeepsDelay(t *testing.T) {
	ctx := context.Background()
	var changes []turtle.State
	tt, rec, _ := newReady(t, 400, 200,
		turtle.WithDelay(15*time.Millisecond),
		turtle.WithOnChange(func(s turtle.State) { changes = append(changes, s) }))

	tt.SetPenColor(turtle.Red)
	tt.SetPenSize(1)
	tt.SetShowTurtle(false)
	_ = tt.Forward(ctx, 30)
	_ = tt.Rotate(ctx, 33)
	tt.PenUp()
	tt.SetDelay(40 * time.Millisecond)

	rec.Reset()
	if err := tt.Reset(ctx); err != nil {
		t.Fatalf("Reset() = %v", err)
	}
	once := tt.State()
	if err := tt.Reset(ctx); err != nil {
		t.Fatalf("Reset() = %v", err)
	}
	twice := tt.State()

	if once != twice {
		t.Errorf("Reset not idempotent: %+v vs %+v", once, twice)
	}
	if once.X != 0 || once.Y != 0 || once.Angle() != 0 {
		t.Errorf("position/heading = (%v,%v,%v)", once.X, once.Y, once.Angle())
	}
	if once.PenColor != turtle.DefaultColor || once.PenSize != turtle.DefaultPenSize {
		t.Errorf("pen = %v/%v", once.PenColor, once.PenSize)
	}
	if !once.PenVisible || !once.ShowTurtle {
		t.Error("pen and glyph should be visible after Reset")
	}
	if once.Delay != 40*time.Millisecond {
		t.Errorf("Delay = %v, want 40ms", once.Delay)
	}
	if once.Left != 1+200-17 || once.Top != 1+100-17 {
		t.Errorf("glyph box = (%d,%d)", once.Left, once.Top)
	}

	want := []surfacetest.Call{
		{Op: "ClearRect", Args: []float64{0, 0, 400, 200}},
		{Op: "ClearRect", Args: []float64{0, 0, 400, 200}},
	}
	if !reflect.DeepEqual(rec.Calls, want) {
		t.Errorf("calls = %v, want %v", rec.Calls, want)
	}
	if len(changes) != 2 {
		t.Errorf("onChange calls = %d, want 2", len(changes))
	}
}

func TestOnResizeResets(t *testing.T) {
	ctx := context.Background()
	tt, rec, _ := newReady(t, 100, 100)
	_ = tt.Forward(ctx, 20)
	_ = tt.Rotate(ctx, 45)

	if err := tt.OnResize(ctx, 640, 480); err != nil {
		t.Fatalf("OnResize() = %v", err)
	}
	s := tt.State()
	if s.X != 0 || s.Y != 0 || s.Angle() != 0 {
		t.Errorf("after resize = (%v,%v,%v), want origin heading 0", s.X, s.Y, s.Angle())
	}
	if w, h := tt.Size(); w != 640 || h != 480 {
		t.Errorf("Size() = %dx%d", w, h)
	}
	last := rec.Calls[len(rec.Calls)-1]
	if last.Op != "ClearRect" || !reflect.DeepEqual(last.Args, []float64{0, 0, 640, 480}) {
		t.Errorf("last call = %v, want ClearRect of new size", last)
	}
}

func TestGlyphBoxFollowsTurtle(t *testing.T) {
	ctx := context.Background()
	tt, _, _ := newReady(t, 800, 600)

	s := tt.State()
	if s.Left != 384 || s.Top != 284 {
		t.Errorf("initial glyph = (%d,%d), want (384,284)", s.Left, s.Top)
	}
	if err := tt.MoveTo(ctx, 10.5, -20); err != nil {
		t.Fatal(err)
	}
	s = tt.State()
	// 1+400+10.5-17 = 394.5 rounds to even.
	if s.Left != 394 || s.Top != 304 {
		t.Errorf("glyph = (%d,%d), want (394,304)", s.Left, s.Top)
	}
}

func TestStepAppliesDelayAndInvalidates(t *testing.T) {
	var changes int
	tt, _, delays := newReady(t, 100, 100,
		turtle.WithDelay(25*time.Millisecond),
		turtle.WithOnChange(func(turtle.State) { changes++ }))

	if err := tt.Step(context.Background()); err != nil {
		t.Fatalf("Step() = %v", err)
	}
	if len(*delays) != 1 || (*delays)[0] != 25*time.Millisecond {
		t.Errorf("delays = %v, want [25ms]", *delays)
	}
	if changes != 1 {
		t.Errorf("onChange calls = %d, want 1", changes)
	}
}

func TestMovesApplyDelay(t *testing.T) {
	ctx := context.Background()
	tt, _, delays := newReady(t, 100, 100, turtle.WithDelay(time.Millisecond))
	_ = tt.Forward(ctx, 1)
	_ = tt.Rotate(ctx, 1)
	tt.PenUp()
	_ = tt.MoveTo(ctx, 0, 0)
	if len(*delays) != 3 {
		t.Errorf("delays = %v, want 3 entries", *delays)
	}
}

func TestDelayCancellation(t *testing.T) {
	tt := turtle.New(100, 100, turtle.WithDelay(time.Hour))
	if err := tt.Bind(surfacetest.NewRecorder()); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tt.Step(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Step() = %v, want context.Canceled", err)
	}
}

func TestStrokeErrorIsWrapped(t *testing.T) {
	tt, rec, _ := newReady(t, 100, 100)
	boom := errors.New("boom")
	rec.StrokeErr = boom

	err := tt.Forward(context.Background(), 10)
	if !errors.Is(err, boom) {
		t.Errorf("Forward() = %v, want wrapped boom", err)
	}
}

func TestLifecycleErrors(t *testing.T) {
	ctx := context.Background()
	tt := turtle.New(100, 100)

	if tt.Ready() {
		t.Error("new turtle should not be ready")
	}
	if err := tt.Forward(ctx, 10); !errors.Is(err, turtle.ErrNotReady) {
		t.Errorf("Forward() before Bind = %v, want ErrNotReady", err)
	}
	if err := tt.Reset(ctx); !errors.Is(err, turtle.ErrNotReady) {
		t.Errorf("Reset() before Bind = %v, want ErrNotReady", err)
	}

	rec := surfacetest.NewRecorder()
	if err := tt.Bind(rec); err != nil {
		t.Fatal(err)
	}
	if !tt.Ready() {
		t.Error("bound turtle should be ready")
	}

	if err := tt.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := tt.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}
	if rec.Closes() != 1 {
		t.Errorf("surface closed %d times, want 1", rec.Closes())
	}
	if err := tt.Forward(ctx, 10); !errors.Is(err, turtle.ErrClosed) {
		t.Errorf("Forward() after Close = %v, want ErrClosed", err)
	}
	if err := tt.Step(ctx); !errors.Is(err, turtle.ErrClosed) {
		t.Errorf("Step() after Close = %v, want ErrClosed", err)
	}
	if err := tt.Bind(rec); !errors.Is(err, turtle.ErrClosed) {
		t.Errorf("Bind() after Close = %v, want ErrClosed", err)
	}
}

func TestPenUpMoveBeforeBind(t *testing.T) {
	ctx := context.Background()
	tt := turtle.New(100, 100)

	tt.PenUp()
	if err := tt.MoveTo(ctx, 10, -20); err != nil {
		t.Fatalf("pen-up MoveTo() before Bind = %v, want nil", err)
	}
	if s := tt.State(); s.X != 10 || s.Y != -20 {
		t.Errorf("position = (%v, %v), want (10, -20)", s.X, s.Y)
	}
	// 1 + 50 + 10 - 17, 1 + 50 + 20 - 17
	if s := tt.State(); s.Left != 44 || s.Top != 54 {
		t.Errorf("glyph box = (%d, %d), want (44, 54)", s.Left, s.Top)
	}

	tt.PenDown()
	if err := tt.Forward(ctx, 5); !errors.Is(err, turtle.ErrNotReady) {
		t.Errorf("pen-down Forward() before Bind = %v, want ErrNotReady", err)
	}

	if err := tt.Close(); err != nil {
		t.Fatal(err)
	}
	tt.PenUp()
	if err := tt.MoveTo(ctx, 0, 0); !errors.Is(err, turtle.ErrClosed) {
		t.Errorf("pen-up MoveTo() after Close = %v, want ErrClosed", err)
	}
}

func TestResetCanceledDoesNothing(t *testing.T) {
	var changes int
	tt, rec, _ := newReady(t, 100, 100, turtle.WithOnChange(func(turtle.State) { changes++ }))
	if err := tt.MoveTo(context.Background(), 10, 10); err != nil {
		t.Fatal(err)
	}
	rec.Reset()
	changes = 0
	before := tt.State()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tt.Reset(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Reset(canceled) = %v, want context.Canceled", err)
	}
	if n := rec.Count("ClearRect"); n != 0 {
		t.Errorf("ClearRect calls = %d, want 0", n)
	}
	if got := tt.State(); !reflect.DeepEqual(got, before) {
		t.Errorf("state changed: %+v, want %+v", got, before)
	}
	if changes != 0 {
		t.Errorf("onChange calls = %d, want 0", changes)
	}

	if err := tt.Reset(context.Background()); err != nil {
		t.Errorf("Reset() = %v, want nil", err)
	}
	if rec.Count("ClearRect") != 1 {
		t.Errorf("ClearRect calls = %d, want 1", rec.Count("ClearRect"))
	}
}

func TestUncheckedInputs(t *testing.T) {
	ctx := context.Background()
	tt, rec, _ := newReady(t, 100, 100)
	tt.SetPenSize(-3)
	if err := tt.Forward(ctx, -5); err != nil {
		t.Fatal(err)
	}
	if err := tt.RotateTo(ctx, math.NaN()); err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(tt.State().Angle()) {
		t.Errorf("Angle() = %v, want NaN", tt.State().Angle())
	}
	if rec.Count("Stroke") != 1 {
		t.Errorf("Stroke calls = %d, want 1", rec.Count("Stroke"))
	}
}
