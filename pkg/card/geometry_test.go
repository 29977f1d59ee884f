package card_test

import (
	"math"
	"testing"

	"github.com/go-drift/cardsheet/pkg/card"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

var phone = graphics.Size{Width: 390, Height: 844}

func TestPresentedFrame_FillsToBottom(t *testing.T) {
	heights := []float64{-50, 0, 1, 300, 784, 844, 845, 5000}
	for _, h := range heights {
		cfg := card.NewConfig(card.HostMetrics{SafeAreaTop: 47}, card.WithCustomHeight(h))
		frame, _ := card.PresentedFrame(phone, cfg)
		if frame.Y < 0 {
			t.Errorf("customHeight=%v: y = %v, want >= 0", h, frame.Y)
		}
		if got := frame.Y + frame.Height; math.Abs(got-phone.Height) > 1e-9 {
			t.Errorf("customHeight=%v: y+height = %v, want %v", h, got, phone.Height)
		}
	}
}

func TestPresentedFrame_Default(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{SafeAreaTop: 47})
	frame, rangeErr := card.PresentedFrame(phone, cfg)
	if rangeErr != nil {
		t.Fatalf("unexpected clamp: %v", rangeErr)
	}
	want := graphics.Rect{Y: 60, Width: 390, Height: 784}
	if !frame.ApproxEqual(want) {
		t.Errorf("frame = %+v, want %+v", frame, want)
	}
}

func TestPresentedFrame_CustomHeight(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{SafeAreaTop: 47}, card.WithCustomHeight(400))
	frame, _ := card.PresentedFrame(phone, cfg)
	if frame.Y != 504 || frame.Height != 340 {
		t.Errorf("frame = %+v, want y=504 height=340", frame)
	}
}

func TestPresentedFrame_ClampReportsRange(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{SafeAreaTop: 47}, card.WithCustomHeight(2000))
	frame, rangeErr := card.PresentedFrame(phone, cfg)
	if rangeErr == nil {
		t.Fatal("expected a range error for an oversized custom height")
	}
	if rangeErr.Field != "customHeight" || rangeErr.Clamped() != 844 {
		t.Errorf("range error = %+v", rangeErr)
	}
	if frame.Y != 60 {
		t.Errorf("y = %v, want 60", frame.Y)
	}
}

func TestPresentedFrame_MinTopInset(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{SafeAreaTop: 0})
	frame, _ := card.PresentedFrame(phone, cfg)
	if frame.Y != card.MinTopInset+card.DefaultContentAdjustment {
		t.Errorf("y = %v, want %v", frame.Y, card.MinTopInset+card.DefaultContentAdjustment)
	}
}

func TestOffscreenFrame(t *testing.T) {
	target := graphics.Rect{Y: 60, Width: 390, Height: 784}
	got := card.OffscreenFrame(phone, target)
	if got.Y != 844 || !got.SameSize(target) {
		t.Errorf("offscreen = %+v", got)
	}
}

func TestFrictionTranslation(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{DisplayScale: 3})
	tol := 1 / cfg.DisplayScale

	tests := []struct {
		raw, want float64
	}{
		{-40, -20},
		{0, 0},
		{50, 25},
		{120, 60},
		{300, 107.48},
	}
	for _, tt := range tests {
		if got := card.FrictionTranslation(tt.raw, cfg); math.Abs(got-tt.want) > tol {
			t.Errorf("FrictionTranslation(%v) = %v, want %v±%v", tt.raw, got, tt.want, tol)
		}
	}
}

func TestFrictionTranslation_ContinuousAtThreshold(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{DisplayScale: 1000})
	below := card.FrictionTranslation(119.999, cfg)
	above := card.FrictionTranslation(120.001, cfg)
	if math.Abs(above-below) > 0.01 {
		t.Errorf("jump at threshold: %v -> %v", below, above)
	}
}

func TestFrictionTranslation_Monotonic(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{DisplayScale: 3})
	prev := 0.0
	for raw := 0.0; raw <= 2000; raw += 7 {
		got := card.FrictionTranslation(raw, cfg)
		if got < prev {
			t.Fatalf("translation decreased at raw=%v: %v < %v", raw, got, prev)
		}
		prev = got
	}
}

func TestFrictionTranslation_Disabled(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{DisplayScale: 2}, card.WithFriction(false))
	if got := card.FrictionTranslation(300.3, cfg); got != 300.5 {
		t.Errorf("got %v, want 300.5 (pixel rounded raw)", got)
	}
	if got := card.FrictionTranslation(-10, cfg); got != 0 {
		t.Errorf("upward drag = %v, want 0", got)
	}
}

func TestPresentingScaleFactor(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{SafeAreaTop: 47})
	want := 1 - 2*47.0/844
	if got := card.PresentingScaleFactor(phone, cfg); math.Abs(got-want) > 1e-12 {
		t.Errorf("scale = %v, want %v", got, want)
	}

	// The scaled snapshot's top edge lands at the top inset.
	scaled := graphics.ScaleTransform(want).Apply(graphics.RectFromSize(phone))
	if math.Abs(scaled.Y-47) > 1e-9 {
		t.Errorf("scaled top = %v, want 47", scaled.Y)
	}

	off := card.NewConfig(card.HostMetrics{SafeAreaTop: 47}, card.WithScale(false))
	if got := card.PresentingScaleFactor(phone, off); got != 1 {
		t.Errorf("scale disabled = %v, want 1", got)
	}
}

func TestSnapshotScaleAndDimAlpha(t *testing.T) {
	if got := card.SnapshotScale(600); math.Abs(got-1.1) > 1e-12 {
		t.Errorf("SnapshotScale(600) = %v, want 1.1", got)
	}
	if got := card.DimAlphaFor(0, 0.51); got != 0.51 {
		t.Errorf("DimAlphaFor(0) = %v, want 0.51", got)
	}
	if got := card.DimAlphaFor(120, 0.51); math.Abs(got-0.21) > 1e-9 {
		t.Errorf("DimAlphaFor(120) = %v, want 0.21", got)
	}
	if got := card.DimAlphaFor(1000, 0.51); got != 0 {
		t.Errorf("DimAlphaFor(1000) = %v, want clamped 0", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := card.NewConfig(card.HostMetrics{SafeAreaTop: 20})
	if cfg.TopInset != card.MinTopInset {
		t.Errorf("TopInset = %v, want %v", cfg.TopInset, card.MinTopInset)
	}
	if !cfg.ScaleEnabled || !cfg.FrictionEnabled || !cfg.SwipeToDismissEnabled || !cfg.TapToDismissEnabled || !cfg.ShowIndicator {
		t.Error("all toggles should default to enabled")
	}
	if cfg.DisplayScale != 1 {
		t.Errorf("DisplayScale = %v, want 1", cfg.DisplayScale)
	}
	if _, ok := cfg.CustomHeight(); ok {
		t.Error("no custom height by default")
	}

	cfg = card.NewConfig(card.HostMetrics{}, card.WithDimAlpha(3), card.WithDismissThreshold(-1), card.WithCustomHeight(300))
	if cfg.DimAlpha != 1 {
		t.Errorf("DimAlpha = %v, want clamped 1", cfg.DimAlpha)
	}
	if cfg.DismissThreshold != card.DefaultDismissThreshold {
		t.Errorf("DismissThreshold = %v, want default", cfg.DismissThreshold)
	}
	cfg.ClearCustomHeight()
	if _, ok := cfg.CustomHeight(); ok {
		t.Error("ClearCustomHeight should remove the custom height")
	}
}
