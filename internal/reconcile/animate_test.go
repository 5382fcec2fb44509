package reconcile

import (
	"testing"

	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
)

func TestEaseOutCubicEndpoints(t *testing.T) {
	if got := easeOutCubic(0); got != 0 {
		t.Fatalf("ease(0) = %v, want 0", got)
	}
	if got := easeOutCubic(1); got != 1 {
		t.Fatalf("ease(1) = %v, want 1", got)
	}
}

func TestEarlyExitSkipsInterpolation(t *testing.T) {
	start := geom.NewRect(0, 0, 100, 100)
	end := geom.NewRect(1, 1, 100, 100)

	var calls []geom.Rect
	err := runAnimation(nil, start, end, AnimationConfig{Enabled: true, DurationMs: 150, FPS: 60}, func(r geom.Rect) error {
		calls = append(calls, r)
		return nil
	})
	if err != nil {
		t.Fatalf("runAnimation: %v", err)
	}
	if len(calls) != 1 || calls[0] != end {
		t.Fatalf("expected a single write of the final rect, got %+v", calls)
	}
}

func TestLaunchCancelsPriorAnimationForSameHandle(t *testing.T) {
	a := NewAnimator()
	b := NewBatch()

	handle := platform.WindowHandle(7)
	start := geom.NewRect(0, 0, 100, 100)
	midEnd := geom.NewRect(800, 600, 100, 100)

	firstCalls := 0
	b.Launch(a, handle, start, midEnd, AnimationConfig{Enabled: true, DurationMs: 150, FPS: 60}, func(r geom.Rect) error {
		firstCalls++
		return nil
	})

	secondEnd := geom.NewRect(400, 300, 100, 100)
	var lastWrite geom.Rect
	b.Launch(a, handle, start, secondEnd, AnimationConfig{Enabled: true, DurationMs: 10, FPS: 60}, func(r geom.Rect) error {
		lastWrite = r
		return nil
	})

	if err := b.Wait(); err != nil {
		t.Fatalf("batch wait: %v", err)
	}

	if lastWrite != secondEnd {
		t.Fatalf("expected final write to equal second animation's target %+v, got %+v", secondEnd, lastWrite)
	}
}
