package reconcile

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
)

// AnimationConfig mirrors the animations section of the general config
// (spec.md §6): DurationMs/FPS default to 150/144 when zero.
type AnimationConfig struct {
	Enabled    bool
	DurationMs int
	FPS        int
}

func (c AnimationConfig) durationOrDefault() time.Duration {
	ms := c.DurationMs
	if ms <= 0 {
		ms = 150
	}
	return time.Duration(ms) * time.Millisecond
}

func (c AnimationConfig) fpsOrDefault() int {
	if c.FPS <= 0 {
		return 144
	}
	return c.FPS
}

// earlyExitThresholdPx is the per-edge delta below which an animation
// skips interpolation and writes the final rect directly (spec §4.G).
const earlyExitThresholdPx = 2

// Animator owns the handle -> in-flight-animation map (spec §5). It never
// touches the tree or ledger; its write callback is the only thing it
// calls, once per interpolated step.
type Animator struct {
	mu      sync.Mutex
	cancels map[platform.WindowHandle]context.CancelFunc
}

// NewAnimator returns an Animator with no in-flight tasks.
func NewAnimator() *Animator {
	return &Animator{cancels: make(map[platform.WindowHandle]context.CancelFunc)}
}

// Cancel stops handle's in-flight animation, if any. Called before detach
// when a window is unmanaged (spec §5).
func (a *Animator) Cancel(handle platform.WindowHandle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if cancel, ok := a.cancels[handle]; ok {
		cancel()
		delete(a.cancels, handle)
	}
}

// Write is the only operation an animation task performs against the
// outside world.
type Write func(rect geom.Rect) error

// Batch supervises every animation launched within a single reconciliation
// pass through one errgroup, so a panic in any animation goroutine
// surfaces (via errgroup's Go wrapper re-panicking after Wait) instead of
// silently vanishing. The batch does not block reconciliation: callers
// fire-and-forget it, since animations are background tasks per spec §5.
type Batch struct {
	group *errgroup.Group
}

// NewBatch starts a new supervised batch for one reconciliation pass.
func NewBatch() *Batch {
	g := &errgroup.Group{}
	return &Batch{group: g}
}

// Launch starts (after cancelling any prior task for handle) an animation
// from start to end over cfg's duration/fps, invoking write once per step
// and once more with the exact final rect. Launch returns immediately;
// the animation runs on a goroutine tracked by b.
func (b *Batch) Launch(a *Animator, handle platform.WindowHandle, start, end geom.Rect, cfg AnimationConfig, write Write) {
	a.mu.Lock()
	if prior, ok := a.cancels[handle]; ok {
		prior()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancels[handle] = cancel
	a.mu.Unlock()

	b.group.Go(func() error {
		defer func() {
			a.mu.Lock()
			if ctx.Err() == nil {
				// Only clear our own entry; a newer Launch may already
				// have replaced it, and it always cancels ctx first.
				delete(a.cancels, handle)
			}
			a.mu.Unlock()
		}()
		return runAnimation(ctx, start, end, cfg, write)
	})
}

// Wait blocks until every animation launched in this batch has finished or
// been cancelled, and returns the first non-nil error (a write failure),
// if any. Callers that want fire-and-forget semantics should run Wait on
// its own goroutine rather than call it inline.
func (b *Batch) Wait() error {
	return b.group.Wait()
}

func runAnimation(ctx context.Context, start, end geom.Rect, cfg AnimationConfig, write Write) error {
	if edgeDeltasBelowThreshold(start, end) {
		return write(end)
	}

	duration := cfg.durationOrDefault()
	fps := cfg.fpsOrDefault()
	steps := int(math.Round(duration.Seconds() * float64(fps)))
	if steps < 1 {
		return write(end)
	}
	interval := duration / time.Duration(steps)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		t := float64(i) / float64(steps)
		eased := easeOutCubic(t)
		rect := interpolateRect(start, end, eased)
		if err := write(rect); err != nil {
			return err
		}
	}

	return write(end)
}

func edgeDeltasBelowThreshold(start, end geom.Rect) bool {
	return absInt(start.Left-end.Left) < earlyExitThresholdPx &&
		absInt(start.Top-end.Top) < earlyExitThresholdPx &&
		absInt(start.Right-end.Right) < earlyExitThresholdPx &&
		absInt(start.Bottom-end.Bottom) < earlyExitThresholdPx
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// easeOutCubic is the cubic-out easing curve from spec §4.G: t' = 1 - (1-t)^3.
func easeOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

func interpolateRect(start, end geom.Rect, t float64) geom.Rect {
	return geom.Rect{
		Left:   interpolateInt(start.Left, end.Left, t),
		Top:    interpolateInt(start.Top, end.Top, t),
		Right:  interpolateInt(start.Right, end.Right, t),
		Bottom: interpolateInt(start.Bottom, end.Bottom, t),
	}
}

func interpolateInt(start, end int, t float64) int {
	return start + int(float64(end-start)*t)
}
