package reconcile

import (
	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/tree"
)

// CursorJumpTrigger selects what recentering the cursor on focus change is
// relative to (spec.md §6 general.cursor_jump.trigger).
type CursorJumpTrigger int

const (
	TriggerMonitorFocus CursorJumpTrigger = iota
	TriggerWindowFocus
)

// CursorJumpConfig is the general.cursor_jump config section.
type CursorJumpConfig struct {
	Enabled bool
	Trigger CursorJumpTrigger
}

// EffectConfig is one side (focused_window or other_windows) of the
// window_effects config section.
type EffectConfig struct {
	BorderEnabled       bool
	BorderColor         *geom.Color
	HideTitleBarEnabled bool
	CornerStyleEnabled  bool
	CornerStyle         platform.CornerStyle
	TransparencyEnabled bool
	Opacity             geom.Opacity
}

// Config is the subset of the loaded config reconciliation needs.
type Config struct {
	Gaps               tree.GapConfig
	CursorJump         CursorJumpConfig
	FocusFollowsCursor bool
	HideMethod         platform.HideMethod
	ShowAllInTaskbar   bool
	Animations       AnimationConfig
	FocusedEffects   EffectConfig
	OtherEffects     EffectConfig
}
