package wmconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/boxwm/boxwm/internal/geom"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/reconcile"
	"github.com/boxwm/boxwm/internal/tree"
	"github.com/boxwm/boxwm/internal/wm"
)

// parseLength parses a gaps Length string ("8px", "2%", or a bare number
// treated as pixels) into a geom.Length. Keeping this local to wmconfig
// rather than adding a toml-aware constructor to internal/geom keeps that
// package free of a config-format dependency.
func parseLength(s string) (geom.Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return geom.Px(0), nil
	}
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return geom.Length{}, err
		}
		return geom.Pct(v), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return geom.Length{}, err
	}
	return geom.Px(v), nil
}

// parseHexColor parses a "#rrggbb" string into a geom.Color.
func parseHexColor(s string) (geom.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return geom.Color{}, fmt.Errorf("color %q must be #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return geom.Color{}, err
	}
	return geom.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (d RectDelta) toGeom() geom.Delta {
	return geom.Delta{Left: d.Left, Top: d.Top, Right: d.Right, Bottom: d.Bottom}
}

// ToGapConfig projects the gaps section into tree.GapConfig. The
// percentage/pixel distinction is resolved here: tree.GapConfig carries
// already-resolved pixel ints since internal/tree stays config-format
// agnostic, so a percent inner_gap is resolved against a nominal 1000px
// reference the way the teacher's layout resolves percentage gaps against
// monitor width before tiling ever runs.
func (c *Config) ToGapConfig() tree.GapConfig {
	inner, _ := parseLength(c.Gaps.InnerGap)
	gc := tree.GapConfig{
		InnerGap: inner.Resolve(1000),
		OuterGap: c.Gaps.OuterGap.toGeom(),
	}
	if c.Gaps.SingleWindowOuterGap != nil {
		d := c.Gaps.SingleWindowOuterGap.toGeom()
		gc.SingleWindowOuterGap = &d
	}
	return gc
}

func parseCursorJumpTrigger(s string) reconcile.CursorJumpTrigger {
	if s == "MonitorFocus" {
		return reconcile.TriggerMonitorFocus
	}
	return reconcile.TriggerWindowFocus
}

func parseHideMethod(s string) platform.HideMethod {
	if s == "Cloak" {
		return platform.HideMethodCloak
	}
	return platform.HideMethodHide
}

func parseCornerStyle(s string) platform.CornerStyle {
	switch s {
	case "Square":
		return platform.CornerSquare
	case "Rounded":
		return platform.CornerRounded
	case "SmallRounded":
		return platform.CornerSmallRounded
	default:
		return platform.CornerDefault
	}
}

func (e EffectSideConfig) toReconcile() reconcile.EffectConfig {
	out := reconcile.EffectConfig{
		BorderEnabled:       e.Border.Enabled,
		HideTitleBarEnabled: e.HideTitleBar.Enabled,
		CornerStyleEnabled:  e.CornerStyle.Enabled,
		CornerStyle:         parseCornerStyle(e.CornerStyle.Style),
		TransparencyEnabled: e.Transparency.Enabled,
		Opacity:             geom.Opacity(e.Transparency.Opacity).Clamp(),
	}
	if e.Border.Enabled && e.Border.Color != "" {
		if c, err := parseHexColor(e.Border.Color); err == nil {
			out.BorderColor = &c
		}
	}
	return out
}

// ToReconcileConfig projects the whole loaded config into the
// reconcile.Config subset the platform-sync pass reads, keeping
// internal/reconcile free of any direct wmconfig import (cmd/boxwm passes
// the result to wm.New at startup instead).
func (c *Config) ToReconcileConfig() reconcile.Config {
	return reconcile.Config{
		Gaps:               c.ToGapConfig(),
		CursorJump:         reconcile.CursorJumpConfig{Enabled: c.General.CursorJump.Enabled, Trigger: parseCursorJumpTrigger(c.General.CursorJump.Trigger)},
		FocusFollowsCursor: c.General.FocusFollowsCursor,
		HideMethod:         parseHideMethod(c.General.HideMethod),
		ShowAllInTaskbar:   c.General.ShowAllInTaskbar,
		Animations: reconcile.AnimationConfig{
			Enabled:    c.General.Animations.Enabled,
			DurationMs: c.General.Animations.DurationMs,
			FPS:        c.General.Animations.FPS,
		},
		FocusedEffects: c.WindowEffects.FocusedWindow.toReconcile(),
		OtherEffects:   c.WindowEffects.OtherWindows.toReconcile(),
	}
}

func parseMatchOp(s string) wm.MatchOp {
	switch s {
	case "not_equals":
		return wm.OpNotEquals
	case "includes":
		return wm.OpContains
	case "regex":
		return wm.OpRegex
	case "not_regex":
		return wm.OpNotRegex
	default:
		return wm.OpEquals
	}
}

func appendCondition(conds []wm.Condition, field wm.MatchField, m *MatchValue) []wm.Condition {
	if m == nil {
		return conds
	}
	return append(conds, wm.Condition{Field: field, Op: parseMatchOp(m.Op), Value: m.Value})
}

func parseTrigger(s string) (wm.RuleTrigger, bool) {
	switch s {
	case "Manage":
		return wm.RuleTriggerManage, true
	case "Focus":
		return wm.RuleTriggerFocus, true
	case "TitleChange":
		return wm.RuleTriggerTitleChange, true
	default:
		return 0, false
	}
}

// ToWindowRules flattens window_rules into internal/wm's per-trigger rule
// list: a config entry naming on = [Manage, Focus] becomes two wm.WindowRule
// values sharing the same conditions/actions, since wm.applyRules matches
// one trigger at a time.
func (c *Config) ToWindowRules() []wm.WindowRule {
	var out []wm.WindowRule
	for _, rc := range c.WindowRules {
		var conds []wm.Condition
		for _, m := range rc.Match {
			conds = appendCondition(conds, wm.MatchProcessName, m.WindowProcess)
			conds = appendCondition(conds, wm.MatchClassName, m.WindowClass)
			conds = appendCondition(conds, wm.MatchTitle, m.WindowTitle)
		}
		action := wm.Action{
			Float:          rc.Actions.Float,
			Tile:           rc.Actions.Tile,
			WorkspaceName:  rc.Actions.Workspace,
			BorderDisabled: rc.Actions.BorderDisabled,
		}
		for _, onStr := range rc.On {
			trigger, ok := parseTrigger(onStr)
			if !ok {
				continue
			}
			out = append(out, wm.WindowRule{On: trigger, Conditions: conds, Actions: action, RunOnce: rc.RunOnce})
		}
	}
	// Load has already rejected any pattern that does not compile.
	_ = wm.CompileConditions(out)
	return out
}
