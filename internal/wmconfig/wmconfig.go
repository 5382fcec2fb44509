// Package wmconfig defines boxwm's on-disk config surface (spec.md §6) and
// loads/validates/watches it, the way the teacher's internal/config loads a
// TOML file via pelletier/go-toml/v2 located through adrg/xdg. Every section
// named by the config surface table gets a struct here; internal/reconcile
// and internal/wm never import this package back (see convert.go) so there
// is no import cycle between "what the user configured" and "what a command
// needs to run".
package wmconfig

// Config is the full parsed config file.
type Config struct {
	Gaps           GapsConfig           `toml:"gaps"`
	General        GeneralConfig        `toml:"general"`
	WindowBehavior WindowBehaviorConfig `toml:"window_behavior"`
	WindowEffects  WindowEffectsConfig  `toml:"window_effects"`
	WindowRules    []WindowRuleConfig   `toml:"window_rules"`
	Workspaces     []WorkspaceConfig    `toml:"workspaces"`
	Keybindings    KeybindingsConfig    `toml:"keybindings"`
}

// RectDelta is the gaps/border per-edge config shape, expressed in pixels.
type RectDelta struct {
	Left   int `toml:"left"`
	Top    int `toml:"top"`
	Right  int `toml:"right"`
	Bottom int `toml:"bottom"`
}

// GapsConfig is the gaps config section.
type GapsConfig struct {
	ScaleWithDPI         bool       `toml:"scale_with_dpi"`
	InnerGap             string     `toml:"inner_gap"`
	OuterGap             RectDelta  `toml:"outer_gap"`
	SingleWindowOuterGap *RectDelta `toml:"single_window_outer_gap"`
}

// CursorJumpConfig is general.cursor_jump.
type CursorJumpConfig struct {
	Enabled bool   `toml:"enabled"`
	Trigger string `toml:"trigger"`
}

// AnimationsConfig is general.animations.
type AnimationsConfig struct {
	Enabled    bool `toml:"enabled"`
	DurationMs int  `toml:"duration_ms"`
	FPS        int  `toml:"fps"`
}

// GeneralConfig is the general config section.
type GeneralConfig struct {
	CursorJump               CursorJumpConfig `toml:"cursor_jump"`
	FocusFollowsCursor       bool             `toml:"focus_follows_cursor"`
	ToggleWorkspaceOnRefocus bool             `toml:"toggle_workspace_on_refocus"`
	HideMethod               string           `toml:"hide_method"`
	ShowAllInTaskbar         bool             `toml:"show_all_in_taskbar"`
	Animations               AnimationsConfig `toml:"animations"`
}

// FloatingDefaults is window_behavior.state_defaults.floating.
type FloatingDefaults struct {
	Centered    bool `toml:"centered"`
	ShownOnTop  bool `toml:"shown_on_top"`
}

// FullscreenDefaults is window_behavior.state_defaults.fullscreen.
type FullscreenDefaults struct {
	Maximized  bool `toml:"maximized"`
	ShownOnTop bool `toml:"shown_on_top"`
}

// StateDefaultsConfig is window_behavior.state_defaults.
type StateDefaultsConfig struct {
	Floating   FloatingDefaults   `toml:"floating"`
	Fullscreen FullscreenDefaults `toml:"fullscreen"`
}

// WindowBehaviorConfig is the window_behavior config section.
type WindowBehaviorConfig struct {
	InitialState  string              `toml:"initial_state"`
	StateDefaults StateDefaultsConfig `toml:"state_defaults"`
}

// BorderEffectConfig is one effect side's border.{enabled,color}.
type BorderEffectConfig struct {
	Enabled bool   `toml:"enabled"`
	Color   string `toml:"color"`
}

// ToggleEffectConfig covers hide_title_bar, which has no extra parameters.
type ToggleEffectConfig struct {
	Enabled bool `toml:"enabled"`
}

// CornerStyleEffectConfig is one effect side's corner_style.{enabled,style}.
type CornerStyleEffectConfig struct {
	Enabled bool   `toml:"enabled"`
	Style   string `toml:"style"`
}

// TransparencyEffectConfig is one effect side's transparency.{enabled,opacity}.
type TransparencyEffectConfig struct {
	Enabled bool    `toml:"enabled"`
	Opacity float64 `toml:"opacity"`
}

// EffectSideConfig is one side (focused_window or other_windows) of
// window_effects.
type EffectSideConfig struct {
	Border        BorderEffectConfig       `toml:"border"`
	HideTitleBar  ToggleEffectConfig       `toml:"hide_title_bar"`
	CornerStyle   CornerStyleEffectConfig  `toml:"corner_style"`
	Transparency  TransparencyEffectConfig `toml:"transparency"`
}

// WindowEffectsConfig is the window_effects config section.
type WindowEffectsConfig struct {
	FocusedWindow EffectSideConfig `toml:"focused_window"`
	OtherWindows  EffectSideConfig `toml:"other_windows"`
}

// MatchValue is one MatchCriteria field: an op plus the value it compares
// against (spec.md §6 window_rules: "equals | includes | regex | not_equals
// | not_regex").
type MatchValue struct {
	Op    string `toml:"op"`
	Value string `toml:"value"`
}

// MatchCriteriaConfig is one window_rules[].match entry. A nil field means
// that attribute is not part of the match.
type MatchCriteriaConfig struct {
	WindowProcess *MatchValue `toml:"window_process"`
	WindowClass   *MatchValue `toml:"window_class"`
	WindowTitle   *MatchValue `toml:"window_title"`
}

// WindowRuleActions is the effect a matching window_rules entry applies.
type WindowRuleActions struct {
	Float          bool   `toml:"float"`
	Tile           bool   `toml:"tile"`
	Workspace      string `toml:"workspace"`
	BorderDisabled bool   `toml:"border_disabled"`
}

// WindowRuleConfig is one window_rules entry. On lists every lifecycle
// trigger the rule runs on; RunOnce mirrors the original's run-once-and-
// forget rules (e.g. "float this window the first time it's seen, never
// re-check").
type WindowRuleConfig struct {
	Match   []MatchCriteriaConfig `toml:"match"`
	On      []string              `toml:"on"`
	RunOnce bool                  `toml:"run_once"`
	Actions WindowRuleActions     `toml:"actions"`
}

// WorkspaceConfig is one workspaces entry.
type WorkspaceConfig struct {
	Name          string `toml:"name"`
	DisplayName   string `toml:"display_name"`
	BindToMonitor string `toml:"bind_to_monitor"`
	KeepAlive     bool   `toml:"keep_alive"`
}

// BindingModeConfig is one binding_modes entry: a named mode with its own
// bindings map, activated by one of keybindings.bindings' prefix commands.
type BindingModeConfig struct {
	Bindings map[string][]string `toml:"bindings"`
}

// KeybindingsConfig is the keybindings + binding_modes config section.
type KeybindingsConfig struct {
	LeaderKey string                       `toml:"leader_key"`
	Bindings  map[string][]string          `toml:"bindings"`
	Modes     map[string]BindingModeConfig `toml:"binding_modes"`
}
