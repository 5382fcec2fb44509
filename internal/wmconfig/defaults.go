package wmconfig

import (
	"os"
	"runtime"
	"strings"
)

// DefaultConfig returns boxwm's built-in config, used both as the config a
// fresh install gets written and as the fill-in source for any section a
// user's config.toml omits (spec.md §6 options are all optional).
func DefaultConfig() *Config {
	return &Config{
		Gaps: GapsConfig{
			ScaleWithDPI: true,
			InnerGap:     "8px",
			OuterGap:     RectDelta{Left: 8, Top: 8, Right: 8, Bottom: 8},
		},
		General: GeneralConfig{
			CursorJump:               CursorJumpConfig{Enabled: true, Trigger: "WindowFocus"},
			FocusFollowsCursor:       false,
			ToggleWorkspaceOnRefocus: true,
			HideMethod:               "Hide",
			ShowAllInTaskbar:         false,
			Animations:               AnimationsConfig{Enabled: true, DurationMs: 150, FPS: 144},
		},
		WindowBehavior: WindowBehaviorConfig{
			InitialState: "Tiling",
			StateDefaults: StateDefaultsConfig{
				Floating:   FloatingDefaults{Centered: true, ShownOnTop: true},
				Fullscreen: FullscreenDefaults{Maximized: true, ShownOnTop: true},
			},
		},
		WindowEffects: WindowEffectsConfig{
			FocusedWindow: EffectSideConfig{
				Border: BorderEffectConfig{Enabled: true, Color: "#89b4fa"},
			},
			OtherWindows: EffectSideConfig{
				Border: BorderEffectConfig{Enabled: true, Color: "#45475a"},
			},
		},
		Workspaces: []WorkspaceConfig{
			{Name: "1", KeepAlive: true},
			{Name: "2", KeepAlive: true},
			{Name: "3", KeepAlive: true},
			{Name: "4", KeepAlive: true},
			{Name: "5", KeepAlive: true},
		},
		Keybindings: KeybindingsConfig{
			LeaderKey: defaultLeaderKey(),
			Bindings:  defaultBindings(),
		},
	}
}

// defaultBindings mirrors the teacher's platform-aware default keybind map
// (getDefaultWorkspaceKeybinds: opt+N on macOS, alt+N elsewhere), generalized
// from workspace-switch binds to boxwm's full hotkey surface.
func defaultBindings() map[string][]string {
	mod := "alt"
	if isMacOS() {
		mod = "opt"
	}
	return map[string][]string{
		"close_window":    {mod + "+shift+q"},
		"toggle_floating": {mod + "+shift+space"},
		"focus_left":      {mod + "+h"},
		"focus_right":     {mod + "+l"},
		"focus_up":        {mod + "+k"},
		"focus_down":      {mod + "+j"},
		"resize_left":     {mod + "+shift+h"},
		"resize_right":    {mod + "+shift+l"},
		"resize_up":       {mod + "+shift+k"},
		"resize_down":     {mod + "+shift+j"},
		"switch_workspace_1": {mod + "+1"},
		"switch_workspace_2": {mod + "+2"},
		"switch_workspace_3": {mod + "+3"},
		"switch_workspace_4": {mod + "+4"},
		"switch_workspace_5": {mod + "+5"},
	}
}

func defaultLeaderKey() string {
	if isMacOS() {
		return "opt"
	}
	return "alt"
}

// isMacOS detects the current platform the same way the teacher's config
// package does: runtime.GOOS first, falling back to environment variables
// for cross-compiled/containerized builds that don't trust GOOS alone.
func isMacOS() bool {
	if runtime.GOOS == "darwin" {
		return true
	}
	return strings.Contains(strings.ToLower(os.Getenv("GOOS")), "darwin") ||
		strings.Contains(strings.ToLower(os.Getenv("OSTYPE")), "darwin")
}
