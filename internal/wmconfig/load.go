package wmconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const configRelPath = "boxwm/config.toml"

// Load resolves config.toml via XDG (github.com/adrg/xdg, same resolution
// the teacher's LoadUserConfig uses), parses it, fills any section the file
// omits from DefaultConfig, and validates the result. A config that fails
// validation yields a nil *Config together with its *ValidationResult and an
// error, since spec.md §7 wants the caller able to print every error, not
// just the first.
func Load() (*Config, *ValidationResult, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		cfg, werr := writeDefaultConfig()
		if werr != nil {
			return nil, nil, werr
		}
		return cfg, Validate(cfg), nil
	}

	// #nosec G304 - path is resolved through xdg.SearchConfigFile, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		result := &ValidationResult{}
		result.addError("config", path, "read config file: %v", err)
		return nil, result, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		result := &ValidationResult{}
		result.addError("config", path, "parse config file: %v", err)
		return nil, result, fmt.Errorf("parse config file: %w", err)
	}

	fillDefaults(&cfg)

	result := Validate(&cfg)
	if result.HasErrors() {
		return nil, result, fmt.Errorf("configuration has %d error(s)", len(result.Errors))
	}
	return &cfg, result, nil
}

// writeDefaultConfig creates a fresh config.toml at the XDG config path, the
// way the teacher's createDefaultConfig does for a first run.
func writeDefaultConfig() (*Config, error) {
	cfg := DefaultConfig()

	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal default config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# boxwm configuration file\n")
	sb.WriteString("# generated on first run; edit freely, it is reloaded automatically\n\n")
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return nil, fmt.Errorf("write config file: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills the empty fields checked below from DefaultConfig, the
// way the teacher's fillMissingKeybinds/fillMapDefaults backfills an
// incomplete keybindings.toml. An empty workspaces list is replaced by the
// default workspaces; window_rules is never filled.
func fillDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.Gaps.InnerGap == "" {
		cfg.Gaps = def.Gaps
	}
	if cfg.General.HideMethod == "" {
		cfg.General.HideMethod = def.General.HideMethod
	}
	if cfg.General.Animations.DurationMs == 0 {
		cfg.General.Animations = def.General.Animations
	}
	if cfg.General.CursorJump.Trigger == "" {
		cfg.General.CursorJump.Trigger = def.General.CursorJump.Trigger
	}
	if cfg.WindowBehavior.InitialState == "" {
		cfg.WindowBehavior.InitialState = def.WindowBehavior.InitialState
	}
	if len(cfg.Workspaces) == 0 {
		cfg.Workspaces = def.Workspaces
	}
	if cfg.Keybindings.Bindings == nil {
		cfg.Keybindings.Bindings = make(map[string][]string)
	}
	if cfg.Keybindings.LeaderKey == "" {
		cfg.Keybindings.LeaderKey = def.Keybindings.LeaderKey
	}
	fillMapDefaults(cfg.Keybindings.Bindings, def.Keybindings.Bindings)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// Path returns where config.toml lives (or would be created), for a reload
// watcher or a `boxwm config path` subcommand to report.
func Path() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}
