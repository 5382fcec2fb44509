package wmconfig

import (
	"fmt"
	"regexp"
)

// Issue is one validation finding, shaped like the teacher's
// ValidationError (Field/Key/Message) so error/warning printing stays
// consistent with the teacher's "Config error in [%s]: %s - %s" format.
type Issue struct {
	Field   string
	Key     string
	Message string
}

// ValidationResult collects every issue Validate finds in one pass, rather
// than failing on the first (spec.md §7: "command fails gracefully", which
// for config loading means the user sees every problem at once).
type ValidationResult struct {
	Errors   []Issue
	Warnings []Issue
}

func (r *ValidationResult) HasErrors() bool   { return len(r.Errors) > 0 }
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) addError(field, key, msg string, args ...any) {
	r.Errors = append(r.Errors, Issue{Field: field, Key: key, Message: fmt.Sprintf(msg, args...)})
}

func (r *ValidationResult) addWarning(field, key, msg string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Field: field, Key: key, Message: fmt.Sprintf(msg, args...)})
}

// Validate checks cfg against the constraints original_source/wm-common's
// parsed_config.rs enforces at load time: every window_rules regex must
// compile, and a rule's workspace target should name a configured
// workspace. A malformed regex is an error (the condition could never be
// compiled for matching); an unknown workspace name is a warning, since
// ActivateWorkspace creates workspaces lazily and a rule may intentionally
// reference one the user hasn't added to workspaces yet.
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	if _, err := parseLength(cfg.Gaps.InnerGap); cfg.Gaps.InnerGap != "" && err != nil {
		result.addError("gaps", "inner_gap", "invalid length %q: %v", cfg.Gaps.InnerGap, err)
	}

	known := make(map[string]bool, len(cfg.Workspaces))
	for _, ws := range cfg.Workspaces {
		if ws.Name == "" {
			result.addError("workspaces", "name", "workspace entry is missing a name")
			continue
		}
		known[ws.Name] = true
	}

	switch cfg.General.CursorJump.Trigger {
	case "", "MonitorFocus", "WindowFocus":
	default:
		result.addError("general", "cursor_jump.trigger", "unknown trigger %q", cfg.General.CursorJump.Trigger)
	}

	switch cfg.General.HideMethod {
	case "", "Hide", "Cloak":
	default:
		result.addError("general", "hide_method", "unknown hide_method %q", cfg.General.HideMethod)
	}

	switch cfg.WindowBehavior.InitialState {
	case "", "Tiling", "Floating":
	default:
		result.addError("window_behavior", "initial_state", "unknown initial_state %q", cfg.WindowBehavior.InitialState)
	}

	for i, rule := range cfg.WindowRules {
		field := fmt.Sprintf("window_rules[%d]", i)
		for _, m := range rule.Match {
			validateMatchValue(result, field, "window_process", m.WindowProcess)
			validateMatchValue(result, field, "window_class", m.WindowClass)
			validateMatchValue(result, field, "window_title", m.WindowTitle)
		}
		for _, on := range rule.On {
			switch on {
			case "Focus", "Manage", "TitleChange":
			default:
				result.addError(field, "on", "unknown trigger %q", on)
			}
		}
		if rule.Actions.Workspace != "" && !known[rule.Actions.Workspace] {
			result.addWarning(field, "actions.workspace", "references workspace %q not listed under [[workspaces]]", rule.Actions.Workspace)
		}
	}

	return result
}

func validateMatchValue(result *ValidationResult, field, key string, m *MatchValue) {
	if m == nil {
		return
	}
	switch m.Op {
	case "equals", "includes", "not_equals":
		return
	case "regex", "not_regex":
		if _, err := regexp.Compile(m.Value); err != nil {
			result.addError(field, key, "invalid regex %q: %v", m.Value, err)
		}
	default:
		result.addError(field, key, "unknown match op %q", m.Op)
	}
}
