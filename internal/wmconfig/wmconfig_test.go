package wmconfig

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	result := Validate(cfg)
	if result.HasErrors() {
		t.Fatalf("default config has validation errors: %+v", result.Errors)
	}
}

func TestValidateRejectsBadRegex(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowRules = []WindowRuleConfig{
		{
			Match: []MatchCriteriaConfig{{WindowClass: &MatchValue{Op: "regex", Value: "(unterminated"}}},
			On:    []string{"Manage"},
		},
	}
	result := Validate(cfg)
	if !result.HasErrors() {
		t.Fatal("expected an error for an unterminated regex")
	}
}

func TestValidateWarnsOnUnknownWorkspaceReference(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowRules = []WindowRuleConfig{
		{
			Match:   []MatchCriteriaConfig{{WindowProcess: &MatchValue{Op: "equals", Value: "firefox"}}},
			On:      []string{"Manage"},
			Actions: WindowRuleActions{Workspace: "not-configured"},
		},
	}
	result := Validate(cfg)
	if result.HasErrors() {
		t.Fatalf("unknown workspace reference should warn, not error: %+v", result.Errors)
	}
	if !result.HasWarnings() {
		t.Fatal("expected a warning for an unconfigured workspace reference")
	}
}

func TestParseLengthPixelsAndPercent(t *testing.T) {
	px, err := parseLength("12px")
	if err != nil || px.Resolve(100) != 12 {
		t.Fatalf("12px: got %v, err %v", px, err)
	}
	pct, err := parseLength("10%")
	if err != nil || pct.Resolve(1000) != 100 {
		t.Fatalf("10%%: got %v, err %v", pct, err)
	}
}

func TestToWindowRulesFlattensMultipleTriggers(t *testing.T) {
	cfg := &Config{
		WindowRules: []WindowRuleConfig{
			{
				Match:   []MatchCriteriaConfig{{WindowClass: &MatchValue{Op: "equals", Value: "firefox"}}},
				On:      []string{"Manage", "Focus"},
				Actions: WindowRuleActions{Float: true},
			},
		},
	}
	rules := cfg.ToWindowRules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 flattened rules, got %d", len(rules))
	}
	if len(rules[0].Conditions) != 1 || rules[0].Conditions[0].Value != "firefox" {
		t.Fatalf("unexpected conditions: %+v", rules[0].Conditions)
	}
	if !rules[0].Actions.Float || !rules[1].Actions.Float {
		t.Fatal("expected both flattened rules to carry the float action")
	}
}

func TestToReconcileConfigResolvesGaps(t *testing.T) {
	cfg := DefaultConfig()
	rc := cfg.ToReconcileConfig()
	if rc.Gaps.OuterGap.Left != cfg.Gaps.OuterGap.Left {
		t.Fatalf("outer gap left mismatch: %d vs %d", rc.Gaps.OuterGap.Left, cfg.Gaps.OuterGap.Left)
	}
}
