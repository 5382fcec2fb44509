package wm

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/boxwm/boxwm/internal/tree"
)

// RuleTrigger selects which window lifecycle moment a rule runs on (spec.md
// §6 window_rules.on).
type RuleTrigger int

const (
	RuleTriggerManage RuleTrigger = iota
	RuleTriggerFocus
	RuleTriggerTitleChange
)

// MatchField is the window attribute a Condition tests.
type MatchField int

const (
	MatchProcessName MatchField = iota
	MatchClassName
	MatchTitle
)

// MatchOp is the comparison a Condition applies between Field and Value.
type MatchOp int

const (
	OpEquals MatchOp = iota
	OpNotEquals
	OpContains
	OpRegex
	OpNotRegex
)

// Condition is a single window-rule predicate.
type Condition struct {
	Field MatchField
	Op    MatchOp
	Value string
	re    *regexp.Regexp
}

// Action is one effect a matching rule applies to the window.
type Action struct {
	Float          bool
	Tile           bool
	WorkspaceName  string
	BorderDisabled bool
}

// WindowRule is one window_rules entry: every Condition must match (AND
// semantics) for Actions to apply. RunOnce restricts the rule to firing at
// most once per window, across however many times its trigger recurs
// (spec.md §6 window_rules.run_once — meaningful for RuleTriggerFocus and
// RuleTriggerTitleChange, which can fire repeatedly over a window's life).
type WindowRule struct {
	On         RuleTrigger
	Conditions []Condition
	Actions    Action
	RunOnce    bool
}

// ruleFireKey identifies one (window, rule) pair for run_once tracking.
type ruleFireKey struct {
	window uuid.UUID
	rule   int
}

// forgetFiredRules drops a destroyed window's run_once bookkeeping so
// s.rulesFired doesn't grow over the lifetime of the process.
func (s *State) forgetFiredRules(win uuid.UUID) {
	for i := range s.Rules {
		delete(s.rulesFired, ruleFireKey{window: win, rule: i})
	}
}

// CompileConditions compiles every OpRegex/OpNotRegex condition's pattern so
// matching at dispatch time never compiles a pattern. wmconfig.ToWindowRules
// calls it on the rules it builds.
func CompileConditions(rules []WindowRule) error {
	for i := range rules {
		for j := range rules[i].Conditions {
			c := &rules[i].Conditions[j]
			if c.Op == OpRegex || c.Op == OpNotRegex {
				re, err := regexp.Compile(c.Value)
				if err != nil {
					return err
				}
				c.re = re
			}
		}
	}
	return nil
}

func (c Condition) matches(win *tree.Container) bool {
	var subject string
	switch c.Field {
	case MatchProcessName:
		subject = win.ProcessName
	case MatchClassName:
		subject = win.ClassName
	case MatchTitle:
		subject = win.Title
	}
	switch c.Op {
	case OpEquals:
		return subject == c.Value
	case OpNotEquals:
		return subject != c.Value
	case OpContains:
		return strings.Contains(subject, c.Value)
	case OpRegex:
		return c.re != nil && c.re.MatchString(subject)
	case OpNotRegex:
		return c.re == nil || !c.re.MatchString(subject)
	default:
		return false
	}
}

// applyRules evaluates every configured rule for trigger against win,
// applying the actions of each one whose conditions all match.
func (s *State) applyRules(win *tree.Container, trigger RuleTrigger) {
	for i, rule := range s.Rules {
		if rule.On != trigger {
			continue
		}
		key := ruleFireKey{window: win.ID, rule: i}
		if rule.RunOnce && s.rulesFired[key] {
			continue
		}
		if !allMatch(rule.Conditions, win) {
			continue
		}
		s.applyAction(win, rule.Actions)
		if rule.RunOnce {
			if s.rulesFired == nil {
				s.rulesFired = make(map[ruleFireKey]bool)
			}
			s.rulesFired[key] = true
		}
	}
}

func allMatch(conds []Condition, win *tree.Container) bool {
	for _, c := range conds {
		if !c.matches(win) {
			return false
		}
	}
	return true
}

func (s *State) applyAction(win *tree.Container, a Action) {
	if a.Float {
		win.State = tree.StateFloating
		win.PrevState = tree.StateFloating
		win.Kind = tree.KindNonTilingWindow
	}
	if a.Tile {
		win.State = tree.StateTiling
		win.PrevState = tree.StateTiling
		win.Kind = tree.KindTilingWindow
	}
	if a.WorkspaceName != "" {
		if target := s.workspaceByName(a.WorkspaceName); target != nil {
			if win.Parent != nil {
				_ = tree.Detach(win)
			}
			_ = tree.Attach(win, target, -1)
		}
	}
}
