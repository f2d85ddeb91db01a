package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// AnyScreen matches every screen in a RuleConfig endpoint.
const AnyScreen = "*"

// RouteConfig declares the screens of an application and how navigation
// between them is presented. Rules override the home-slide default.
type RouteConfig struct {
	Version string       `json:"version,omitempty" yaml:"version,omitempty"`
	Home    string       `json:"home" yaml:"home"`
	Screens []string     `json:"screens" yaml:"screens"`
	Rules   []RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// RuleConfig fixes the decision for navigations matching From -> To.
type RuleConfig struct {
	From      string    `json:"from" yaml:"from"`
	To        string    `json:"to" yaml:"to"`
	Kind      string    `json:"kind" yaml:"kind"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
	Priority  int       `json:"priority,omitempty" yaml:"priority,omitempty"` // higher = evaluated first (default 0)
}

// Validate validates the route table:
// - Non-empty Home listed in Screens
// - Unique, well-formed screen IDs
// - Every rule valid and referring to declared screens or AnyScreen
func (c *RouteConfig) Validate() error {
	if c.Home == "" {
		return errors.New("home screen is required")
	}
	if len(c.Screens) == 0 {
		return errors.New("screens list is required and cannot be empty")
	}
	seen := make(map[string]bool, len(c.Screens))
	for _, s := range c.Screens {
		if err := validateScreenID(s); err != nil {
			return err
		}
		if seen[s] {
			return fmt.Errorf("duplicate screen %q", s)
		}
		seen[s] = true
	}
	if !seen[c.Home] {
		return fmt.Errorf("home screen %q not found in screens", c.Home)
	}

	for i, r := range c.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %d validation failed: %w", i, err)
		}
		for _, end := range []string{r.From, r.To} {
			if end != AnyScreen && !seen[end] {
				return fmt.Errorf("rule %d: unknown screen %q", i, end)
			}
		}
	}
	return nil
}

// HasScreen reports whether screen is declared.
func (c *RouteConfig) HasScreen(screen string) bool {
	return slices.Contains(c.Screens, screen)
}

// Validate checks the rule's endpoints, kind and direction.
func (r *RuleConfig) Validate() error {
	if r.From == "" {
		return errors.New("from is required")
	}
	if r.To == "" {
		return errors.New("to is required")
	}
	for _, end := range []string{r.From, r.To} {
		if end == AnyScreen {
			continue
		}
		if err := validateScreenID(end); err != nil {
			return err
		}
	}
	kind, err := ParseDecisionKind(r.Kind)
	if err != nil {
		return err
	}
	switch {
	case kind == Slide && r.Direction != Forward && r.Direction != Backward:
		return fmt.Errorf("slide rule needs direction forward or backward, got %q", r.Direction)
	case kind != Slide && r.Direction != "":
		return fmt.Errorf("%s rule cannot set a direction", kind)
	}
	if r.Priority < 0 {
		return errors.New("priority must be non-negative")
	}
	return nil
}

// Matches reports whether the rule applies to from -> to.
func (r *RuleConfig) Matches(from, to string) bool {
	return (r.From == AnyScreen || r.From == from) && (r.To == AnyScreen || r.To == to)
}

// Decision returns the decision the rule prescribes. The rule must be valid.
func (r *RuleConfig) Decision() Decision {
	kind, _ := ParseDecisionKind(r.Kind)
	return Decision{Kind: kind, Direction: r.Direction}
}

// ParseDecisionKind parses the String form of a DecisionKind.
func ParseDecisionKind(s string) (DecisionKind, error) {
	for _, k := range []DecisionKind{Reselect, Jump, Slide} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown decision kind %q", s)
}

// SortRules sorts the slice in place by Priority descending (highest first),
// keeping declaration order among equals.
func SortRules(rules []RuleConfig) {
	slices.SortStableFunc(rules, func(a, b RuleConfig) int {
		return b.Priority - a.Priority
	})
}

// ComputeVersion returns c.Version, or a content hash of c when unset.
func ComputeVersion(c *RouteConfig) string {
	if c.Version != "" {
		return c.Version
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "invalid"
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}

// validateScreenID accepts alphanumerics, underscores and hyphens.
func validateScreenID(id string) error {
	if id == "" {
		return errors.New("screen ID cannot be empty")
	}
	for i, r := range id {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return fmt.Errorf("invalid screen ID %q: invalid character '%c' at index %d", id, r, i)
		}
	}
	return nil
}
