package extensibility

import (
	"fmt"

	"github.com/comalice/navperf/internal/primitives"
)

// DefaultHomeScreen is the screen whose entry and exit slide.
const DefaultHomeScreen = "home"

// HomeSlidePolicy slides when navigation leaves or returns to the home
// screen, and jumps for every other change.
type HomeSlidePolicy struct {
	Home string
}

// NewHomeSlidePolicy creates a policy for home. An empty home uses
// DefaultHomeScreen.
func NewHomeSlidePolicy(home string) *HomeSlidePolicy {
	if home == "" {
		home = DefaultHomeScreen
	}
	return &HomeSlidePolicy{Home: home}
}

// Decide evaluates a request to move from the settled prev to next.
func (p *HomeSlidePolicy) Decide(prev, next primitives.NavState) primitives.Decision {
	if prev.Screen == next.Screen {
		return primitives.Decision{Kind: primitives.Reselect}
	}
	leaving := prev.Screen == p.Home
	returning := next.Screen == p.Home
	switch {
	case leaving && !returning:
		return primitives.Decision{Kind: primitives.Slide, Direction: primitives.Forward}
	case returning && !leaving:
		return primitives.Decision{Kind: primitives.Slide, Direction: primitives.Backward}
	default:
		return primitives.Decision{Kind: primitives.Jump}
	}
}

// PolicyFunc adapts a function to the policy interface.
type PolicyFunc func(prev, next primitives.NavState) primitives.Decision

// Decide calls f.
func (f PolicyFunc) Decide(prev, next primitives.NavState) primitives.Decision {
	return f(prev, next)
}

// RulePolicy applies a validated route table. The first matching rule by
// priority decides; unmatched requests fall back to home-slide behavior.
// Requests for the settled screen always reselect.
type RulePolicy struct {
	rules    []primitives.RuleConfig
	fallback *HomeSlidePolicy
}

// NewRulePolicy validates cfg and builds its policy.
func NewRulePolicy(cfg primitives.RouteConfig) (*RulePolicy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("route config: %w", err)
	}
	rules := append([]primitives.RuleConfig(nil), cfg.Rules...)
	primitives.SortRules(rules)
	return &RulePolicy{rules: rules, fallback: NewHomeSlidePolicy(cfg.Home)}, nil
}

// Decide evaluates a request to move from the settled prev to next.
func (p *RulePolicy) Decide(prev, next primitives.NavState) primitives.Decision {
	if prev.Screen == next.Screen {
		return primitives.Decision{Kind: primitives.Reselect}
	}
	for i := range p.rules {
		if p.rules[i].Matches(prev.Screen, next.Screen) {
			return p.rules[i].Decision()
		}
	}
	return p.fallback.Decide(prev, next)
}
