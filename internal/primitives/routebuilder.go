package primitives

// RouteBuilder builds a RouteConfig fluently.
type RouteBuilder struct {
	config RouteConfig
}

// NewRouteBuilder creates a builder whose home screen is home.
func NewRouteBuilder(home string) *RouteBuilder {
	return &RouteBuilder{config: RouteConfig{Home: home, Screens: []string{home}}}
}

// Screens declares additional screens.
func (b *RouteBuilder) Screens(ids ...string) *RouteBuilder {
	b.config.Screens = append(b.config.Screens, ids...)
	return b
}

// Slide adds a slide rule.
func (b *RouteBuilder) Slide(from, to string, dir Direction) *RouteBuilder {
	b.config.Rules = append(b.config.Rules, RuleConfig{From: from, To: to, Kind: Slide.String(), Direction: dir})
	return b
}

// Jump adds a jump rule.
func (b *RouteBuilder) Jump(from, to string) *RouteBuilder {
	b.config.Rules = append(b.config.Rules, RuleConfig{From: from, To: to, Kind: Jump.String()})
	return b
}

// Priority sets the priority of the most recently added rule.
func (b *RouteBuilder) Priority(p int) *RouteBuilder {
	if n := len(b.config.Rules); n > 0 {
		b.config.Rules[n-1].Priority = p
	}
	return b
}

// Build returns the config, validated.
func (b *RouteBuilder) Build() (RouteConfig, error) {
	cfg := b.config
	cfg.Screens = append([]string(nil), cfg.Screens...)
	cfg.Rules = append([]RuleConfig(nil), cfg.Rules...)
	if err := cfg.Validate(); err != nil {
		return RouteConfig{}, err
	}
	return cfg, nil
}
