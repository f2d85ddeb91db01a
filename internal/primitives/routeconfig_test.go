package primitives

import (
	"strings"
	"testing"
)

func validRoutes() RouteConfig {
	return RouteConfig{
		Home:    "home",
		Screens: []string{"home", "gradeOne", "gradeTwo", "settings"},
		Rules: []RuleConfig{
			{From: "gradeOne", To: "gradeTwo", Kind: "slide", Direction: Forward},
			{From: AnyScreen, To: "settings", Kind: "jump", Priority: 5},
		},
	}
}

func TestRouteConfig_Validate_Valid(t *testing.T) {
	cfg := validRoutes()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if !cfg.HasScreen("settings") || cfg.HasScreen("missing") {
		t.Error("HasScreen mismatch")
	}
}

func TestRouteConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RouteConfig)
		wantErr string
	}{
		{"no home", func(c *RouteConfig) { c.Home = "" }, "home screen is required"},
		{"no screens", func(c *RouteConfig) { c.Screens = nil }, "screens list is required"},
		{"home not declared", func(c *RouteConfig) { c.Home = "lobby" }, `home screen "lobby" not found`},
		{"duplicate screen", func(c *RouteConfig) { c.Screens = append(c.Screens, "home") }, `duplicate screen "home"`},
		{"bad screen id", func(c *RouteConfig) { c.Screens = append(c.Screens, "grade one") }, "invalid character ' '"},
		{"unknown rule screen", func(c *RouteConfig) { c.Rules[0].To = "gradeNine" }, `unknown screen "gradeNine"`},
		{"bad kind", func(c *RouteConfig) { c.Rules[0].Kind = "fade" }, `unknown decision kind "fade"`},
		{"slide without direction", func(c *RouteConfig) { c.Rules[0].Direction = "" }, "needs direction"},
		{"jump with direction", func(c *RouteConfig) { c.Rules[1].Direction = Backward }, "cannot set a direction"},
		{"negative priority", func(c *RouteConfig) { c.Rules[1].Priority = -1 }, "priority must be non-negative"},
		{"empty from", func(c *RouteConfig) { c.Rules[0].From = "" }, "from is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validRoutes()
			cfg.Rules = append([]RuleConfig(nil), cfg.Rules...)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRuleConfig_MatchesAndDecision(t *testing.T) {
	r := RuleConfig{From: AnyScreen, To: "settings", Kind: "jump"}
	if !r.Matches("home", "settings") || r.Matches("settings", "home") {
		t.Error("Matches mismatch")
	}
	if d := r.Decision(); d.Kind != Jump || d.Direction != "" {
		t.Errorf("Decision() = %+v", d)
	}
	s := RuleConfig{From: "a", To: "b", Kind: "slide", Direction: Backward}
	if d := s.Decision(); d.Kind != Slide || d.Direction != Backward {
		t.Errorf("Decision() = %+v", d)
	}
}

func TestSortRules(t *testing.T) {
	rules := []RuleConfig{
		{From: "a", Priority: 0},
		{From: "b", Priority: 10},
		{From: "c", Priority: 0},
		{From: "d", Priority: 5},
	}
	SortRules(rules)
	var got []string
	for _, r := range rules {
		got = append(got, r.From)
	}
	if strings.Join(got, "") != "bdac" {
		t.Errorf("order = %v, want b d a c", got)
	}
}

func TestComputeVersion(t *testing.T) {
	cfg := validRoutes()
	v1 := ComputeVersion(&cfg)
	v2 := ComputeVersion(&cfg)
	if v1 == "" || v1 != v2 {
		t.Errorf("ComputeVersion not deterministic: %q vs %q", v1, v2)
	}
	cfg.Screens = append(cfg.Screens, "extra")
	if ComputeVersion(&cfg) == v1 {
		t.Error("version unchanged after edit")
	}
	cfg.Version = "v2"
	if ComputeVersion(&cfg) != "v2" {
		t.Error("explicit version ignored")
	}
}

func TestRouteBuilder(t *testing.T) {
	cfg, err := NewRouteBuilder("home").
		Screens("gradeOne", "gradeTwo").
		Slide("gradeOne", "gradeTwo", Forward).
		Jump(AnyScreen, "home").Priority(3).
		Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if len(cfg.Screens) != 3 || len(cfg.Rules) != 2 || cfg.Rules[1].Priority != 3 {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := NewRouteBuilder("home").Slide("home", "nowhere", Forward).Build(); err == nil {
		t.Error("Build() accepted unknown screen")
	}
}
