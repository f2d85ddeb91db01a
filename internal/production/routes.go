package production

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/comalice/navperf/internal/primitives"
)

// LoadRouteConfig reads and validates a route table. YAML is a superset of
// JSON, so both formats are accepted.
func LoadRouteConfig(path string) (primitives.RouteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return primitives.RouteConfig{}, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg primitives.RouteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return primitives.RouteConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return primitives.RouteConfig{}, fmt.Errorf("config validation after load: %w", err)
	}
	return cfg, nil
}
