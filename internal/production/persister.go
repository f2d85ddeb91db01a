package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/navperf/internal/core"
	"github.com/comalice/navperf/internal/primitives"
)

// ErrEmptyGeneration is returned when a timeline has no generation to key it by.
var ErrEmptyGeneration = errors.New("timeline generation is empty")

// JSONPersister is a file-based timeline persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

// Save writes timeline to <dir>/<generation>.json.
func (p *JSONPersister) Save(ctx context.Context, timeline primitives.Timeline) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if timeline.Generation == "" {
		return ErrEmptyGeneration
	}
	stamp(&timeline)

	data, err := json.MarshalIndent(timeline, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, timeline.Generation+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

// Load reads the timeline saved for generation.
func (p *JSONPersister) Load(ctx context.Context, generation string) (primitives.Timeline, error) {
	data, err := readTimeline(ctx, p.dir, generation, ".json")
	if err != nil {
		return primitives.Timeline{}, err
	}

	var timeline primitives.Timeline
	if err := json.Unmarshal(data, &timeline); err != nil {
		return primitives.Timeline{}, fmt.Errorf("json unmarshal: %w", err)
	}
	timeline.Generation = generation // Ensure ID

	return timeline, nil
}

// YAMLPersister is a file-based timeline persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

// Save writes timeline to <dir>/<generation>.yaml.
func (p *YAMLPersister) Save(ctx context.Context, timeline primitives.Timeline) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if timeline.Generation == "" {
		return ErrEmptyGeneration
	}
	stamp(&timeline)

	data, err := yaml.Marshal(timeline)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, timeline.Generation+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

// Load reads the timeline saved for generation.
func (p *YAMLPersister) Load(ctx context.Context, generation string) (primitives.Timeline, error) {
	data, err := readTimeline(ctx, p.dir, generation, ".yaml")
	if err != nil {
		return primitives.Timeline{}, err
	}

	var timeline primitives.Timeline
	if err := yaml.Unmarshal(data, &timeline); err != nil {
		return primitives.Timeline{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	timeline.Generation = generation

	return timeline, nil
}

// NewPersister returns the persister for format, "json" or "yaml".
func NewPersister(format, dir string) (core.Persister, error) {
	switch format {
	case "", "json":
		p, err := NewJSONPersister(dir)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "yaml", "yml":
		p, err := NewYAMLPersister(dir)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported timeline format %q", format)
	}
}

func stamp(timeline *primitives.Timeline) {
	if timeline.Timestamp.IsZero() {
		timeline.Timestamp = time.Now().UTC()
	}
}

func readTimeline(ctx context.Context, dir, generation, ext string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if generation == "" {
		return nil, ErrEmptyGeneration
	}
	fn := filepath.Join(dir, generation+ext)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("timeline %q: %w", generation, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}
