// Package gesture records pointer gestures as YAML scripts and replays them
// against a drag session without a terminal.
package gesture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-outline/pkg/drag"
	"github.com/mattsolo1/grove-outline/pkg/geometry"
)

// Op is a step kind.
type Op string

const (
	// OpPress arms a drag on the row under the pointer, or on the row with
	// the step's id.
	OpPress Op = "press"
	// OpMove sends an absolute pointer sample.
	OpMove Op = "move"
	// OpNudge sends a sample relative to the last pointer position.
	OpNudge Op = "nudge"
	// OpRelease settles the drag.
	OpRelease Op = "release"
)

// Step is one scripted pointer event.
type Step struct {
	Op Op `yaml:"op" json:"op" jsonschema:"enum=press,enum=move,enum=nudge,enum=release"`
	// ID presses the row of that item; X and Y are then offsets inside the
	// row from its top-left corner.
	ID string  `yaml:"id,omitempty" json:"id,omitempty"`
	X  float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y  float64 `yaml:"y,omitempty" json:"y,omitempty"`
	// Coalesce queues a move without running a frame, the way a burst of
	// pointer events between two display frames behaves.
	Coalesce bool `yaml:"coalesce,omitempty" json:"coalesce,omitempty"`
}

// Script is a recorded gesture. Layout and nesting, when present, override
// the runner's configuration.
type Script struct {
	Name    string                 `yaml:"name,omitempty" json:"name,omitempty"`
	Layout  *geometry.LayoutConfig `yaml:"layout,omitempty" json:"layout,omitempty"`
	Nesting *drag.NestingConfig    `yaml:"nesting,omitempty" json:"nesting,omitempty"`
	Steps   []Step                 `yaml:"steps" json:"steps"`
}

var ErrEmptyScript = errors.New("gesture script has no steps")

// Validate checks step kinds and the nesting thresholds.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScript
	}
	var errs []error
	for i, st := range s.Steps {
		switch st.Op {
		case OpPress, OpMove, OpNudge, OpRelease:
		default:
			errs = append(errs, fmt.Errorf("step %d: unknown op %q", i+1, st.Op))
		}
		if st.ID != "" && st.Op != OpPress {
			errs = append(errs, fmt.Errorf("step %d: id is only valid on press", i+1))
		}
	}
	if s.Nesting != nil {
		if err := s.Nesting.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ParseScript decodes and validates a YAML script. Unknown keys are errors so
// typos in a recording do not pass silently.
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse gesture script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gesture script: %w", err)
	}
	s, err := ParseScript(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
