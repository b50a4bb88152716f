package drag

import (
	"fmt"

	"github.com/mattsolo1/grove-outline/pkg/geometry"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

// NestingConfig holds the horizontal thresholds of the indent gesture.
// Enter must be greater than Exit; the gap keeps the indicator from
// flickering while the pointer rests near the boundary.
type NestingConfig struct {
	Enter float64 `json:"enter" yaml:"enter" mapstructure:"enter"`
	Exit  float64 `json:"exit" yaml:"exit" mapstructure:"exit"`
}

// DefaultNesting suits the terminal layout's four-column indent.
func DefaultNesting() NestingConfig {
	return NestingConfig{Enter: 3, Exit: 1}
}

// Validate checks the hysteresis gap.
func (c NestingConfig) Validate() error {
	if c.Enter <= c.Exit {
		return fmt.Errorf("%w (enter=%g, exit=%g)", ErrInvalidNesting, c.Enter, c.Exit)
	}
	return nil
}

// NestingDetector turns a rightward shift of the dragged rectangle over the
// placeholder's own row into "nest under the preceding sibling".
type NestingDetector struct {
	cfg    NestingConfig
	oracle geometry.Oracle
}

// NewNestingDetector validates cfg and creates a detector.
func NewNestingDetector(o geometry.Oracle, cfg NestingConfig) (*NestingDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &NestingDetector{cfg: cfg, oracle: o}, nil
}

// Config returns the thresholds.
func (d *NestingDetector) Config() NestingConfig { return d.cfg }

// Detect only fires while the dragged top lies inside the placeholder's own
// band. Not nested: moving right of the placeholder's left edge by more
// than Enter nests into the preceding real sibling as its last child, so
// the placeholder stays on the screen line it already occupies below that
// sibling's existing children. Nested by the gesture:
// moving back left of the parent row's left edge (the level the
// placeholder came from) by less than Exit reverts to a plain sibling slot
// below the parent. Between the thresholds the current decision stands.
// Without a preceding sibling the detector never nests.
func (d *NestingDetector) Detect(dragged geometry.Rect, t *tree.Tree, pending tree.Placement, hasPending bool) (tree.Placement, bool) {
	ghost, ok := d.oracle.RectOf(string(tree.GhostID))
	if !ok || !ghost.BandContainsY(dragged.Top) {
		return tree.Placement{}, false
	}

	if hasPending && pending.Gesture && pending.Position == tree.Into {
		parent, ok := d.oracle.RectOf(string(pending.Target))
		if !ok {
			return tree.Placement{}, false
		}
		if dragged.Left-parent.Left < d.cfg.Exit {
			return tree.Placement{Target: pending.Target, Position: tree.Below}, true
		}
		return tree.Placement{}, false
	}

	prev := t.PrecedingSibling(tree.GhostID)
	if prev == nil {
		return tree.Placement{}, false
	}
	if dragged.Left-ghost.Left > d.cfg.Enter {
		return tree.Placement{Target: prev.ID, Position: tree.Into, Gesture: true}, true
	}
	return tree.Placement{}, false
}
