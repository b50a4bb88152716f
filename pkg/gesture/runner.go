package gesture

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-outline/pkg/drag"
	"github.com/mattsolo1/grove-outline/pkg/geometry"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

var (
	// ErrNoRow is returned when a press lands on no row.
	ErrNoRow = errors.New("no row under pointer")
	// ErrNotDragging is returned for a release without a drag.
	ErrNotDragging = errors.New("release without a drag in progress")
)

// Config is the replay environment. Script values take precedence.
type Config struct {
	Layout  geometry.LayoutConfig
	Nesting drag.NestingConfig
	Logger  *logrus.Logger
}

// DefaultConfig uses the terminal layout and default nesting thresholds.
func DefaultConfig() Config {
	return Config{Layout: geometry.DefaultLayout(), Nesting: drag.DefaultNesting()}
}

// Event is the state after one step.
type Event struct {
	Step      int            `yaml:"step" json:"step"`
	Op        Op             `yaml:"op" json:"op"`
	Pointer   geometry.Point `yaml:"pointer" json:"pointer"`
	Phase     string         `yaml:"phase" json:"phase"`
	Placement string         `yaml:"placement,omitempty" json:"placement,omitempty"`
	Moved     bool           `yaml:"moved,omitempty" json:"moved,omitempty"`
	Outline   string         `yaml:"outline" json:"outline"`
	Implicit  bool           `yaml:"implicit,omitempty" json:"implicit,omitempty"`
}

// Result is the outcome of a replay.
type Result struct {
	Tree  *tree.Tree
	Trace []Event
}

// Run replays s against t, mutating it. A drag still armed after the last
// step is released where the pointer rests, as a pointer-up outside the
// window would.
func Run(ctx context.Context, t *tree.Tree, s *Script, cfg Config) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Layout != nil {
		cfg.Layout = *s.Layout
	}
	if s.Nesting != nil {
		cfg.Nesting = *s.Nesting
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	oracle := drag.NewLayoutOracle(t, cfg.Layout)
	session, err := drag.New(t, oracle, drag.WithLogger(log), drag.WithNesting(cfg.Nesting))
	if err != nil {
		return nil, err
	}

	r := &replay{session: session, oracle: oracle}
	res := &Result{Tree: t}
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		committed := r.placement()
		moved, err := r.apply(st)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
		ev := r.event(i+1, st.Op, moved)
		if st.Op == OpRelease {
			ev.Placement = committed
		}
		res.Trace = append(res.Trace, ev)
		log.WithFields(logrus.Fields{"step": i + 1, "op": st.Op, "outline": t.String()}).Debug("gesture step")
	}

	if session.Phase() == drag.Dragging {
		committed := r.placement()
		session.Settle()
		ev := r.event(len(s.Steps)+1, OpRelease, false)
		ev.Placement = committed
		ev.Implicit = true
		res.Trace = append(res.Trace, ev)
	}
	return res, nil
}

type replay struct {
	session *drag.Session
	oracle  *drag.LayoutOracle
	pointer geometry.Point
}

func (r *replay) apply(st Step) (bool, error) {
	switch st.Op {
	case OpPress:
		return false, r.press(st)
	case OpMove:
		return r.move(geometry.Point{X: st.X, Y: st.Y}, st.Coalesce), nil
	case OpNudge:
		return r.move(r.pointer.Add(geometry.Point{X: st.X, Y: st.Y}), st.Coalesce), nil
	case OpRelease:
		// A release flushes nothing: the queued sample was never shown.
		if !r.session.Settle() {
			return false, ErrNotDragging
		}
		return false, nil
	}
	return false, fmt.Errorf("unknown op %q", st.Op)
}

func (r *replay) press(st Step) error {
	p := geometry.Point{X: st.X, Y: st.Y}
	id := tree.NewID(st.ID)
	if st.ID != "" {
		rect, ok := r.oracle.RectOf(string(id))
		if !ok {
			return fmt.Errorf("%w: %s", drag.ErrNotRendered, id)
		}
		p = rect.TopLeft().Add(p)
	} else {
		row, ok := r.oracle.RowAt(p)
		if !ok || row.Ghost {
			return fmt.Errorf("%w at %s", ErrNoRow, p)
		}
		id = tree.NewID(row.ID)
	}
	r.pointer = p
	return r.session.Arm(p, id)
}

func (r *replay) move(p geometry.Point, coalesce bool) bool {
	r.pointer = p
	r.session.Track(p)
	if coalesce {
		return false
	}
	return r.session.Frame()
}

func (r *replay) placement() string {
	if pl, ok := r.session.Pending(); ok {
		return pl.String()
	}
	return ""
}

func (r *replay) event(step int, op Op, moved bool) Event {
	return Event{
		Step:      step,
		Op:        op,
		Pointer:   r.pointer,
		Phase:     r.session.Phase().String(),
		Placement: r.placement(),
		Moved:     moved,
		Outline:   r.session.Tree().String(),
	}
}
