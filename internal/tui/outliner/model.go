// Package outliner is the terminal host for the drag engine: it draws an
// outline as stacked rows and turns mouse events into session calls.
package outliner

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/components/help"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-outline/pkg/drag"
	"github.com/mattsolo1/grove-outline/pkg/geometry"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

// headerLines is the number of screen lines above the first row: a top
// margin, the header and a blank spacer.
const headerLines = 3

// footerLines is the status line plus the short help.
const footerLines = 3

// Options configures a Model.
type Options struct {
	// Path is the outline the tree was loaded from; reloads read it.
	Path string
	// Out is where saves go. Empty means Path.
	Out     string
	Layout  geometry.LayoutConfig
	Nesting drag.NestingConfig
	FPS     int
	Logger  *logrus.Logger
}

// Model is the bubbletea model of the outliner.
type Model struct {
	tree    *tree.Tree
	session *drag.Session
	oracle  *drag.LayoutOracle
	keys    KeyMap
	help    help.Model
	log     *logrus.Logger

	path  string
	out   string
	frame time.Duration

	width  int
	height int
	scroll int

	dirty    bool
	saving   bool
	status   string
	before   string
	deferred *tree.Tree
	quitting bool
}

// New creates the outliner over t.
func New(t *tree.Tree, opts Options) (Model, error) {
	layout := opts.Layout
	layout.Origin = geometry.Point{X: 0, Y: headerLines}
	oracle := drag.NewLayoutOracle(t, layout)

	sessionOpts := []drag.Option{drag.WithNesting(opts.Nesting)}
	if opts.Logger != nil {
		sessionOpts = append(sessionOpts, drag.WithLogger(opts.Logger))
	}
	session, err := drag.New(t, oracle, sessionOpts...)
	if err != nil {
		return Model{}, err
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	out := opts.Out
	if out == "" {
		out = opts.Path
	}

	helpModel := help.NewBuilder().
		WithKeys(keys).
		WithTitle("Outline - Help").
		Build()

	return Model{
		tree:    t,
		session: session,
		oracle:  oracle,
		keys:    keys,
		help:    helpModel,
		log:     opts.Logger,
		path:    opts.Path,
		out:     out,
		frame:   time.Second / time.Duration(fps),
		width:   int(oracle.Layout().Config().Width),
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Tree returns the outline being edited.
func (m Model) Tree() *tree.Tree { return m.tree }

// Session returns the drag session.
func (m Model) Session() *drag.Session { return m.session }

// Dirty reports unsaved changes.
func (m Model) Dirty() bool { return m.dirty }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

func (m Model) rowHeight() int {
	h := int(m.oracle.Layout().Config().RowHeight)
	if h < 1 {
		return 1
	}
	return h
}

// visibleRows is how many whole rows fit between header and footer.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return len(m.oracle.Layout().Rows())
	}
	n := (m.height - headerLines - footerLines) / m.rowHeight()
	if n < 1 {
		return 1
	}
	return n
}

func (m Model) maxScroll() int {
	n := len(m.oracle.Layout().Rows()) - m.visibleRows()
	if n < 0 {
		return 0
	}
	return n
}

// setScroll clamps the first visible row, shifts the layout origin so
// rectangles stay in screen coordinates, and limits hit testing to the rows
// on screen.
func (m *Model) setScroll(n int) {
	n = max(0, min(n, m.maxScroll()))
	m.scroll = n
	layout := m.oracle.Layout()
	layout.SetOrigin(geometry.Point{
		X: 0,
		Y: float64(headerLines - n*m.rowHeight()),
	})
	if m.height > 0 {
		layout.SetWindow(n, m.visibleRows())
	} else {
		layout.SetWindow(0, 0)
	}
}

// rowsBottom is the first screen line below the row area.
func (m Model) rowsBottom() int {
	return headerLines + m.visibleRows()*m.rowHeight()
}

func (m *Model) frameCmd() tea.Cmd {
	return tea.Tick(m.frame, func(time.Time) tea.Msg { return frameMsg{} })
}
