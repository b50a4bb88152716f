package outliner

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mattsolo1/grove-outline/pkg/drag"
	"github.com/mattsolo1/grove-outline/pkg/geometry"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

const (
	zoneSave = "outline:save"
	zoneHelp = "outline:help"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.oracle.Layout().SetWidth(float64(msg.Width))
		m.setScroll(m.scroll)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		m.session.Frame()
		return m, nil

	case FileChangedMsg:
		if m.path == "" {
			return m, nil
		}
		return m, loadCmd(m.path)

	case reloadMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error reloading: %v", msg.err)
			return m, nil
		}
		if m.session.Phase() == drag.Dragging {
			m.deferred = msg.tree
			return m, nil
		}
		m.applyReload(msg.tree, false)
		return m, nil

	case forcedReloadMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error reloading: %v", msg.err)
			return m, nil
		}
		m.applyReload(msg.tree, true)
		return m, nil

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.dirty = false
		m.status = "Saved " + msg.path
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			m.help.Toggle()
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// A pointer-up may never arrive once the program exits.
		m.session.Settle()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil
	}

	if m.session.Phase() == drag.Dragging {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Save):
		cmd := m.save()
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		if m.path == "" {
			return m, nil
		}
		return m, forcedLoadCmd(m.path)
	case key.Matches(msg, m.keys.Up):
		m.setScroll(m.scroll - 1)
	case key.Matches(msg, m.keys.Down):
		m.setScroll(m.scroll + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.setScroll(m.scroll - m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.setScroll(m.scroll + m.visibleRows())
	case key.Matches(msg, m.keys.GoToTop):
		m.setScroll(0)
	case key.Matches(msg, m.keys.GoToEnd):
		m.setScroll(m.maxScroll())
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := geometry.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionRelease:
		// Any release ends the drag, wherever it lands.
		return m.settle()

	case tea.MouseActionMotion:
		if m.session.Phase() != drag.Dragging {
			return m, nil
		}
		// Below the row area the status and help lines cover rows scrolled
		// out of view; hold the pointer at the last row line instead.
		if m.height > 0 && m.maxScroll() > 0 {
			p.Y = min(p.Y, float64(m.rowsBottom()-1))
		}
		if m.session.Track(p) {
			return m, m.frameCmd()
		}
		return m, nil

	case tea.MouseActionPress:
		if m.session.Phase() == drag.Dragging {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.setScroll(m.scroll - 1)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.setScroll(m.scroll + 1)
			return m, nil
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}

		if zone.Get(zoneSave).InBounds(msg) {
			cmd := m.save()
			return m, cmd
		}
		if zone.Get(zoneHelp).InBounds(msg) {
			m.help.Toggle()
			return m, nil
		}
		if p.Y < headerLines || (m.height > 0 && p.Y >= float64(m.rowsBottom())) {
			return m, nil
		}
		row, ok := m.oracle.RowAt(p)
		if !ok || row.Ghost {
			return m, nil
		}
		before := m.tree.String()
		if err := m.session.Arm(p, tree.NewID(row.ID)); err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.status = ""
		m.before = before
	}
	return m, nil
}

func (m Model) settle() (tea.Model, tea.Cmd) {
	if m.session.Phase() != drag.Dragging {
		return m, nil
	}
	id := m.session.Dragged().ID
	pl, hasPlacement := m.session.Pending()
	m.session.Settle()
	m.setScroll(m.scroll)

	if m.tree.String() != m.before {
		m.dirty = true
		if hasPlacement {
			m.status = fmt.Sprintf("Moved %s %s", id, pl)
		}
	}
	if m.deferred != nil {
		t := m.deferred
		m.deferred = nil
		m.applyReload(t, false)
	}
	return m, nil
}

// applyReload replaces the tree with one read from disk. Unsaved local
// changes win unless force is set.
func (m *Model) applyReload(t *tree.Tree, force bool) {
	if m.dirty && !force {
		if t.String() != m.tree.String() {
			m.status = "Outline changed on disk; w overwrites it, ctrl+r discards local moves"
		}
		return
	}
	if !m.session.ReplaceTree(t.Items) {
		m.deferred = t
		return
	}
	m.dirty = false
	m.setScroll(m.scroll)
	m.status = "Reloaded " + m.path
}

func (m *Model) save() tea.Cmd {
	if m.out == "" {
		m.status = "No output file; pass --out"
		return nil
	}
	if m.saving {
		return nil
	}
	m.saving = true
	m.status = "Saving..."
	return saveCmd(m.out, m.tree.Clone())
}
