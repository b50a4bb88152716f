package outliner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mattsolo1/grove-outline/pkg/drag"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

var (
	ghostStyle   = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Green).Bold(true)
	previewStyle = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Orange).Bold(true).Reverse(true)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.help.ShowAll {
		return m.help.View()
	}

	lines := make([]string, 0, headerLines+m.visibleRows()*m.rowHeight()+footerLines)
	lines = append(lines, "", m.renderHeader(), "")
	lines = append(lines, m.renderRows()...)
	m.overlayPreview(lines)

	lines = append(lines, "", m.renderStatus(), m.help.View())
	if m.width > 0 {
		// Wrapped lines would shift every row below them.
		clamp := lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(1)
		for i, l := range lines {
			lines[i] = clamp.Render(l)
		}
	}
	return zone.Scan(strings.Join(lines, "\n"))
}

func (m Model) renderHeader() string {
	title := theme.DefaultTheme.Header.Render("Outline")
	if m.path != "" {
		title += " " + theme.DefaultTheme.Muted.Render(m.path)
	}
	if m.dirty {
		title += " " + theme.DefaultTheme.Highlight.Render("[modified]")
	}
	buttons := zone.Mark(zoneSave, theme.DefaultTheme.Muted.Render("[save]")) + " " +
		zone.Mark(zoneHelp, theme.DefaultTheme.Muted.Render("[?]"))
	return title + "  " + buttons
}

func (m Model) renderRows() []string {
	layout := m.oracle.Layout()
	indent := int(layout.Config().Indent)
	h := m.rowHeight()

	var hovered tree.ID
	if it := m.session.Hovered(); it != nil {
		hovered = it.ID
	}

	flat := m.tree.Flatten()
	start := min(m.scroll, len(flat))
	end := min(start+m.visibleRows(), len(flat))

	var out []string
	for _, r := range flat[start:end] {
		pad := strings.Repeat(" ", r.Depth*indent)
		block := make([]string, h)
		if tree.IsGhost(r.Item) {
			block[0] = pad + ghostStyle.Render("┈┈ drop here ┈┈")
		} else {
			block[0] = pad + m.renderTitle(r.Item, r.Item.ID == hovered)
			if h > 1 {
				block[1] = pad + "  " + theme.DefaultTheme.Muted.Render(detail(r.Item))
			}
		}
		out = append(out, block...)
	}
	return out
}

func (m Model) renderTitle(it *tree.Item, hovered bool) string {
	bullet := "•"
	if it.HasRealChildren() {
		bullet = "▸"
	}
	line := bullet + " " + it.Title()
	if hovered {
		return theme.DefaultTheme.Highlight.Render(line)
	}
	return line
}

// detail is the second line of a row: id, child count and a few attributes.
func detail(it *tree.Item) string {
	parts := []string{"#" + string(it.ID)}
	if n := len(it.Children); n == 1 {
		parts = append(parts, "1 child")
	} else if n > 1 {
		parts = append(parts, fmt.Sprintf("%d children", n))
	}
	for _, k := range it.AttributeKeys() {
		if k == tree.TitleAttr || k == tree.PlaceholderAttr {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, it.Attributes[k]))
		if len(parts) >= 5 {
			break
		}
	}
	return strings.Join(parts, " · ")
}

// overlayPreview draws the dragged item where the pointer holds it, over
// whatever row line is there.
func (m Model) overlayPreview(lines []string) {
	if m.session.Phase() != drag.Dragging || m.session.Dragged() == nil {
		return
	}
	r := m.session.DraggedRect()
	y := int(r.Top)
	if y < headerLines || y >= len(lines) {
		return
	}
	x := max(0, int(r.Left))
	lines[y] = strings.Repeat(" ", x) + previewStyle.Render(" ≡ "+m.session.Dragged().Title()+" ")
}

func (m Model) renderStatus() string {
	if m.session.Phase() == drag.Dragging {
		msg := "Dragging " + m.session.Dragged().Title()
		if pl, ok := m.session.Pending(); ok {
			msg += " → " + pl.String()
		}
		return theme.DefaultTheme.Info.Render(msg)
	}
	if m.status == "" {
		return theme.DefaultTheme.Muted.Render(fmt.Sprintf("%d items", m.tree.Len()))
	}
	return theme.DefaultTheme.Info.Render(m.status)
}
