package outliner

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-outline/pkg/tree"
)

// frameMsg runs one coalesced resolution.
type frameMsg struct{}

// reloadMsg carries a freshly read outline.
type reloadMsg struct {
	tree *tree.Tree
	err  error
}

// FileChangedMsg tells the model its outline file changed on disk.
type FileChangedMsg struct{}

// forcedReloadMsg replaces the tree even when it has unsaved moves.
type forcedReloadMsg reloadMsg

type savedMsg struct {
	path string
	err  error
}

func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		t, err := tree.LoadFile(path)
		return reloadMsg{tree: t, err: err}
	}
}

func forcedLoadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		t, err := tree.LoadFile(path)
		return forcedReloadMsg{tree: t, err: err}
	}
}

// saveCmd writes a copy so the Update loop keeps sole ownership of the live
// tree.
func saveCmd(path string, snapshot *tree.Tree) tea.Cmd {
	return func() tea.Msg {
		if err := tree.SaveFile(path, snapshot); err != nil {
			return savedMsg{path: path, err: fmt.Errorf("failed to save outline: %w", err)}
		}
		return savedMsg{path: path}
	}
}
