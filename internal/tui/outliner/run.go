package outliner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	zone "github.com/lrstanley/bubblezone"
	"golang.org/x/sync/errgroup"

	"github.com/mattsolo1/grove-outline/pkg/tree"
)

// watchDebounce folds the burst of events an editor's save produces.
const watchDebounce = 150 * time.Millisecond

// Run starts the outliner full-screen and blocks until the user quits. With
// watch set, external edits to opts.Path are reloaded while no drag is in
// progress. It returns the outline as the user left it.
func Run(ctx context.Context, t *tree.Tree, opts Options, watch bool) (*tree.Tree, error) {
	zone.NewGlobal()

	m, err := New(t, opts)
	if err != nil {
		return nil, err
	}
	g, gctx := errgroup.WithContext(ctx)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	)
	watchCtx, stopWatch := context.WithCancel(gctx)
	defer stopWatch()

	var final *tree.Tree
	g.Go(func() error {
		defer stopWatch()
		fm, err := p.Run()
		if err != nil {
			return fmt.Errorf("error running outliner: %w", err)
		}
		if om, ok := fm.(Model); ok {
			final = om.Tree()
		}
		return nil
	})
	if watch && opts.Path != "" {
		g.Go(func() error {
			return watchFile(watchCtx, opts.Path, func() { p.Send(FileChangedMsg{}) })
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if final == nil {
		final = t
	}
	return final, nil
}

// watchFile calls notify after path changes. The parent directory is
// watched because editors commonly replace files by rename.
func watchFile(ctx context.Context, path string, notify func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(watchDebounce)
		case <-timer.C:
			notify()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				notify()
				continue
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}
