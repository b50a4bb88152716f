package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-outline/cmd/config"
	"github.com/mattsolo1/grove-outline/internal/tui/outliner"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

var tuiUlog = grovelogging.NewUnifiedLogger("grove-outline.cmd.tui")

// NewTuiCmd creates the `outline tui` command.
func NewTuiCmd() *cobra.Command {
	var (
		watch bool
		out   string
	)

	cmd := &cobra.Command{
		Use:   "tui FILE",
		Short: "Reorder an outline interactively by dragging rows",
		Long: `Open an outline in a full-screen terminal view. Press a row with the mouse
and drag it to a new place; drag right over a row to nest under it. Save
with ctrl+s or w, which writes to --out when given and FILE otherwise.
With --out, the outline as left on quit is written there as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			config.InitConfig()
			settings, err := config.Load()
			if err != nil {
				return err
			}
			logger, closer, err := settings.Logger(io.Discard)
			if err != nil {
				return err
			}
			defer closer.Close()

			path := args[0]
			t, err := tree.LoadFile(path)
			if err != nil {
				return fmt.Errorf("failed to load outline: %w", err)
			}

			final, err := outliner.Run(cmd.Context(), t, outliner.Options{
				Path:    path,
				Out:     out,
				Layout:  settings.Layout,
				Nesting: settings.Nesting,
				FPS:     settings.TUI.FPS,
				Logger:  logger,
			}, watch)
			if err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}

			if out == "" {
				return nil
			}
			if err := tree.SaveFile(out, final); err != nil {
				return fmt.Errorf("failed to write outline: %w", err)
			}
			tuiUlog.Success("Outline written").
				Field("path", out).
				Field("items", final.Len()).
				Pretty("Wrote " + out).
				PrettyOnly().
				Log(cmd.Context())
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload FILE when it changes on disk")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the final outline here instead of FILE")

	// Add global flags
	config.AddGlobalFlags(cmd)

	return cmd
}
