package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-outline/cmd/config"
	"github.com/mattsolo1/grove-outline/pkg/gesture"
	"github.com/mattsolo1/grove-outline/pkg/tree"
)

// NewReplayCmd creates the `outline replay` command.
func NewReplayCmd() *cobra.Command {
	var (
		outlinePath string
		scriptPath  string
		trace       bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Run a scripted drag gesture against an outline",
		Long: `Replay a gesture script (press, move, nudge and release steps) against an
outline laid out as fixed-height rows, then print the resulting outline.
With --trace, each step's placement and intermediate outline is printed too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			config.InitConfig()
			settings, err := config.Load()
			if err != nil {
				return err
			}
			logger, closer, err := settings.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			t, err := tree.LoadFile(outlinePath)
			if err != nil {
				return fmt.Errorf("failed to load outline: %w", err)
			}
			script, err := gesture.LoadScript(scriptPath)
			if err != nil {
				return err
			}

			res, err := gesture.Run(ctx, t, script, gesture.Config{
				Layout:  settings.Layout,
				Nesting: settings.Nesting,
				Logger:  logger,
			})
			if err != nil {
				return fmt.Errorf("replay failed: %w", err)
			}

			logger.WithFields(logrus.Fields{
				"script":  scriptPath,
				"steps":   len(script.Steps),
				"outline": res.Tree.String(),
			}).Info("replay finished")

			if trace {
				if err := writeTrace(cmd.OutOrStdout(), res.Trace); err != nil {
					return err
				}
			}
			if jsonOutput {
				return tree.WriteJSON(cmd.OutOrStdout(), res.Tree, true)
			}
			return tree.WriteYAML(cmd.OutOrStdout(), res.Tree)
		},
	}

	cmd.Flags().StringVar(&outlinePath, "outline", "", "Outline document (YAML or JSON)")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Gesture script (YAML)")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print the per-step trace before the outline")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the outline as JSON")
	_ = cmd.MarkFlagRequired("outline")
	_ = cmd.MarkFlagRequired("script")

	// Add global flags
	config.AddGlobalFlags(cmd)

	return cmd
}

func writeTrace(w io.Writer, events []gesture.Event) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"trace": events}); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "---")
	return err
}
