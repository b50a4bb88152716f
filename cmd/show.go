package cmd

import (
	"bytes"
	"fmt"
	"strings"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-outline/pkg/tree"
)

var showUlog = grovelogging.NewUnifiedLogger("grove-outline.cmd.show")

// NewShowCmd creates the `outline show` command.
func NewShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print an outline as an indented list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tree.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load outline: %w", err)
			}

			pretty := renderOutline(t)
			if jsonOutput {
				var buf bytes.Buffer
				if err := tree.WriteJSON(&buf, t, true); err != nil {
					return err
				}
				pretty = strings.TrimRight(buf.String(), "\n")
			}
			showUlog.Info("Outline").
				Field("path", args[0]).
				Field("items", t.Len()).
				Pretty(pretty).
				PrettyOnly().
				Log(cmd.Context())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the outline as JSON")

	return cmd
}

// renderOutline draws one line per item, indented two spaces per level.
func renderOutline(t *tree.Tree) string {
	flat := t.Flatten()
	if len(flat) == 0 {
		return "(empty outline)"
	}
	var b strings.Builder
	for i, r := range flat {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("  ", r.Depth))
		b.WriteString("- ")
		b.WriteString(r.Item.Title())
		if r.Item.Title() != string(r.Item.ID) {
			fmt.Fprintf(&b, " (#%s)", r.Item.ID)
		}
	}
	return b.String()
}
