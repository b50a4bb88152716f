package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-outline/pkg/schema"
)

// NewSchemaCmd creates the `outline schema` command.
func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "schema [" + strings.Join(schema.Names(), "|") + "]",
		Short:     "Print the JSON Schema of an input format",
		Long:      "Print the JSON Schema of outline documents (the default) or gesture scripts, for editor validation.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: schema.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "outline"
			if len(args) == 1 {
				name = args[0]
			}
			data, err := schema.Generate(name)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	return cmd
}
