package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-core/version"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-outline/pkg/schema"
)

var versionUlog = grovelogging.NewUnifiedLogger("grove-outline.cmd.version")

// buildReport is the build plus the input formats this binary can describe
// with `outline schema`.
type buildReport struct {
	Version string   `json:"version"`
	Commit  string   `json:"commit"`
	Branch  string   `json:"branch"`
	Schemas []string `json:"schemas"`

	summary string
}

func newBuildReport() buildReport {
	info := version.GetInfo()
	return buildReport{
		Version: info.Version,
		Commit:  info.Commit,
		Branch:  info.Branch,
		Schemas: schema.Names(),
		summary: info.String(),
	}
}

func (r buildReport) render(asJSON bool) (string, error) {
	if asJSON {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal version info to JSON: %w", err)
		}
		return string(data), nil
	}
	return r.summary + "\nSchemas: " + strings.Join(r.Schemas, ", "), nil
}

// NewVersionCmd creates the `outline version` command.
func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display the build of grove-outline and the document formats it understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := newBuildReport()
			out, err := report.render(jsonOutput)
			if err != nil {
				return err
			}
			versionUlog.Info("Version info").
				Field("version", report.Version).
				Field("commit", report.Commit).
				Field("schemas", report.Schemas).
				Pretty(out).
				PrettyOnly().
				Log(cmd.Context())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")

	return cmd
}
