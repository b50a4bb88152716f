package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-outline/pkg/tree"
)

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestRenderOutline(t *testing.T) {
	inbox := tree.NewItem(1, tree.NewItem(11))
	inbox.SetAttr(tree.TitleAttr, "Inbox")
	got := renderOutline(tree.New(inbox, tree.NewItem(2)))
	assert.Equal(t, "- Inbox (#1)\n  - 11\n- 2", got)

	assert.Equal(t, "(empty outline)", renderOutline(tree.New()))
}

func TestSchemaCmd(t *testing.T) {
	out, err := execute(t, NewSchemaCmd())
	require.NoError(t, err)
	assert.Contains(t, out, `"$schema"`)
	assert.Contains(t, out, "items")

	out, err = execute(t, NewSchemaCmd(), "gesture")
	require.NoError(t, err)
	assert.Contains(t, out, "steps")

	_, err = execute(t, NewSchemaCmd(), "bogus")
	assert.Error(t, err)
}

func TestReplayCmd(t *testing.T) {
	dir := t.TempDir()
	outline := writeFile(t, dir, "outline.yaml", `
items:
  - id: 1
  - id: 2
`)
	script := writeFile(t, dir, "promote.yaml", `
steps:
  - op: press
    id: "2"
    x: 10
    y: 1
  - op: nudge
    x: 4.5
  - op: release
`)
	config := writeFile(t, dir, "config.yaml", "log_level: error\n")

	out, err := execute(t, NewReplayCmd(), "--config", config, "--outline", outline, "--script", script, "--trace")
	require.NoError(t, err)

	docs := strings.Split(out, "---\n")
	require.Len(t, docs, 2)
	assert.Contains(t, docs[0], "trace:")
	assert.Contains(t, docs[0], "op: release")

	final, err := tree.ReadDocument(strings.NewReader(docs[1]))
	require.NoError(t, err)
	assert.Equal(t, "1[2]", final.String())
}

func TestReplayCmdRequiresFlags(t *testing.T) {
	_, err := execute(t, NewReplayCmd())
	assert.ErrorContains(t, err, "required flag")
}

func TestReplayCmdMissingOutline(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "s.yaml", "steps:\n  - op: release\n")
	config := writeFile(t, dir, "config.yaml", "log_level: error\n")
	_, err := execute(t, NewReplayCmd(), "--config", config, "--outline", filepath.Join(dir, "nope.yaml"), "--script", script)
	assert.ErrorContains(t, err, "failed to load outline")
}

func TestBuildReport(t *testing.T) {
	r := buildReport{Version: "v1.2.0", Commit: "abc123", Branch: "main", Schemas: []string{"gesture", "outline"}, summary: "outline v1.2.0"}

	text, err := r.render(false)
	require.NoError(t, err)
	assert.Equal(t, "outline v1.2.0\nSchemas: gesture, outline", text)

	js, err := r.render(true)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"v1.2.0","commit":"abc123","branch":"main","schemas":["gesture","outline"]}`, js)

	assert.Equal(t, []string{"gesture", "outline"}, newBuildReport().Schemas)
}
