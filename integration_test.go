//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattsolo1/grove-outline/pkg/tree"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("outline %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()
	outlinePath := filepath.Join(tmpDir, "outline.yaml")
	scriptPath := filepath.Join(tmpDir, "script.yaml")
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(outlinePath, []byte("items:\n  - id: 1\n    title: Inbox\n  - id: 2\n  - id: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("log_level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Test 1: Move the first row below the second, then nest the third under it.
	t.Run("ReplayReorderAndNest", func(t *testing.T) {
		script := `
name: reorder
steps:
  - op: press
    id: "1"
    x: 10
    y: 1
  - op: move
    x: 10
    y: 6
  - op: release
  - op: press
    id: "3"
    x: 10
    y: 1
  - op: nudge
    x: 4.5
  - op: release
`
		if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
			t.Fatal(err)
		}

		out := run(t, "replay", "--config", configPath, "--outline", outlinePath, "--script", scriptPath)
		final, err := tree.ReadDocument(strings.NewReader(out))
		if err != nil {
			t.Fatalf("Failed to parse replay output: %v", err)
		}
		if got := final.String(); got != "2,1[3]" {
			t.Errorf("Expected outline 2,1[3], got %s", got)
		}
		if err := final.Validate(); err != nil {
			t.Errorf("Replay left an inconsistent tree: %v", err)
		}
	})

	// Test 2: Schema generation
	t.Run("Schema", func(t *testing.T) {
		out := run(t, "schema", "gesture")
		if !strings.Contains(out, `"steps"`) {
			t.Errorf("Gesture schema does not describe steps:\n%s", out)
		}
	})
}
