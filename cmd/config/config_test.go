package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	coreconfig "github.com/mattsolo1/grove-core/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-outline/pkg/drag"
)

func setup(t *testing.T, yaml string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	prev := loadGrove
	loadGrove = func() (*coreconfig.Config, error) { return nil, errors.New("no grove.yml") }
	t.Cleanup(func() { loadGrove = prev })

	cfgFile = ""
	logLevel = ""
	if yaml != "" {
		cfgFile = filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte(yaml), 0o644))
	}
	t.Cleanup(func() { cfgFile = "" })
	InitConfig()
}

func TestDefaults(t *testing.T) {
	setup(t, "")
	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, drag.DefaultNesting(), s.Nesting)
	assert.Equal(t, 3.0, s.Layout.RowHeight)
	assert.Equal(t, 4.0, s.Layout.Indent)
	assert.Equal(t, 60, s.TUI.FPS)
	assert.Equal(t, "warn", s.LogLvl)
}

func TestConfigFileOverrides(t *testing.T) {
	setup(t, `
nesting:
  enter: 6
  exit: 2
layout:
  row_height: 2
tui:
  fps: 30
`)
	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, drag.NestingConfig{Enter: 6, Exit: 2}, s.Nesting)
	assert.Equal(t, 2.0, s.Layout.RowHeight)
	assert.Equal(t, 4.0, s.Layout.Indent, "unset keys keep defaults")
	assert.Equal(t, 30, s.TUI.FPS)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OUTLINE_NESTING_ENTER", "8")
	setup(t, "")
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8.0, s.Nesting.Enter)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	setup(t, "nesting:\n  enter: 1\n  exit: 2\n")
	_, err := Load()
	assert.ErrorIs(t, err, drag.ErrInvalidNesting)

	setup(t, "tui:\n  fps: 0\n")
	_, err = Load()
	assert.ErrorContains(t, err, "tui.fps")

	setup(t, "")
	logLevel = "loud"
	_, err = Load()
	assert.ErrorContains(t, err, "log_level")
}

func TestExtensionOverridesOnlySetFields(t *testing.T) {
	setup(t, "")
	s, err := Load()
	require.NoError(t, err)

	enter, fps := 5.0, 24
	var ext extension
	ext.Nesting.Enter = &enter
	ext.TUI.FPS = &fps
	ext.apply(s)

	assert.Equal(t, 5.0, s.Nesting.Enter)
	assert.Equal(t, 1.0, s.Nesting.Exit)
	assert.Equal(t, 24, s.TUI.FPS)
	assert.Equal(t, 3.0, s.Layout.RowHeight)
}

func TestLogger(t *testing.T) {
	setup(t, "")
	s, err := Load()
	require.NoError(t, err)

	logger, closer, err := s.Logger(os.Stderr)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.Equal(t, nopCloser{}, closer)
	assert.NoError(t, closer.Close())

	s.LogLvl = "debug"
	s.LogFile = filepath.Join(t.TempDir(), "outline.log")
	logger, closer, err = s.Logger(os.Stderr)
	require.NoError(t, err)
	logger.Debug("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(s.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
