package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	coreconfig "github.com/mattsolo1/grove-core/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-outline/pkg/drag"
	"github.com/mattsolo1/grove-outline/pkg/geometry"
)

var (
	cfgFile  string
	logLevel string

	// loadGrove reads the ecosystem grove.yml. Replaced in tests.
	loadGrove = coreconfig.LoadDefault
)

// Settings is the resolved configuration of a command.
type Settings struct {
	Nesting drag.NestingConfig    `mapstructure:"nesting"`
	Layout  geometry.LayoutConfig `mapstructure:"layout"`
	TUI     TUISettings           `mapstructure:"tui"`
	LogFile string                `mapstructure:"log_file"`
	LogLvl  string                `mapstructure:"log_level"`
}

// TUISettings configures the terminal outliner.
type TUISettings struct {
	FPS int `mapstructure:"fps"`
}

// extension is the optional `outline:` section of grove.yml. Unset fields
// leave the user config alone.
type extension struct {
	Nesting struct {
		Enter *float64 `yaml:"enter"`
		Exit  *float64 `yaml:"exit"`
	} `yaml:"nesting"`
	Layout struct {
		RowHeight *float64 `yaml:"row_height"`
		Indent    *float64 `yaml:"indent"`
		Width     *float64 `yaml:"width"`
	} `yaml:"layout"`
	TUI struct {
		FPS *int `yaml:"fps"`
	} `yaml:"tui"`
}

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "outline")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("OUTLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// A missing config file is normal.
	_ = viper.ReadInConfig()
}

func setDefaults() {
	nesting := drag.DefaultNesting()
	layout := geometry.DefaultLayout()
	viper.SetDefault("nesting.enter", nesting.Enter)
	viper.SetDefault("nesting.exit", nesting.Exit)
	viper.SetDefault("layout.row_height", layout.RowHeight)
	viper.SetDefault("layout.indent", layout.Indent)
	viper.SetDefault("layout.width", layout.Width)
	viper.SetDefault("tui.fps", 60)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_file", "")
}

// Load resolves settings from viper, then lets a grove.yml `outline:`
// section override them.
func Load() (*Settings, error) {
	s, err := fromViper()
	if err != nil {
		return nil, err
	}
	if cfg, err := loadGrove(); err == nil && cfg.Extensions["outline"] != nil {
		var ext extension
		if err := cfg.UnmarshalExtension("outline", &ext); err != nil {
			return nil, fmt.Errorf("failed to read outline section of grove config: %w", err)
		}
		ext.apply(s)
	}
	if logLevel != "" {
		s.LogLvl = logLevel
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func fromViper() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &s, nil
}

func (e extension) apply(s *Settings) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.Nesting.Enter, e.Nesting.Enter)
	set(&s.Nesting.Exit, e.Nesting.Exit)
	set(&s.Layout.RowHeight, e.Layout.RowHeight)
	set(&s.Layout.Indent, e.Layout.Indent)
	set(&s.Layout.Width, e.Layout.Width)
	if e.TUI.FPS != nil {
		s.TUI.FPS = *e.TUI.FPS
	}
}

// Validate checks values the engine and the TUI cannot work with.
func (s *Settings) Validate() error {
	if err := s.Nesting.Validate(); err != nil {
		return err
	}
	if s.Layout.RowHeight <= 0 {
		return fmt.Errorf("layout.row_height must be positive, got %g", s.Layout.RowHeight)
	}
	if s.TUI.FPS <= 0 {
		return fmt.Errorf("tui.fps must be positive, got %d", s.TUI.FPS)
	}
	if _, err := logrus.ParseLevel(s.LogLvl); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Logger builds the engine logger. Without a log file, output goes to w;
// the TUI passes io.Discard since stderr shares its screen.
func (s *Settings) Logger(w io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(s.LogLvl)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(level)

	if s.LogFile == "" {
		logger.SetOutput(w)
		return logger, nopCloser{}, nil
	}
	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger, f, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/outline/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "engine log level (debug, info, warn, error)")
}
