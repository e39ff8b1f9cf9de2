package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/rfpboard/internal/board"
)

// Config holds application configuration.
type Config struct {
	Board   BoardConfig   `mapstructure:"board"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Clients ClientsConfig `mapstructure:"clients"`
}

// BoardConfig declares the pipeline.
type BoardConfig struct {
	NewStage string        `mapstructure:"new_stage"`
	Stages   []StageConfig `mapstructure:"stages"`
	Seed     bool          `mapstructure:"seed"`
}

// StageConfig is one [[board.stages]] table.
type StageConfig struct {
	ID        string `mapstructure:"id"`
	Label     string `mapstructure:"label"`
	Lifecycle string `mapstructure:"lifecycle"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
	ToastSeconds   int    `mapstructure:"toast_seconds"`
	ValidationGate bool   `mapstructure:"validation_gate"`
}

// LogConfig holds the log file settings. The TUI owns the terminal, so logs
// always go to a file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// ClientsConfig points at an optional client registry file.
type ClientsConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from file and env. Env var overrides use prefix RFPBOARD_.
func Load() (Config, error) {
	return LoadFile(os.Getenv("RFPBOARD_CONFIG"))
}

// LoadFile is Load with an explicit config path. A blank path searches the
// default config directory.
func LoadFile(cfgPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RFPBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, a broken one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the configuration used when nothing is on disk. It panics
// if the built-in defaults fail to decode.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(fmt.Sprintf("config: decode defaults: %v", err))
	}
	return c
}

func setDefaults(v *viper.Viper) {
	stages := make([]map[string]any, 0, 4)
	for _, s := range board.DefaultStages() {
		stages = append(stages, map[string]any{"id": s.ID, "label": s.Label, "lifecycle": string(s.Lifecycle)})
	}
	v.SetDefault("board.new_stage", "new")
	v.SetDefault("board.stages", stages)
	v.SetDefault("board.seed", true)
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.toast_seconds", 4)
	v.SetDefault("ui.validation_gate", true)
	v.SetDefault("log.path", filepath.Join(stateDir(), "rfpboard.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("clients.path", "")
}

// Validate checks the stage set and that the new stage is part of it.
func (c Config) Validate() error {
	stages, err := c.Stages()
	if err != nil {
		return err
	}
	if _, err := board.New(stages); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, s := range stages {
		if s.ID == c.Board.NewStage {
			return nil
		}
	}
	return fmt.Errorf("config: new_stage %q is not one of the configured stages", c.Board.NewStage)
}

// Stages converts the configured stages for the board.
func (c Config) Stages() ([]board.StageConfig, error) {
	out := make([]board.StageConfig, 0, len(c.Board.Stages))
	for _, s := range c.Board.Stages {
		lc, err := board.ParseLifecycle(s.Lifecycle)
		if err != nil {
			return nil, fmt.Errorf("config: stage %q: %w", s.ID, err)
		}
		out = append(out, board.StageConfig{ID: strings.TrimSpace(s.ID), Label: s.Label, Lifecycle: lc})
	}
	return out, nil
}

// Path is where Load looks when RFPBOARD_CONFIG is unset.
func Path() string {
	if p := os.Getenv("RFPBOARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.toml")
}

// Save writes the provided config to Path, creating the config directory if needed.
func Save(cfg Config) error {
	return SaveFile(cfg, Path())
}

// SaveFile writes cfg as TOML to path.
func SaveFile(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	stages := make([]map[string]any, 0, len(cfg.Board.Stages))
	for _, s := range cfg.Board.Stages {
		stages = append(stages, map[string]any{"id": s.ID, "label": s.Label, "lifecycle": s.Lifecycle})
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("board.new_stage", cfg.Board.NewStage)
	v.Set("board.stages", stages)
	v.Set("board.seed", cfg.Board.Seed)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.toast_seconds", cfg.UI.ToastSeconds)
	v.Set("ui.validation_gate", cfg.UI.ValidationGate)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("clients.path", cfg.Clients.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func configDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "rfpboard")
}

func stateDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "state", "rfpboard")
}
