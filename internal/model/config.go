package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// UserConfig identifies the person running the board. It backs the
// assign-to-me shortcut.
type UserConfig struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Initials string `mapstructure:"initials" yaml:"initials"`
}

// BoardConfig holds board engine settings.
type BoardConfig struct {
	// IDPrefix is prepended to minted task identifiers (e.g. "KB").
	IDPrefix string `mapstructure:"id_prefix" yaml:"id_prefix"`

	// SeedDB is an optional SQLite seed file. When empty the built-in demo
	// board is used.
	SeedDB string `mapstructure:"seed_db" yaml:"seed_db"`

	// LabelCatalog lists the preset labels offered by the label picker.
	LabelCatalog []string `mapstructure:"label_catalog" yaml:"label_catalog"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig controls the log file written while the TUI owns the terminal.
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	User    UserConfig    `mapstructure:"user" yaml:"user"`
	Board   BoardConfig   `mapstructure:"board" yaml:"board"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultLabelCatalog is offered when the config names no labels.
var DefaultLabelCatalog = []string{"Frontend", "Backend", "Bug", "Mejora", "Documentación", "Urgente"}

// configDir returns ~/.config/kanban, or the working directory when the
// home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "kanban")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/kanban/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		User: UserConfig{
			Name:     "Usuario actual",
			Initials: "UA",
		},
		Board: BoardConfig{
			IDPrefix:     "KB",
			LabelCatalog: append([]string(nil), DefaultLabelCatalog...),
		},
		Display: DisplayConfig{
			Theme: "default",
		},
		Log: LogConfig{
			Path:  filepath.Join(configDir(), "board.log"),
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("user.name", defaults.User.Name)
	v.SetDefault("user.initials", defaults.User.Initials)
	v.SetDefault("board.id_prefix", defaults.Board.IDPrefix)
	v.SetDefault("board.label_catalog", defaults.Board.LabelCatalog)
	v.SetDefault("display.theme", defaults.Display.Theme)
	v.SetDefault("log.path", defaults.Log.Path)
	v.SetDefault("log.level", defaults.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return defaults, nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Initials follow the configured name unless set explicitly.
	if v.InConfig("user.name") && !v.InConfig("user.initials") {
		cfg.User.Initials = Initials(cfg.User.Name)
	}
	if cfg.Board.IDPrefix == "" {
		cfg.Board.IDPrefix = defaults.Board.IDPrefix
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("user", cfg.User)
	v.Set("board", cfg.Board)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
