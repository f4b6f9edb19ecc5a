// Package config provides Viper-based configuration loading for Wordwraith.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GameConfig holds the tower run settings.
type GameConfig struct {
	// StartFloor is the floor the run begins on.
	StartFloor int `mapstructure:"start_floor"`
	// Floors is the height of the tower; clearing the top floor wins the run.
	Floors int `mapstructure:"floors"`
	// FleeChance is the base flee success probability before class bonuses.
	// Zero falls back to the engine default.
	FleeChance float64 `mapstructure:"flee_chance"`
	// TickRateMs is the UI frame interval driving the word timer.
	TickRateMs int `mapstructure:"tick_rate_ms"`
	// ContentDir overlays the compiled-in word and sentence lists when set.
	ContentDir string `mapstructure:"content_dir"`
	// ScriptDir holds theme scripts under <dir>/themes; empty disables scripting.
	ScriptDir string `mapstructure:"script_dir"`
	// PlayerClass is the class ID used when the CLI does not override it.
	PlayerClass string `mapstructure:"player_class"`
	// PlayerName is the default duelist name.
	PlayerName string `mapstructure:"player_name"`
}

// TickRate returns the frame interval as a duration.
func (g GameConfig) TickRate() time.Duration {
	return time.Duration(g.TickRateMs) * time.Millisecond
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// URL returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL URL.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig toggles battle report persistence. The game runs fully
// without a database.
type StorageConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File redirects log output; empty logs to stderr. The TUI sets this so
	// log lines never tear the battle screen.
	File string `mapstructure:"file"`
}

// Config is the top-level application configuration.
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.StartFloor < 1 {
		errs = append(errs, fmt.Sprintf("game.start_floor must be >= 1, got %d", g.StartFloor))
	}
	if g.Floors < 1 {
		errs = append(errs, fmt.Sprintf("game.floors must be >= 1, got %d", g.Floors))
	}
	if g.StartFloor >= 1 && g.Floors >= 1 && g.StartFloor > g.Floors {
		errs = append(errs, fmt.Sprintf("game.start_floor %d must not exceed game.floors %d", g.StartFloor, g.Floors))
	}
	if g.FleeChance < 0 || g.FleeChance > 0.9 {
		errs = append(errs, fmt.Sprintf("game.flee_chance must be in [0, 0.9], got %v", g.FleeChance))
	}
	if g.TickRateMs < 16 || g.TickRateMs > 1000 {
		errs = append(errs, fmt.Sprintf("game.tick_rate_ms must be 16-1000, got %d", g.TickRateMs))
	}
	if g.PlayerClass == "" {
		errs = append(errs, "game.player_class must not be empty")
	}
	if g.PlayerName == "" {
		errs = append(errs, "game.player_name must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with WORDWRAITH_ prefix
	v.SetEnvPrefix("WORDWRAITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// Default builds the configuration the game runs with when no config file is
// given: compiled-in content, no scripting, no storage.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: built-in defaults failed validation: " + err.Error())
	}
	return cfg
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.start_floor", 1)
	v.SetDefault("game.floors", 10)
	v.SetDefault("game.flee_chance", 0.5)
	v.SetDefault("game.tick_rate_ms", 50)
	v.SetDefault("game.content_dir", "")
	v.SetDefault("game.script_dir", "")
	v.SetDefault("game.player_class", "vanguard")
	v.SetDefault("game.player_name", "Duelist")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "wordwraith")
	v.SetDefault("database.password", "wordwraith")
	v.SetDefault("database.name", "wordwraith")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("storage.enabled", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}
