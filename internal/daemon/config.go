// Package daemon manages the GuildDay server lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all server configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Engine    EngineConfig    `toml:"engine"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// EngineConfig controls scoring and quest generation.
type EngineConfig struct {
	// StreakLookbackDays bounds the backward streak walk.
	StreakLookbackDays int `toml:"streak_lookback_days"`
	// CronSecret gates /api/admin routes. Empty keeps them closed.
	CronSecret string `toml:"cron_secret"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := guilddayHome()
	return Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8787,
			CORSOrigins: []string{"*"},
		},
		Engine: EngineConfig{
			StreakLookbackDays: 120,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "guildday.log"),
		},
	}
}

// LoadConfig reads config from ~/.guildday/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(guilddayHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet, use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Engine.StreakLookbackDays <= 0 {
		cfg.Engine.StreakLookbackDays = 120
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.guildday/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(guilddayHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// guilddayHome returns the GuildDay data directory.
func guilddayHome() string {
	if env := os.Getenv("GUILDDAY_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".guildday")
}

// GuilddayHome is exported for use by other packages.
func GuilddayHome() string {
	return guilddayHome()
}
