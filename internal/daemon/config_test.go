package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 8787 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8787)
	}
	if cfg.Engine.StreakLookbackDays != 120 {
		t.Errorf("Engine.StreakLookbackDays = %d, want 120", cfg.Engine.StreakLookbackDays)
	}
	if cfg.Engine.CronSecret != "" {
		t.Error("Engine.CronSecret should default to empty (admin routes closed)")
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus should default on")
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	t.Setenv("GUILDDAY_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.Port = 9999
	cfg.Engine.StreakLookbackDays = 30
	cfg.Engine.CronSecret = "hunter2"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", loaded.Server.Port)
	}
	if loaded.Engine.StreakLookbackDays != 30 {
		t.Errorf("StreakLookbackDays = %d, want 30", loaded.Engine.StreakLookbackDays)
	}
	if loaded.Engine.CronSecret != "hunter2" {
		t.Errorf("CronSecret = %q, want hunter2", loaded.Engine.CronSecret)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GUILDDAY_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8787 {
		t.Errorf("Port = %d, want default 8787", cfg.Server.Port)
	}
}

func TestLoadConfig_BadLookbackFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GUILDDAY_HOME", home)

	raw := "[engine]\nstreak_lookback_days = -5\n"
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(raw), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.StreakLookbackDays != 120 {
		t.Errorf("StreakLookbackDays = %d, want fallback 120", cfg.Engine.StreakLookbackDays)
	}
}
