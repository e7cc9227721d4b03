package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid default config", mutate: func(c *Config) {}},
		{name: "file backend", mutate: func(c *Config) { c.Backend = BackendFile }},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "postgres" }, wantErr: true},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = " " }, wantErr: true},
		{name: "zero undo window", mutate: func(c *Config) { c.UndoWindow = 0 }, wantErr: true},
		{name: "zero focus limit", mutate: func(c *Config) { c.FocusLimit = 0 }, wantErr: true},
		{name: "fast reminder interval", mutate: func(c *Config) { c.Reminder.Interval = time.Millisecond }, wantErr: true},
		{name: "missing command", mutate: func(c *Config) { c.Reminder.Command = "" }, wantErr: true},
		{
			name: "disabled reminders skip their checks",
			mutate: func(c *Config) {
				c.Reminder.Enabled = false
				c.Reminder.Command = ""
				c.Reminder.Interval = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.UndoWindow != 5*time.Second || cfg.FocusLimit != 3 || cfg.Backend != BackendSQLite {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "backend: file\nundo_window: 10s\nreminder:\n  interval: 1m\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("expected file backend, got %q", cfg.Backend)
	}
	if cfg.UndoWindow != 10*time.Second {
		t.Errorf("expected 10s undo window, got %v", cfg.UndoWindow)
	}
	if cfg.Reminder.Interval != time.Minute {
		t.Errorf("expected 1m interval, got %v", cfg.Reminder.Interval)
	}
	if cfg.Reminder.Command != "notify-send" {
		t.Errorf("expected default command to survive, got %q", cfg.Reminder.Command)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("focus_limit: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected invalid config error")
	}

	if err := os.WriteFile(path, []byte("backend: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.FocusLimit = 5
	cfg.DataDir = tmp
	cfg.Reminder.Args = []string{"-u", "low", "{title}"}

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.FocusLimit != 5 {
		t.Fatalf("expected FocusLimit=5, got %d", loaded.FocusLimit)
	}
	if loaded.UndoWindow != cfg.UndoWindow {
		t.Fatalf("expected UndoWindow=%v, got %v", cfg.UndoWindow, loaded.UndoWindow)
	}
	if len(loaded.Reminder.Args) != 3 || loaded.Reminder.Args[0] != "-u" {
		t.Fatalf("expected args to round trip, got %v", loaded.Reminder.Args)
	}

	if err := SaveConfig(path, nil); err == nil {
		t.Fatal("expected error saving nil config")
	}
}

func TestResolveDataDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := DefaultConfig()
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir() error = %v", err)
	}
	if dir != filepath.Join(home, ".daybook") {
		t.Errorf("expected ~/.daybook, got %s", dir)
	}

	cfg.DataDir = "/var/lib/daybook"
	db, err := cfg.DBPath()
	if err != nil {
		t.Fatalf("DBPath() error = %v", err)
	}
	if db != "/var/lib/daybook/daybook.db" {
		t.Errorf("unexpected db path %s", db)
	}
}
