package config

import (
	"os"
	"path/filepath"
	"testing"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestLoadWritesDefaults(t *testing.T) {
	path := tempConfigPath(t)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written on first load: %v", err)
	}
	if cfg.Events.Capacity != 100 {
		t.Errorf("default capacity = %d, want 100", cfg.Events.Capacity)
	}
	if cfg.Webhook.Addr == "" || cfg.Tools.Addr == "" {
		t.Error("expected default listen addresses")
	}
	if cfg.Events.Path == "" {
		t.Error("expected a derived events path")
	}
	if cfg.Git.BaseBranch != "main" {
		t.Errorf("default base branch = %q, want main", cfg.Git.BaseBranch)
	}
}

func TestSaveReloadRoundTrip(t *testing.T) {
	path := tempConfigPath(t)

	original := Default()
	original.DataDir = "/tmp/test-data"
	original.LogLevel = "debug"
	original.Events.Path = "/tmp/test-data/events.json"
	original.Events.Capacity = 25
	original.Git.WorkDir = "/srv/repo"

	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("log_level = %q", loaded.LogLevel)
	}
	if loaded.Events.Path != "/tmp/test-data/events.json" {
		t.Errorf("events path = %q", loaded.Events.Path)
	}
	if loaded.Events.Capacity != 25 {
		t.Errorf("capacity = %d", loaded.Events.Capacity)
	}
	if loaded.Git.WorkDir != "/srv/repo" {
		t.Errorf("work_dir = %q", loaded.Git.WorkDir)
	}
}

func TestLoadDerivesPathsFromDataDir(t *testing.T) {
	path := tempConfigPath(t)

	cfg := Default()
	cfg.DataDir = "/var/lib/prflow"
	cfg.Events.Path = ""
	cfg.Templates.Dir = ""
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Events.Path != filepath.Join("/var/lib/prflow", "github_events.json") {
		t.Errorf("events path = %q", loaded.Events.Path)
	}
	if loaded.Templates.Dir != filepath.Join("/var/lib/prflow", "templates") {
		t.Errorf("templates dir = %q", loaded.Templates.Dir)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := tempConfigPath(t)
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed config")
	}
}
