package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DataDir  string `json:"data_dir"`
	LogLevel string `json:"log_level"`
	Webhook  struct {
		Addr string `json:"addr"`
	} `json:"webhook"`
	Tools struct {
		Addr string `json:"addr"`
	} `json:"tools"`
	Events struct {
		Path     string `json:"path"`
		Capacity int    `json:"capacity"`
	} `json:"events"`
	Git struct {
		WorkDir        string `json:"work_dir"`
		BaseBranch     string `json:"base_branch"`
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"git"`
	Templates struct {
		Dir string `json:"dir"`
	} `json:"templates"`
}

// Load reads the config file at path, writing defaults there first if
// it does not exist yet.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}

	// Derived defaults for fields keyed off DataDir.
	if cfg.Events.Path == "" {
		cfg.Events.Path = filepath.Join(cfg.DataDir, "github_events.json")
	}
	if cfg.Templates.Dir == "" {
		cfg.Templates.Dir = filepath.Join(cfg.DataDir, "templates")
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		DataDir:  filepath.Join(os.Getenv("HOME"), ".prflow"),
		LogLevel: "info",
	}
	cfg.Webhook.Addr = "localhost:8080"
	cfg.Tools.Addr = "localhost:8081"
	cfg.Events.Capacity = 100
	cfg.Git.WorkDir = "."
	cfg.Git.BaseBranch = "main"
	cfg.Git.TimeoutSeconds = 30
	return cfg
}

// Save writes the config atomically to path, creating the directory if
// needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
