package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = ".ogit.yml"

	DefaultRemote = "github"
)

// Config holds the optional per-repository settings read from .ogit.yml.
// Every field has a working default, the file may be absent entirely.
type Config struct {
	Remote      string `yaml:"remote,omitempty"`
	TodayFile   string `yaml:"today_file,omitempty"`
	HistoryFile string `yaml:"history_file,omitempty"`
	AuthorName  string `yaml:"author_name,omitempty"`
	AuthorEmail string `yaml:"author_email,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Remote:      DefaultRemote,
		TodayFile:   DefaultTodayFile,
		HistoryFile: DefaultHistoryFile,
	}
}

func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	if cfg.TodayFile == "" {
		cfg.TodayFile = DefaultTodayFile
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = DefaultHistoryFile
	}

	return cfg, nil
}
