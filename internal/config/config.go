package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Project is a named log directory the user can switch between.
type Project struct {
	Name string
	Dir  string
}

// Config captures everything loupe reads from config.toml.
type Config struct {
	Projects      []Project
	Patterns      []string
	Debounce      time.Duration
	MaxBytes      int64
	CoreTags      []string
	AppTags       []string
	CreateMissing bool
	LogLevel      string
	LogFile       string
}

const (
	defaultConfigPath = "~/.config/loupe/config.toml"
	defaultLogFile    = "~/.local/state/loupe/loupe.log"
	defaultLogLevel   = "info"
	defaultDebounce   = 250 * time.Millisecond
	defaultMaxBytes   = 8 << 20
)

// DefaultProjects mirrors the editor and sample game layouts.
func DefaultProjects() []Project {
	return []Project{
		{Name: "DuinEditor", Dir: mustExpand("./DuinEditor/logs")},
		{Name: "DuinFPS", Dir: mustExpand("./ExampleProjects/DuinFPS/logs")},
	}
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Projects:      DefaultProjects(),
		Patterns:      []string{"**/*.log", "**/*.txt"},
		Debounce:      defaultDebounce,
		MaxBytes:      defaultMaxBytes,
		CoreTags:      []string{"DUIN", "CORE"},
		AppTags:       []string{"APP"},
		CreateMissing: true,
		LogLevel:      defaultLogLevel,
		LogFile:       mustExpand(defaultLogFile),
	}
}

// Load locates and parses the loupe config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Projects []struct {
			Name string `toml:"name"`
			Dir  string `toml:"dir"`
		} `toml:"project"`
		Patterns      []string `toml:"patterns"`
		DebounceMS    int64    `toml:"debounce_ms"`
		MaxBytes      int64    `toml:"max_bytes"`
		CoreTags      []string `toml:"core_tags"`
		AppTags       []string `toml:"app_tags"`
		CreateMissing *bool    `toml:"create_missing"`
		LogLevel      string   `toml:"log_level"`
		LogFile       string   `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if len(raw.Projects) > 0 {
		cfg.Projects = nil
		for i, p := range raw.Projects {
			name := strings.TrimSpace(p.Name)
			dir := strings.TrimSpace(p.Dir)
			if dir == "" {
				return Config{}, fmt.Errorf("parse config: project %d has no dir", i+1)
			}
			if name == "" {
				name = filepath.Base(dir)
			}
			cfg.Projects = append(cfg.Projects, Project{Name: name, Dir: mustExpand(dir)})
		}
	}

	if patterns := trimAll(raw.Patterns); len(patterns) > 0 {
		cfg.Patterns = patterns
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if raw.MaxBytes > 0 {
		cfg.MaxBytes = raw.MaxBytes
	}
	if raw.CoreTags != nil {
		cfg.CoreTags = trimAll(raw.CoreTags)
	}
	if raw.AppTags != nil {
		cfg.AppTags = trimAll(raw.AppTags)
	}
	if raw.CreateMissing != nil {
		cfg.CreateMissing = *raw.CreateMissing
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	return cfg, nil
}

// Project returns the project called name.
func (c Config) Project(name string) (Project, bool) {
	for _, p := range c.Projects {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return Project{}, false
}

// ProjectNames lists project names in configured order.
func (c Config) ProjectNames() []string {
	names := make([]string, len(c.Projects))
	for i, p := range c.Projects {
		names[i] = p.Name
	}
	return names
}

// ExpandPath expands a leading tilde and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
