package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Projects) != 2 || cfg.Projects[0].Name != "DuinEditor" {
		t.Fatalf("Projects = %#v, want the two default projects", cfg.Projects)
	}
	if !filepath.IsAbs(cfg.Projects[1].Dir) {
		t.Fatalf("Projects[1].Dir = %q, want absolute", cfg.Projects[1].Dir)
	}
	if cfg.Debounce != defaultDebounce {
		t.Fatalf("Debounce = %v, want %v", cfg.Debounce, defaultDebounce)
	}
	if !cfg.CreateMissing {
		t.Fatalf("CreateMissing = false, want true by default")
	}

	wantLogFile, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLogFile {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLogFile)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
patterns = [" **/*.log ", ""]
debounce_ms = 500
max_bytes = 1024
core_tags = [" ENGINE "]
app_tags = ["  "]
create_missing = false
log_level = " debug "

[[project]]
name = "  Game  "
dir = "  ~/game/logs  "

[[project]]
dir = "/var/log/editor"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Projects) != 2 {
		t.Fatalf("Projects = %#v, want 2", cfg.Projects)
	}
	if cfg.Projects[0].Name != "Game" || !strings.HasPrefix(cfg.Projects[0].Dir, home) {
		t.Fatalf("Projects[0] = %#v, want Game under HOME %q", cfg.Projects[0], home)
	}
	if cfg.Projects[1].Name != "editor" {
		t.Fatalf("Projects[1].Name = %q, want editor (from dir)", cfg.Projects[1].Name)
	}
	if len(cfg.Patterns) != 1 || cfg.Patterns[0] != "**/*.log" {
		t.Fatalf("Patterns = %#v, want [**/*.log]", cfg.Patterns)
	}
	if cfg.Debounce != 500*time.Millisecond || cfg.MaxBytes != 1024 {
		t.Fatalf("Debounce = %v MaxBytes = %d", cfg.Debounce, cfg.MaxBytes)
	}
	if len(cfg.CoreTags) != 1 || cfg.CoreTags[0] != "ENGINE" || len(cfg.AppTags) != 0 {
		t.Fatalf("CoreTags = %#v AppTags = %#v", cfg.CoreTags, cfg.AppTags)
	}
	if cfg.CreateMissing {
		t.Fatalf("CreateMissing = true, want false")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_ProjectWithoutDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[project]]\nname = \"x\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "no dir") {
		t.Fatalf("Load error = %v, want it to mention no dir", err)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`patterns = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestConfig_ProjectLookup(t *testing.T) {
	cfg := Config{Projects: []Project{{Name: "DuinEditor", Dir: "/a"}, {Name: "DuinFPS", Dir: "/b"}}}

	p, ok := cfg.Project(" duinfps ")
	if !ok || p.Dir != "/b" {
		t.Fatalf("Project = %#v, %v; want DuinFPS", p, ok)
	}
	if _, ok := cfg.Project("missing"); ok {
		t.Fatalf("Project(missing) ok = true")
	}
	if names := cfg.ProjectNames(); len(names) != 2 || names[1] != "DuinFPS" {
		t.Fatalf("ProjectNames = %v", names)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
