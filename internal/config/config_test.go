// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and the working directory at fresh temp dirs and clears
// TODOS_* variables so no real config leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{
		"TODOS_LOG_LEVEL", "TODOS_LOG_FORMAT", "TODOS_LOG_TIMESTAMPS", "TODOS_LOG_CALLER",
		"TODOS_LOG_PREFIX", "TODOS_LOG_DIR", "TODOS_STRICT", "TODOS_UI_SHOW_HELP", "TODOS_UI_DEFAULT_FILTER",
	} {
		t.Setenv(key, "")
	}
	// Equivalent of t.Chdir(work), which needs Go 1.24.
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", work)
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Error(err)
		}
	})
	return work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.LogFormat != DefaultLogFormat {
		t.Errorf("LogFormat: got %q, want %q", cfg.LogFormat, DefaultLogFormat)
	}
	if cfg.LogPrefix != DefaultLogPrefix {
		t.Errorf("LogPrefix: got %q", cfg.LogPrefix)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir: got %q, want empty", cfg.LogDir)
	}
	if cfg.UI.DefaultFilter != FilterAll {
		t.Errorf("DefaultFilter: got %q", cfg.UI.DefaultFilter)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile: got %q, want empty", cfg.ConfigFile)
	}
}

func TestLoadProjectFile(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "todos.toml"), `log_level = "debug"
log_format = "json"
strict = true

[ui]
default_filter = "pending"
show_help = true
`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || !cfg.Strict {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.UI.DefaultFilter != FilterPending || !cfg.UI.ShowHelp {
		t.Errorf("ui values not applied: %+v", cfg.UI)
	}
	if filepath.Base(cfg.ConfigFile) != "todos.toml" {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
}

func TestProjectOverridesUser(t *testing.T) {
	work := isolate(t)
	home := os.Getenv("HOME")
	writeFile(t, filepath.Join(home, ".todos", "todos.toml"), "log_level = \"warn\"\nlog_prefix = \"mine\"\n")
	writeFile(t, filepath.Join(work, ".todos.toml"), "log_level = \"error\"\n")

	ws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if ws.Config.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want error", ws.Config.LogLevel)
	}
	if ws.Config.LogPrefix != "mine" {
		t.Errorf("LogPrefix: got %q, want mine", ws.Config.LogPrefix)
	}
	if ws.Sources["log_level"] != SourceProjFile {
		t.Errorf("log_level source: got %q", ws.Sources["log_level"])
	}
	if ws.Sources["log_prefix"] != SourceUserFile {
		t.Errorf("log_prefix source: got %q", ws.Sources["log_prefix"])
	}
	if ws.Sources["log_format"] != SourceDefault {
		t.Errorf("log_format source: got %q", ws.Sources["log_format"])
	}
}

func TestExplicitConfigFlag(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "todos.toml"), "log_level = \"debug\"\n")
	custom := filepath.Join(work, "custom.toml")
	writeFile(t, custom, "log_level = \"warn\"\n")

	fs := newFlagSet()
	cfg, err := Load(fs, []string{"--config", custom, "demo"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.ConfigFile != custom {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
	if got := fs.Args(); len(got) != 1 || got[0] != "demo" {
		t.Errorf("remaining args: %v", got)
	}

	if _, err := Load(newFlagSet(), []string{"--config=" + filepath.Join(work, "missing.toml")}); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestUnknownKeys(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, "todos.toml"), "log_levle = \"debug\"\n")

	_, err := Load(newFlagSet(), nil)
	if err == nil || !strings.Contains(err.Error(), "log_levle") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TODOS_LOG_LEVEL", "error")
	t.Setenv("TODOS_LOG_TIMESTAMPS", "yes")
	t.Setenv("TODOS_UI_DEFAULT_FILTER", "done")

	ws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := ws.Config
	if cfg.LogLevel != "error" || !cfg.LogTimestamps || cfg.UI.DefaultFilter != FilterDone {
		t.Errorf("env not applied: %+v", cfg)
	}
	if ws.Sources["log_level"] != SourceEnv {
		t.Errorf("log_level source: got %q", ws.Sources["log_level"])
	}
}

func TestDotEnv(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, ".env"), "TODOS_LOG_FORMAT=logfmt\nTODOS_LOG_LEVEL=debug\n")
	t.Setenv("TODOS_LOG_LEVEL", "warn")

	ws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if ws.Config.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt", ws.Config.LogFormat)
	}
	if ws.Sources["log_format"] != SourceDotEnv {
		t.Errorf("log_format source: got %q", ws.Sources["log_format"])
	}
	// The process environment wins over .env.
	if ws.Config.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", ws.Config.LogLevel)
	}
}

func TestParseFlags(t *testing.T) {
	isolate(t)
	t.Setenv("TODOS_LOG_LEVEL", "error")

	fs := newFlagSet()
	ws, err := LoadWithSources(fs, []string{"--log-level", "debug", "--log-caller", "--strict", "run", "x.json"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := ws.Config
	if cfg.LogLevel != "debug" || !cfg.LogCaller || !cfg.Strict {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if ws.Sources["log_level"] != SourceFlag || ws.Sources["strict"] != SourceFlag {
		t.Errorf("sources: %v", ws.Sources)
	}
	if got := fs.Args(); len(got) != 2 || got[0] != "run" {
		t.Errorf("remaining args: %v", got)
	}
}

func TestFinalizeConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"upper case level", func(c *Config) { c.LogLevel = " DEBUG " }, ""},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"bad filter", func(c *Config) { c.UI.DefaultFilter = "some" }, "ui.default_filter"},
		{"empty filter", func(c *Config) { c.UI.DefaultFilter = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ProjectRoot: t.TempDir()}
			setDefaults(cfg)
			tt.mutate(cfg)
			err := finalizeConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestLogDirResolution(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{ProjectRoot: root}
	setDefaults(cfg)
	cfg.LogDir = "logs"
	if err := finalizeConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.LogDir != filepath.Join(root, "logs") {
		t.Errorf("LogDir: got %q", cfg.LogDir)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TODOS_TEST_DIR", "/var/tmp")

	tests := []struct {
		input string
		want  string
	}{
		{"~/logs", filepath.Join(home, "logs")},
		{"~", home},
		{"$TODOS_TEST_DIR/logs", "/var/tmp/logs"},
		{"/absolute/path", "/absolute/path"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExplicitConfigFile(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"demo"}, ""},
		{[]string{"--config", "a.toml"}, "a.toml"},
		{[]string{"-config=b.toml", "run"}, "b.toml"},
		{[]string{"--log-level", "debug", "--config", "c.toml"}, "c.toml"},
		{[]string{"--", "--config", "d.toml"}, ""},
	}
	for _, tt := range tests {
		if got := explicitConfigFile(tt.args); got != tt.want {
			t.Errorf("explicitConfigFile(%v): got %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("example config does not decode: %v", err)
	}
	if len(md.Undecoded()) > 0 {
		t.Errorf("example config has unknown keys: %v", md.Undecoded())
	}
	if cfg.UI.DefaultFilter != FilterAll {
		t.Errorf("DefaultFilter: got %q", cfg.UI.DefaultFilter)
	}
}

func TestBoolFromString(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "yes", "on"} {
		if !boolFromString(s) {
			t.Errorf("boolFromString(%q) = false", s)
		}
	}
	for _, s := range []string{"0", "false", "no", "off", "maybe"} {
		if boolFromString(s) {
			t.Errorf("boolFromString(%q) = true", s)
		}
	}
}
