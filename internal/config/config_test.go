package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Session.Backend != BackendMemory {
		t.Errorf("expected default backend %q, got %q", BackendMemory, cfg.Session.Backend)
	}
	if cfg.Navigation.HeaderOffset != 55 {
		t.Errorf("expected default header_offset 55, got %v", cfg.Navigation.HeaderOffset)
	}
	if cfg.Navigation.SmoothCooldown != 900*time.Millisecond {
		t.Errorf("expected default smooth_cooldown 900ms, got %v", cfg.Navigation.SmoothCooldown)
	}
	p := cfg.Navigation.Params()
	if p.MaxLine != 180 || p.Ratio != 0.22 || p.BandTop != 0.22 || p.BandBottom != 0.52 {
		t.Errorf("unexpected default params %+v", p)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.brigade.yml")

	original := DefaultConfig()
	original.Server.Port = 9090
	original.Content.Dir = dir
	original.Content.Include = []string{"web/*.md", "mobile/*.md"}
	original.Session.Backend = BackendRedis
	original.Session.TTL = 2 * time.Hour
	original.Navigation.SmoothCooldown = 1200 * time.Millisecond

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if loaded.Content.Dir != original.Content.Dir {
		t.Errorf("content.dir: got %q, want %q", loaded.Content.Dir, original.Content.Dir)
	}
	if loaded.Session.Backend != original.Session.Backend {
		t.Errorf("backend: got %q, want %q", loaded.Session.Backend, original.Session.Backend)
	}
	if loaded.Session.TTL != original.Session.TTL {
		t.Errorf("ttl: got %v, want %v", loaded.Session.TTL, original.Session.TTL)
	}
	if loaded.Navigation.SmoothCooldown != original.Navigation.SmoothCooldown {
		t.Errorf("smooth_cooldown: got %v, want %v", loaded.Navigation.SmoothCooldown, original.Navigation.SmoothCooldown)
	}
	if len(loaded.Content.Include) != len(original.Content.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Content.Include), len(original.Content.Include))
	}
	for i, v := range loaded.Content.Include {
		if v != original.Content.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Content.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("BRIGADE_SERVER__PORT", "9191")
	t.Setenv("BRIGADE_SESSION__BACKEND", "sqlite")
	t.Setenv("BRIGADE_NAVIGATION__SMOOTH_COOLDOWN", "1.5s")
	t.Setenv("BRIGADE_ACCESS_CODE", "abc")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("port override failed: got %d", loaded.Server.Port)
	}
	if loaded.Session.Backend != BackendSQLite {
		t.Errorf("backend override failed: got %q", loaded.Session.Backend)
	}
	if loaded.Navigation.SmoothCooldown != 1500*time.Millisecond {
		t.Errorf("cooldown override failed: got %v", loaded.Navigation.SmoothCooldown)
	}
	if loaded.Access.Code != "abc" {
		t.Errorf("access code override failed: got %q", loaded.Access.Code)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"BRIGADE_SERVER__PORT", "server.port"},
		{"BRIGADE_SESSION__REDIS_ADDR", "session.redis_addr"},
		{"BRIGADE_ACCESS_CODE", "access.code"},
		{"BRIGADE_ACCESS__CODE", "access.code"},
	}
	for _, tt := range tests {
		if got := envKey(tt.env); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestSaveOmitsSecretWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); strings.Contains(got, "code:") || strings.Contains(got, "postgres_dsn:") {
		t.Errorf("empty secrets should be omitted:\n%s", got)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"rate", func(c *Config) { c.Access.RatePerSecond = -1 }},
		{"burst", func(c *Config) { c.Access.Burst = 0 }},
		{"missing content dir", func(c *Config) { c.Content.Dir = filepath.Join(dir, "missing") }},
		{"content dir is a file", func(c *Config) { c.Content.Dir = file }},
		{"watch without dir", func(c *Config) { c.Content.Watch = true }},
		{"backend", func(c *Config) { c.Session.Backend = "etcd" }},
		{"sqlite path", func(c *Config) { c.Session.Backend = BackendSQLite; c.Session.SQLitePath = "" }},
		{"postgres dsn", func(c *Config) { c.Session.Backend = BackendPostgres }},
		{"redis addr", func(c *Config) { c.Session.Backend = BackendRedis; c.Session.RedisAddr = "" }},
		{"ttl", func(c *Config) { c.Session.TTL = -time.Second }},
		{"offset", func(c *Config) { c.Navigation.HeaderOffset = -1 }},
		{"cooldown", func(c *Config) { c.Navigation.SmoothCooldown = -time.Second }},
		{"ratio", func(c *Config) { c.Navigation.AnchorRatio = 1.5 }},
		{"band", func(c *Config) { c.Navigation.BandTop = 0.6 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should be valid, got: %v", err)
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.md", []string{"**/*.md"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
