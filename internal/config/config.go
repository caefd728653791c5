package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BRIGADE_"

// AccessCodeEnv overrides access.code. It is the one variable that does not
// follow the double-underscore nesting rule.
const AccessCodeEnv = EnvPrefix + "ACCESS_CODE"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (BRIGADE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: BRIGADE_SERVER__PORT -> server.port.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps an environment variable name to a config key.
func envKey(s string) string {
	if s == AccessCodeEnv {
		return "access.code"
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validBackends is the set of recognized session backends.
var validBackends = map[SessionBackend]bool{
	BackendMemory:   true,
	BackendSQLite:   true,
	BackendPostgres: true,
	BackendRedis:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Access.RatePerSecond < 0 {
		return fmt.Errorf("access.rate_per_second must be non-negative")
	}
	if c.Access.RatePerSecond > 0 && c.Access.Burst < 1 {
		return fmt.Errorf("access.burst must be at least 1 when rate limiting is enabled")
	}

	if c.Content.Dir != "" {
		info, err := os.Stat(c.Content.Dir)
		if err != nil {
			return fmt.Errorf("content.dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("content.dir %s is not a directory", c.Content.Dir)
		}
	}
	if c.Content.Watch && c.Content.Dir == "" {
		return fmt.Errorf("content.watch requires content.dir")
	}

	if !validBackends[c.Session.Backend] {
		return fmt.Errorf("invalid session.backend %q: must be one of memory, sqlite, postgres, redis", c.Session.Backend)
	}
	switch c.Session.Backend {
	case BackendSQLite:
		if c.Session.SQLitePath == "" {
			return fmt.Errorf("session.sqlite_path is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.Session.PostgresDSN == "" {
			return fmt.Errorf("session.postgres_dsn is required for the postgres backend")
		}
	case BackendRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("session.redis_addr is required for the redis backend")
		}
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("session.ttl must be non-negative")
	}

	n := c.Navigation
	if n.HeaderOffset < 0 {
		return fmt.Errorf("navigation.header_offset must be non-negative")
	}
	if n.InstantCooldown < 0 || n.SmoothCooldown < 0 || n.FrameInterval < 0 {
		return fmt.Errorf("navigation durations must be non-negative")
	}
	if n.AnchorMaxLine <= 0 || n.AnchorRatio <= 0 || n.AnchorRatio > 1 {
		return fmt.Errorf("navigation anchor line must be positive with a ratio in (0, 1]")
	}
	if n.BandTop < 0 || n.BandBottom > 1 || n.BandTop >= n.BandBottom {
		return fmt.Errorf("navigation band must satisfy 0 <= band_top < band_bottom <= 1")
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}

	return nil
}
