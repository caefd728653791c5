package config

import "time"

// SessionBackend selects where last-visited sections are stored.
type SessionBackend string

const (
	BackendMemory   SessionBackend = "memory"
	BackendSQLite   SessionBackend = "sqlite"
	BackendPostgres SessionBackend = "postgres"
	BackendRedis    SessionBackend = "redis"
)

// Config is the top-level brigade configuration, corresponding to .brigade.yml.
type Config struct {
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	Access     AccessConfig     `yaml:"access" koanf:"access"`
	Content    ContentConfig    `yaml:"content" koanf:"content"`
	Session    SessionConfig    `yaml:"session" koanf:"session"`
	Navigation NavigationConfig `yaml:"navigation" koanf:"navigation"`
	Log        LogConfig        `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// AccessConfig holds the access gate settings. An empty code makes the gate
// answer 500.
type AccessConfig struct {
	Code          string  `yaml:"code,omitempty" koanf:"code"`
	RatePerSecond float64 `yaml:"rate_per_second" koanf:"rate_per_second"`
	Burst         int     `yaml:"burst" koanf:"burst"`
}

// ContentConfig locates the presentation. An empty Dir serves the built-in
// demo.
type ContentConfig struct {
	Dir     string   `yaml:"dir" koanf:"dir"`
	Include []string `yaml:"include" koanf:"include"`
	Watch   bool     `yaml:"watch" koanf:"watch"`
}

// SessionConfig holds the session store settings.
type SessionConfig struct {
	Backend       SessionBackend `yaml:"backend" koanf:"backend"`
	SQLitePath    string         `yaml:"sqlite_path" koanf:"sqlite_path"`
	PostgresDSN   string         `yaml:"postgres_dsn,omitempty" koanf:"postgres_dsn"`
	RedisAddr     string         `yaml:"redis_addr" koanf:"redis_addr"`
	RedisPassword string         `yaml:"redis_password,omitempty" koanf:"redis_password"`
	RedisDB       int            `yaml:"redis_db" koanf:"redis_db"`
	TTL           time.Duration  `yaml:"ttl" koanf:"ttl"`
}

// NavigationConfig tunes the navigator.
type NavigationConfig struct {
	HeaderOffset    float64       `yaml:"header_offset" koanf:"header_offset"`
	InstantCooldown time.Duration `yaml:"instant_cooldown" koanf:"instant_cooldown"`
	SmoothCooldown  time.Duration `yaml:"smooth_cooldown" koanf:"smooth_cooldown"`
	AnchorMaxLine   float64       `yaml:"anchor_max_line" koanf:"anchor_max_line"`
	AnchorRatio     float64       `yaml:"anchor_ratio" koanf:"anchor_ratio"`
	BandTop         float64       `yaml:"band_top" koanf:"band_top"`
	BandBottom      float64       `yaml:"band_bottom" koanf:"band_bottom"`
	FrameInterval   time.Duration `yaml:"frame_interval" koanf:"frame_interval"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" koanf:"level"`
	Development bool   `yaml:"development" koanf:"development"`
}
