package config

import (
	"time"

	"github.com/ziadkadry99/brigade/internal/nav"
	"github.com/ziadkadry99/brigade/internal/viewport"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".brigade.yml"

// DefaultInclude matches every section body under the content directory.
var DefaultInclude = []string{"**/*.md"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	params := viewport.DefaultParams()
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Access: AccessConfig{
			RatePerSecond: 1,
			Burst:         5,
		},
		Content: ContentConfig{
			Include: DefaultInclude,
		},
		Session: SessionConfig{
			Backend:    BackendMemory,
			SQLitePath: ".brigade/sessions.db",
			RedisAddr:  "localhost:6379",
			TTL:        24 * time.Hour,
		},
		Navigation: NavigationConfig{
			HeaderOffset:    nav.DefaultHeaderOffset,
			InstantCooldown: nav.DefaultInstantCooldown,
			SmoothCooldown:  nav.DefaultSmoothCooldown,
			AnchorMaxLine:   params.MaxLine,
			AnchorRatio:     params.Ratio,
			BandTop:         params.BandTop,
			BandBottom:      params.BandBottom,
			FrameInterval:   viewport.DefaultFrameInterval,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Params returns the viewport heuristic parameters.
func (n NavigationConfig) Params() viewport.Params {
	return viewport.Params{
		MaxLine:    n.AnchorMaxLine,
		Ratio:      n.AnchorRatio,
		BandTop:    n.BandTop,
		BandBottom: n.BandBottom,
	}
}
