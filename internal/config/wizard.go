package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectContentDir looks for a registry file in the usual places.
func detectContentDir() string {
	for _, dir := range []string{"content", "presentation", "."} {
		for _, name := range []string{"registry.yml", "registry.yaml", "registry.toml"} {
			if _, err := os.Stat(dir + string(os.PathSeparator) + name); err == nil {
				return dir
			}
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and saves the result to
// path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to brigade! Let's configure your presentation.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Content directory.
	detected := detectContentDir()
	if detected != "" {
		fmt.Printf("Found a section registry in %s\n\n", detected)
	}
	contentPrompt := promptui.Prompt{
		Label:   "Content directory (leave blank for the built-in demo)",
		Default: detected,
	}
	dir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.Content.Dir = strings.TrimSpace(dir)

	// 2. Include patterns.
	if cfg.Content.Dir != "" {
		includePrompt := promptui.Prompt{
			Label:   "Section files to include (comma-separated globs)",
			Default: strings.Join(DefaultInclude, ","),
		}
		includeStr, err := includePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("include patterns: %w", err)
		}
		cfg.Content.Include = splitAndTrim(includeStr)

		watchPrompt := promptui.Prompt{
			Label:     "Reload content when files change",
			IsConfirm: true,
		}
		if _, err := watchPrompt.Run(); err == nil {
			cfg.Content.Watch = true
		}
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 4. Session backend.
	backendPrompt := promptui.Select{
		Label: "Where should last-visited sections be stored",
		Items: []string{
			"memory   - lost on restart",
			"sqlite   - local file",
			"postgres - shared database",
			"redis    - shared cache with expiry",
		},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("session backend: %w", err)
	}
	backends := []SessionBackend{BackendMemory, BackendSQLite, BackendPostgres, BackendRedis}
	cfg.Session.Backend = backends[backendIdx]

	switch cfg.Session.Backend {
	case BackendPostgres:
		dsnPrompt := promptui.Prompt{Label: "Postgres DSN", Default: "postgres://localhost/brigade?sslmode=disable"}
		if cfg.Session.PostgresDSN, err = dsnPrompt.Run(); err != nil {
			return nil, fmt.Errorf("postgres dsn: %w", err)
		}
	case BackendRedis:
		addrPrompt := promptui.Prompt{Label: "Redis address", Default: cfg.Session.RedisAddr}
		if cfg.Session.RedisAddr, err = addrPrompt.Run(); err != nil {
			return nil, fmt.Errorf("redis addr: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Printf("Set %s in your environment to enable the access gate.\n", AccessCodeEnv)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
