package sections

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk registry format.
type File struct {
	Title    string    `yaml:"title" toml:"title"`
	Groups   []Group   `yaml:"groups" toml:"groups"`
	Sections []Section `yaml:"sections" toml:"sections"`
}

// Registry validates the file and builds a Registry from it.
func (f File) Registry() (*Registry, error) {
	if len(f.Groups) != 2 {
		return nil, fmt.Errorf("registry needs exactly 2 groups, got %d", len(f.Groups))
	}
	return New(f.Groups[0], f.Groups[1], f.Sections)
}

// Decode unmarshals registry data without validating it. format is
// "yaml", "yml" or "toml".
func Decode(data []byte, format string) (File, error) {
	var f File
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parsing yaml registry: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parsing toml registry: %w", err)
		}
	default:
		return File{}, fmt.Errorf("unsupported registry format %q", format)
	}
	return f, nil
}

// Parse decodes and validates registry data.
func Parse(data []byte, format string) (*Registry, error) {
	f, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return f.Registry()
}

// Format returns the registry format implied by a file name, or "".
func Format(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml", ".toml":
		return strings.TrimPrefix(ext, ".")
	}
	return ""
}

// LoadFile reads a registry from a .yml, .yaml or .toml file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}
	r, err := Parse(data, Format(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
