package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zirconova/azurite/pkg/wav"
)

// ConfigFileName is the project configuration looked up next to scripts.
const ConfigFileName = "azurite.yml"

// Config holds the rendering settings for a script run.
type Config struct {
	Path     string
	Output   string
	Capacity int
	Seed     *int64
	Channels int
	Debug    bool
}

type configFile struct {
	Output   string `yaml:"output"`
	Capacity *int   `yaml:"capacity"`
	Seed     *int64 `yaml:"seed"`
	Channels *int   `yaml:"channels"`
	Debug    bool   `yaml:"debug"`
}

// DefaultConfig returns the settings used when no azurite.yml is found.
func DefaultConfig() *Config {
	return &Config{
		Capacity: wav.DefaultCapacity,
		Channels: 1,
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses azurite.yml from disk, returning a validated config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Output = strings.TrimSpace(raw.Output)
	if raw.Capacity != nil {
		cfg.Capacity = *raw.Capacity
	}
	if raw.Channels != nil {
		cfg.Channels = *raw.Channels
	}
	cfg.Seed = raw.Seed
	cfg.Debug = raw.Debug
	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.Capacity <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("capacity must be positive, got %d", c.Capacity))
	}
	if c.Channels != 1 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("channels must be 1, got %d", c.Channels))
	}
	if c.Output != "" && !strings.EqualFold(filepath.Ext(c.Output), ".wav") {
		errs.Issues = append(errs.Issues, fmt.Sprintf("output %q must have a .wav extension", c.Output))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// OutputPath resolves where the samples of script are written. A relative
// output setting is taken relative to the config file.
func (c *Config) OutputPath(script string) string {
	if c.Output == "" {
		return DefaultOutputPath(script)
	}
	if filepath.IsAbs(c.Output) || c.Path == "" {
		return c.Output
	}
	return filepath.Join(filepath.Dir(c.Path), c.Output)
}

// DefaultOutputPath is script with its extension replaced by .wav.
func DefaultOutputPath(script string) string {
	return strings.TrimSuffix(script, filepath.Ext(script)) + ".wav"
}

// FindConfig walks up from start looking for azurite.yml. It returns an
// empty path when none exists.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ResolveConfig loads the config for script: explicit when given, else the
// nearest azurite.yml, else the defaults.
func ResolveConfig(explicit, script string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	path, err := FindConfig(script)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}
