package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type PrometheusCfg struct {
	Port int `yaml:"port" json:"port"`
}

type LoggingCfg struct {
	RotationDays int `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type SafetyCfg struct {
	AllowedRoots   []string `yaml:"allowed_roots" json:"allowed_roots"`     // Roots targets must live under (empty = containment check off)
	ProtectedPaths []string `yaml:"protected_paths" json:"protected_paths"` // Extra paths blocked in addition to the built-in set
}

type Config struct {
	Targets         []string      `yaml:"targets" json:"targets"`                   // Ordered absolute file paths to remove
	Directory       string        `yaml:"directory" json:"directory"`               // Optional directory removed recursively after the files
	Safety          SafetyCfg     `yaml:"safety" json:"safety"`
	IntervalMinutes int           `yaml:"interval_minutes" json:"interval_minutes"` // Daemon mode sweep interval
	Prometheus      PrometheusCfg `yaml:"prometheus" json:"prometheus"`
	Logging         LoggingCfg    `yaml:"logging" json:"logging"`
	DatabasePath    string        `yaml:"database_path" json:"database_path"`       // Path to SQLite database for sweep history
}

var (
	errNoTargets       = errors.New("configuration must specify at least one target")
	errInvalidPath     = errors.New("path must be absolute")
	errDuplicateTarget = errors.New("duplicate target")
)

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if len(c.Targets) == 0 && c.Directory == "" {
		return errNoTargets
	}

	if c.IntervalMinutes <= 0 {
		c.IntervalMinutes = 15
	}

	if c.Prometheus.Port == 0 {
		c.Prometheus.Port = 9191
	}

	if c.Logging.RotationDays <= 0 {
		c.Logging.RotationDays = 30 // Default: keep logs for 30 days
	}

	if c.DatabasePath == "" {
		c.DatabasePath = "/var/lib/path-sweep/sweeps.db"
	}

	cleaned := make([]string, 0, len(c.Targets))
	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		ct, err := cleanAbsolute(t)
		if err != nil {
			return err
		}
		if seen[ct] {
			return fmt.Errorf("%w: %s", errDuplicateTarget, ct)
		}
		seen[ct] = true
		cleaned = append(cleaned, ct)
	}
	c.Targets = cleaned

	if c.Directory != "" {
		cd, err := cleanAbsolute(c.Directory)
		if err != nil {
			return err
		}
		c.Directory = cd
	}

	roots := make([]string, 0, len(c.Safety.AllowedRoots))
	for _, r := range c.Safety.AllowedRoots {
		cr, err := cleanAbsolute(r)
		if err != nil {
			return err
		}
		roots = append(roots, cr)
	}
	c.Safety.AllowedRoots = roots

	return nil
}

func cleanAbsolute(p string) (string, error) {
	if p == "" {
		return "", errInvalidPath
	}
	cp := filepath.Clean(p)
	if !filepath.IsAbs(cp) {
		return "", fmt.Errorf("%w: %s", errInvalidPath, p)
	}
	return cp, nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

func (c *Config) PrometheusAddress() string {
	return fmt.Sprintf(":%d", c.Prometheus.Port)
}
