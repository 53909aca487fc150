// Package config loads tessera settings from YAML or JSON files and from
// repeated `--set key=value` flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "tessera.yaml"

// Server configures the HTTP adapter.
type Server struct {
	Port int `mapstructure:"port"`
}

// Redis configures the optional distributed locker.
// An empty Addr disables it.
type Redis struct {
	Addr    string        `mapstructure:"addr"`
	Prefix  string        `mapstructure:"prefix"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}

// Config is the full set of settings.
type Config struct {
	Layout      domain.Layout     `mapstructure:"layout"`
	Server      Server            `mapstructure:"server"`
	Redis       Redis             `mapstructure:"redis"`
	Policy      string            `mapstructure:"policy"`
	LogLevel    string            `mapstructure:"log_level"`
	Descriptors map[string]string `mapstructure:"descriptors"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Layout: domain.DefaultLayout(),
		Server: Server{Port: 8080},
		Redis: Redis{
			Prefix:  "tessera:",
			LockTTL: 30 * time.Second,
		},
		Policy:   string(domain.PolicyGateway),
		LogLevel: "info",
		Descriptors: map[string]string{
			"box":     "M0,0 L1,0 L1,1 L0,1 Z",
			"circle":  "M0.5,0 A0.5,0.5 0 1,1 0.5,1 A0.5,0.5 0 1,1 0.5,0 Z",
			"diamond": "M0.5,0 L1,0.5 L0.5,1 L0,0.5 Z",
		},
	}
}

// Load reads path on top of the defaults. The format follows the
// extension: .json is JSON, anything else is YAML. A missing file is not an
// error and yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := decode(raw, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ParseOverrides turns "key=value" pairs into a flat override map.
// Keys use dots to reach nested fields, as in "server.port=9090".
func ParseOverrides(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q: expected key=value", p)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// ApplyOverrides decodes dotted-key overrides into cfg.
// Values are weakly typed, so "9090" fills an int and "5s" a duration.
func ApplyOverrides(cfg *Config, overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nested := map[string]any{}
	for _, k := range keys {
		parts := strings.Split(k, ".")
		cur := nested
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = overrides[k]
	}

	if err := decode(nested, cfg); err != nil {
		return fmt.Errorf("invalid override: %w", err)
	}
	return cfg.Validate()
}

// Validate reports settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Layout.CellWidth <= 0 || c.Layout.CellHeight <= 0 {
		return fmt.Errorf("layout cells must be positive, got %dx%d", c.Layout.CellWidth, c.Layout.CellHeight)
	}
	if _, err := domain.ParseRemovalPolicy(c.Policy); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Redis.Addr != "" && c.Redis.LockTTL <= 0 {
		return fmt.Errorf("redis lock_ttl must be positive, got %s", c.Redis.LockTTL)
	}
	return nil
}

// RemovalPolicy returns the parsed policy. Call Validate first.
func (c *Config) RemovalPolicy() domain.RemovalPolicy {
	p, _ := domain.ParseRemovalPolicy(c.Policy)
	return p
}

// Descriptor resolves a palette name to its outline. Unknown names are
// returned unchanged so raw outlines can be typed directly.
func (c *Config) Descriptor(name string) string {
	if d, ok := c.Descriptors[name]; ok {
		return d
	}
	return name
}

func decode(input map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
