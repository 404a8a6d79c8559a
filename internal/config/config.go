// Package config loads, validates, and persists the dashsite configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DASHSITE_*). A missing file is not an
// error: defaults apply.
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

	// Overlay environment variables: DASHSITE_SITE_NAME -> site_name, etc.
	if err := k.Load(env.Provider("DASHSITE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DASHSITE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.OutputDir == c.SourceDir {
		return fmt.Errorf("output_dir must differ from source_dir")
	}

	if len(c.RootMarkers) == 0 {
		return fmt.Errorf("at least one root marker is required")
	}
	for _, m := range c.RootMarkers {
		// The depth math counts separators after the marker, so a marker
		// must be a full segment including both slashes.
		if !strings.HasPrefix(m, "/") || !strings.HasSuffix(m, "/") || len(m) < 3 {
			return fmt.Errorf("root marker %q must be a path segment wrapped in slashes, e.g. %q", m, "/01_Webseite/")
		}
	}

	seen := make(map[string]bool, len(c.Nav))
	for _, e := range c.Nav {
		if e.Label == "" || e.Target == "" || e.ID == "" {
			return fmt.Errorf("nav entry %+v: label, target, and id are all required", e)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate nav entry id %q", e.ID)
		}
		seen[e.ID] = true
	}

	if c.Assets.Stylesheet == "" || c.Assets.Script == "" {
		return fmt.Errorf("assets.stylesheet and assets.script are required")
	}

	if c.Status.Endpoint != "" {
		u, err := url.Parse(c.Status.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("status.endpoint %q must be an http(s) URL", c.Status.Endpoint)
		}
	}
	if c.Status.GatewayPort < 1 || c.Status.GatewayPort > 65535 {
		return fmt.Errorf("status.gateway_port %d out of range", c.Status.GatewayPort)
	}
	if c.Status.PollSeconds < 1 {
		return fmt.Errorf("status.poll_seconds must be positive")
	}
	if c.Status.TimeoutSeconds < 1 {
		return fmt.Errorf("status.timeout_seconds must be positive")
	}

	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}

	return nil
}
