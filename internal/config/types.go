package config

import (
	"time"

	"dashsite/internal/nav"
)

// Config is the top-level dashsite configuration, corresponding to .dashsite.yml.
type Config struct {
	SiteName    string       `yaml:"site_name" koanf:"site_name"`
	SourceDir   string       `yaml:"source_dir" koanf:"source_dir"`
	OutputDir   string       `yaml:"output_dir" koanf:"output_dir"`
	RootMarkers []string     `yaml:"root_markers" koanf:"root_markers"`
	Brand       BrandConfig  `yaml:"brand" koanf:"brand"`
	Nav         []NavEntry   `yaml:"nav" koanf:"nav"`
	Include     []string     `yaml:"include" koanf:"include"`
	Exclude     []string     `yaml:"exclude" koanf:"exclude"`
	Assets      AssetsConfig `yaml:"assets" koanf:"assets"`
	Status      StatusConfig `yaml:"status" koanf:"status"`
	Serve       ServeConfig  `yaml:"serve" koanf:"serve"`
}

// BrandConfig is the site title link at the left edge of the navigation bar.
type BrandConfig struct {
	Label  string `yaml:"label" koanf:"label"`
	Target string `yaml:"target" koanf:"target"`
}

// NavEntry is one configured navigation link. ID is the stable identifier
// pages use to mark their own entry active.
type NavEntry struct {
	Label  string `yaml:"label" koanf:"label"`
	Target string `yaml:"target" koanf:"target"`
	ID     string `yaml:"id" koanf:"id"`
}

// AssetsConfig names the shared assets injected into every page. CustomCSS
// optionally points at a stylesheet whose contents are appended to the
// built-in one.
type AssetsConfig struct {
	Stylesheet string `yaml:"stylesheet" koanf:"stylesheet"`
	Script     string `yaml:"script" koanf:"script"`
	CustomCSS  string `yaml:"custom_css" koanf:"custom_css"`
}

// StatusConfig describes the trading gateway status source: the JSON
// endpoint the gateway watchdog exposes and the API port probed directly.
type StatusConfig struct {
	Endpoint       string `yaml:"endpoint" koanf:"endpoint"`
	GatewayHost    string `yaml:"gateway_host" koanf:"gateway_host"`
	GatewayPort    int    `yaml:"gateway_port" koanf:"gateway_port"`
	PollSeconds    int    `yaml:"poll_seconds" koanf:"poll_seconds"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	HistoryDB      string `yaml:"history_db" koanf:"history_db"`
}

// PollInterval returns the configured poll cadence.
func (s StatusConfig) PollInterval() time.Duration {
	return time.Duration(s.PollSeconds) * time.Second
}

// Timeout returns the per-request timeout for endpoint fetches and probes.
func (s StatusConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ServeConfig holds dev server settings.
type ServeConfig struct {
	Host            string `yaml:"host" koanf:"host"`
	Port            int    `yaml:"port" koanf:"port"`
	LiveReload      bool   `yaml:"live_reload" koanf:"live_reload"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// Menu converts the configured brand and entries into a nav.Menu.
func (c *Config) Menu() nav.Menu {
	m := nav.Menu{Brand: nav.Brand{Label: c.Brand.Label, Target: c.Brand.Target}}
	for _, e := range c.Nav {
		m.Entries = append(m.Entries, nav.Entry{Label: e.Label, Target: e.Target, ID: e.ID})
	}
	return m
}
