package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SourceDir != "site" {
		t.Errorf("expected default source_dir %q, got %q", "site", cfg.SourceDir)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("expected default output_dir %q, got %q", "public", cfg.OutputDir)
	}
	if len(cfg.RootMarkers) != 2 || cfg.RootMarkers[0] != "/01_Webseite/" {
		t.Errorf("unexpected default root markers: %v", cfg.RootMarkers)
	}
	if len(cfg.Nav) != 2 || cfg.Nav[0].ID != "nav-dashboard" || cfg.Nav[1].ID != "nav-holidays" {
		t.Errorf("unexpected default nav entries: %+v", cfg.Nav)
	}
	if cfg.Status.GatewayPort != 4002 {
		t.Errorf("expected default gateway port 4002, got %d", cfg.Status.GatewayPort)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dashsite.yml")

	original := DefaultConfig()
	original.SiteName = "Paper Trading"
	original.SourceDir = "01_Webseite"
	original.RootMarkers = []string{"/paper/"}
	original.Nav = append(original.Nav, NavEntry{Label: "Performance", Target: "strat/perf.html", ID: "nav-perf"})
	original.Serve.Port = 9000

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.SiteName != original.SiteName {
		t.Errorf("site_name: got %q, want %q", loaded.SiteName, original.SiteName)
	}
	if loaded.SourceDir != original.SourceDir {
		t.Errorf("source_dir: got %q, want %q", loaded.SourceDir, original.SourceDir)
	}
	if len(loaded.RootMarkers) != 1 || loaded.RootMarkers[0] != "/paper/" {
		t.Errorf("root_markers: got %v, want %v", loaded.RootMarkers, original.RootMarkers)
	}
	if len(loaded.Nav) != len(original.Nav) {
		t.Fatalf("nav length: got %d, want %d", len(loaded.Nav), len(original.Nav))
	}
	for i, e := range loaded.Nav {
		if e != original.Nav[i] {
			t.Errorf("nav[%d]: got %+v, want %+v", i, e, original.Nav[i])
		}
	}
	if loaded.Serve.Port != 9000 {
		t.Errorf("serve.port: got %d, want 9000", loaded.Serve.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.SiteName != "ES/MES Trading Dashboard" {
		t.Errorf("expected default site name, got %q", cfg.SiteName)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("DASHSITE_SITE_NAME", "Override Dashboard")
	defer os.Unsetenv("DASHSITE_SITE_NAME")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SiteName != "Override Dashboard" {
		t.Errorf("env override failed: got %q, want %q", loaded.SiteName, "Override Dashboard")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateDirs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourceDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty source_dir")
	}

	cfg = DefaultConfig()
	cfg.OutputDir = cfg.SourceDir
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error when output_dir equals source_dir")
	}
}

func TestValidateRootMarkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootMarkers = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty root_markers")
	}

	// A marker without its trailing slash would miscount the page depth.
	cfg = DefaultConfig()
	cfg.RootMarkers = []string{"/01_Webseite"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for marker without trailing slash")
	}

	cfg = DefaultConfig()
	cfg.RootMarkers = []string{"01_Webseite/"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for marker without leading slash")
	}
}

func TestValidateNavEntries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Nav[1].ID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for nav entry without id")
	}

	cfg = DefaultConfig()
	cfg.Nav[1].ID = cfg.Nav[0].ID
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for duplicate nav ids")
	}
}

func TestValidateStatus(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Status.Endpoint = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for malformed status endpoint")
	}

	cfg = DefaultConfig()
	cfg.Status.Endpoint = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("blank endpoint disables polling and should be valid, got: %v", err)
	}

	cfg = DefaultConfig()
	cfg.Status.GatewayPort = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for gateway port 0")
	}

	cfg = DefaultConfig()
	cfg.Status.PollSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for poll_seconds 0")
	}
}

func TestValidateServePort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Serve.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for out-of-range serve port")
	}
}

func TestMenuConversion(t *testing.T) {
	cfg := DefaultConfig()
	m := cfg.Menu()
	if m.Brand.Label != cfg.Brand.Label || m.Brand.Target != cfg.Brand.Target {
		t.Errorf("brand not carried over: %+v", m.Brand)
	}
	if len(m.Entries) != len(cfg.Nav) {
		t.Fatalf("expected %d entries, got %d", len(cfg.Nav), len(m.Entries))
	}
	for i, e := range m.Entries {
		if e.Label != cfg.Nav[i].Label || e.Target != cfg.Nav[i].Target || e.ID != cfg.Nav[i].ID {
			t.Errorf("entry %d mismatch: %+v vs %+v", i, e, cfg.Nav[i])
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" /01_Webseite/ , /DP_dashboard/ ", []string{"/01_Webseite/", "/DP_dashboard/"}},
		{"/only/", []string{"/only/"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
