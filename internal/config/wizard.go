package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// sourceDirCandidates are directory names recognized as an existing page
// tree, in preference order. The working-copy layout keeps its pages under
// 01_Webseite; fresh projects start with a plain site directory.
var sourceDirCandidates = []string{"01_Webseite", "DP_dashboard", "site", "pages"}

// detectSourceDir checks the current directory for a recognizable page tree.
func detectSourceDir() string {
	for _, dir := range sourceDirCandidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "site"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .dashsite.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to dashsite! Let's configure your dashboard site.")
	fmt.Println()

	cfg := DefaultConfig()

	detected := detectSourceDir()
	if detected != "site" {
		fmt.Printf("Detected page tree: %s\n\n", detected)
	}

	// 1. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.SiteName,
	}
	siteName, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}

	// 2. Source directory.
	sourcePrompt := promptui.Prompt{
		Label:   "Source directory with the HTML/Markdown pages",
		Default: detected,
	}
	sourceDir, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source dir: %w", err)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the assembled site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Root markers.
	markerPrompt := promptui.Prompt{
		Label:   "Root markers (comma-separated, slash-wrapped segments)",
		Default: strings.Join(cfg.RootMarkers, ", "),
	}
	markerStr, err := markerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("root markers: %w", err)
	}
	markers := splitAndTrim(markerStr)

	// 5. Status endpoint.
	endpointPrompt := promptui.Prompt{
		Label:   "Gateway status endpoint (blank to disable polling)",
		Default: cfg.Status.Endpoint,
	}
	endpoint, err := endpointPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("status endpoint: %w", err)
	}

	// 6. Gateway API port.
	portPrompt := promptui.Prompt{
		Label:   "Gateway API port to probe",
		Default: strconv.Itoa(cfg.Status.GatewayPort),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("port must be 1-65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("gateway port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 7. Live reload.
	reloadPrompt := promptui.Select{
		Label: "Enable live reload while serving",
		Items: []string{"yes", "no"},
	}
	_, reload, err := reloadPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("live reload: %w", err)
	}

	cfg.SiteName = siteName
	cfg.SourceDir = sourceDir
	cfg.OutputDir = outputDir
	if len(markers) > 0 {
		cfg.RootMarkers = markers
	}
	cfg.Status.Endpoint = endpoint
	cfg.Status.GatewayPort = port
	cfg.Serve.LiveReload = reload == "yes"

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("wizard produced invalid config: %w", err)
	}

	if err := cfg.Save(FileName); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty tokens.
func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
