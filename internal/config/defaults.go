package config

// FileName is the conventional config file looked up in the working directory.
const FileName = ".dashsite.yml"

// DefaultRootMarkers are the path segments recognized as the site root, in
// priority order: the working-copy directory name and the hosting mount the
// dashboard is published under. Markers carry both slashes so that the
// separator count after them equals the page depth.
var DefaultRootMarkers = []string{"/01_Webseite/", "/DP_dashboard/"}

// DefaultExcludes are glob patterns skipped during page discovery by default.
var DefaultExcludes = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/_drafts/**",
}

// DefaultConfig returns a Config with the stock dashboard site settings.
func DefaultConfig() *Config {
	return &Config{
		SiteName:    "ES/MES Trading Dashboard",
		SourceDir:   "site",
		OutputDir:   "public",
		RootMarkers: append([]string(nil), DefaultRootMarkers...),
		Brand: BrandConfig{
			Label:  "ES/MES Dashboard",
			Target: "dashboard_analyse.html",
		},
		Nav: []NavEntry{
			{Label: "Dashboard", Target: "dashboard_analyse.html", ID: "nav-dashboard"},
			{Label: "Holidays", Target: "holidays/es_mes_holidays.html", ID: "nav-holidays"},
		},
		Include: []string{"**"},
		Exclude: append([]string(nil), DefaultExcludes...),
		Assets: AssetsConfig{
			Stylesheet: "style.css",
			Script:     "app.js",
		},
		Status: StatusConfig{
			Endpoint:       "http://127.0.0.1:5000/status",
			GatewayHost:    "127.0.0.1",
			GatewayPort:    4002,
			PollSeconds:    30,
			TimeoutSeconds: 5,
			HistoryDB:      ".dashsite/status.db",
		},
		Serve: ServeConfig{
			Host:       "127.0.0.1",
			Port:       8787,
			LiveReload: true,
		},
	}
}
