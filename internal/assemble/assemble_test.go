package assemble

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"dashsite/internal/config"
	"dashsite/internal/nav"
)

func testAssembler(t *testing.T) *Assembler {
	t.Helper()
	a, err := New(config.DefaultConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return a
}

func assemble(t *testing.T, a *Assembler, src, relPath string) (string, PageInfo) {
	t.Helper()
	out, info, err := a.AssemblePage([]byte(src), relPath)
	if err != nil {
		t.Fatalf("AssemblePage(%s) error: %v", relPath, err)
	}
	return string(out), info
}

const plainPage = `<!DOCTYPE html>
<html lang="de">
<head><title>Feiertage 2026</title></head>
<body><h1>Feiertage</h1></body>
</html>`

func TestAssemblePageDepthPrefixes(t *testing.T) {
	a := testAssembler(t)

	tests := []struct {
		relPath string
		prefix  string
	}{
		{"dashboard_analyse.html", "./"},
		{"holidays/es_mes_holidays.html", "../"},
		{"strat/perf/detail.html", "../../"},
	}
	for _, tt := range tests {
		out, _ := assemble(t, a, plainPage, tt.relPath)
		if !strings.Contains(out, `href="`+tt.prefix+`style.css"`) {
			t.Errorf("%s: missing stylesheet with prefix %q", tt.relPath, tt.prefix)
		}
		if !strings.Contains(out, `src="`+tt.prefix+`app.js"`) {
			t.Errorf("%s: missing script with prefix %q", tt.relPath, tt.prefix)
		}
	}
}

func TestAssemblePageReplacesPlaceholder(t *testing.T) {
	a := testAssembler(t)
	src := `<!DOCTYPE html>
<html><head><title>T</title></head>
<body><header><div id="site-nav"></div></header><h1>T</h1></body></html>`

	out, _ := assemble(t, a, src, "dashboard_analyse.html")

	if !strings.Contains(out, `<nav class="site-nav">`) {
		t.Error("navigation bar not rendered")
	}
	if strings.Contains(out, `id="site-nav"`) {
		t.Error("placeholder should be replaced, not kept")
	}
	// The bar must sit where the placeholder was, inside the header.
	header := strings.Index(out, "<header>")
	bar := strings.Index(out, `<nav class="site-nav">`)
	end := strings.Index(out, "</header>")
	if !(header < bar && bar < end) {
		t.Errorf("navigation not inside header: header=%d bar=%d end=%d", header, bar, end)
	}
}

func TestAssemblePagePrependsWithoutPlaceholder(t *testing.T) {
	a := testAssembler(t)
	out, _ := assemble(t, a, plainPage, "dashboard_analyse.html")

	bar := strings.Index(out, `<nav class="site-nav">`)
	h1 := strings.Index(out, "<h1>")
	if bar == -1 {
		t.Fatal("navigation bar missing")
	}
	if bar > h1 {
		t.Errorf("navigation should precede page content: bar=%d h1=%d", bar, h1)
	}
}

func TestAssemblePageTwiceInsertsTwice(t *testing.T) {
	a := testAssembler(t)

	once, _ := assemble(t, a, plainPage, "dashboard_analyse.html")
	twice, _ := assemble(t, a, once, "dashboard_analyse.html")

	if n := strings.Count(twice, `<nav class="site-nav">`); n != 2 {
		t.Errorf("navigation bars after double assembly = %d, want 2", n)
	}
}

func TestAssemblePageActiveFromMeta(t *testing.T) {
	a := testAssembler(t)
	src := `<!DOCTYPE html>
<html><head>
<title>Feiertage</title>
<meta name="dashsite-active" content="nav-holidays">
</head><body><h1>Feiertage</h1></body></html>`

	out, _ := assemble(t, a, src, "holidays/es_mes_holidays.html")

	if !strings.Contains(out, `class="nav-link active" id="nav-holidays"`) {
		t.Error("holidays entry should be active")
	}
	if n := strings.Count(out, "nav-link active"); n != 1 {
		t.Errorf("active entries = %d, want 1", n)
	}
}

func TestAssemblePageActiveByTarget(t *testing.T) {
	a := testAssembler(t)

	// A stock page whose path matches a nav target lights up without meta.
	out, _ := assemble(t, a, plainPage, "dashboard_analyse.html")
	if !strings.Contains(out, `class="nav-link active" id="nav-dashboard"`) {
		t.Error("dashboard entry should be active by target match")
	}

	// An unrelated page lights up nothing.
	out, _ = assemble(t, a, plainPage, "unrelated/page.html")
	if strings.Contains(out, "nav-link active") {
		t.Error("no entry should be active for an unknown page")
	}
}

func TestAssemblePageMetaSwitchesOff(t *testing.T) {
	a := testAssembler(t)
	src := `<!DOCTYPE html>
<html><head>
<title>Rohseite</title>
<meta name="dashsite-stylesheet" content="off">
<meta name="dashsite-script" content="off">
<meta name="dashsite-navigation" content="off">
</head><body><h1>Roh</h1></body></html>`

	out, _ := assemble(t, a, src, "raw.html")

	if strings.Contains(out, "style.css") {
		t.Error("stylesheet should be switched off")
	}
	if strings.Contains(out, "app.js") {
		t.Error("script should be switched off")
	}
	if strings.Contains(out, `class="site-nav"`) {
		t.Error("navigation should be switched off")
	}
}

func TestAssemblePageBreadcrumbPlaceholder(t *testing.T) {
	a := testAssembler(t)
	src := `<!DOCTYPE html>
<html><head><title>Feiertage 2026</title></head>
<body><nav id="site-breadcrumb"></nav><h1>Feiertage</h1></body></html>`

	out, _ := assemble(t, a, src, "holidays/es_mes_holidays.html")

	if strings.Contains(out, `id="site-breadcrumb"`) {
		t.Error("breadcrumb placeholder should be replaced")
	}
	if !strings.Contains(out, `<nav class="breadcrumb" aria-label="Breadcrumb">`) {
		t.Error("breadcrumb container missing")
	}
	// Default trail: linked brand crumb, unlinked page crumb.
	if !strings.Contains(out, `<a class="crumb-link" href="../dashboard_analyse.html">ES/MES Dashboard</a>`) {
		t.Error("brand crumb should link to the dashboard with the page prefix")
	}
	if !strings.Contains(out, `<span class="crumb-current">Feiertage 2026</span>`) {
		t.Error("current crumb should carry the page title unlinked")
	}
}

func TestAssemblePageNoBreadcrumbWithoutPlaceholder(t *testing.T) {
	a := testAssembler(t)
	out, _ := assemble(t, a, plainPage, "holidays/es_mes_holidays.html")

	if strings.Contains(out, `class="breadcrumb"`) {
		t.Error("pages without a placeholder should get no trail")
	}
}

func TestAssemblePageBrandPageSingleCrumb(t *testing.T) {
	a := testAssembler(t)
	src := `<!DOCTYPE html>
<html><head><title>Dashboard</title></head>
<body><nav id="site-breadcrumb"></nav><h1>Dashboard</h1></body></html>`

	out, _ := assemble(t, a, src, "dashboard_analyse.html")

	if strings.Contains(out, "crumb-link") {
		t.Error("the brand page should not link back to itself")
	}
	if !strings.Contains(out, `<span class="crumb-current">Dashboard</span>`) {
		t.Error("brand page should carry a single unlinked crumb")
	}
}

func TestAssemblePageMetaCrumbs(t *testing.T) {
	a := testAssembler(t)
	src := `<!DOCTYPE html>
<html><head>
<title>Details</title>
<meta name="dashsite-crumbs" content="Dashboard=dashboard_analyse.html | ES/MES 2026">
</head>
<body><nav id="site-breadcrumb"></nav><h1>Details</h1></body></html>`

	out, info := assemble(t, a, src, "holidays/es_mes_holidays.html")

	if !strings.Contains(out, `<a class="crumb-link" href="../dashboard_analyse.html">Dashboard</a>`) {
		t.Error("declared crumb should be linked with the page prefix")
	}
	if !strings.Contains(out, `<span class="crumb-current">ES/MES 2026</span>`) {
		t.Error("last declared crumb should be unlinked")
	}
	want := []string{"Dashboard", "ES/MES 2026"}
	if len(info.Crumbs) != len(want) {
		t.Fatalf("info crumbs = %v, want %v", info.Crumbs, want)
	}
	for i := range want {
		if info.Crumbs[i] != want[i] {
			t.Errorf("crumb[%d] = %q, want %q", i, info.Crumbs[i], want[i])
		}
	}
}

func TestAssemblePageLiveReloadMeta(t *testing.T) {
	a := testAssembler(t)

	out, _ := assemble(t, a, plainPage, "dashboard_analyse.html")
	if strings.Contains(out, "dashsite-livereload") {
		t.Error("livereload meta should be absent by default")
	}

	a.LiveReload = true
	out, _ = assemble(t, a, plainPage, "dashboard_analyse.html")
	if !strings.Contains(out, `name="dashsite-livereload"`) {
		t.Error("livereload meta missing")
	}
}

func TestPageInfoTitle(t *testing.T) {
	a := testAssembler(t)

	tests := []struct {
		name    string
		src     string
		relPath string
		want    string
	}{
		{
			"title tag wins",
			`<html><head><title>Feiertage 2026</title></head><body><h1>Anders</h1></body></html>`,
			"x.html", "Feiertage 2026",
		},
		{
			"h1 fallback",
			`<html><head></head><body><h1>Nur H1</h1></body></html>`,
			"x.html", "Nur H1",
		},
		{
			"filename fallback",
			`<html><head></head><body><p>kein Titel</p></body></html>`,
			"holidays/es_mes_holidays.html", "es_mes_holidays",
		},
	}
	for _, tt := range tests {
		_, info := assemble(t, a, tt.src, tt.relPath)
		if info.Title != tt.want {
			t.Errorf("%s: title = %q, want %q", tt.name, info.Title, tt.want)
		}
	}
}

func TestParseCrumbs(t *testing.T) {
	tests := []struct {
		content string
		want    nav.Trail
	}{
		{
			"Dashboard=dashboard_analyse.html | Feiertage",
			nav.Trail{
				{Label: "Dashboard", Target: "dashboard_analyse.html"},
				{Label: "Feiertage"},
			},
		},
		{
			"Extern=https://example.com/kalender | Heute",
			nav.Trail{
				{Label: "Extern", Target: "https://example.com/kalender"},
				{Label: "Heute"},
			},
		},
		{"", nil},
		{" | | ", nil},
	}
	for _, tt := range tests {
		got := parseCrumbs(tt.content)
		if len(got) != len(tt.want) {
			t.Errorf("parseCrumbs(%q) = %v, want %v", tt.content, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("parseCrumbs(%q)[%d] = %v, want %v", tt.content, i, got[i], tt.want[i])
			}
		}
	}
}

func TestIsOff(t *testing.T) {
	for _, s := range []string{"off", "OFF", "false", "no", "0", " off "} {
		if !isOff(s) {
			t.Errorf("isOff(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "on", "true", "yes", "1"} {
		if isOff(s) {
			t.Errorf("isOff(%q) = true, want false", s)
		}
	}
}
