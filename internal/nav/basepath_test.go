package nav

import (
	"strings"
	"testing"
)

var defaultMarkers = []string{"/01_Webseite/", "/DP_dashboard/"}

func TestResolveBasePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/01_Webseite/holidays/es_mes_holidays.html", "../"},
		{"/01_Webseite/dashboard_analyse.html", "./"},
		{"/DP_dashboard/strat/perf/detail.html", "../../"},
		{"/unrelated/page.html", "./"},
		{"/01_Webseite/a/b/c/d/page.html", "../../../../"},
		{"/home/user/www/DP_dashboard/index.html", "./"},
	}
	for _, tt := range tests {
		got := ResolveBasePath(tt.path, defaultMarkers)
		if got != tt.want {
			t.Errorf("ResolveBasePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestResolveBasePathMarkerOrder(t *testing.T) {
	// A path containing both markers resolves against the first one in the
	// configured order, not the first one in the path.
	path := "/DP_dashboard/x/01_Webseite/page.html"
	got := ResolveBasePath(path, defaultMarkers)
	if got != "./" {
		t.Errorf("ResolveBasePath(%q) = %q, want %q (first configured marker wins)", path, got, "./")
	}
}

func TestResolveBasePathRepeatedMarker(t *testing.T) {
	// Only the first occurrence of the marker counts.
	path := "/01_Webseite/old/01_Webseite/deep/page.html"
	got := ResolveBasePath(path, defaultMarkers)
	if got != "../../../" {
		t.Errorf("ResolveBasePath(%q) = %q, want %q", path, got, "../../../")
	}
}

func TestResolveBasePathNoMarkers(t *testing.T) {
	if got := ResolveBasePath("/anything/at/all.html", nil); got != "./" {
		t.Errorf("ResolveBasePath with no markers = %q, want %q", got, "./")
	}
	if got := ResolveBasePath("/anything.html", []string{""}); got != "./" {
		t.Errorf("ResolveBasePath with empty marker = %q, want %q", got, "./")
	}
}

func TestResolveBasePathDepthProperty(t *testing.T) {
	// k separators after the marker produce exactly k parent tokens.
	base := "/01_Webseite/"
	path := base + "page.html"
	for k := 0; k < 6; k++ {
		want := strings.Repeat("../", k)
		if k == 0 {
			want = "./"
		}
		got := ResolveBasePath(path, defaultMarkers)
		if got != want {
			t.Errorf("depth %d: ResolveBasePath(%q) = %q, want %q", k, path, got, want)
		}
		path = base + strings.Repeat("dir/", k+1) + "page.html"
	}
}

func TestUnderMarker(t *testing.T) {
	if !UnderMarker("/01_Webseite/x.html", defaultMarkers) {
		t.Error("expected /01_Webseite/x.html to be under a marker")
	}
	if UnderMarker("/unrelated/page.html", defaultMarkers) {
		t.Error("expected /unrelated/page.html to be under no marker")
	}
}
