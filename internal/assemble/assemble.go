// Package assemble builds the deployable site: it injects the shared
// navigation bar, breadcrumb trail, stylesheet, and script into every source
// page with depth-correct relative paths, converts Markdown pages through the
// shared shell, copies assets through, and emits the page index.
package assemble

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"dashsite/internal/config"
	"dashsite/internal/nav"
)

// Placeholder element ids recognized in source pages.
const (
	NavPlaceholderID   = "site-nav"
	CrumbPlaceholderID = "site-breadcrumb"
)

// Per-page meta switches, e.g. <meta name="dashsite-active" content="nav-holidays">.
const (
	metaActive     = "dashsite-active"
	metaStylesheet = "dashsite-stylesheet"
	metaScript     = "dashsite-script"
	metaNavigation = "dashsite-navigation"
	metaCrumbs     = "dashsite-crumbs"
)

// PageOptions are the per-page assembly switches, read from meta tags.
// Every switch defaults to on; a page opts out explicitly.
type PageOptions struct {
	ActiveNav  string
	Stylesheet bool
	Script     bool
	Navigation bool
	Crumbs     nav.Trail
}

func defaultPageOptions() PageOptions {
	return PageOptions{Stylesheet: true, Script: true, Navigation: true}
}

// PageInfo describes one assembled page for the site index.
type PageInfo struct {
	RelPath string
	Title   string
	Crumbs  []string
}

// Assembler carries the configuration and logger through a build.
type Assembler struct {
	cfg  *config.Config
	log  *zap.Logger
	menu nav.Menu
	tmpl *template.Template
	md   goldmark.Markdown

	// LiveReload marks every assembled page so the shared script opens a
	// reload socket. Only the dev server sets this.
	LiveReload bool
}

// New prepares an Assembler. The page template is parsed once here.
func New(cfg *config.Config, log *zap.Logger) (*Assembler, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Assembler{
		cfg:  cfg,
		log:  log,
		menu: cfg.Menu(),
		tmpl: tmpl,
		md:   newMarkdown(),
	}, nil
}

// sitePath is the path the page will be hosted under: the primary root
// marker followed by the source-relative path. The resolver works on hosted
// paths, so depth math holds both on disk and behind the dev server.
func (a *Assembler) sitePath(relPath string) string {
	return a.cfg.RootMarkers[0] + relPath
}

// basePath resolves the relative asset prefix for a page and flags the
// silent same-directory fallback in verbose builds.
func (a *Assembler) basePath(relPath string) string {
	sp := a.sitePath(relPath)
	if !nav.UnderMarker(sp, a.cfg.RootMarkers) {
		a.log.Debug("page outside all root markers, using same-directory prefix",
			zap.String("page", relPath))
	}
	return nav.ResolveBasePath(sp, a.cfg.RootMarkers)
}

// AssemblePage injects assets, navigation, and breadcrumb into one HTML
// source page and returns the serialized result. Assembly never fails over
// page content; the only errors are parser-level.
func (a *Assembler) AssemblePage(src []byte, relPath string) ([]byte, PageInfo, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("parsing %s: %w", relPath, err)
	}

	opts := a.readPageOptions(doc)
	base := a.basePath(relPath)

	// A page that names no active entry is matched by target, so the stock
	// pages light up their own nav entry without any meta tag.
	if opts.ActiveNav == "" {
		for _, e := range a.menu.Entries {
			if e.Target == relPath {
				opts.ActiveNav = e.ID
				break
			}
		}
	}

	if opts.Stylesheet {
		appendStylesheet(doc, base+a.cfg.Assets.Stylesheet)
	}
	if opts.Script {
		appendScript(doc, base+a.cfg.Assets.Script)
	}
	if a.LiveReload {
		appendMeta(doc, "dashsite-livereload", "on")
	}
	if opts.Navigation {
		if err := a.insertNavigation(doc, base, opts.ActiveNav); err != nil {
			return nil, PageInfo{}, err
		}
	}
	a.insertBreadcrumb(doc, base, relPath, opts.Crumbs)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, PageInfo{}, fmt.Errorf("rendering %s: %w", relPath, err)
	}

	info := PageInfo{
		RelPath: relPath,
		Title:   pageTitle(doc, relPath),
		Crumbs:  crumbLabels(opts.Crumbs),
	}
	return buf.Bytes(), info, nil
}

// insertNavigation places the rendered bar: a placeholder is replaced in
// position, otherwise the bar becomes the first child of body.
func (a *Assembler) insertNavigation(doc *html.Node, base, activeID string) error {
	nodes, err := parseFragment(a.menu.Render(base, activeID))
	if err != nil {
		return fmt.Errorf("parsing navigation fragment: %w", err)
	}
	if placeholder := findByID(doc, NavPlaceholderID); placeholder != nil {
		replaceWithFragment(placeholder, nodes)
		return nil
	}
	prependToBody(doc, nodes)
	return nil
}

// insertBreadcrumb fills the breadcrumb placeholder if the page carries one.
// Unlike the navigation bar there is no fallback position: pages without a
// placeholder get no trail.
func (a *Assembler) insertBreadcrumb(doc *html.Node, base, relPath string, crumbs nav.Trail) {
	placeholder := findByID(doc, CrumbPlaceholderID)
	if placeholder == nil {
		return
	}
	if len(crumbs) == 0 {
		crumbs = a.defaultTrail(doc, relPath)
	}
	nodes, err := parseFragment(crumbs.Render(base))
	if err != nil {
		a.log.Warn("parsing breadcrumb fragment", zap.String("page", relPath), zap.Error(err))
		return
	}
	replaceWithFragment(placeholder, nodes)
}

// defaultTrail is used when a page asks for a breadcrumb without declaring
// one: the brand page first, the page itself last. The brand page drops to
// a single unlinked crumb.
func (a *Assembler) defaultTrail(doc *html.Node, relPath string) nav.Trail {
	title := pageTitle(doc, relPath)
	if relPath == a.menu.Brand.Target {
		return nav.Trail{{Label: title}}
	}
	return nav.Trail{
		{Label: a.menu.Brand.Label, Target: a.menu.Brand.Target},
		{Label: title},
	}
}

// readPageOptions scans the document's meta tags for assembly switches.
func (a *Assembler) readPageOptions(doc *html.Node) PageOptions {
	opts := defaultPageOptions()
	var scan func(*html.Node)
	scan = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			name := attrVal(n, "name")
			content := attrVal(n, "content")
			switch name {
			case metaActive:
				opts.ActiveNav = content
			case metaStylesheet:
				opts.Stylesheet = !isOff(content)
			case metaScript:
				opts.Script = !isOff(content)
			case metaNavigation:
				opts.Navigation = !isOff(content)
			case metaCrumbs:
				opts.Crumbs = parseCrumbs(content)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			scan(c)
		}
	}
	scan(doc)
	return opts
}

func isOff(content string) bool {
	switch strings.ToLower(strings.TrimSpace(content)) {
	case "off", "false", "no", "0":
		return true
	}
	return false
}

// parseCrumbs reads a crumb list of the form
// "Home=dashboard_analyse.html | Holidays=holidays/es_mes_holidays.html | ES/MES 2026".
// A token without "=" is an unlinked label, normally the last one.
func parseCrumbs(content string) nav.Trail {
	var trail nav.Trail
	for _, token := range strings.Split(content, "|") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		label, target, found := strings.Cut(token, "=")
		if !found {
			trail = append(trail, nav.Crumb{Label: strings.TrimSpace(label)})
			continue
		}
		trail = append(trail, nav.Crumb{
			Label:  strings.TrimSpace(label),
			Target: strings.TrimSpace(target),
		})
	}
	return trail
}

func crumbLabels(t nav.Trail) []string {
	if len(t) == 0 {
		return nil
	}
	labels := make([]string, len(t))
	for i, c := range t {
		labels[i] = c.Label
	}
	return labels
}

// pageTitle prefers the document title, then the first h1, then the filename.
func pageTitle(doc *html.Node, relPath string) string {
	if t := findElement(doc, "title"); t != nil {
		if text := nodeText(t); text != "" {
			return text
		}
	}
	if h1 := findElement(doc, "h1"); h1 != nil {
		if text := nodeText(h1); text != "" {
			return text
		}
	}
	name := path.Base(relPath)
	return strings.TrimSuffix(name, path.Ext(name))
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
