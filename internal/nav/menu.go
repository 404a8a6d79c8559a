package nav

import (
	"fmt"
	"html"
	"strings"
)

// Entry is a single link in the top navigation bar.
type Entry struct {
	Label  string // Display text.
	Target string // Path relative to the site root, rewritten per page.
	ID     string // Stable identifier used to mark the entry active.
}

// Brand is the site title link at the left edge of the navigation bar.
type Brand struct {
	Label  string
	Target string
}

// Menu renders the top navigation bar. Entries keep their input order;
// there is no sorting and no deduplication.
type Menu struct {
	Brand   Brand
	Entries []Entry
}

// Render produces the navigation bar fragment for one page. basePath is the
// prefix from ResolveBasePath for that page; every target, including the
// brand, is rewritten against it. activeID marks at most one entry active:
// the one whose ID matches. An empty activeID marks none.
//
// Render is pure: it touches no document and no shared state.
func (m Menu) Render(basePath, activeID string) string {
	var b strings.Builder
	b.WriteString(`<nav class="site-nav">`)
	fmt.Fprintf(&b, `<a class="nav-brand" href="%s%s">%s</a>`,
		basePath, m.Brand.Target, html.EscapeString(m.Brand.Label))
	b.WriteString(`<div class="nav-links">`)
	for _, e := range m.Entries {
		class := "nav-link"
		if activeID != "" && e.ID == activeID {
			class = "nav-link active"
		}
		fmt.Fprintf(&b, `<a class="%s" id="%s" href="%s%s">%s</a>`,
			class, e.ID, basePath, e.Target, html.EscapeString(e.Label))
	}
	b.WriteString(`</div></nav>`)
	return b.String()
}
