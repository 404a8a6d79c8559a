package nav

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// Crumb is one element of a breadcrumb trail. Target may be a site-relative
// path or a full URL; full URLs are linked as-is instead of being rewritten.
type Crumb struct {
	Label  string
	Target string
}

// Trail is an ordered breadcrumb. The last crumb is the current page and
// renders as plain text without a link.
type Trail []Crumb

// Render produces the breadcrumb fragment. All crumbs but the last become
// links separated by a glyph; relative targets are rewritten against
// basePath, absolute URLs are kept untouched. An empty trail renders an
// empty container, which is not an error.
func (t Trail) Render(basePath string) string {
	var b strings.Builder
	b.WriteString(`<nav class="breadcrumb" aria-label="Breadcrumb">`)
	for i, c := range t {
		if i > 0 {
			b.WriteString(`<span class="crumb-sep">&rsaquo;</span>`)
		}
		if i == len(t)-1 {
			fmt.Fprintf(&b, `<span class="crumb-current">%s</span>`, html.EscapeString(c.Label))
			continue
		}
		href := c.Target
		if !absoluteURL(href) {
			href = basePath + href
		}
		fmt.Fprintf(&b, `<a class="crumb-link" href="%s">%s</a>`, href, html.EscapeString(c.Label))
	}
	b.WriteString(`</nav>`)
	return b.String()
}

// absoluteURL reports whether target carries a protocol scheme of its own.
func absoluteURL(target string) bool {
	u, err := url.Parse(target)
	return err == nil && u.IsAbs()
}
