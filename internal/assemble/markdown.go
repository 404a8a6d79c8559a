package assemble

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"dashsite/internal/nav"
	"dashsite/internal/render"
)

// newMarkdown builds the goldmark instance used for Markdown page sources.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// pageData feeds the shared page shell for Markdown sources.
type pageData struct {
	Title      string
	SiteName   string
	Content    template.HTML
	NavHTML    template.HTML
	CrumbHTML  template.HTML
	BasePath   string
	Stylesheet string
	Script     string
	Generated  string
	LiveReload bool
}

// RenderMarkdownPage converts one Markdown source into a complete page in
// the shared shell, with navigation, breadcrumb, and assets wired through
// the page's base path. The returned PageInfo carries the .html path.
func (a *Assembler) RenderMarkdownPage(src []byte, relPath string) ([]byte, PageInfo, error) {
	var content bytes.Buffer
	if err := a.md.Convert(src, &content); err != nil {
		return nil, PageInfo{}, fmt.Errorf("converting %s: %w", relPath, err)
	}

	htmlRel := mdPathToHTML(relPath)
	base := a.basePath(htmlRel)
	title := extractTitle(string(src), relPath)

	activeID := ""
	for _, e := range a.menu.Entries {
		if e.Target == htmlRel {
			activeID = e.ID
			break
		}
	}

	trail := nav.Trail{
		{Label: a.menu.Brand.Label, Target: a.menu.Brand.Target},
		{Label: title},
	}
	if htmlRel == a.menu.Brand.Target {
		trail = nav.Trail{{Label: title}}
	}

	data := pageData{
		Title:      title,
		SiteName:   a.cfg.SiteName,
		Content:    template.HTML(content.String()),
		NavHTML:    template.HTML(a.menu.Render(base, activeID)),
		CrumbHTML:  template.HTML(trail.Render(base)),
		BasePath:   base,
		Stylesheet: a.cfg.Assets.Stylesheet,
		Script:     a.cfg.Assets.Script,
		Generated:  render.DateTime(time.Now()),
		LiveReload: a.LiveReload,
	}

	var out bytes.Buffer
	if err := a.tmpl.Execute(&out, data); err != nil {
		return nil, PageInfo{}, fmt.Errorf("rendering %s: %w", relPath, err)
	}

	info := PageInfo{
		RelPath: htmlRel,
		Title:   title,
		Crumbs:  crumbLabels(trail),
	}
	return out.Bytes(), info, nil
}

// mdPathToHTML maps a Markdown source path to its output page path.
func mdPathToHTML(relPath string) string {
	ext := path.Ext(relPath)
	return strings.TrimSuffix(relPath, ext) + ".html"
}

// extractTitle pulls the first # heading from Markdown content, or falls
// back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	name := path.Base(relPath)
	return strings.TrimSuffix(name, path.Ext(name))
}
