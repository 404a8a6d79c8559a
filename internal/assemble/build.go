package assemble

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"dashsite/internal/progress"
	"dashsite/internal/walker"
)

// Stats summarizes one build.
type Stats struct {
	Pages    int
	Assets   int
	Warnings int
	Duration time.Duration
}

// Build assembles the whole site from SourceDir into OutputDir: shared
// assets first, then every discovered source file, then the page index.
// Page-level problems degrade to warnings; only filesystem and template
// failures abort the build.
func (a *Assembler) Build(reporter progress.Reporter) (*Stats, error) {
	start := time.Now()

	files, err := walker.Walk(a.cfg.SourceDir, a.cfg.Include, a.cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no source files found in %s", a.cfg.SourceDir)
	}

	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	if err := a.writeSharedAssets(); err != nil {
		return nil, err
	}

	// Everything the output tree will contain, for reference checking.
	expected := map[string]bool{
		a.cfg.Assets.Stylesheet: true,
		a.cfg.Assets.Script:     true,
		"pages.json":            true,
	}
	for _, f := range files {
		if f.Kind == walker.KindMarkdown {
			expected[mdPathToHTML(f.RelPath)] = true
		} else {
			expected[f.RelPath] = true
		}
	}

	stats := &Stats{}
	var pages []PageInfo
	var refs []pageRefs

	reporter.Start(len(files))
	for i, f := range files {
		reporter.Update(i+1, f.RelPath)

		src, err := os.ReadFile(f.Path)
		if err != nil {
			a.log.Warn("skipping unreadable source", zap.String("path", f.RelPath), zap.Error(err))
			stats.Warnings++
			continue
		}

		switch f.Kind {
		case walker.KindHTML:
			out, info, err := a.AssemblePage(src, f.RelPath)
			if err != nil {
				// Copy the page through untouched rather than losing it.
				a.log.Warn("copying page verbatim", zap.String("path", f.RelPath), zap.Error(err))
				stats.Warnings++
				out, info = src, PageInfo{RelPath: f.RelPath, Title: f.RelPath}
			} else {
				refs = append(refs, collectRefs(out, f.RelPath))
			}
			if err := a.writeOutput(f.RelPath, out); err != nil {
				return nil, err
			}
			pages = append(pages, info)
			stats.Pages++

		case walker.KindMarkdown:
			out, info, err := a.RenderMarkdownPage(src, f.RelPath)
			if err != nil {
				a.log.Warn("skipping markdown page", zap.String("path", f.RelPath), zap.Error(err))
				stats.Warnings++
				continue
			}
			refs = append(refs, collectRefs(out, info.RelPath))
			if err := a.writeOutput(info.RelPath, out); err != nil {
				return nil, err
			}
			pages = append(pages, info)
			stats.Pages++

		case walker.KindAsset:
			if err := a.writeOutput(f.RelPath, src); err != nil {
				return nil, err
			}
			stats.Assets++
		}
	}
	reporter.Finish()

	// A page reference that resolves to nothing in the output tree is worth
	// a warning, never a failure: a broken include must not block the build.
	for _, pr := range refs {
		for _, ref := range pr.refs {
			if !expected[ref] {
				a.log.Warn("page references missing file",
					zap.String("page", pr.page), zap.String("ref", ref))
				stats.Warnings++
			}
		}
	}

	index := BuildIndex(pages)
	if err := WriteIndex(index, filepath.Join(a.cfg.OutputDir, "pages.json")); err != nil {
		return nil, fmt.Errorf("writing page index: %w", err)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// writeSharedAssets emits the embedded stylesheet and script. A configured
// custom stylesheet is appended to the built-in one; if it cannot be read
// the build keeps going with the built-in styles alone.
func (a *Assembler) writeSharedAssets() error {
	css := cssContent
	if a.cfg.Assets.CustomCSS != "" {
		extra, err := os.ReadFile(a.cfg.Assets.CustomCSS)
		if err != nil {
			a.log.Debug("custom stylesheet not readable, using built-in styles",
				zap.String("path", a.cfg.Assets.CustomCSS), zap.Error(err))
		} else {
			css = css + "\n/* ============ Custom overrides ============ */\n" + string(extra)
		}
	}
	if err := os.WriteFile(filepath.Join(a.cfg.OutputDir, a.cfg.Assets.Stylesheet), []byte(css), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(a.cfg.OutputDir, a.cfg.Assets.Script), []byte(jsContent), 0o644)
}

func (a *Assembler) writeOutput(relPath string, data []byte) error {
	outPath := filepath.Join(a.cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

type pageRefs struct {
	page string
	refs []string
}

// collectRefs extracts the local file references of an assembled page,
// resolved to output-relative paths. External URLs, anchors, and references
// escaping the site root are ignored.
func collectRefs(page []byte, relPath string) pageRefs {
	pr := pageRefs{page: relPath}
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return pr
	}
	dir := path.Dir(relPath)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var ref string
			switch n.Data {
			case "img", "script":
				ref = attrVal(n, "src")
			case "link", "a":
				ref = attrVal(n, "href")
			}
			if resolved, ok := resolveRef(dir, ref); ok {
				pr.refs = append(pr.refs, resolved)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return pr
}

// resolveRef maps a page-relative reference to an output-relative path.
// The second return is false for references that cannot or should not be
// checked against the output tree.
func resolveRef(pageDir, ref string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") {
		return "", false
	}
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "mailto:") || strings.HasPrefix(ref, "data:") {
		return "", false
	}
	// Site-absolute and root-escaping references depend on the hosting
	// layout, which the build cannot see.
	if strings.HasPrefix(ref, "/") {
		return "", false
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if ref == "" {
		return "", false
	}
	resolved := path.Clean(path.Join(pageDir, ref))
	if resolved == "." || strings.HasPrefix(resolved, "../") {
		return "", false
	}
	return resolved, true
}
