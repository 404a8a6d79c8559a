// Package walker discovers site source files beneath a root directory,
// applying include and exclude glob filters.
package walker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind classifies a discovered file by how the assembler treats it.
type Kind int

const (
	KindHTML     Kind = iota // assembled page
	KindMarkdown             // converted to a page
	KindAsset                // copied through verbatim
)

// File is one source file discovered under the site root.
type File struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the root.
	Kind    Kind
}

// skipDirs are directory names never descended into, independent of the
// configured exclude patterns.
var skipDirs = []string{".git", ".dashsite", "node_modules", ".idea", ".vscode"}

// SkipDir reports whether a directory name is on the always-skip list.
// The file watcher uses it too, so watched trees and walked trees agree.
func SkipDir(name string) bool {
	for _, d := range skipDirs {
		if strings.EqualFold(name, d) {
			return true
		}
	}
	return false
}

// Walk traverses the tree rooted at root and returns every regular file
// that passes the include and exclude filters, classified by extension.
// Traversal order is lexical, so output is deterministic.
func Walk(root string, include, exclude []string) ([]File, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	var files []File
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if d.IsDir() {
			if SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(rel, include, true) {
			return nil
		}
		if matchesAny(rel, exclude, false) {
			return nil
		}

		files = append(files, File{Path: path, RelPath: rel, Kind: classify(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	return files, nil
}

// classify maps a relative path to its assembler treatment.
func classify(relPath string) Kind {
	switch strings.ToLower(filepath.Ext(relPath)) {
	case ".html", ".htm":
		return KindHTML
	case ".md", ".markdown":
		return KindMarkdown
	default:
		return KindAsset
	}
}

// matchesAny checks relPath against the given glob patterns, also trying
// each pattern against the bare filename so that "*.min.js" style patterns
// work at any depth. empty controls the result for an empty pattern list:
// an empty include list matches everything, an empty exclude list nothing.
func matchesAny(relPath string, patterns []string, empty bool) bool {
	if len(patterns) == 0 {
		return empty
	}
	base := filepath.Base(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
