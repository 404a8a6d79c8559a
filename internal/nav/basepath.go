// Package nav computes relative base paths and renders the shared
// navigation bar and breadcrumb trail as self-contained HTML fragments.
package nav

import "strings"

// ResolveBasePath computes the relative prefix that leads from the page at
// currentPath back to the site root, so shared assets resolve from any depth.
//
// rootMarkers is an ordered list of path segments that mark the site root
// (the same site may be mounted under different names, e.g. a local
// development directory and a public hosting path). The first marker found
// as a substring of currentPath wins; only its first occurrence counts.
// Each directory separator after the marker contributes one "../". A page
// directly under the root yields "./", never the empty string.
//
// When no marker matches, the same-directory prefix "./" is returned. The
// navigation layer is decorative and must never fail a page over an
// unrecognized mount; callers that want to surface the miss can check
// the path against the markers themselves.
func ResolveBasePath(currentPath string, rootMarkers []string) string {
	for _, marker := range rootMarkers {
		if marker == "" {
			continue
		}
		idx := strings.Index(currentPath, marker)
		if idx < 0 {
			continue
		}
		rest := currentPath[idx+len(marker):]
		depth := strings.Count(rest, "/")
		if depth == 0 {
			return "./"
		}
		prefix := ""
		for i := 0; i < depth; i++ {
			prefix += "../"
		}
		return prefix
	}
	return "./"
}

// UnderMarker reports whether currentPath contains any of the root markers.
// The assembler uses it to log pages that fell back to the same-directory
// prefix without a recognized root.
func UnderMarker(currentPath string, rootMarkers []string) bool {
	for _, marker := range rootMarkers {
		if marker != "" && strings.Contains(currentPath, marker) {
			return true
		}
	}
	return false
}
