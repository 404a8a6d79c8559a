package assemble

import (
	"encoding/json"
	"os"
	"sort"
)

// IndexEntry is one page in pages.json, the site index the shared script's
// quick-switcher loads.
type IndexEntry struct {
	Path   string   `json:"path"`
	Title  string   `json:"title"`
	Crumbs []string `json:"crumbs,omitempty"`
}

// BuildIndex converts collected page infos into a sorted index.
func BuildIndex(pages []PageInfo) []IndexEntry {
	entries := make([]IndexEntry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, IndexEntry{
			Path:   p.RelPath,
			Title:  p.Title,
			Crumbs: p.Crumbs,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// WriteIndex writes the page index as JSON to the given path.
func WriteIndex(entries []IndexEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
