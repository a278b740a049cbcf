package scenefile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index maps lowercase scene-file stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks dir (recursively) for *.json scene files. When two files
// share a stem the shallower path wins, then the lexically smaller one.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".json" {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || preferPath(path, existing) {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

func preferPath(a, b string) bool {
	da := strings.Count(filepath.ToSlash(a), "/")
	db := strings.Count(filepath.ToSlash(b), "/")
	if da != db {
		return da < db
	}
	return a < b
}

// ResolvePath returns the file for a scene name, or ("", false).
// Directory prefixes and extensions in name are ignored.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Paths returns every indexed file sorted by stem.
func (idx *Index) Paths() []string {
	stems := make([]string, 0, len(idx.entries))
	for s := range idx.entries {
		stems = append(stems, s)
	}
	sort.Strings(stems)
	paths := make([]string, len(stems))
	for i, s := range stems {
		paths[i] = idx.entries[s]
	}
	return paths
}

// Len returns the number of indexed scenes.
func (idx *Index) Len() int {
	return len(idx.entries)
}
