package media

import (
	"sort"
	"strings"

	"github.com/claes/mediaweb/internal/model"
)

// SortEntries orders entries case-insensitively by name. Ties fall back to
// the exact name and then the relative path so the order is total.
func SortEntries(entries []model.FileEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return lessEntry(entries[i], entries[j])
	})
}

func lessEntry(a, b model.FileEntry) bool {
	la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if la != lb {
		return la < lb
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Path < b.Path
}
