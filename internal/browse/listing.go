package browse

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claes/mediaweb/internal/media"
	"github.com/claes/mediaweb/internal/model"
)

// ListDirectory returns the immediate children of rel under root.
// Children are sorted case-insensitively by name, with a leading ".." entry
// when rel is not the root. Entries that cannot be stat'ed, and links leading
// outside root, are skipped.
func ListDirectory(root, rel string, c media.Classifier) (model.DirectoryListing, error) {
	target, err := Resolve(root, rel)
	if err != nil {
		return model.DirectoryListing{}, err
	}
	if !target.Info.IsDir() {
		return model.DirectoryListing{}, fmt.Errorf("%s is not a directory: %w", target.Rel, ErrNotFound)
	}

	listing := model.DirectoryListing{
		Path:        target.Rel,
		Breadcrumbs: Breadcrumbs(target.Rel),
	}
	if listing.Path != "" {
		listing.ParentPath = ParentOf(listing.Path)
	}

	dirEntries, err := os.ReadDir(target.Abs)
	if err != nil {
		return model.DirectoryListing{}, err
	}

	children := make([]model.FileEntry, 0, len(dirEntries))
	for _, e := range dirEntries {
		name := e.Name()
		rel := JoinRel(listing.Path, name)
		// Stat follows symlinks so a linked folder lists as a folder.
		info, err := os.Stat(filepath.Join(target.Abs, name))
		if err != nil {
			slog.Warn("skipping unreadable entry", "path", rel, "err", err)
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 && !WithinRoot(root, filepath.Join(target.Abs, name)) {
			slog.Debug("skipping link outside media root", "path", rel)
			continue
		}
		if info.IsDir() {
			children = append(children, folderEntry(name, rel))
			continue
		}
		cat := c.ClassifyName(name, model.CategoryFile)
		size := info.Size()
		children = append(children, model.FileEntry{
			Name:          name,
			Path:          rel,
			Category:      cat,
			Size:          size,
			FormattedSize: media.FormatSize(uint64(size)),
			Icon:          media.Icon(cat),
		})
	}
	media.SortEntries(children)

	if listing.Path != "" {
		up := folderEntry("..", listing.ParentPath)
		listing.Entries = append(listing.Entries, up)
	}
	listing.Entries = append(listing.Entries, children...)
	return listing, nil
}

// Breadcrumbs splits a clean relative path into cumulative crumbs.
func Breadcrumbs(rel string) []model.Crumb {
	if rel == "" {
		return nil
	}
	parts := strings.Split(rel, "/")
	crumbs := make([]model.Crumb, 0, len(parts))
	for i, p := range parts {
		crumbs = append(crumbs, model.Crumb{Name: p, Path: strings.Join(parts[:i+1], "/")})
	}
	return crumbs
}

func folderEntry(name, rel string) model.FileEntry {
	return model.FileEntry{
		Name:     name,
		Path:     rel,
		Category: model.CategoryFolder,
		Icon:     media.Icon(model.CategoryFolder),
		IsDir:    true,
	}
}
