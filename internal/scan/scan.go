package scan

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claes/mediaweb/internal/browse"
	"github.com/claes/mediaweb/internal/media"
	"github.com/claes/mediaweb/internal/model"
)

// Scanner walks a media root and groups its media files by category.
type Scanner struct {
	root       string
	classifier media.Classifier
}

// New returns a Scanner for root.
func New(root string, c media.Classifier) *Scanner {
	return &Scanner{root: filepath.Clean(root), classifier: c}
}

// Scan walks the whole tree once and returns every file with a known media
// extension, grouped by category and sorted by name.
//
// Symlinked directories are not descended, which keeps cyclic links from
// looping; symlinked files count with the size of their target unless they
// lead outside the root. A root that is itself a symlink is followed. Unreadable
// entries below the root are logged and skipped.
func (s *Scanner) Scan() (model.MediaListing, error) {
	listing := make(model.MediaListing, len(model.MediaCategories))
	for _, c := range model.MediaCategories {
		listing[c] = []model.FileEntry{}
	}

	// WalkDir does not descend a root that is itself a symlink.
	root, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			slog.Warn("scan: skipping unreadable path", "path", path, "err", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		cat, ok := s.classifier.Lookup(filepath.Ext(d.Name()))
		if !ok {
			return nil
		}

		info, err := s.fileInfo(root, path, d)
		if err != nil {
			slog.Warn("scan: skipping entry", "path", path, "err", err)
			return nil
		}
		if info == nil {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		size := info.Size()
		listing[cat] = append(listing[cat], model.FileEntry{
			Name:          d.Name(),
			Path:          filepath.ToSlash(rel),
			Category:      cat,
			Size:          size,
			FormattedSize: media.FormatSize(uint64(size)),
			Icon:          media.Icon(cat),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, c := range model.MediaCategories {
		media.SortEntries(listing[c])
	}
	return listing, nil
}

// fileInfo returns the info of a regular file, following symlinks. It
// returns nil for anything that is not a regular file after resolution, and
// for links leading outside root.
func (s *Scanner) fileInfo(root, path string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() || !browse.WithinRoot(root, path) {
			return nil, nil
		}
		return info, nil
	}
	if !d.Type().IsRegular() {
		return nil, nil
	}
	return d.Info()
}
