package gallery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	stdpath "path"
	"path/filepath"

	"github.com/claes/mediaweb/internal/browse"
	"github.com/claes/mediaweb/internal/media"
	"github.com/claes/mediaweb/internal/model"
)

// Navigate locates the image at rel among the images in the same directory
// and returns its position and neighbours. A target that is not one of the
// listed images gets index 1 with no previous image.
func Navigate(root, rel string, c media.Classifier) (model.ImageNavigation, error) {
	target, err := browse.Resolve(root, rel)
	if err != nil {
		return model.ImageNavigation{}, err
	}
	if target.Info.IsDir() {
		return model.ImageNavigation{}, fmt.Errorf("%s is a directory: %w", target.Rel, browse.ErrNotFound)
	}

	siblings, err := Siblings(root, browse.ParentOf(target.Rel), c)
	if err != nil {
		return model.ImageNavigation{}, err
	}

	idx := 0
	for i, s := range siblings {
		if s.Path == target.Rel {
			idx = i
			break
		}
	}

	nav := model.ImageNavigation{
		Path:  target.Rel,
		Name:  stdpath.Base(target.Rel),
		Index: idx + 1,
		Total: len(siblings),
	}
	if idx > 0 {
		nav.Prev = siblings[idx-1].Path
	}
	if idx < len(siblings)-1 {
		nav.Next = siblings[idx+1].Path
	}
	return nav, nil
}

// Siblings lists the image files directly inside dir, sorted by name.
func Siblings(root, dir string, c media.Classifier) ([]model.FileEntry, error) {
	target, err := browse.Resolve(root, dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(target.Abs)
	if err != nil {
		return nil, err
	}

	images := make([]model.FileEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !c.IsImage(e.Name()) {
			continue
		}
		abs := filepath.Join(target.Abs, e.Name())
		info, err := os.Stat(abs)
		if err != nil {
			slog.Warn("gallery: skipping entry", "name", e.Name(), "err", err)
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 && !browse.WithinRoot(root, abs) {
			continue
		}
		if info.IsDir() {
			continue
		}
		size := info.Size()
		images = append(images, model.FileEntry{
			Name:          e.Name(),
			Path:          browse.JoinRel(target.Rel, e.Name()),
			Category:      model.CategoryImage,
			Size:          size,
			FormattedSize: media.FormatSize(uint64(size)),
			Icon:          media.Icon(model.CategoryImage),
		})
	}
	media.SortEntries(images)
	return images, nil
}
