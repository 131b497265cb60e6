package media

import (
	"path/filepath"
	"strings"

	"github.com/claes/mediaweb/internal/model"
)

// Table maps a media category to its file extensions (without the leading dot).
type Table map[model.Category][]string

// DefaultTable returns the built-in extension table.
func DefaultTable() Table {
	return Table{
		model.CategoryVideo: {"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "m4v"},
		model.CategoryAudio: {"mp3", "m4a", "wav", "flac", "aac", "ogg", "wma"},
		model.CategoryImage: {"jpg", "jpeg", "png", "gif", "bmp", "webp"},
	}
}

// Classifier maps file extensions to categories. The zero value knows no
// extensions; build one with NewClassifier.
type Classifier struct {
	byExt map[string]model.Category
}

// NewClassifier builds a Classifier from t. Extensions are matched
// case-insensitively and may be given with or without a leading dot. When an
// extension appears under several categories, the first in
// model.MediaCategories order wins.
func NewClassifier(t Table) Classifier {
	c := Classifier{byExt: make(map[string]model.Category)}
	for _, cat := range model.MediaCategories {
		for _, ext := range t[cat] {
			ext = normExt(ext)
			if ext == "" {
				continue
			}
			if _, taken := c.byExt[ext]; !taken {
				c.byExt[ext] = cat
			}
		}
	}
	return c
}

// Lookup reports the media category of ext, if any.
func (c Classifier) Lookup(ext string) (model.Category, bool) {
	cat, ok := c.byExt[normExt(ext)]
	return cat, ok
}

// Classify returns the category of ext, or model.CategoryFile when unknown.
func (c Classifier) Classify(ext string) model.Category {
	return c.ClassifyOr(ext, model.CategoryFile)
}

// ClassifyOr returns the category of ext, or fallback when unknown.
func (c Classifier) ClassifyOr(ext string, fallback model.Category) model.Category {
	if cat, ok := c.Lookup(ext); ok {
		return cat
	}
	return fallback
}

// ClassifyName classifies a file name by its extension.
func (c Classifier) ClassifyName(name string, fallback model.Category) model.Category {
	return c.ClassifyOr(filepath.Ext(name), fallback)
}

// IsImage reports whether name has an image extension.
func (c Classifier) IsImage(name string) bool {
	cat, ok := c.Lookup(filepath.Ext(name))
	return ok && cat == model.CategoryImage
}

// Icon returns the glyph shown next to entries of category cat.
func Icon(cat model.Category) string {
	switch cat {
	case model.CategoryVideo:
		return "🎬"
	case model.CategoryAudio:
		return "🎵"
	case model.CategoryImage:
		return "🖼️"
	case model.CategoryFolder:
		return "📁"
	default:
		return "📄"
	}
}

func normExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
