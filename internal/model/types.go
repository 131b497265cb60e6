package model

// Category classifies an entry of the media tree.
type Category string

const (
	CategoryVideo  Category = "video"
	CategoryAudio  Category = "audio"
	CategoryImage  Category = "image"
	CategoryFile   Category = "file"
	CategoryFolder Category = "folder"
)

// MediaCategories lists the categories the home page groups by, in display order.
var MediaCategories = []Category{CategoryVideo, CategoryAudio, CategoryImage}

// FileEntry represents a single file or folder under the media root.
type FileEntry struct {
	Name          string // base name
	Path          string // slash-separated path relative to root
	Category      Category
	Size          int64
	FormattedSize string // empty for folders
	Icon          string
	IsDir         bool
}

// MediaListing groups every media file under root by category.
type MediaListing map[Category][]FileEntry

// Section is one category group of a MediaListing.
type Section struct {
	Category Category
	Entries  []FileEntry
}

// Total returns the number of files across all categories.
func (l MediaListing) Total() int {
	n := 0
	for _, entries := range l {
		n += len(entries)
	}
	return n
}

// Sections returns the groups in MediaCategories order.
func (l MediaListing) Sections() []Section {
	out := make([]Section, 0, len(MediaCategories))
	for _, c := range MediaCategories {
		out = append(out, Section{Category: c, Entries: l[c]})
	}
	return out
}

// Crumb is one segment of a breadcrumb trail.
type Crumb struct {
	Name string
	Path string // cumulative relative path
}

// DirectoryListing represents the immediate children of one directory.
type DirectoryListing struct {
	Path        string // relative path from root ("" for root)
	ParentPath  string // relative path to parent ("" if at root)
	Breadcrumbs []Crumb
	Entries     []FileEntry // ".." first when Path != ""
}

// ImageNavigation locates an image among its sibling images.
type ImageNavigation struct {
	Path  string
	Name  string
	Index int // 1-based
	Total int
	Prev  string // "" when there is no previous image
	Next  string // "" when there is no next image
}
