package browse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	stdpath "path"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when a relative path does not exist under root.
	ErrNotFound = errors.New("not found")
	// ErrPathEscape is returned when a relative path normalizes outside root.
	// It wraps ErrNotFound so traversal attempts are reported the same way.
	ErrPathEscape = fmt.Errorf("path escapes media root: %w", ErrNotFound)
)

// Target is a relative path resolved against the media root.
type Target struct {
	Rel  string // clean slash-separated path ("" for root)
	Abs  string
	Info fs.FileInfo
}

// Resolve cleans rel, joins it with root and stats the result. Targets whose
// symlinks lead outside root are rejected with ErrPathEscape.
func Resolve(root, rel string) (Target, error) {
	clean, err := CleanRel(rel)
	if err != nil {
		return Target{}, err
	}
	abs := filepath.Join(root, filepath.FromSlash(clean))
	if !IsSubpath(root, abs) {
		return Target{}, ErrPathEscape
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Target{}, fmt.Errorf("%s: %w", clean, ErrNotFound)
		}
		return Target{}, err
	}
	if !WithinRoot(root, abs) {
		return Target{}, ErrPathEscape
	}
	return Target{Rel: clean, Abs: abs, Info: info}, nil
}

// WithinRoot reports whether abs still lies under root once symlinks on
// both sides are resolved. A link inside root that points outside it fails.
func WithinRoot(root, abs string) bool {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return false
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return false
	}
	return IsSubpath(realRoot, real)
}

// CleanRel normalizes rel to a slash-separated path relative to root.
// "" and "." mean root. Absolute paths and paths climbing above root fail
// with ErrPathEscape.
func CleanRel(rel string) (string, error) {
	rel = filepath.ToSlash(rel)
	if rel == "" {
		return "", nil
	}
	if strings.HasPrefix(rel, "/") || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", ErrPathEscape
	}
	p := stdpath.Clean(rel)
	if p == "." {
		return "", nil
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", ErrPathEscape
	}
	return p, nil
}

// ParentOf returns the parent of a clean relative path ("" at the top level).
func ParentOf(rel string) string {
	p := stdpath.Dir(rel)
	if p == "." || p == "/" {
		return ""
	}
	// prevent going above root
	if p == ".." || strings.HasPrefix(p, "../") {
		return ""
	}
	return p
}

// JoinRel joins a clean relative directory and a child name.
func JoinRel(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// IsSubpath ensures child is within root, preventing path traversal.
func IsSubpath(root, child string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absChild, err := filepath.Abs(child)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absChild)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != ".."
}
