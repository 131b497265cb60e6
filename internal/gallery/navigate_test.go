package gallery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/claes/mediaweb/internal/browse"
	"github.com/claes/mediaweb/internal/media"
)

func setup(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, n := range names {
		p := filepath.Join(root, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func classifier() media.Classifier { return media.NewClassifier(media.DefaultTable()) }

func TestNavigate_Middle(t *testing.T) {
	root := setup(t, "album/c.gif", "album/a.jpg", "album/b.png", "album/notes.txt", "album/sub/z.jpg")

	nav, err := Navigate(root, "album/b.png", classifier())
	if err != nil {
		t.Fatal(err)
	}
	if nav.Index != 2 || nav.Total != 3 {
		t.Fatalf("got %d/%d, want 2/3", nav.Index, nav.Total)
	}
	if nav.Prev != "album/a.jpg" || nav.Next != "album/c.gif" {
		t.Fatalf("bad neighbours: prev=%q next=%q", nav.Prev, nav.Next)
	}
	if nav.Name != "b.png" || nav.Path != "album/b.png" {
		t.Fatalf("bad current: %+v", nav)
	}
}

func TestNavigate_Edges(t *testing.T) {
	root := setup(t, "a.jpg", "b.png", "c.gif")
	c := classifier()

	first, err := Navigate(root, "a.jpg", c)
	if err != nil {
		t.Fatal(err)
	}
	if first.Index != 1 || first.Prev != "" || first.Next != "b.png" {
		t.Fatalf("bad first: %+v", first)
	}

	last, err := Navigate(root, "c.gif", c)
	if err != nil {
		t.Fatal(err)
	}
	if last.Index != 3 || last.Next != "" || last.Prev != "b.png" {
		t.Fatalf("bad last: %+v", last)
	}
}

func TestNavigate_CaseInsensitiveOrder(t *testing.T) {
	root := setup(t, "B.JPG", "a.png", "c.webp")
	nav, err := Navigate(root, "B.JPG", classifier())
	if err != nil {
		t.Fatal(err)
	}
	if nav.Index != 2 || nav.Prev != "a.png" || nav.Next != "c.webp" {
		t.Fatalf("unexpected nav: %+v", nav)
	}
}

func TestNavigate_NonImageTargetDefaultsToFirst(t *testing.T) {
	root := setup(t, "a.jpg", "b.jpg", "readme.txt")
	nav, err := Navigate(root, "readme.txt", classifier())
	if err != nil {
		t.Fatal(err)
	}
	if nav.Index != 1 || nav.Total != 2 || nav.Prev != "" || nav.Next != "b.jpg" {
		t.Fatalf("unexpected nav: %+v", nav)
	}
}

func TestNavigate_SingleImage(t *testing.T) {
	root := setup(t, "only.png")
	nav, err := Navigate(root, "only.png", classifier())
	if err != nil {
		t.Fatal(err)
	}
	if nav.Index != 1 || nav.Total != 1 || nav.Prev != "" || nav.Next != "" {
		t.Fatalf("unexpected nav: %+v", nav)
	}
}

func TestNavigate_NotFound(t *testing.T) {
	root := setup(t, "dir/a.jpg")
	c := classifier()
	for _, rel := range []string{"missing.jpg", "dir", "../a.jpg", "/etc/passwd"} {
		if _, err := Navigate(root, rel, c); !errors.Is(err, browse.ErrNotFound) {
			t.Fatalf("Navigate(%q): expected ErrNotFound, got %v", rel, err)
		}
	}
}

func TestSiblings_SkipsFoldersNamedLikeImages(t *testing.T) {
	root := setup(t, "x.jpg", "folder.png/inner.jpg")
	got, err := Siblings(root, "", classifier())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Path != "x.jpg" {
		t.Fatalf("unexpected siblings: %+v", got)
	}
}

func TestSiblings_SkipsLinksOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "media")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{filepath.Join(root, "a.jpg"), filepath.Join(parent, "secret.jpg")} {
		if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Symlink(filepath.Join(parent, "secret.jpg"), filepath.Join(root, "b.jpg")); err != nil {
		t.Skipf("symlink: %v", err)
	}

	got, err := Siblings(root, "", classifier())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Path != "a.jpg" {
		t.Fatalf("unexpected siblings: %+v", got)
	}
}
