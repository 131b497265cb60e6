package http

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"os"
	stdpath "path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/claes/mediaweb/internal/browse"
	"github.com/claes/mediaweb/internal/gallery"
	"github.com/claes/mediaweb/internal/media"
	"github.com/claes/mediaweb/internal/model"
)

type homePage struct {
	Title    string
	Total    int
	Sections []model.Section
}

type playerPage struct {
	Title    string
	Path     string
	Name     string
	Category model.Category
}

type viewerPage struct {
	Title string
	Nav   model.ImageNavigation
}

type browsePage struct {
	Title   string
	Listing model.DirectoryListing
}

func (s *server) handleHome(c *gin.Context) {
	listing, err := s.scanner.Scan()
	if err != nil {
		slog.Error("scan failed", "root", s.root, "err", err)
		httpError(c, nethttp.StatusInternalServerError, "unable to scan media folder")
		return
	}
	s.render(c, "index.html", homePage{
		Title:    "Media Library",
		Total:    listing.Total(),
		Sections: listing.Sections(),
	})
}

func (s *server) handleMedia(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("filepath"), "/")
	target, err := browse.Resolve(s.root, rel)
	if err != nil || target.Info.IsDir() {
		logLookup(rel, err)
		nethttp.NotFound(c.Writer, c.Request)
		return
	}
	f, err := os.Open(target.Abs)
	if err != nil {
		slog.Warn("open media failed", "path", target.Rel, "err", err)
		nethttp.NotFound(c.Writer, c.Request)
		return
	}
	defer f.Close()

	if ct := media.ContentType(target.Rel); ct != "" {
		c.Header("Content-Type", ct)
	}
	c.Header("Cache-Control", "public, max-age=60")
	// ServeContent handles Range and conditional requests.
	nethttp.ServeContent(c.Writer, c.Request, target.Info.Name(), target.Info.ModTime(), f)
}

func (s *server) handlePlayer(c *gin.Context) {
	target, ok := s.requireFile(c)
	if !ok {
		return
	}
	s.render(c, "player.html", playerPage{
		Title:    stdpath.Base(target.Rel),
		Path:     target.Rel,
		Name:     stdpath.Base(target.Rel),
		Category: s.classifier.ClassifyName(target.Rel, model.CategoryVideo),
	})
}

func (s *server) handleImageViewer(c *gin.Context) {
	target, ok := s.requireFile(c)
	if !ok {
		return
	}
	nav, err := gallery.Navigate(s.root, target.Rel, s.classifier)
	if err != nil {
		if errors.Is(err, browse.ErrNotFound) {
			httpError(c, nethttp.StatusNotFound, "File not found")
			return
		}
		slog.Error("image navigation failed", "path", target.Rel, "err", err)
		httpError(c, nethttp.StatusInternalServerError, "unable to read folder")
		return
	}
	s.render(c, "viewer.html", viewerPage{Title: nav.Name, Nav: nav})
}

func (s *server) handleBrowse(c *gin.Context) {
	rel := c.Query("path")
	listing, err := browse.ListDirectory(s.root, rel, s.classifier)
	if err != nil {
		if errors.Is(err, browse.ErrNotFound) {
			logLookup(rel, err)
			httpError(c, nethttp.StatusNotFound, "Folder not found")
			return
		}
		slog.Error("list folder failed", "path", rel, "err", err)
		httpError(c, nethttp.StatusInternalServerError, "unable to read folder")
		return
	}
	title := "Browse"
	if listing.Path != "" {
		title = stdpath.Base(listing.Path)
	}
	s.render(c, "browse.html", browsePage{Title: title, Listing: listing})
}

// requireFile resolves the "file" query parameter. A missing parameter
// redirects home; a missing file or a directory is a 404.
func (s *server) requireFile(c *gin.Context) (browse.Target, bool) {
	rel := c.Query("file")
	if rel == "" {
		c.Redirect(nethttp.StatusFound, "/")
		return browse.Target{}, false
	}
	target, err := browse.Resolve(s.root, rel)
	if err != nil || target.Info.IsDir() {
		logLookup(rel, err)
		httpError(c, nethttp.StatusNotFound, "File not found")
		return browse.Target{}, false
	}
	return target, true
}

func logLookup(rel string, err error) {
	switch {
	case err == nil:
		slog.Debug("lookup hit a directory", "path", rel)
	case errors.Is(err, browse.ErrPathEscape):
		slog.Warn("rejected path outside media root", "path", rel)
	case errors.Is(err, browse.ErrNotFound):
		slog.Debug("path not found", "path", rel)
	default:
		slog.Warn("lookup failed", "path", rel, "err", err)
	}
}
