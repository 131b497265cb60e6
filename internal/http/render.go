package http

import (
	"embed"
	"html/template"
	"io/fs"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/claes/mediaweb/internal/model"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.New("pages").Funcs(template.FuncMap{
		"mediaURL":  mediaURL,
		"playerURL": playerURL,
		"viewerURL": viewerURL,
		"browseURL": browseURL,
		"entryURL":  entryURL,
		"label":     categoryLabel,
	}).ParseFS(templateFiles, "templates/*.html"))
}

func staticFS() nethttp.FileSystem {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return nethttp.FS(sub)
}

// mediaURL escapes each segment of rel so names containing '#', '?' or
// spaces survive the round trip.
func mediaURL(rel string) string {
	parts := strings.Split(rel, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/media/" + strings.Join(parts, "/")
}

func playerURL(rel string) string { return "/player?file=" + url.QueryEscape(rel) }

func viewerURL(rel string) string { return "/image-viewer?file=" + url.QueryEscape(rel) }

func browseURL(rel string) string {
	if rel == "" {
		return "/browse"
	}
	return "/browse?path=" + url.QueryEscape(rel)
}

// entryURL links an entry to the page that opens it.
func entryURL(e model.FileEntry) string {
	switch e.Category {
	case model.CategoryFolder:
		return browseURL(e.Path)
	case model.CategoryImage:
		return viewerURL(e.Path)
	case model.CategoryVideo, model.CategoryAudio:
		return playerURL(e.Path)
	default:
		return mediaURL(e.Path)
	}
}

func categoryLabel(c model.Category) string {
	switch c {
	case model.CategoryVideo:
		return "Videos"
	case model.CategoryAudio:
		return "Audio"
	case model.CategoryImage:
		return "Images"
	case model.CategoryFolder:
		return "Folders"
	default:
		return "Files"
	}
}
