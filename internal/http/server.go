package http

import (
	"bytes"
	"html/template"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/claes/mediaweb/internal/media"
	"github.com/claes/mediaweb/internal/scan"
)

const requestIDHeader = "X-Request-ID"

type server struct {
	root       string
	classifier media.Classifier
	scanner    *scan.Scanner
	tpl        *template.Template
}

// NewServer creates an HTTP handler serving the media tree rooted at root.
// root must be an absolute, existing directory.
func NewServer(root string, c media.Classifier) nethttp.Handler {
	s := &server{
		root:       root,
		classifier: c,
		scanner:    scan.New(root, c),
		tpl:        parseTemplates(),
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/", s.handleHome)
	r.GET("/media/*filepath", s.handleMedia)
	r.GET("/player", s.handlePlayer)
	r.GET("/image-viewer", s.handleImageViewer)
	r.GET("/browse", s.handleBrowse)
	r.GET("/health", gin.WrapH(HealthHandler(root)))

	static := staticFS()
	r.StaticFileFS("/static/style.css", "style.css", static)
	r.StaticFileFS("/static/app.js", "app.js", static)
	return r
}

// requestLogger tags each request with an id and logs it once it completes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set("request_id", id)

		c.Next()

		slog.Info("request",
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"dur", time.Since(start),
		)
	}
}

// render executes the named page into a buffer so a template failure can
// still be reported as a 500.
func (s *server) render(c *gin.Context, name string, data any) {
	var buf bytes.Buffer
	if err := s.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("render failed", "template", name, "err", err)
		httpError(c, nethttp.StatusInternalServerError, "unable to render page")
		return
	}
	c.Data(nethttp.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// httpError writes a plain-text error body.
func httpError(c *gin.Context, code int, msg string) {
	c.String(code, msg)
}
