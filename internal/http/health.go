package http

import (
	"io"
	nethttp "net/http"
	"os"
)

// HealthHandler reports whether the media root is still a readable directory.
func HealthHandler(root string) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
			w.WriteHeader(nethttp.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"status":"unavailable"}`)
			return
		}
		w.WriteHeader(nethttp.StatusOK)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
}
