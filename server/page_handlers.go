package server

import (
	"fmt"
	"net/http"
)

// PageHandler is the catch-all for page paths. Pages are rendered by the
// frontend; the server's job here is only to run the access policy and
// hand back the application shell.
func (s *Server) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!doctype html><html><head><title>%s</title></head><body><div id=\"app\"></div></body></html>", s.config.GetAppName())
	}
}
