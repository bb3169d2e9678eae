// Package views renders the console shell and serves its static assets.
package views

import (
	"embed"
	"net/http"
)

//go:embed static
var staticFS embed.FS

type Views struct {
	staticHandler http.Handler
}

func NewViews() *Views {
	return &Views{
		staticHandler: http.FileServer(http.FS(staticFS)),
	}
}
