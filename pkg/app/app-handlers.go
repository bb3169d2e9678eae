package app

import (
	"log/slog"
	"net/http"
	"strings"
)

// IndexHandler serves the console shell page.
func (s *App) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.views.Index().Render(r.Context(), w); err != nil {
		s.log.Error("error rendering index", slog.String("error", err.Error()))
	}
}

// NotFoundHandler serves unmatched routes: API paths get the JSON error
// envelope, everything else gets the HTML error page.
func (s *App) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		s.writeError(w, http.StatusNotFound, "route not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := s.views.ErrorPage("page not found").Render(r.Context(), w); err != nil {
		s.log.Error("error rendering error page", slog.String("error", err.Error()))
	}
}

// HealthHandler reports the health of the console's local resources.
func (s *App) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	info := s.monitor.GetHealthInfo()
	status := http.StatusOK
	if !s.monitor.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, info)
}
