// Package app wires the HTTP surface of the console: endpoint CRUD,
// bucket and object browsing, transfers, previews and CDN configuration.
package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tmarchal/s3console/pkg/clientcache"
	"github.com/tmarchal/s3console/pkg/config"
	"github.com/tmarchal/s3console/pkg/health"
	"github.com/tmarchal/s3console/pkg/store"
	"github.com/tmarchal/s3console/pkg/transfer"
	"github.com/tmarchal/s3console/pkg/views"
)

// App is the console application.
type App struct {
	cfg     config.Config
	store   *store.Store
	cache   *clientcache.Cache
	scratch *transfer.Scratch
	janitor *transfer.Janitor
	monitor *health.Monitor
	router  *mux.Router
	views   *views.Views
	srv     *http.Server
	log     *slog.Logger
}

// NewApp assembles the application and starts its web server.
func NewApp(cfg config.Config) (*App, error) {
	s := &App{
		cfg:    cfg,
		router: mux.NewRouter().StrictSlash(true),
		views:  views.NewViews(),
		srv:    &http.Server{},
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	s.store = store.New(cfg.StorePath)
	s.cache = clientcache.New(s.store)
	s.store.OnInvalidate(s.cache.Invalidate)

	scratch, err := transfer.NewScratch(cfg.ScratchDir)
	if err != nil {
		return s, err
	}
	s.scratch = scratch

	janitor, err := transfer.NewJanitor(scratch, cfg.JanitorSpec, s.log)
	if err != nil {
		return s, err
	}
	s.janitor = janitor

	s.monitor = health.NewMonitor(cfg.StorePath, scratch.Dir(), s.log)

	s.initRouter()
	s.janitor.Start()
	s.monitor.Start(context.Background())
	go s.startWebServer()

	return s, nil
}

func (s *App) startWebServer() {
	s.srv.Addr = s.cfg.ListenAddr
	s.log.Info("listening", slog.String("addr", s.cfg.ListenAddr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Error("web server stopped", slog.String("error", err.Error()))
	}
}

// StopServer shuts down the web server and background tasks.
func (s *App) StopServer() {
	s.janitor.Stop()
	s.monitor.Stop()
	if err := s.srv.Shutdown(context.Background()); err != nil {
		s.log.Error("error shutting down server", slog.String("error", err.Error()))
	}
}

// SetLogger sets the logger on the app and all its components.
func (s *App) SetLogger(log *slog.Logger) {
	s.log = log
	s.store.SetLogger(log)
	s.cache.SetLogger(log)
	s.scratch.SetLogger(log)
	s.janitor.SetLogger(log)
	s.monitor.SetLogger(log)
}

// Router returns the HTTP handler, usable directly in tests.
func (s *App) Router() http.Handler {
	return s.router
}
