package app

import "net/http"

// initRouter initializes the router of the App
func (s *App) initRouter() {
	s.router.PathPrefix("/static").Handler(s.views.GetStaticHandler())
	s.router.HandleFunc("/", s.IndexHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/servers", s.ListServersHandler).Methods(http.MethodGet)
	api.HandleFunc("/servers", s.AddServerHandler).Methods(http.MethodPost)
	api.HandleFunc("/servers/{id:[0-9]+}", s.UpdateServerHandler).Methods(http.MethodPut)
	api.HandleFunc("/servers/{id:[0-9]+}", s.DeleteServerHandler).Methods(http.MethodDelete)

	api.HandleFunc("/servers/{id:[0-9]+}/buckets", s.ListBucketsHandler).Methods(http.MethodGet)
	api.HandleFunc("/servers/{id:[0-9]+}/objects", s.ListObjectsHandler).Methods(http.MethodGet)
	api.HandleFunc("/servers/{id:[0-9]+}/upload", s.UploadHandler).Methods(http.MethodPost)
	api.HandleFunc("/servers/{id:[0-9]+}/download", s.DownloadHandler).Methods(http.MethodGet)
	api.HandleFunc("/servers/{id:[0-9]+}/delete", s.DeleteObjectsHandler).Methods(http.MethodDelete)
	api.HandleFunc("/servers/{id:[0-9]+}/folders", s.CreateFolderHandler).Methods(http.MethodPost)
	api.HandleFunc("/servers/{id:[0-9]+}/preview", s.PreviewHandler).Methods(http.MethodGet)

	api.HandleFunc("/servers/{id:[0-9]+}/cdn", s.GetCdnHandler).Methods(http.MethodGet)
	api.HandleFunc("/servers/{id:[0-9]+}/cdn", s.SetCdnHandler).Methods(http.MethodPut)
	api.HandleFunc("/servers/{id:[0-9]+}/cdn", s.DeleteCdnHandler).Methods(http.MethodDelete)

	s.router.NotFoundHandler = http.HandlerFunc(s.NotFoundHandler)

	s.srv.Handler = s.router
}
