package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/tmarchal/s3console/pkg/listing"
	"github.com/tmarchal/s3console/pkg/s3svc"
	"github.com/tmarchal/s3console/pkg/store"
)

const (
	// DefaultPerPage is the listing page size when per_page is absent.
	DefaultPerPage = 50
	// MaxPerPage caps the listing page size.
	MaxPerPage = 1000
)

var (
	// ErrInvalidPageFormat is returned when a pagination parameter cannot be parsed as a number.
	ErrInvalidPageFormat = errors.New("invalid pagination parameter: must be a number")
	// ErrInvalidPageValue is returned when a pagination parameter is less than 1.
	ErrInvalidPageValue = errors.New("invalid pagination parameter: must be >= 1")
)

// parsePaginationParams extracts page and per_page from query parameters,
// applying defaults for absent values.
func parsePaginationParams(r *http.Request) (page, perPage int, err error) {
	page, err = positiveQueryParam(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	perPage, err = positiveQueryParam(r, "per_page", DefaultPerPage)
	if err != nil {
		return 0, 0, err
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage, nil
}

func positiveQueryParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPageFormat, err)
	}
	if value < 1 {
		return 0, ErrInvalidPageValue
	}
	return value, nil
}

// ListBucketsHandler lists the buckets of an endpoint.
func (s *App) ListBucketsHandler(w http.ResponseWriter, r *http.Request) {
	svc, err := s.cache.GetOrCreate(pathID(r))
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "server not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	buckets, err := svc.ListBuckets(r.Context())
	if err != nil {
		s.log.Error("failed to list buckets", slog.String("error", err.Error()))
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"buckets": buckets})
}

// ListObjectsHandler returns one page of the folder and file view for a
// bucket prefix.
func (s *App) ListObjectsHandler(w http.ResponseWriter, r *http.Request) {
	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		s.writeError(w, http.StatusBadRequest, "missing bucket name")
		return
	}
	prefix := r.URL.Query().Get("prefix")

	page, perPage, err := parsePaginationParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	svc, err := s.cache.GetOrCreate(pathID(r))
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "server not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	raw, err := svc.ListObjects(r.Context(), bucket, prefix, s3svc.Delimiter)
	if err != nil {
		s.log.Error("failed to list objects",
			slog.String("bucket", bucket),
			slog.String("prefix", prefix),
			slog.String("error", err.Error()))
		s.writeBackendError(w, err)
		return
	}

	entries := listing.Build(prefix, s3svc.Delimiter, raw)
	s.writeJSON(w, http.StatusOK, listing.Page(entries, page, perPage))
}

// folderRequest is the JSON body for creating a folder marker.
type folderRequest struct {
	Bucket     string `json:"bucket"`
	FolderPath string `json:"folder_path"`
}

// CreateFolderHandler creates a folder marker object.
func (s *App) CreateFolderHandler(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Bucket == "" || strings.TrimSpace(req.FolderPath) == "" {
		s.writeError(w, http.StatusBadRequest, "missing bucket name or folder path")
		return
	}

	svc, err := s.cache.GetOrCreate(pathID(r))
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "server not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := svc.CreateFolder(r.Context(), req.Bucket, req.FolderPath); err != nil {
		s.log.Error("failed to create folder", slog.String("error", err.Error()))
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
