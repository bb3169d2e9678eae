package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tmarchal/s3console/pkg/store"
	"github.com/tmarchal/s3console/pkg/transfer"
)

// UploadHandler accepts a multipart file and stores it under
// prefix + sanitized filename in the target bucket.
func (s *App) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file too large, maximum is %s", formatMiB(s.cfg.MaxUploadSize)))
			return
		}
		s.writeError(w, http.StatusBadRequest, "failed to parse upload request")
		return
	}

	bucket := r.FormValue("bucket")
	if bucket == "" {
		s.writeError(w, http.StatusBadRequest, "missing bucket name")
		return
	}
	prefix := r.FormValue("prefix")

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close() //nolint:errcheck
	if header.Filename == "" {
		s.writeError(w, http.StatusBadRequest, "empty filename")
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

	key := prefix + transfer.SanitizeFilename(header.Filename)
	s.log.Info("upload request",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int64("size", header.Size))

	if err := s.scratch.Upload(r.Context(), svc, bucket, key, file); err != nil {
		s.log.Error("upload failed", slog.String("error", err.Error()))
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "object_name": key})
}

// DownloadHandler streams an object to the client as an attachment. The
// scratch copy is removed when the response stream closes.
func (s *App) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	bucket := r.URL.Query().Get("bucket")
	key := r.URL.Query().Get("key")
	if bucket == "" || key == "" {
		s.writeError(w, http.StatusBadRequest, "missing bucket name or object key")
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

	rc, size, err := s.scratch.Download(r.Context(), svc, bucket, key)
	if err != nil {
		s.log.Error("download failed",
			slog.String("bucket", bucket),
			slog.String("key", key),
			slog.String("error", err.Error()))
		s.writeBackendError(w, err)
		return
	}
	defer rc.Close() //nolint:errcheck

	filename := key
	if i := strings.LastIndex(key, "/"); i >= 0 {
		filename = key[i+1:]
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone; nothing to send back but a log line.
		s.log.Warn("download stream interrupted", slog.String("error", err.Error()))
	}
}

// deleteRequest is the JSON body for deleting objects and folders.
type deleteRequest struct {
	Bucket string   `json:"bucket"`
	Keys   []string `json:"keys"`
}

// DeleteObjectsHandler deletes a set of keys. Keys ending with the
// delimiter are folder deletes (everything under the prefix); per-key
// failures are collected and reported jointly.
func (s *App) DeleteObjectsHandler(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Bucket == "" || len(req.Keys) == 0 {
		s.writeError(w, http.StatusBadRequest, "missing bucket name or object keys")
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

	var failures []string
	for _, key := range req.Keys {
		var delErr error
		if strings.HasSuffix(key, "/") {
			delErr = svc.DeleteFolder(r.Context(), req.Bucket, key)
		} else {
			delErr = svc.DeleteObject(r.Context(), req.Bucket, key)
		}
		if delErr != nil {
			failures = append(failures, fmt.Sprintf("delete %s failed: %s", key, delErr))
		}
	}

	if len(failures) > 0 {
		s.log.Error("delete completed with failures",
			slog.Int("failed", len(failures)),
			slog.Int("total", len(req.Keys)))
		s.writeError(w, http.StatusInternalServerError, strings.Join(failures, "; "))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func formatMiB(bytes int64) string {
	return fmt.Sprintf("%d MB", bytes/(1024*1024))
}
