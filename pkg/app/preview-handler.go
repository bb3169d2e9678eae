package app

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/tmarchal/s3console/pkg/dto"
	"github.com/tmarchal/s3console/pkg/preview"
	"github.com/tmarchal/s3console/pkg/store"
)

// PreviewHandler resolves how an object should be rendered and returns
// the preview result. Rendering failures surface as a well-formed
// unavailable result, never as a 500.
func (s *App) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	bucket := r.URL.Query().Get("bucket")
	key := r.URL.Query().Get("key")
	if bucket == "" || key == "" {
		s.writeError(w, http.StatusBadRequest, "missing bucket name or object key")
		return
	}

	svc, err := s.cache.GetOrCreate(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "server not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	localPath, size, err := s.scratch.Fetch(r.Context(), svc, bucket, key)
	if err != nil {
		s.log.Error("preview fetch failed",
			slog.String("bucket", bucket),
			slog.String("key", key),
			slog.String("error", err.Error()))
		s.writeBackendError(w, err)
		return
	}
	defer os.Remove(localPath) //nolint:errcheck

	cdnBase, _ := s.store.GetCdnURL(id, bucket)
	result := preview.Resolve(preview.Request{
		EndpointID: id,
		Bucket:     bucket,
		Key:        key,
		LocalPath:  localPath,
		Size:       size,
		CdnBase:    cdnBase,
	})

	status := http.StatusOK
	if result.Kind == dto.PreviewTooLarge {
		status = http.StatusRequestEntityTooLarge
	}
	s.writeJSON(w, status, result)
}
