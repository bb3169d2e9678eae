package app

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tmarchal/s3console/pkg/store"
)

// cdnRequest is the JSON body for setting a bucket's CDN override.
type cdnRequest struct {
	Bucket string `json:"bucket"`
	CdnURL string `json:"cdn_url"`
}

// GetCdnHandler returns the CDN override configured for a bucket, if any.
func (s *App) GetCdnHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		s.writeError(w, http.StatusBadRequest, "missing bucket name")
		return
	}
	if _, err := s.store.Get(id); err != nil {
		s.writeError(w, http.StatusNotFound, "server not found")
		return
	}

	url, ok := s.store.GetCdnURL(id, bucket)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"bucket":     bucket,
		"cdn_url":    url,
		"configured": ok,
	})
}

// SetCdnHandler sets or replaces the CDN override for a bucket.
func (s *App) SetCdnHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var req cdnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Bucket == "" || req.CdnURL == "" {
		s.writeError(w, http.StatusBadRequest, "missing bucket name or CDN URL")
		return
	}

	err := s.store.SetCdnURL(id, req.Bucket, req.CdnURL)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "server not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteCdnHandler removes the CDN override for a bucket.
func (s *App) DeleteCdnHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		s.writeError(w, http.StatusBadRequest, "missing bucket name")
		return
	}

	err := s.store.DeleteCdnURL(id, bucket)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "server not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
