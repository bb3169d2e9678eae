package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tmarchal/s3console/pkg/dto"
	"github.com/tmarchal/s3console/pkg/store"
)

// defaultRegion is applied when a registration omits the region.
const defaultRegion = "us-east-1"

// serverRequest is the JSON body for registering or updating an endpoint.
type serverRequest struct {
	Name        string `json:"name"`
	AccessKey   string `json:"access_key"`
	SecretKey   string `json:"secret_key"`
	EndpointURL string `json:"endpoint_url"`
	Region      string `json:"region"`
}

// validate checks the required fields and returns the first missing one.
// Credentials may be omitted entirely, in which case the gateway uses the
// environment's default credential chain, but never supplied half-way.
func (req *serverRequest) validate() error {
	required := []struct {
		name, value string
	}{
		{"name", req.Name},
		{"endpoint_url", req.EndpointURL},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("missing required field: %s", f.name) //nolint:err113
		}
	}
	if (req.AccessKey == "") != (req.SecretKey == "") {
		return errors.New("access_key and secret_key must be provided together")
	}
	return nil
}

// ListServersHandler returns all registered endpoints with secrets
// redacted.
func (s *App) ListServersHandler(w http.ResponseWriter, _ *http.Request) {
	endpoints := s.store.List()
	redacted := make([]dto.Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		redacted = append(redacted, ep.Redacted())
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"servers": redacted})
}

// AddServerHandler registers a new endpoint.
func (s *App) AddServerHandler(w http.ResponseWriter, r *http.Request) {
	var req serverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Region == "" {
		req.Region = defaultRegion
	}

	ep, err := s.store.Add(req.Name, req.AccessKey, req.SecretKey, req.EndpointURL, req.Region)
	if err != nil {
		s.log.Error("failed to register endpoint", slog.String("error", err.Error()))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"server": ep})
}

// UpdateServerHandler mutates an endpoint record in place.
func (s *App) UpdateServerHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var req serverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Region == "" {
		req.Region = defaultRegion
	}

	ep, err := s.store.Update(id, dto.Endpoint{
		Name:        req.Name,
		AccessKey:   req.AccessKey,
		SecretKey:   req.SecretKey,
		EndpointURL: req.EndpointURL,
		Region:      req.Region,
	})
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "server not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"server": ep})
}

// DeleteServerHandler removes an endpoint record and its cached client.
func (s *App) DeleteServerHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	err := s.store.Delete(id)
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
