package app

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gorilla/mux"

	"github.com/tmarchal/s3console/pkg/store"
)

// errorResponse is the single error envelope of the API.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *App) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("error encoding response", slog.String("error", err.Error()))
	}
}

func (s *App) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeBackendError maps a gateway failure to a status: unknown endpoints
// and missing objects are 404, everything else is a backend 500.
func (s *App) writeBackendError(w http.ResponseWriter, err error) {
	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &noSuchKey), errors.As(err, &noSuchBucket):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// pathID extracts the numeric endpoint id from the route. The router
// pattern guarantees digits.
func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}
