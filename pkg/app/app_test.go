package app_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarchal/s3console/pkg/app"
	"github.com/tmarchal/s3console/pkg/config"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		ListenAddr:    "127.0.0.1:0",
		StorePath:     filepath.Join(dir, "servers.json"),
		ScratchDir:    dir,
		JanitorSpec:   "@every 1h",
		MaxUploadSize: config.DefaultMaxUploadSize,
	}
	a, err := app.NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(a.StopServer)
	return a
}

func doJSON(t *testing.T, a *app.App, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerServer(t *testing.T, a *app.App) int {
	t.Helper()
	rec := doJSON(t, a, http.MethodPost, "/api/servers", map[string]string{
		"name":         "minio-local",
		"access_key":   "AK",
		"secret_key":   "SK",
		"endpoint_url": "http://localhost:9000",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	server := body["server"].(map[string]any)
	return int(server["id"].(float64))
}

func TestServerRegistrationAndListing(t *testing.T) {
	a := newTestApp(t)

	id := registerServer(t, a)
	assert.Equal(t, 1, id)

	rec := doJSON(t, a, http.MethodGet, "/api/servers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	servers := body["servers"].([]any)
	require.Len(t, servers, 1)

	first := servers[0].(map[string]any)
	assert.Equal(t, "minio-local", first["name"])
	// Secrets never leave the store through the listing.
	assert.Empty(t, first["secret_key"])
}

func TestServerRegistrationValidation(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/servers", map[string]string{
		"name":       "incomplete",
		"access_key": "AK",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "missing required field")

	// Half-supplied credentials are rejected.
	rec = doJSON(t, a, http.MethodPost, "/api/servers", map[string]string{
		"name":         "half",
		"access_key":   "AK",
		"endpoint_url": "http://localhost:9000",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "provided together")
}

func TestServerRegistrationWithoutCredentials(t *testing.T) {
	a := newTestApp(t)

	// No credentials at all is valid: the gateway falls back to the
	// environment's default credential chain.
	rec := doJSON(t, a, http.MethodPost, "/api/servers", map[string]string{
		"name":         "ambient",
		"endpoint_url": "http://localhost:9000",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	server := decodeBody(t, rec)["server"].(map[string]any)
	assert.Equal(t, "ambient", server["name"])
}

func TestServerRegistrationDefaultRegion(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	rec := doJSON(t, a, http.MethodGet, "/api/servers", nil)
	body := decodeBody(t, rec)
	server := body["servers"].([]any)[0].(map[string]any)
	assert.Equal(t, "us-east-1", server["region"])
	_ = id
}

func TestServerUpdate(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	rec := doJSON(t, a, http.MethodPut, fmt.Sprintf("/api/servers/%d", id), map[string]string{
		"name":         "renamed",
		"access_key":   "AK2",
		"secret_key":   "SK2",
		"endpoint_url": "http://localhost:9001",
		"region":       "eu-west-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	server := decodeBody(t, rec)["server"].(map[string]any)
	assert.Equal(t, "renamed", server["name"])
	assert.Equal(t, float64(id), server["id"])
}

func TestServerUpdateUnknownID(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPut, "/api/servers/99", map[string]string{
		"name":         "x",
		"access_key":   "AK",
		"secret_key":   "SK",
		"endpoint_url": "http://localhost:9000",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerDelete(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	rec := doJSON(t, a, http.MethodDelete, fmt.Sprintf("/api/servers/%d", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, a, http.MethodDelete, fmt.Sprintf("/api/servers/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBucketsUnknownServer(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodGet, "/api/servers/42/buckets", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "server not found", decodeBody(t, rec)["error"])
}

func TestListObjectsValidation(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	// Missing bucket is rejected before any backend call.
	rec := doJSON(t, a, http.MethodGet, fmt.Sprintf("/api/servers/%d/objects", id), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "missing bucket")

	// Malformed pagination is rejected before any backend call.
	rec = doJSON(t, a, http.MethodGet,
		fmt.Sprintf("/api/servers/%d/objects?bucket=b&page=abc", id), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, a, http.MethodGet,
		fmt.Sprintf("/api/servers/%d/objects?bucket=b&page=0", id), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteObjectsValidation(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	rec := doJSON(t, a, http.MethodDelete,
		fmt.Sprintf("/api/servers/%d/delete", id), map[string]any{"bucket": "b"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, a, http.MethodDelete,
		fmt.Sprintf("/api/servers/%d/delete", id), map[string]any{"keys": []string{"k"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateFolderValidation(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	rec := doJSON(t, a, http.MethodPost,
		fmt.Sprintf("/api/servers/%d/folders", id), map[string]string{"bucket": "b"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewValidation(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	rec := doJSON(t, a, http.MethodGet,
		fmt.Sprintf("/api/servers/%d/preview?bucket=b", id), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, a, http.MethodGet,
		fmt.Sprintf("/api/servers/%d/preview?key=k", id), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadValidation(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	rec := doJSON(t, a, http.MethodGet,
		fmt.Sprintf("/api/servers/%d/download?bucket=b", id), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadValidation(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	// Not a multipart body.
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/servers/%d/upload", id), strings.NewReader("plain"))
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCdnOverrideCRUD(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	// Not configured yet.
	rec := doJSON(t, a, http.MethodGet,
		fmt.Sprintf("/api/servers/%d/cdn?bucket=assets", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["configured"])

	// Configure.
	rec = doJSON(t, a, http.MethodPut, fmt.Sprintf("/api/servers/%d/cdn", id), map[string]string{
		"bucket":  "assets",
		"cdn_url": "https://cdn.example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, a, http.MethodGet,
		fmt.Sprintf("/api/servers/%d/cdn?bucket=assets", id), nil)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["configured"])
	assert.Equal(t, "https://cdn.example.com", body["cdn_url"])

	// Remove.
	rec = doJSON(t, a, http.MethodDelete,
		fmt.Sprintf("/api/servers/%d/cdn?bucket=assets", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, a, http.MethodGet,
		fmt.Sprintf("/api/servers/%d/cdn?bucket=assets", id), nil)
	assert.Equal(t, false, decodeBody(t, rec)["configured"])
}

func TestCdnOverrideValidation(t *testing.T) {
	a := newTestApp(t)
	id := registerServer(t, a)

	rec := doJSON(t, a, http.MethodPut,
		fmt.Sprintf("/api/servers/%d/cdn", id), map[string]string{"bucket": "assets"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, a, http.MethodGet, fmt.Sprintf("/api/servers/%d/cdn", id), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndexPage(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "S3 Console")
}

func TestNotFoundPaths(t *testing.T) {
	a := newTestApp(t)

	// Unmatched API routes keep the JSON envelope.
	rec := doJSON(t, a, http.MethodGet, "/api/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", decodeBody(t, rec)["error"])

	// Unmatched browser routes get the HTML error page.
	rec = doJSON(t, a, http.MethodGet, "/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "page not found")
}

func TestHealthEndpoint(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestErrorEnvelopeShape(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodGet, "/api/servers/42/buckets", nil)
	body := decodeBody(t, rec)
	require.Len(t, body, 1, "error responses carry a single error field")
	assert.NotEmpty(t, body["error"])
}
