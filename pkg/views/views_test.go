package views_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarchal/s3console/pkg/views"
)

func TestIndexRenders(t *testing.T) {
	v := views.NewViews()

	var b strings.Builder
	err := v.Index().Render(context.Background(), &b)
	require.NoError(t, err)

	html := b.String()
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "S3 Console")
	assert.Contains(t, html, "/static/style.css")
}

func TestErrorPageEscapesMessage(t *testing.T) {
	v := views.NewViews()

	var b strings.Builder
	err := v.ErrorPage(`<script>alert("x")</script>`).Render(context.Background(), &b)
	require.NoError(t, err)

	html := b.String()
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestStaticHandlerServesCSS(t *testing.T) {
	v := views.NewViews()

	req := httptest.NewRequest(http.MethodGet, "/static/style.css", nil)
	rec := httptest.NewRecorder()
	v.GetStaticHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "font-family")
}

func TestStaticHandlerUnknownFile(t *testing.T) {
	v := views.NewViews()

	req := httptest.NewRequest(http.MethodGet, "/static/missing.css", nil)
	rec := httptest.NewRecorder()
	v.GetStaticHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
