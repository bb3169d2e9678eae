package preview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmarchal/s3console/pkg/preview"
)

func TestCdnObjectURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/a/b.png",
		preview.CdnObjectURL("https://cdn.example.com", "a/b.png"))

	// Idempotent under re-normalization of the base.
	assert.Equal(t, "https://cdn.example.com/a/b.png",
		preview.CdnObjectURL("https://cdn.example.com/", "a/b.png"))
	assert.Equal(t, "https://cdn.example.com/a/b.png",
		preview.CdnObjectURL("https://cdn.example.com//", "a/b.png"))
}

func TestCdnObjectURLKeyVerbatim(t *testing.T) {
	// The key is appended without additional encoding.
	assert.Equal(t, "https://cdn.example.com/dir/file name.txt",
		preview.CdnObjectURL("https://cdn.example.com", "dir/file name.txt"))
}

func TestDownloadURL(t *testing.T) {
	assert.Equal(t, "/api/servers/3/download?bucket=my-bucket&key=a%2Fb+c.txt",
		preview.DownloadURL(3, "my-bucket", "a/b c.txt"))
}

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		".png":     "image/png",
		".jpeg":    "image/jpeg",
		".pdf":     "application/pdf",
		".json":    "application/json",
		".csv":     "text/csv",
		".mp4":     "video/mp4",
		".flac":    "audio/flac",
		".sqlite3": "application/x-sqlite3",
		".xyz":     "application/octet-stream",
		"":         "application/octet-stream",
	}
	for ext, want := range cases {
		assert.Equal(t, want, preview.ContentTypeFor(ext), "extension %q", ext)
	}
}

func TestStreamable(t *testing.T) {
	assert.True(t, preview.Streamable("video/mp4"))
	assert.True(t, preview.Streamable("audio/ogg"))
	assert.True(t, preview.Streamable("application/pdf"))
	assert.False(t, preview.Streamable("image/png"))
	assert.False(t, preview.Streamable("text/plain"))
	assert.False(t, preview.Streamable("application/octet-stream"))
}
