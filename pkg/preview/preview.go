// Package preview decides how an object should be rendered to a client:
// inline content, an embed reference, a structured summary, or an
// unavailability marker. The decision is a pure function of the object's
// extension, size and the bucket's CDN override.
package preview

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmarchal/s3console/pkg/dto"
)

// MaxPreviewSize is the inline preview cap. Streamable content (video,
// audio, pdf) is rendered by the client player and bypasses the cap.
const MaxPreviewSize = 10 * 1024 * 1024

// Request carries everything the resolution needs: the object identity,
// a locally materialized copy of its bytes, and the bucket's CDN override
// ("" when none is configured).
type Request struct {
	EndpointID int
	Bucket     string
	Key        string
	LocalPath  string
	Size       int64
	CdnBase    string
}

// Streamable reports whether a content type is rendered client-side by a
// player or viewer: video, audio, or PDF.
func Streamable(contentType string) bool {
	return strings.HasPrefix(contentType, "video/") ||
		strings.HasPrefix(contentType, "audio/") ||
		contentType == "application/pdf"
}

// Resolve produces exactly one preview result for the object. Failures in
// any rendering step are absorbed into an unavailable result; a broken
// preview must never become a transport error.
func Resolve(req Request) dto.Preview {
	filename := req.Key
	if i := strings.LastIndex(req.Key, "/"); i >= 0 {
		filename = req.Key[i+1:]
	}
	ext := strings.ToLower(filepath.Ext(filename))
	contentType := ContentTypeFor(ext)

	base := dto.Preview{
		Filename:    filename,
		Size:        req.Size,
		ContentType: contentType,
		DownloadURL: DownloadURL(req.EndpointID, req.Bucket, req.Key),
	}

	if !Streamable(contentType) && req.Size > MaxPreviewSize {
		base.Kind = dto.PreviewTooLarge
		base.Content = "file too large to preview"
		if req.CdnBase != "" {
			base.CdnURL = CdnObjectURL(req.CdnBase, req.Key)
		}
		return base
	}

	result, err := resolveContent(req, base, ext, contentType)
	if err != nil {
		base.Kind = dto.PreviewUnavailable
		base.Content = fmt.Sprintf("preview failed: %s", err)
		return base
	}
	return result
}

// resolveContent runs the per-type rendering steps. Returned errors are
// converted to unavailable results by Resolve.
func resolveContent(req Request, base dto.Preview, ext, contentType string) (dto.Preview, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		raw, err := os.ReadFile(req.LocalPath)
		if err != nil {
			return dto.Preview{}, err
		}
		base.Kind = dto.PreviewImage
		base.Content = fmt.Sprintf("data:%s;base64,%s",
			contentType, base64.StdEncoding.EncodeToString(raw))
		return base, nil

	case isTextual(contentType):
		raw, err := os.ReadFile(req.LocalPath)
		if err != nil {
			return dto.Preview{}, err
		}
		text, err := decodeText(raw)
		if err != nil {
			base.Kind = dto.PreviewSummary
			base.Content = err.Error()
			return base, nil
		}
		base.Kind = dto.PreviewText
		base.Content = truncateText(text)
		return base, nil

	case Streamable(contentType):
		base.Kind = dto.PreviewEmbed
		if contentType == "application/pdf" {
			base.EmbedKind = dto.EmbedPDF
		} else {
			base.EmbedKind = dto.EmbedMedia
		}
		if req.CdnBase != "" {
			base.EmbedURL = CdnObjectURL(req.CdnBase, req.Key)
			base.CdnURL = base.EmbedURL
		} else {
			base.EmbedURL = base.DownloadURL
		}
		return base, nil

	case ext == ".db" || ext == ".sqlite" || ext == ".sqlite3":
		base.Kind = dto.PreviewSummary
		base.Content = sqliteSummary(req.LocalPath)
		return base, nil

	case ext == ".csv" || ext == ".tsv":
		base.Kind = dto.PreviewSummary
		base.Content = csvPreview(req.LocalPath, ext)
		return base, nil

	default:
		base.Kind = dto.PreviewUnavailable
		base.Content = "file type not supported for preview"
		return base, nil
	}
}

// isTextual reports whether a content type is previewed as inline text:
// any text/* type plus a fixed allow-list of structured text formats.
func isTextual(contentType string) bool {
	if strings.HasPrefix(contentType, "text/") && contentType != "text/csv" &&
		contentType != "text/tab-separated-values" {
		return true
	}
	switch contentType {
	case "application/json", "application/javascript", "application/xml":
		return true
	}
	return false
}
