// Package dto provides data transfer objects shared across the console.
package dto

import "time"

// Endpoint is a registered S3-compatible storage server.
type Endpoint struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	AccessKey   string `json:"access_key"`
	SecretKey   string `json:"secret_key"`
	EndpointURL string `json:"endpoint_url"`
	Region      string `json:"region"`
	// CdnURLs maps a bucket name to an optional CDN base URL used when
	// building preview and download links for that bucket.
	CdnURLs map[string]string `json:"cdn_urls,omitempty"`
}

// Redacted returns a copy of the endpoint with the secret key blanked,
// suitable for listing responses.
func (e Endpoint) Redacted() Endpoint {
	e.SecretKey = ""
	return e
}

// Bucket represents an S3 bucket.
type Bucket struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date"`
}

// Entry types for ObjectEntry.
const (
	EntryTypeFolder = "folder"
	EntryTypeFile   = "file"
)

// ObjectEntry is one row of a hierarchy listing: either a synthesized
// folder (from a common prefix) or a file (from an object).
type ObjectEntry struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Key  string `json:"key"`
	// Prefix is set for folders only and always ends with the delimiter.
	Prefix string `json:"prefix,omitempty"`
	// Size is the human formatted object size, set for files only.
	Size string `json:"size,omitempty"`
	// LastModified is the formatted modification time, set for files only.
	LastModified string `json:"last_modified,omitempty"`
}

// ListResult is a single page of a hierarchy listing.
type ListResult struct {
	Entries    []ObjectEntry  `json:"objects"`
	Pagination PaginationInfo `json:"pagination"`
}

// Preview kinds.
const (
	PreviewText        = "text"
	PreviewImage       = "image"
	PreviewEmbed       = "embed"
	PreviewSummary     = "summary"
	PreviewUnavailable = "unavailable"
	PreviewTooLarge    = "too_large"
)

// Embed kinds for PreviewEmbed results.
const (
	EmbedPDF   = "pdf"
	EmbedMedia = "media"
)

// Preview is the tagged result of resolving an object preview. Exactly one
// rendering strategy applies per object; Kind selects which of the optional
// fields are meaningful.
type Preview struct {
	Kind        string `json:"preview_type"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`

	// Content holds inline text, an image data URI, a structured summary
	// or an unavailability reason, depending on Kind.
	Content string `json:"preview,omitempty"`

	// EmbedKind and EmbedURL are set for embed previews (pdf, media).
	EmbedKind string `json:"embed_kind,omitempty"`
	EmbedURL  string `json:"preview_url,omitempty"`

	// CdnURL is the CDN fallback link, present when the bucket has an
	// override configured.
	CdnURL string `json:"cdn_url,omitempty"`

	// DownloadURL is the always-available fallback link.
	DownloadURL string `json:"download_url,omitempty"`
}
