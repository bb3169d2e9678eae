package preview

import (
	"fmt"
	"net/url"
	"strings"
)

// CdnObjectURL joins a CDN base URL and an object key. The base is
// normalized to end with exactly one delimiter and the key is appended
// verbatim; the bucket name is never part of a CDN path.
func CdnObjectURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

// DownloadURL builds the application's own authenticated download route
// for an object.
func DownloadURL(endpointID int, bucket, key string) string {
	return fmt.Sprintf("/api/servers/%d/download?bucket=%s&key=%s",
		endpointID, url.QueryEscape(bucket), url.QueryEscape(key))
}
