// Package listing converts a flat, delimiter-grouped object listing into
// a navigable folder and file view with pagination.
package listing

import (
	"sort"
	"strings"

	"github.com/tmarchal/s3console/pkg/dto"
	"github.com/tmarchal/s3console/pkg/s3svc"
)

// timeFormat is the display format for object modification times.
const timeFormat = "2006-01-02 15:04:05"

// Build synthesizes the folder and file entries for one level of the key
// hierarchy from the raw listing returned by the gateway. The result is
// folders (sorted by display name) followed by files (sorted by display
// name). The queried prefix itself and folder-marker objects (keys ending
// with the delimiter) never appear.
func Build(prefix, delimiter string, l s3svc.Listing) []dto.ObjectEntry {
	var folders, files []dto.ObjectEntry

	strippedQuery := strings.TrimSuffix(prefix, delimiter)
	for _, cp := range l.CommonPrefixes {
		stripped := strings.TrimSuffix(cp, delimiter)
		if stripped == strippedQuery {
			// Self-reference returned by some backends.
			continue
		}
		folders = append(folders, dto.ObjectEntry{
			Type:   dto.EntryTypeFolder,
			Name:   lastSegment(stripped, delimiter),
			Key:    cp,
			Prefix: cp,
		})
	}

	for _, obj := range l.Contents {
		if obj.Key == prefix || strings.HasSuffix(obj.Key, delimiter) {
			continue
		}
		files = append(files, dto.ObjectEntry{
			Type:         dto.EntryTypeFile,
			Name:         lastSegment(obj.Key, delimiter),
			Key:          obj.Key,
			Size:         FormatSize(obj.Size),
			LastModified: obj.LastModified.Format(timeFormat),
		})
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return append(folders, files...)
}

// Page windows the full sorted entry sequence down to one page.
func Page(entries []dto.ObjectEntry, page, perPage int) dto.ListResult {
	p := dto.NewPaginationInfo(len(entries), perPage, page)
	window := entries[p.StartIndex:p.EndIndex]
	// Never serialize null for an empty page.
	if window == nil {
		window = []dto.ObjectEntry{}
	}
	return dto.ListResult{
		Entries:    window,
		Pagination: p,
	}
}

// lastSegment returns the part of s after the final delimiter.
func lastSegment(s, delimiter string) string {
	if i := strings.LastIndex(s, delimiter); i >= 0 {
		return s[i+len(delimiter):]
	}
	return s
}
