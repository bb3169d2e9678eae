package preview

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// maxTextChars is the number of characters kept of a text preview.
const maxTextChars = 50000

const truncationNotice = "\n\n... (content truncated, showing the first 50000 characters)"

var errUndecodable = errors.New("binary file, cannot preview content")

// decodeText decodes raw bytes as UTF-8, falling back to GBK for legacy
// CJK content. Undecodable input returns errUndecodable.
func decodeText(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errUndecodable
	}
	// The decoder substitutes U+FFFD for undecodable bytes instead of
	// failing; treat any substitution as a failed decode.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", errUndecodable
	}
	return string(decoded), nil
}

// truncateText caps text at maxTextChars characters, appending a notice
// when content was dropped.
func truncateText(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTextChars {
		return text
	}
	return string(runes[:maxTextChars]) + truncationNotice
}
