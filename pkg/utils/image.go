package utils

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// IsImage reports whether a MIME type is any image/* type.
func IsImage(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	return strings.HasPrefix(strings.ToLower(mediaType), "image/")
}

// DetectContentType guesses a MIME type from the file extension, then from the bytes.
func DetectContentType(filename string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}

// HumanBytes formats a byte count in decimal megabytes, e.g. 5000000 -> "5MB".
func HumanBytes(n int64) string {
	const mb = 1_000_000
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%.1fMB", float64(n)/mb)
}
