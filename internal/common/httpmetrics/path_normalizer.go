package httpmetrics

import (
	"strconv"
	"strings"
)

// NormalizePath replaces variable path segments with placeholders so metric
// label cardinality stays bounded (/post/42 -> /post/:id,
// /user/alice -> /user/:username).
func NormalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if i > 0 && segments[i-1] == "user" {
			segments[i] = ":username"
			continue
		}
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
