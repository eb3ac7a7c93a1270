package tmdb

import "strings"

// Image sizes used by the interface
const (
	PosterSize   = "w500"
	ProfileSize  = "w342"
	BackdropSize = "w1280"
)

// ImageURL joins an image path from the API with a base URL and size.
// Returns "" when the item has no image.
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + strings.TrimLeft(path, "/")
}
