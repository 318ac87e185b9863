// Package media decides how each slide file is presented: images are drawn in the terminal as
// half-block art and videos are handed to an external player.
package media

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/desertthunder/slidex/internal/models"
)

// Kind is the display capability a file needs.
type Kind int

const (
	Unknown Kind = iota
	Image
	Video
)

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

// videoExtensions covers containers the stdlib mime table does not know.
var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".ogv":  "video/ogg",
}

// TypeOf returns the declared MIME type of f, or one guessed from its extension.
func TypeOf(f models.File) string {
	if t := strings.TrimSpace(f.Type); t != "" {
		return strings.ToLower(t)
	}
	ext := strings.ToLower(filepath.Ext(f.Path))
	if t, ok := videoExtensions[ext]; ok {
		return t
	}
	return strings.ToLower(mime.TypeByExtension(ext))
}

// KindOf classifies f: image/* is an image, any type mentioning video is a video.
func KindOf(f models.File) Kind {
	t := TypeOf(f)
	switch {
	case strings.HasPrefix(t, "image/"):
		return Image
	case strings.Contains(t, "video"):
		return Video
	default:
		return Unknown
	}
}
