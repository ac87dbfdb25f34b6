package media

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
)

// video file information
type Info struct {
	Path            string
	FormatName      string
	Duration        float64 // seconds
	Width           int
	Height          int
	Codec           string
	HasAudio        bool
	SubtitleStreams int
}

// defines interface for video inspection and subtitle extraction
type Processor interface {
	// retrieves video file information
	Probe(ctx context.Context, videoPath string) (*Info, error)

	// writes the first embedded subtitle stream as SubRip
	ExtractSubtitles(ctx context.Context, videoPath, outputPath string) error
}

var videoExts = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".ogv":  "video/ogg",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	_, ok := videoExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ContentType returns the MIME type used when streaming the file.
func ContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := videoExts[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
