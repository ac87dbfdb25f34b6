package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var ErrNotFound = errors.New("ffmpeg binaries not found")

// Resolve fills each binary from the override, then SRTPLAY_FFMPEG_PATH /
// SRTPLAY_FFPROBE_PATH, then PATH.
func Resolve(override BinaryPaths) (BinaryPaths, error) {
	paths := BinaryPaths{
		FFmpeg:  firstNonEmpty(override.FFmpeg, os.Getenv("SRTPLAY_FFMPEG_PATH")),
		FFprobe: firstNonEmpty(override.FFprobe, os.Getenv("SRTPLAY_FFPROBE_PATH")),
	}

	var missing []string
	if paths.FFmpeg == "" {
		found, err := exec.LookPath("ffmpeg" + executableSuffix())
		if err != nil {
			missing = append(missing, "ffmpeg")
		}
		paths.FFmpeg = found
	}
	if paths.FFprobe == "" {
		found, err := exec.LookPath("ffprobe" + executableSuffix())
		if err != nil {
			missing = append(missing, "ffprobe")
		}
		paths.FFprobe = found
	}

	if len(missing) > 0 {
		return paths, fmt.Errorf("%w: %s (install ffmpeg or set SRTPLAY_FFMPEG_PATH/SRTPLAY_FFPROBE_PATH)",
			ErrNotFound, strings.Join(missing, ", "))
	}
	return paths, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
