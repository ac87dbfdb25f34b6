package ffmpeg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUsesOverrides(t *testing.T) {
	paths, err := Resolve(BinaryPaths{FFmpeg: "/opt/ff/ffmpeg", FFprobe: "/opt/ff/ffprobe"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/ff/ffmpeg", paths.FFmpeg)
	assert.Equal(t, "/opt/ff/ffprobe", paths.FFprobe)
}

func TestResolveUsesEnvironment(t *testing.T) {
	t.Setenv("SRTPLAY_FFMPEG_PATH", "/env/ffmpeg")
	t.Setenv("SRTPLAY_FFPROBE_PATH", "/env/ffprobe")

	paths, err := Resolve(BinaryPaths{FFprobe: "/flag/ffprobe"})
	require.NoError(t, err)
	assert.Equal(t, "/env/ffmpeg", paths.FFmpeg)
	assert.Equal(t, "/flag/ffprobe", paths.FFprobe)
}

func TestResolveReportsMissingBinaries(t *testing.T) {
	t.Setenv("SRTPLAY_FFMPEG_PATH", "")
	t.Setenv("SRTPLAY_FFPROBE_PATH", "")
	t.Setenv("PATH", t.TempDir())

	_, err := Resolve(BinaryPaths{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "ffprobe")
}
