package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ffmpegbin "github.com/mgpai22/srtplay/internal/ffmpeg"
)

func TestParseProbeOutput(t *testing.T) {
	data := []byte(`{
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080},
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "subtitle", "codec_name": "subrip"},
			{"codec_type": "subtitle", "codec_name": "ass"}
		],
		"format": {"format_name": "matroska,webm", "duration": "1425.360000"}
	}`)

	info, err := parseProbeOutput(data)
	require.NoError(t, err)
	assert.Equal(t, "h264", info.Codec)
	assert.Equal(t, 1920, info.Width)
	assert.Equal(t, 1080, info.Height)
	assert.True(t, info.HasAudio)
	assert.Equal(t, 2, info.SubtitleStreams)
	assert.InDelta(t, 1425.36, info.Duration, 1e-9)
	assert.Equal(t, "matroska,webm", info.FormatName)
}

func TestParseProbeOutputErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"audio only", `{"streams":[{"codec_type":"audio"}],"format":{"duration":"3.0"}}`},
		{"bad duration", `{"streams":[{"codec_type":"video","codec_name":"vp9"}],"format":{"duration":"N/A"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProbeOutput([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestProbeMissingFile(t *testing.T) {
	p := NewProcessor(ffmpegbin.BinaryPaths{FFmpeg: "ffmpeg", FFprobe: "ffprobe"})
	_, err := p.Probe(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}

func TestProbeWithoutFFprobe(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(video, []byte("not a video"), 0644))

	p := NewProcessor(ffmpegbin.BinaryPaths{})
	_, err := p.Probe(context.Background(), video)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ffmpegbin.ErrNotFound))
}

func TestSubtitleStreamArgs(t *testing.T) {
	args := subtitleStream("in.mkv", "out.srt").GetArgs()
	assert.Contains(t, args, "-map")
	assert.Contains(t, args, "0:s:0")
	assert.Contains(t, args, "in.mkv")
	assert.Contains(t, args, "out.srt")
}

func TestExtractCommandUsesResolvedBinary(t *testing.T) {
	p := NewProcessor(ffmpegbin.BinaryPaths{FFmpeg: "/opt/ffmpeg/bin/ffmpeg"})
	cmd := p.extractCommand(context.Background(), "in.mkv", "out.srt")

	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cmd.Path)
	assert.Equal(t, subtitleStream("in.mkv", "out.srt").GetArgs(), cmd.Args[1:])
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestExtractSubtitlesStopsOnCancel(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts stand in for ffmpeg")
	}

	dir := t.TempDir()
	video := filepath.Join(dir, "movie.mkv")
	require.NoError(t, os.WriteFile(video, []byte("not a video"), 0644))

	probeJSON := `{"format":{"format_name":"matroska","duration":"10.0"},` +
		`"streams":[{"codec_type":"video","codec_name":"h264","width":640,"height":360},` +
		`{"codec_type":"subtitle","codec_name":"subrip"}]}`
	p := NewProcessor(ffmpegbin.BinaryPaths{
		FFprobe: writeScript(t, dir, "ffprobe", "echo '"+probeJSON+"'"),
		FFmpeg:  writeScript(t, dir, "ffmpeg", "exec sleep 30"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.ExtractSubtitles(ctx, video, filepath.Join(dir, "movie.srt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestExtractSubtitlesWithoutStream(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts stand in for ffmpeg")
	}

	dir := t.TempDir()
	video := filepath.Join(dir, "movie.mp4")
	require.NoError(t, os.WriteFile(video, []byte("not a video"), 0644))

	probeJSON := `{"format":{"duration":"1.0"},"streams":[{"codec_type":"video","codec_name":"h264"}]}`
	p := NewProcessor(ffmpegbin.BinaryPaths{
		FFprobe: writeScript(t, dir, "ffprobe", "echo '"+probeJSON+"'"),
		FFmpeg:  writeScript(t, dir, "ffmpeg", "exit 1"),
	})

	err := p.ExtractSubtitles(context.Background(), video, filepath.Join(dir, "movie.srt"))
	assert.ErrorIs(t, err, ErrNoSubtitleStream)
}

func TestIsVideoFile(t *testing.T) {
	assert.True(t, IsVideoFile("movie.MP4"))
	assert.True(t, IsVideoFile("/a/b/clip.webm"))
	assert.False(t, IsVideoFile("movie.srt"))
	assert.False(t, IsVideoFile("noext"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "video/mp4", ContentType("a.mp4"))
	assert.Equal(t, "video/webm", ContentType("a.WEBM"))
	assert.Equal(t, "application/octet-stream", ContentType("a.unknownext"))
}
