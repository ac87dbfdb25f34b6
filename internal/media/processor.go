package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/srtplay/internal/ffmpeg"
)

var ErrNoSubtitleStream = errors.New("video has no subtitle stream")

// default implementation using ffprobe and ffmpeg
type DefaultProcessor struct {
	paths ffmpegbin.BinaryPaths
}

func NewProcessor(paths ffmpegbin.BinaryPaths) *DefaultProcessor {
	return &DefaultProcessor{
		paths: paths,
	}
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// retrieves video file information
func (p *DefaultProcessor) Probe(
	ctx context.Context,
	videoPath string,
) (*Info, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}
	if p.paths.FFprobe == "" {
		return nil, fmt.Errorf("%w: ffprobe", ffmpegbin.ErrNotFound)
	}

	cmd := exec.CommandContext(ctx, p.paths.FFprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := parseProbeOutput(out.Bytes())
	if err != nil {
		return nil, err
	}
	info.Path = videoPath
	return info, nil
}

func parseProbeOutput(data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{FormatName: probe.Format.FormatName}
	if probe.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		info.Duration = seconds
	}

	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			if info.Codec == "" {
				info.Codec = s.CodecName
				info.Width = s.Width
				info.Height = s.Height
			}
		case "audio":
			info.HasAudio = true
		case "subtitle":
			info.SubtitleStreams++
		}
	}

	if info.Codec == "" {
		return nil, fmt.Errorf("no video stream found")
	}
	return info, nil
}

// writes the first embedded subtitle stream as SubRip
func (p *DefaultProcessor) ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
) error {
	info, err := p.Probe(ctx, videoPath)
	if err != nil {
		return err
	}
	if info.SubtitleStreams == 0 {
		return ErrNoSubtitleStream
	}
	if p.paths.FFmpeg == "" {
		return fmt.Errorf("%w: ffmpeg", ffmpegbin.ErrNotFound)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var stderr bytes.Buffer
	cmd := p.extractCommand(ctx, videoPath, outputPath)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("ffmpeg extraction failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return nil
}

// ffmpeg-go's Run ignores the context, so the arguments it builds are
// run under exec.CommandContext instead
func (p *DefaultProcessor) extractCommand(
	ctx context.Context,
	videoPath, outputPath string,
) *exec.Cmd {
	args := subtitleStream(videoPath, outputPath).GetArgs()
	return exec.CommandContext(ctx, p.paths.FFmpeg, args...)
}

func subtitleStream(videoPath, outputPath string) *ffmpeg.Stream {
	kwargs := ffmpeg.KwArgs{
		"map": "0:s:0", // first subtitle stream
		"c:s": "srt",
		"f":   "srt",
	}

	return ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput()
}
