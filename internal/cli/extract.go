package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/srtplay/internal/ffmpeg"
	"github.com/mgpai22/srtplay/internal/media"
	"github.com/mgpai22/srtplay/internal/subtitle"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract embedded subtitles from a video file",
	Long: `Extract the first subtitle track embedded in a video container
(mkv, mp4, ...) and save it as a SubRip file the player can load.

Requires ffmpeg and ffprobe on PATH, or SRTPLAY_FFMPEG_PATH and
SRTPLAY_FFPROBE_PATH.

Examples:
  srtplay extract movie.mkv
  srtplay extract movie.mkv -o captions.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", videoPath)
	}
	if !media.IsVideoFile(videoPath) {
		return fmt.Errorf("unsupported file type: %s (expected video file)", filepath.Ext(videoPath))
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".srt"
	}

	paths, err := ffmpeg.Resolve(ffmpeg.BinaryPaths{
		FFmpeg:  cfg.FFmpegPath,
		FFprobe: cfg.FFprobePath,
	})
	if err != nil {
		return err
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"output", outputPath,
	)

	processor := media.NewProcessor(paths)
	ctx := context.Background()
	if err := processor.ExtractSubtitles(ctx, videoPath, outputPath); err != nil {
		if errors.Is(err, media.ErrNoSubtitleStream) {
			return fmt.Errorf("%s has no embedded subtitles", videoPath)
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	captions, err := subtitle.Open(outputPath)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles extracted successfully: %s\n", absOutput)
	fmt.Printf("  Captions: %d\n", len(captions))

	return nil
}
