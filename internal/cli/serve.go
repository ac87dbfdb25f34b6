package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mgpai22/srtplay/internal/ffmpeg"
	"github.com/mgpai22/srtplay/internal/media"
	"github.com/mgpai22/srtplay/internal/server"
	"github.com/mgpai22/srtplay/internal/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser player",
	Long: `Start a local web server that plays a video with synchronized captions.

Pick the video and subtitle files in the page, or preload them with flags.
Uploaded videos are stored in the upload directory (SRTPLAY_UPLOAD_DIR).

Examples:
  srtplay serve
  srtplay serve --video movie.mp4 --subtitles movie.srt --open
  srtplay serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080, or SRTPLAY_ADDR)")
	serveCmd.Flags().String("video", "", "Video file to preload")
	serveCmd.Flags().String("subtitles", "", "SRT subtitle file to preload")
	serveCmd.Flags().String("upload-dir", "", "Directory for uploaded videos")
	serveCmd.Flags().Bool("open", false, "Open the player in a browser")
	serveCmd.Flags().String("title", "", "Page title (default: video file name)")
	serveCmd.Flags().Bool("play", false, "Skip the setup view when both files are preloaded")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	videoPath, _ := cmd.Flags().GetString("video")
	subtitlesPath, _ := cmd.Flags().GetString("subtitles")
	uploadDir, _ := cmd.Flags().GetString("upload-dir")
	openBrowser, _ := cmd.Flags().GetBool("open")
	play, _ := cmd.Flags().GetBool("play")
	title, _ := cmd.Flags().GetString("title")

	if addr != "" {
		cfg.Addr = addr
	}
	if uploadDir != "" {
		cfg.UploadDir = uploadDir
	}
	if cmd.Flags().Changed("open") {
		cfg.OpenBrowser = openBrowser
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var processor media.Processor
	paths, err := ffmpeg.Resolve(ffmpeg.BinaryPaths{
		FFmpeg:  cfg.FFmpegPath,
		FFprobe: cfg.FFprobePath,
	})
	if err != nil {
		logger.Warnw("Video probing disabled", "error", err)
	} else {
		processor = media.NewProcessor(paths)
	}

	sess := session.New(logger.Named("session"))
	srv := server.New(cfg, sess, processor, logger.Named("http"))

	if videoPath != "" {
		if err := srv.LoadVideo(ctx, videoPath); err != nil {
			return fmt.Errorf("failed to load video: %w", err)
		}
		srv.SetTitle(filepath.Base(videoPath))
	}
	if subtitlesPath != "" {
		if err := srv.LoadSubtitles(subtitlesPath); err != nil {
			return fmt.Errorf("failed to load subtitles: %w", err)
		}
	}
	if title != "" {
		srv.SetTitle(title)
	}
	if play {
		if err := sess.Submit(); err != nil {
			return err
		}
	}

	logger.Infow("Starting player",
		"addr", cfg.Addr,
		"upload_dir", cfg.UploadDir,
	)

	return srv.Run(ctx)
}
