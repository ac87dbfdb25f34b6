package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mgpai22/srtplay/internal/preview"
	"github.com/mgpai22/srtplay/internal/session"
	"github.com/mgpai22/srtplay/internal/subtitle"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [subtitle_file]",
	Short: "Play captions in the terminal",
	Long: `Play a subtitle file in the terminal against a running clock,
showing each caption while it is active.

Examples:
  srtplay preview movie.srt
  srtplay preview movie.srt --start 600 --speed 2`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Float64("start", 0, "Start position in seconds")
	previewCmd.Flags().Float64("speed", 1, "Playback speed multiplier")
}

func runPreview(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetFloat64("start")
	speed, _ := cmd.Flags().GetFloat64("speed")

	if speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", speed)
	}

	captions, err := subtitle.Open(args[0])
	if err != nil {
		return err
	}
	if len(captions) == 0 {
		return fmt.Errorf("no captions found in %s", args[0])
	}

	sess := session.New(logger.Named("session"))
	sess.Load(captions)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	return preview.Run(ctx, sess, preview.Options{
		Start: start,
		Speed: speed,
	})
}
