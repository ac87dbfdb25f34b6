package cli

import (
	"github.com/mgpai22/srtplay/internal/config"
	"github.com/mgpai22/srtplay/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "srtplay",
	Short: "Watch local videos with SRT captions",
	Long: `srtplay plays a local video file in the browser with captions
from a SubRip (.srt) subtitle file rendered in sync with playback.

It can also inspect subtitle files, preview captions in the terminal,
and extract embedded subtitle tracks from video files.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
		cfg = config.Load()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Close()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
