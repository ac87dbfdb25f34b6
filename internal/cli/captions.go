package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mgpai22/srtplay/internal/subtitle"
	"github.com/spf13/cobra"
)

var captionsCmd = &cobra.Command{
	Use:   "captions [subtitle_file]",
	Short: "Parse a subtitle file and print its captions",
	Long: `Parse a SubRip file the way the player does and print the result.

With --at, print only the caption active at that time in seconds.
Captions whose time codes cannot be decoded are listed as inert.

Examples:
  srtplay captions movie.srt
  srtplay captions movie.srt --at 62.5
  srtplay captions movie.srt -f vtt -o movie.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runCaptions,
}

func init() {
	rootCmd.AddCommand(captionsCmd)

	captionsCmd.Flags().
		Float64("at", -1, "Print the caption active at this time in seconds")
	captionsCmd.Flags().
		StringP("format", "f", "text", "Output format (text, srt, vtt, json)")
}

func runCaptions(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetFloat64("at")
	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	captions, err := subtitle.Open(args[0])
	if err != nil {
		return err
	}

	logger.Debugw("Parsed subtitles",
		"file", args[0],
		"captions", len(captions),
	)

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
		if !cmd.Flags().Changed("format") {
			formatStr = string(subtitle.GetFormatFromExtension(outputPath))
		}
	}

	if cmd.Flags().Changed("at") {
		c, ok := subtitle.FindActive(captions, at)
		if !ok {
			return nil
		}
		captions = []subtitle.Caption{c}
	}

	return writeCaptions(out, captions, strings.ToLower(formatStr))
}

func writeCaptions(out io.Writer, captions []subtitle.Caption, format string) error {
	switch format {
	case "text":
		for _, c := range captions {
			if c.Inert() {
				fmt.Fprintf(out, "#%d inert\n%s\n\n", c.Index, c.Text)
				continue
			}
			fmt.Fprintf(out, "#%d %.3f-%.3f\n%s\n\n", c.Index, c.Start, c.End, c.Text)
		}
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if captions == nil {
			captions = []subtitle.Caption{}
		}
		return enc.Encode(captions)
	case "srt", "vtt":
		writer, err := subtitle.NewWriter(subtitle.Format(format))
		if err != nil {
			return err
		}
		return writer.Write(out, captions)
	default:
		return fmt.Errorf("unsupported format %q: use text, srt, vtt, or json", format)
	}
}
