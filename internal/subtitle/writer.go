package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// writes captions as SubRip, renumbered from 1; captions without finite times are skipped
func (w *SRTWriter) Write(out io.Writer, captions []Caption) error {
	bw := bufio.NewWriter(out)
	n := 0
	for _, c := range captions {
		if !writable(c) {
			continue
		}
		n++
		// timestamps: 00:00:00,000 --> 00:00:00,000
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			n,
			formatTimecode(c.Start, ','),
			formatTimecode(c.End, ','),
			c.Text)
	}
	return bw.Flush()
}

// writes captions as WebVTT; captions without finite times are skipped
func (w *VTTWriter) Write(out io.Writer, captions []Caption) error {
	bw := bufio.NewWriter(out)
	bw.WriteString("WEBVTT\n\n")
	for _, c := range captions {
		if !writable(c) {
			continue
		}
		// optional cue identifier
		if c.Index > 0 {
			fmt.Fprintf(bw, "%d\n", c.Index)
		}
		fmt.Fprintf(bw, "%s --> %s\n%s\n\n",
			formatTimecode(c.Start, '.'),
			formatTimecode(c.End, '.'),
			escapeVTTText(c.Text))
	}
	return bw.Flush()
}

func writable(c Caption) bool {
	return finite(c.Start) != nil && finite(c.End) != nil
}

func formatTimecode(seconds float64, sep byte) string {
	total := int64(math.Round(seconds * 1000))
	if total < 0 {
		total = 0
	}
	hours := total / 3600000
	minutes := (total / 60000) % 60
	secs := (total / 1000) % 60
	millis := total % 1000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

// "-->" and blank lines would end the cue early
func escapeVTTText(text string) string {
	text = strings.ReplaceAll(text, "-->", "--&gt;")
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}
	return text
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt":
		return FormatVTT
	default:
		return FormatSRT
	}
}
