package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// upper bound on subtitle input, far above any real SubRip file
const MaxFileSize = 32 << 20

// reads SubRip text from r and parses it
func Read(r io.Reader) ([]Caption, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitles: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("subtitle file exceeds %d bytes", MaxFileSize)
	}
	return Parse(string(data)), nil
}

func Open(path string) ([]Caption, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".srt" && ext != "" {
		return nil, fmt.Errorf("unsupported subtitle format: %s", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Read(file)
}
