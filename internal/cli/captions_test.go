package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/mgpai22/srtplay/internal/subtitle"
)

func TestWriteCaptions(t *testing.T) {
	captions := []subtitle.Caption{
		{Index: 1, Start: 1, End: 2.5, Text: "Hello"},
		{Index: 2, Start: math.NaN(), End: 4, Text: "Broken"},
	}

	tests := []struct {
		name    string
		format  string
		want    []string
		wantErr bool
	}{
		{
			name:   "text",
			format: "text",
			want:   []string{"#1 1.000-2.500\nHello", "#2 inert\nBroken"},
		},
		{
			name:   "json",
			format: "json",
			want:   []string{`"start": null`, `"text": "Hello"`},
		},
		{
			name:   "srt",
			format: "srt",
			want:   []string{"1\n00:00:01,000 --> 00:00:02,500\nHello"},
		},
		{
			name:   "vtt",
			format: "vtt",
			want:   []string{"WEBVTT", "00:00:01.000 --> 00:00:02.500"},
		},
		{
			name:    "unknown",
			format:  "ass",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeCaptions(&buf, captions, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("writeCaptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestWriteCaptionsEmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCaptions(&buf, nil, "json"); err != nil {
		t.Fatalf("writeCaptions() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("got %q, want []", got)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"serve", "captions", "extract", "preview", "license"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
