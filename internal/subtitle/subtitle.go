package subtitle

import (
	"encoding/json"
	"io"
	"math"
)

// represents single caption entry, times are in seconds
type Caption struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// reports whether t falls inside the closed interval [Start, End].
// NaN bounds never match.
func (c Caption) Contains(t float64) bool {
	return t >= c.Start && t <= c.End
}

// Inert reports whether the caption carries an undecodable time code
// and therefore can never become active.
func (c Caption) Inert() bool {
	return math.IsNaN(c.Start) || math.IsNaN(c.End)
}

type captionJSON struct {
	Index int      `json:"index"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Text  string   `json:"text"`
}

// NaN and infinite times are encoded as null.
func (c Caption) MarshalJSON() ([]byte, error) {
	return json.Marshal(captionJSON{
		Index: c.Index,
		Start: finite(c.Start),
		End:   finite(c.End),
		Text:  c.Text,
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// represents supported output formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// interface for writing captions
type Writer interface {
	Write(w io.Writer, captions []Caption) error
}
