package subtitle

import (
	"math"
	"strconv"
	"strings"
)

const (
	blockSeparator = "\n\n"
	rangeSeparator = " --> "
)

// Parse converts SubRip text into captions in block order.
//
// Parsing is best-effort and never fails: blocks with fewer than three
// lines are dropped, and time codes that cannot be decoded become NaN,
// which makes the caption inert for FindActive.
func Parse(raw string) []Caption {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var captions []Caption
	for _, block := range strings.Split(raw, blockSeparator) {
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		index := 0
		if v := leadingInt(lines[0]); !math.IsNaN(v) {
			index = int(v)
		}
		start, end := parseRange(lines[1])

		captions = append(captions, Caption{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(strings.Join(lines[2:], "\n")),
		})
	}
	return captions
}

func parseRange(line string) (float64, float64) {
	startStr, endStr, found := strings.Cut(line, rangeSeparator)
	if !found {
		return ParseTimecode(startStr), math.NaN()
	}
	// only the first two fields matter when the separator repeats
	endStr, _, _ = strings.Cut(endStr, rangeSeparator)
	return ParseTimecode(startStr), ParseTimecode(endStr)
}

// ParseTimecode decodes HH:MM:SS,mmm into seconds. Hours and minutes are
// read as leading integers, seconds and milliseconds as leading reals. Missing or
// non-numeric components yield NaN. Text after a component's leading
// number is ignored, so "00:00:03,000  X1:40" decodes to 3.
func ParseTimecode(s string) float64 {
	hms, ms, found := strings.Cut(s, ",")
	if !found {
		return math.NaN()
	}
	// anything after a second comma is ignored
	ms, _, _ = strings.Cut(ms, ",")

	parts := strings.Split(hms, ":")
	if len(parts) < 3 {
		return math.NaN()
	}

	h := leadingInt(parts[0])
	m := leadingInt(parts[1])
	sec := parseReal(parts[2])
	millis := parseReal(ms)

	return h*3600 + m*60 + sec + millis/1000
}

// leadingInt parses the optional sign and decimal digits at the start of s.
func leadingInt(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == digits {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseReal reads the longest decimal number at the start of s: an optional
// sign, digits with an optional fraction, and an optional exponent.
// Trailing text is ignored; NaN when no digits are present.
func parseReal(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	if strings.HasPrefix(s[end:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && isDigit(s[frac]) {
			frac++
			digits++
		}
		if digits > 0 {
			end = frac
		}
	}
	if digits == 0 {
		return math.NaN()
	}

	// exponent only counts when followed by at least one digit
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		expDigits := exp
		for exp < len(s) && isDigit(s[exp]) {
			exp++
		}
		if exp > expDigits {
			end = exp
		}
	}

	// out of range input yields ±Inf alongside the error
	v, _ := strconv.ParseFloat(s[:end], 64)
	return v
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
