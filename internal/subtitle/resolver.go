package subtitle

// FindActive returns the first caption, in sequence order, whose interval
// contains t. Overlapping captions resolve to the earliest one in the
// sequence, not the earliest in time.
func FindActive(captions []Caption, t float64) (Caption, bool) {
	for _, c := range captions {
		if c.Contains(t) {
			return c, true
		}
	}
	return Caption{}, false
}

// returns the text of the active caption at t, or "" when none is active
func ActiveText(captions []Caption, t float64) string {
	c, ok := FindActive(captions, t)
	if !ok {
		return ""
	}
	return c.Text
}

// returns the largest finite end time, 0 for an empty or fully inert sequence
func LastEnd(captions []Caption) float64 {
	var last float64
	for _, c := range captions {
		if c.Inert() {
			continue
		}
		if c.End > last {
			last = c.End
		}
	}
	return last
}
