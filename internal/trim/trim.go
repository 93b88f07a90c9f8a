// Package trim provides length-budget trimming of document text. Limits are
// counted in logical characters (runes), never bytes, matching the character
// convention used by every char_count and char_limit value in the system.
package trim

import "strings"

// DefaultLookback is the fraction of the budget, measured back from the
// truncation point, within which a sentence boundary is preferred over a
// hard cut.
const DefaultLookback = 0.2

// DefaultMarkers are the sentence-ending markers searched for a natural
// break, in preference order.
var DefaultMarkers = []string{"니다. ", "다. ", "요. ", ". "}

// Trimmer reduces text to fit a character budget, preferring to cut at a
// sentence boundary near the end of the budget over a mid-sentence hard cut.
type Trimmer struct {
	// Markers are the sentence-ending markers tried in order.
	Markers []string
	// Lookback is the fraction of the limit, from the truncation point
	// backward, in which a marker is accepted.
	Lookback float64
	// HardCutSuffix is appended when no acceptable boundary is found and the
	// text is hard-cut, so the reader can see content was clipped.
	HardCutSuffix string
}

// New returns a Trimmer with the default markers and lookback and the given
// hard-cut suffix.
func New(hardCutSuffix string) *Trimmer {
	return &Trimmer{
		Markers:       DefaultMarkers,
		Lookback:      DefaultLookback,
		HardCutSuffix: hardCutSuffix,
	}
}

// Trim returns text unchanged when it fits within limit characters.
// Otherwise it truncates to the limit and searches backward for the nearest
// sentence-ending marker; if one ends at or after (1-Lookback)*limit the cut
// moves there, else the hard cut stands and HardCutSuffix is appended within
// the budget.
func (t *Trimmer) Trim(text string, limit int) string {
	if limit <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	head := string(runes[:limit])
	floor := int(float64(limit) * (1 - t.Lookback))

	best := -1
	for _, marker := range t.Markers {
		idx := strings.LastIndex(head, marker)
		if idx < 0 {
			continue
		}
		// Cut keeps the marker minus its trailing space.
		end := len([]rune(head[:idx])) + len([]rune(marker)) - 1
		if end >= floor && end > best {
			best = end
		}
	}

	if best >= 0 {
		return string(runes[:best])
	}

	suffix := []rune(t.HardCutSuffix)
	if len(suffix) >= limit {
		return head
	}
	return string(runes[:limit-len(suffix)]) + t.HardCutSuffix
}
