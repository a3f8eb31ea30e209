package selection

import (
	"cmp"
	"slices"
	"strings"
)

// Segment is a run of text that is either wholly mapped or wholly unmapped.
type Segment struct {
	Text   string `json:"text"`
	Mapped bool   `json:"mapped"`
}

// Highlight splits text into segments, marking every occurrence of a mapped
// snippet. Longer snippets claim text first, so a shorter snippet never splits
// a longer match.
func Highlight(text string, mapped []string) []Segment {
	if text == "" {
		return nil
	}

	ranges := slices.Clone(mapped)
	slices.SortStableFunc(ranges, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})

	marked := make([]bool, len(text))
	for _, r := range ranges {
		if r == "" {
			continue
		}
		for pos := 0; pos+len(r) <= len(text); {
			idx := strings.Index(text[pos:], r)
			if idx < 0 {
				break
			}
			start := pos + idx
			end := start + len(r)
			if slices.Contains(marked[start:end], true) {
				pos = start + 1
				continue
			}
			for i := start; i < end; i++ {
				marked[i] = true
			}
			pos = end
		}
	}

	var segments []Segment
	start := 0
	for i := 1; i <= len(text); i++ {
		if i == len(text) || marked[i] != marked[start] {
			segments = append(segments, Segment{Text: text[start:i], Mapped: marked[start]})
			start = i
		}
	}
	return segments
}

// Highlight segments text against the tracker's mapped set.
func (t *Tracker) Highlight(text string) []Segment {
	return Highlight(text, t.order)
}
