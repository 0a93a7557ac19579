package parser

import (
	"sort"
	"strings"
)

// span is a half-open byte range [start, end) of the original input.
type span struct {
	start int
	end   int
}

// text is the working state handed between stages: the untouched input plus
// every range a stage has claimed. It is never mutated in place; consume
// returns a new value so each stage's view can be inspected on its own.
type text struct {
	src      string
	consumed []span
}

func newText(s string) text {
	return text{src: s}
}

// consume marks [start, end) as claimed by a stage.
func (t text) consume(start, end int) text {
	if start < 0 {
		start = 0
	}
	if end > len(t.src) {
		end = len(t.src)
	}
	if start >= end || t.covered(start, end) {
		return t
	}

	spans := make([]span, len(t.consumed), len(t.consumed)+1)
	copy(spans, t.consumed)
	spans = append(spans, span{start: start, end: end})
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	return text{src: t.src, consumed: spans}
}

// isConsumed reports whether byte offset i falls inside a claimed range.
func (t text) isConsumed(i int) bool {
	for _, s := range t.consumed {
		if i >= s.start && i < s.end {
			return true
		}
		if s.start > i {
			break
		}
	}
	return false
}

// covered reports whether every byte of [start, end) is already consumed.
func (t text) covered(start, end int) bool {
	for i := start; i < end; i++ {
		if !t.isConsumed(i) {
			return false
		}
	}
	return true
}

// view returns the input with every consumed byte blanked to a space.
// Offsets into the view are offsets into the original input.
func (t text) view() string {
	if len(t.consumed) == 0 {
		return t.src
	}

	b := []byte(t.src)
	for _, s := range t.consumed {
		for i := s.start; i < s.end; i++ {
			b[i] = ' '
		}
	}
	return string(b)
}

// excise returns src[start:end] with consumed ranges cut out.
func (t text) excise(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(t.src) {
		end = len(t.src)
	}
	if start >= end {
		return ""
	}

	var sb strings.Builder
	pos := start
	for _, s := range t.consumed {
		if s.end <= pos {
			continue
		}
		if s.start >= end {
			break
		}
		if s.start > pos {
			sb.WriteString(t.src[pos:s.start])
		}
		if s.end > pos {
			pos = s.end
		}
	}
	if pos < end {
		sb.WriteString(t.src[pos:end])
	}
	return sb.String()
}
