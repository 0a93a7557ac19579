package parser

// Trace records how a parse was resolved, for debugging rule order.
type Trace struct {
	// Layout names the title layout rule that matched.
	Layout string `json:"layout" yaml:"layout"`
	// Removed lists the input fragments consumed before layout, in order of
	// position.
	Removed []string `json:"removed" yaml:"removed"`
	// Words is the tokenised view the layout rules worked from.
	Words []string `json:"words" yaml:"words"`
	// Cut is the index into Words where the title stopped.
	Cut int `json:"cut" yaml:"cut"`
}

func newTrace(t text, l layout, s *scan) Trace {
	tr := Trace{Layout: l.rule, Cut: l.cut}
	for _, sp := range t.consumed {
		tr.Removed = append(tr.Removed, t.src[sp.start:sp.end])
	}
	for _, w := range s.words {
		tr.Words = append(tr.Words, w.text)
	}
	return tr
}
