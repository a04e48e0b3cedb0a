package content

import (
	"fmt"

	"github.com/npillmayer/cords"
	sty "github.com/npillmayer/cords/styled"
)

// String is part of interface cords.styled.Style.
func (s Style) String() string {
	return fmt.Sprintf("<style b=%v i=%v tt=%v size=%g link=%q>",
		s.Bold, s.Italic, s.Monospace, s.FontSize, s.Link)
}

// Equals is part of interface cords.styled.Style, not intended for client usage.
func (s Style) Equals(other sty.Style) bool {
	if o, ok := other.(Style); ok {
		return s.Equal(o)
	}
	return false
}

var _ sty.Style = Style{}

// StyledText returns the text of a sequence of inline nodes as a styled
// text, with one style run per text run. Image references and empty runs
// do not contribute text. If no text is present, nil is returned.
func StyledText(inlines []Node) *sty.Text {
	b := cords.NewBuilder()
	var runs []*TextRun
	for _, n := range inlines {
		if run, ok := n.(*TextRun); ok && run.Text != "" {
			b.Append(runLeaf{content: run.Text})
			runs = append(runs, run)
		}
	}
	if len(runs) == 0 {
		return nil
	}
	text := sty.TextFromCord(b.Cord())
	pos := uint64(0)
	for _, run := range runs {
		end := pos + uint64(len(run.Text))
		text.Style(run.Style, pos, end)
		pos = end
	}
	tracer().Debugf("styled text of %d runs, length %d", len(runs), pos)
	return text
}

// StyledText returns the paragraph's text as a styled text.
func (p *Paragraph) StyledText() *sty.Text {
	return StyledText(p.Inlines)
}

// StyledText returns the heading's text as a styled text.
func (h *Heading) StyledText() *sty.Text {
	return StyledText(h.Inlines)
}

// runLeaf is the leaf type for cords built from text runs.
// Not intended for client usage.
type runLeaf struct {
	content string
}

// Weight is part of interface cords.Leaf.
func (l runLeaf) Weight() uint64 {
	return uint64(len(l.content))
}

// String is part of interface cords.Leaf.
func (l runLeaf) String() string {
	return l.content
}

// Split is part of interface cords.Leaf.
func (l runLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return runLeaf{content: l.content[:i]}, runLeaf{content: l.content[i:]}
}

// Substring is part of interface cords.Leaf.
func (l runLeaf) Substring(i, j uint64) []byte {
	return []byte(l.content)[i:j]
}

var _ cords.Leaf = runLeaf{}
