package convert

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/marklay/engine/content"
	"github.com/npillmayer/marklay/engine/style"
	"github.com/npillmayer/marklay/input/token"
)

// block converts a single block token, appending its nodes to out.
// For lists and quotes, the nested block sequences are returned for the
// caller to convert.
func (cv *conversion) block(t token.Token, out *[]content.Node) []*work {
	switch x := t.(type) {
	case *token.Heading:
		*out = append(*out, cv.heading(x))
	case *token.Paragraph:
		p := &content.Paragraph{}
		*out = append(*out, p)
		cv.inline(x.Inline, content.Style{}, &p.Inlines)
	case *token.Text:
		// block-level text of a tight list item
		p := &content.Paragraph{Tight: true}
		*out = append(*out, p)
		cv.inline([]token.Token{x}, content.Style{}, &p.Inlines)
	case *token.List:
		return cv.list(x, out)
	case *token.ListItem:
		// stray item outside of a list
		return []*work{{tokens: x.Blocks, out: out}}
	case *token.Blockquote:
		q := &content.Quote{}
		*out = append(*out, q)
		return []*work{{tokens: x.Blocks, out: &q.Content}}
	case *token.Image:
		cv.image(x, "", out)
	case *token.Code:
		*out = append(*out, &content.TextRun{
			Text:  x.Text,
			Style: content.Style{Monospace: true},
			Lang:  x.Lang,
		})
	case *token.HR:
		*out = append(*out, &content.Divider{})
	case *token.Space:
		// no content
	case *token.Break:
		*out = append(*out, &content.BlankLine{Text: "\n"})
	case *token.Table:
		*out = append(*out, table(x))
	case *token.HTML:
		cv.warn(WarnUnsupportedHTML, x.Type(), "skipping raw HTML %q", abbrev(x.Raw))
	case *token.Strong, *token.Em, *token.Del, *token.CodeSpan, *token.Link:
		p := &content.Paragraph{Tight: true}
		*out = append(*out, p)
		cv.inline([]token.Token{x}, content.Style{}, &p.Inlines)
	default:
		cv.warn(WarnUnknownToken, t.Type(), "skipping token of unknown type %q", t.Type())
	}
	return nil
}

func (cv *conversion) heading(h *token.Heading) *content.Heading {
	depth := style.ClampDepth(h.Depth)
	if depth != h.Depth {
		tracer().Debugf("heading depth %d clamped to %d", h.Depth, depth)
	}
	head := &content.Heading{
		Level: depth,
		Style: content.Style{
			FontSize:  cv.style.HeadingSize(depth),
			Underline: cv.style.Underline(),
		},
	}
	cv.inline(h.Inline, content.Style{}, &head.Inlines)
	return head
}

func (cv *conversion) list(l *token.List, out *[]content.Node) []*work {
	list := &content.ListBlock{
		Ordered: l.Ordered,
		Loose:   l.Loose,
		Start:   l.Start,
		Items:   make([]*content.ListItem, 0, len(l.Items)),
	}
	if list.Ordered && list.Start == 0 {
		list.Start = 1
	}
	*out = append(*out, list)
	nested := make([]*work, 0, len(l.Items))
	for _, it := range l.Items {
		item := &content.ListItem{Task: it.Task, Checked: it.Checked}
		list.Items = append(list.Items, item)
		nested = append(nested, &work{tokens: it.Blocks, out: &item.Content})
	}
	return nested
}

func table(t *token.Table) *content.TableBlock {
	tb := &content.TableBlock{
		HeaderRows: 1,
		Header:     t.Header,
		Rows:       t.Rows,
	}
	for _, a := range t.Align {
		switch a {
		case token.AlignLeft:
			tb.Align = append(tb.Align, content.AlignLeft)
		case token.AlignCenter:
			tb.Align = append(tb.Align, content.AlignCenter)
		case token.AlignRight:
			tb.Align = append(tb.Align, content.AlignRight)
		default:
			tb.Align = append(tb.Align, content.AlignDefault)
		}
	}
	return tb
}

// abbrev shortens s to at most 40 runes.
func abbrev(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= 40 {
		return s
	}
	r := []rune(s)
	return string(r[:40]) + "…"
}
