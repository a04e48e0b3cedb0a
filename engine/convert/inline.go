package convert

import (
	"github.com/npillmayer/marklay/engine/content"
	"github.com/npillmayer/marklay/input/token"
	"golang.org/x/text/unicode/norm"
)

// inline renders inline tokens into text runs (and image references),
// appending them to out. st is the style inherited from enclosing tokens.
func (cv *conversion) inline(tokens []token.Token, st content.Style, out *[]content.Node) {
	for _, t := range tokens {
		switch x := t.(type) {
		case *token.Text:
			if len(x.Inline) > 0 {
				cv.inline(x.Inline, st, out)
			} else {
				cv.run(x.Text, st, out)
			}
		case *token.Strong:
			s := st
			s.Bold = true
			cv.inline(x.Inline, s, out)
		case *token.Em:
			s := st
			s.Italic = true
			cv.inline(x.Inline, s, out)
		case *token.Del:
			s := st
			s.Strike = true
			cv.inline(x.Inline, s, out)
		case *token.CodeSpan:
			s := st
			s.Monospace = true
			cv.run(x.Text, s, out)
		case *token.Link:
			s := st
			s.Link = x.Href
			s.Color = content.LinkColor
			cv.inline(x.Inline, s, out)
		case *token.Image:
			cv.image(x, st.Link, out)
		case *token.Break:
			*out = append(*out, &content.TextRun{Text: "\n", Style: st})
		case *token.HTML:
			cv.warn(WarnUnsupportedHTML, x.Type(), "skipping inline HTML %q", abbrev(x.Raw))
		default:
			cv.warn(WarnUnknownToken, t.Type(), "skipping inline token of unknown type %q", t.Type())
		}
	}
}

func (cv *conversion) run(text string, st content.Style, out *[]content.Node) {
	if text == "" {
		return
	}
	*out = append(*out, &content.TextRun{Text: norm.NFC.String(text), Style: st})
}
