package markdown

import (
	"fmt"
	"strings"

	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/input/token"
	rsc "rsc.io/markdown"
)

// RSC is a tokenizer based on rsc.io/markdown, with tables, strikethrough,
// autolinks and emoji enabled. Task list markers are recognized by the
// tokenizer itself.
type RSC struct{}

// NewRSC creates an rsc.io/markdown tokenizer.
func NewRSC() *RSC {
	return &RSC{}
}

// Tokenize is part of interface Tokenizer.
func (*RSC) Tokenize(src []byte) (tokens []token.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("rsc.io/markdown panicked: %v", r)
			err = core.Error(core.EINVALID, "cannot tokenize markdown: %v", r)
		}
	}()
	p := rsc.Parser{
		Table:         true,
		Strikethrough: true,
		AutoLinkText:  true,
		Emoji:         true,
	}
	doc := p.Parse(string(src))
	tokens = rscBlocks(doc.Blocks)
	tracer().Debugf("rsc: %d top-level tokens", len(tokens))
	return tokens, nil
}

func rscBlocks(blocks []rsc.Block) []token.Token {
	var tokens []token.Token
	for _, b := range blocks {
		if t := rscBlock(b); t != nil {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func rscBlock(b rsc.Block) token.Token {
	switch x := b.(type) {
	case *rsc.Heading:
		return &token.Heading{Depth: x.Level, Inline: rscText(x.Text)}
	case *rsc.Paragraph:
		inl := rscText(x.Text)
		if len(inl) == 1 && inl[0].Kind() == token.KindImage {
			return inl[0]
		}
		return &token.Paragraph{Inline: inl}
	case *rsc.Text:
		return &token.Text{Inline: rscText(x)}
	case *rsc.List:
		list := &token.List{
			Ordered: x.Bullet == '.' || x.Bullet == ')',
			Loose:   x.Loose,
			Start:   x.Start,
		}
		for _, it := range x.Items {
			list.Items = append(list.Items, rscItem(it))
		}
		return list
	case *rsc.Quote:
		return &token.Blockquote{Blocks: rscBlocks(x.Blocks)}
	case *rsc.CodeBlock:
		lang, _, _ := strings.Cut(strings.TrimSpace(x.Info), " ")
		return &token.Code{Text: strings.Join(x.Text, "\n"), Lang: lang}
	case *rsc.ThematicBreak:
		return &token.HR{}
	case *rsc.HTMLBlock:
		return rawHTML(strings.Join(x.Text, "\n"), true)
	case *rsc.Table:
		return rscTable(x)
	case *rsc.Empty:
		return &token.Space{}
	}
	name := strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", b), "*markdown."))
	tracer().Debugf("rsc: unmapped block %T", b)
	return &token.Other{Name: name}
}

func rscItem(b rsc.Block) *token.ListItem {
	item := &token.ListItem{}
	it, ok := b.(*rsc.Item)
	if !ok {
		item.Blocks = []token.Token{rscBlock(b)}
		return item
	}
	item.Blocks = rscBlocks(it.Blocks)
	if len(item.Blocks) > 0 {
		var first []token.Token
		switch x := item.Blocks[0].(type) {
		case *token.Paragraph:
			first = x.Inline
		case *token.Text:
			first = x.Inline
		}
		item.Task, item.Checked = stripTaskMarker(first)
	}
	return item
}

// stripTaskMarker removes a leading "[ ] " or "[x] " from the text of a list
// item. The marker may be spread over several text tokens.
func stripTaskMarker(inl []token.Token) (task, checked bool) {
	var prefix []byte
	var texts []*token.Text
	for _, t := range inl {
		x, ok := t.(*token.Text)
		if !ok || len(x.Inline) > 0 || len(prefix) >= 4 {
			break
		}
		prefix = append(prefix, x.Text...)
		texts = append(texts, x)
	}
	if len(prefix) < 4 || prefix[0] != '[' || prefix[2] != ']' || prefix[3] != ' ' {
		return false, false
	}
	switch prefix[1] {
	case ' ':
	case 'x', 'X':
		checked = true
	default:
		return false, false
	}
	n := 4
	for _, x := range texts {
		k := min(n, len(x.Text))
		x.Text = x.Text[k:]
		if n -= k; n == 0 {
			break
		}
	}
	return true, checked
}

func rscTable(t *rsc.Table) *token.Table {
	table := &token.Table{}
	for _, h := range t.Header {
		table.Header = append(table.Header, token.PlainText(rscText(h)))
	}
	for _, a := range t.Align {
		switch a {
		case "left":
			table.Align = append(table.Align, token.AlignLeft)
		case "center":
			table.Align = append(table.Align, token.AlignCenter)
		case "right":
			table.Align = append(table.Align, token.AlignRight)
		default:
			table.Align = append(table.Align, token.AlignNone)
		}
	}
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, token.PlainText(rscText(c)))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func rscText(t *rsc.Text) []token.Token {
	if t == nil {
		return nil
	}
	return rscInlines(t.Inline)
}

func rscInlines(inlines []rsc.Inline) []token.Token {
	var tokens []token.Token
	for _, x := range inlines {
		if t := rscInline(x); t != nil {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func rscInline(in rsc.Inline) token.Token {
	switch x := in.(type) {
	case *rsc.Plain:
		return &token.Text{Text: x.Text}
	case *rsc.Escaped:
		return &token.Text{Text: x.Text}
	case *rsc.Emoji:
		return &token.Text{Text: x.Text}
	case *rsc.SoftBreak:
		return &token.Text{Text: " "}
	case *rsc.HardBreak:
		return &token.Break{}
	case *rsc.Strong:
		return &token.Strong{Inline: rscInlines(x.Inner)}
	case *rsc.Emph:
		return &token.Em{Inline: rscInlines(x.Inner)}
	case *rsc.Del:
		return &token.Del{Inline: rscInlines(x.Inner)}
	case *rsc.Code:
		return &token.CodeSpan{Text: x.Text}
	case *rsc.Link:
		return &token.Link{Href: x.URL, Title: x.Title, Inline: rscInlines(x.Inner)}
	case *rsc.AutoLink:
		return &token.Link{Href: x.URL, Inline: []token.Token{&token.Text{Text: x.Text}}}
	case *rsc.Image:
		return &token.Image{Src: x.URL, Alt: token.PlainText(rscInlines(x.Inner)), Title: x.Title}
	case *rsc.HTMLTag:
		return rawHTML(x.Text, false)
	}
	name := strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", in), "*markdown."))
	tracer().Debugf("rsc: unmapped inline %T", in)
	return &token.Other{Name: name}
}
