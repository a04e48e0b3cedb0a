package markdown

import (
	"bytes"
	"strings"

	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/input/token"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Goldmark is a tokenizer based on github.com/yuin/goldmark.
// It is stateless and may be shared between goroutines.
type Goldmark struct {
	md goldmark.Markdown
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
}

// NewGoldmark creates a goldmark tokenizer with a set of named extensions
// ("gfm", "table", "strikethrough", "linkify", "tasklist"). Without
// extension names, GFM is enabled. Unknown names are ignored.
func NewGoldmark(extensions ...string) *Goldmark {
	var exts []goldmark.Extender
	seen := map[string]bool{}
	for _, name := range extensions {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := extensionRegistry[key]
		if !ok || seen[key] {
			continue
		}
		exts = append(exts, ext)
		seen[key] = true
	}
	if len(extensions) == 0 {
		exts = []goldmark.Extender{extension.GFM}
	}
	return &Goldmark{md: goldmark.New(goldmark.WithExtensions(exts...))}
}

// Tokenize is part of interface Tokenizer.
func (g *Goldmark) Tokenize(src []byte) (tokens []token.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("goldmark panicked: %v", r)
			err = core.Error(core.EINVALID, "cannot tokenize markdown: %v", r)
		}
	}()
	root := g.md.Parser().Parse(text.NewReader(src))
	w := gmWalker{src: src}
	tokens = w.blocks(root)
	tracer().Debugf("goldmark: %d top-level tokens", len(tokens))
	return tokens, nil
}

type gmWalker struct {
	src []byte
}

func (w gmWalker) blocks(parent ast.Node) []token.Token {
	var tokens []token.Token
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if n.HasBlankPreviousLines() && len(tokens) > 0 {
			tokens = append(tokens, &token.Space{})
		}
		tokens = append(tokens, w.block(n))
	}
	return tokens
}

func (w gmWalker) block(n ast.Node) token.Token {
	switch b := n.(type) {
	case *ast.Heading:
		return &token.Heading{Depth: b.Level, Inline: w.inlines(b)}
	case *ast.Paragraph:
		if img, ok := b.FirstChild().(*ast.Image); ok && b.ChildCount() == 1 {
			return w.image(img)
		}
		return &token.Paragraph{Inline: w.inlines(b)}
	case *ast.TextBlock:
		return &token.Text{Inline: w.inlines(b)}
	case *ast.List:
		list := &token.List{Ordered: b.IsOrdered(), Loose: !b.IsTight, Start: b.Start}
		for c := b.FirstChild(); c != nil; c = c.NextSibling() {
			list.Items = append(list.Items, w.listItem(c))
		}
		return list
	case *ast.Blockquote:
		return &token.Blockquote{Blocks: w.blocks(b)}
	case *ast.FencedCodeBlock:
		return &token.Code{Text: w.lines(b.Lines()), Lang: string(b.Language(w.src))}
	case *ast.CodeBlock:
		return &token.Code{Text: w.lines(b.Lines())}
	case *ast.ThematicBreak:
		return &token.HR{}
	case *ast.HTMLBlock:
		raw := w.lines(b.Lines())
		if b.HasClosure() {
			raw += "\n" + string(b.ClosureLine.Value(w.src))
		}
		return rawHTML(raw, true)
	case *east.Table:
		return w.table(b)
	}
	tracer().Debugf("goldmark: unmapped block node %s", n.Kind())
	return &token.Other{Name: n.Kind().String()}
}

func (w gmWalker) listItem(n ast.Node) *token.ListItem {
	item := &token.ListItem{Blocks: w.blocks(n)}
	if first := n.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
			item.Task, item.Checked = true, box.IsChecked
		}
	}
	return item
}

func (w gmWalker) table(t *east.Table) *token.Table {
	table := &token.Table{}
	for _, a := range t.Alignments {
		table.Align = append(table.Align, gmAlignment(a))
	}
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, token.PlainText(w.inlines(c)))
		}
		if _, ok := r.(*east.TableHeader); ok {
			table.Header = cells
		} else {
			table.Rows = append(table.Rows, cells)
		}
	}
	return table
}

func gmAlignment(a east.Alignment) token.Alignment {
	switch a {
	case east.AlignLeft:
		return token.AlignLeft
	case east.AlignCenter:
		return token.AlignCenter
	case east.AlignRight:
		return token.AlignRight
	}
	return token.AlignNone
}

// lines concatenates the lines of a block, dropping the final newline.
func (w gmWalker) lines(segs *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf.Write(seg.Value(w.src))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (w gmWalker) inlines(parent ast.Node) []token.Token {
	var tokens []token.Token
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		tokens = append(tokens, w.inline(n)...)
	}
	return tokens
}

func (w gmWalker) inline(n ast.Node) []token.Token {
	switch x := n.(type) {
	case *ast.Text:
		t := []token.Token{&token.Text{Text: string(x.Segment.Value(w.src))}}
		if x.HardLineBreak() {
			t = append(t, &token.Break{})
		} else if x.SoftLineBreak() {
			t = append(t, &token.Text{Text: " "})
		}
		return t
	case *ast.String:
		return []token.Token{&token.Text{Text: string(x.Value)}}
	case *ast.Emphasis:
		if x.Level >= 2 {
			return []token.Token{&token.Strong{Inline: w.inlines(x)}}
		}
		return []token.Token{&token.Em{Inline: w.inlines(x)}}
	case *east.Strikethrough:
		return []token.Token{&token.Del{Inline: w.inlines(x)}}
	case *ast.CodeSpan:
		return []token.Token{&token.CodeSpan{Text: token.PlainText(w.inlines(x))}}
	case *ast.Link:
		return []token.Token{&token.Link{
			Href:   string(x.Destination),
			Title:  string(x.Title),
			Inline: w.inlines(x),
		}}
	case *ast.AutoLink:
		return []token.Token{&token.Link{
			Href:   string(x.URL(w.src)),
			Inline: []token.Token{&token.Text{Text: string(x.Label(w.src))}},
		}}
	case *ast.Image:
		return []token.Token{w.image(x)}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < x.Segments.Len(); i++ {
			seg := x.Segments.At(i)
			buf.Write(seg.Value(w.src))
		}
		return []token.Token{rawHTML(buf.String(), false)}
	case *east.TaskCheckBox:
		return nil // reported on the list item
	}
	tracer().Debugf("goldmark: unmapped inline node %s", n.Kind())
	return []token.Token{&token.Other{Name: n.Kind().String()}}
}

func (w gmWalker) image(img *ast.Image) *token.Image {
	return &token.Image{
		Src:   string(img.Destination),
		Alt:   token.PlainText(w.inlines(img)),
		Title: string(img.Title),
	}
}
