/*
Package contentdbg provides debugging output for content models.

Outline renders the node structure of a document as indented text, one
node per line, which is handy for comparing structures in tests.
Dump pretty-prints the complete model.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package contentdbg

import (
	"fmt"
	"strings"
	"sync"

	"github.com/k0kubun/pp"
	"github.com/npillmayer/marklay/engine/content"
)

// Outline returns an indented outline of a sequence of content nodes.
func Outline(nodes []content.Node) string {
	var b strings.Builder
	outline(&b, nodes, 0)
	return b.String()
}

func outline(b *strings.Builder, nodes []content.Node, level int) {
	indent := strings.Repeat("  ", level)
	for _, n := range nodes {
		b.WriteString(indent)
		switch x := n.(type) {
		case *content.TextRun:
			if x.Placeholder {
				fmt.Fprintf(b, "placeholder %q\n", x.Text)
			} else {
				fmt.Fprintf(b, "text%s %q\n", flags(x.Style), x.Text)
			}
		case *content.Heading:
			fmt.Fprintf(b, "heading(%d, %gpt) %q\n", x.Level, x.Style.FontSize, plain(x.Inlines))
		case *content.Paragraph:
			fmt.Fprintf(b, "paragraph %q\n", plain(x.Inlines))
		case *content.ImageRef:
			fmt.Fprintf(b, "image %q\n", x.Src)
		case *content.ListBlock:
			kind := "ul"
			if x.Ordered {
				kind = "ol"
			}
			fmt.Fprintf(b, "list(%s)\n", kind)
			for _, item := range x.Items {
				b.WriteString(indent + "  item\n")
				outline(b, item.Content, level+2)
			}
		case *content.TableBlock:
			fmt.Fprintf(b, "table %dx%d\n", len(x.Header), len(x.Rows))
		case *content.Quote:
			b.WriteString("quote\n")
			outline(b, x.Content, level+1)
		case *content.Divider:
			b.WriteString("divider\n")
		case *content.BlankLine:
			b.WriteString("blank\n")
		default:
			fmt.Fprintf(b, "%T\n", n)
		}
	}
}

func flags(s content.Style) string {
	var f []string
	if s.Bold {
		f = append(f, "b")
	}
	if s.Italic {
		f = append(f, "i")
	}
	if s.Monospace {
		f = append(f, "tt")
	}
	if s.Strike {
		f = append(f, "s")
	}
	if s.Link != "" {
		f = append(f, "link")
	}
	if len(f) == 0 {
		return ""
	}
	return "[" + strings.Join(f, ",") + "]"
}

func plain(inlines []content.Node) string {
	var b strings.Builder
	for _, n := range inlines {
		switch x := n.(type) {
		case *content.TextRun:
			b.WriteString(x.Text)
		case *content.ImageRef:
			b.WriteString("<img>")
		}
	}
	return b.String()
}

var ppMutex sync.Mutex

// Dump pretty-prints a document, without terminal colors.
func Dump(doc *content.Document) string {
	ppMutex.Lock()
	defer ppMutex.Unlock()
	coloring := pp.ColoringEnabled
	pp.ColoringEnabled = false
	defer func() { pp.ColoringEnabled = coloring }()
	return pp.Sprint(doc)
}
