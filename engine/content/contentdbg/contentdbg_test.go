package contentdbg

import (
	"strings"
	"testing"

	"github.com/npillmayer/marklay/engine/content"
	"github.com/stretchr/testify/assert"
)

func TestOutline(t *testing.T) {
	nodes := []content.Node{
		&content.Heading{Level: 1, Style: content.Style{FontSize: 36}, Inlines: []content.Node{
			&content.TextRun{Text: "Title"},
		}},
		&content.ListBlock{Items: []*content.ListItem{
			{Content: []content.Node{
				&content.Quote{Content: []content.Node{
					&content.TextRun{Text: "quoted", Style: content.Style{Italic: true}},
				}},
			}},
		}},
		&content.TextRun{Text: "alt", Placeholder: true},
		&content.Divider{},
	}
	expected := strings.Join([]string{
		`heading(1, 36pt) "Title"`,
		`list(ul)`,
		`  item`,
		`    quote`,
		`      text[i] "quoted"`,
		`placeholder "alt"`,
		`divider`,
		``,
	}, "\n")
	assert.Equal(t, expected, Outline(nodes))
}

func TestDump(t *testing.T) {
	doc := &content.Document{
		Content:      []content.Node{&content.TextRun{Text: "hello"}},
		DefaultStyle: content.DefaultStyle{Font: "Roboto"},
	}
	s := Dump(doc)
	t.Logf("\n%s", s)
	assert.Contains(t, s, "hello")
	assert.Contains(t, s, "Roboto")
}
