package content

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"

	"github.com/npillmayer/marklay/core/dimen"
	"golang.org/x/text/language"
)

// MarshalJSON encodes a document as a pdfmake document definition
// (see http://pdfmake.org/#/gettingstarted).
//
// Monospace runs refer to style "code", quotes to style "blockquote";
// renderers are expected to define these styles.
func (doc *Document) MarshalJSON() ([]byte, error) {
	def := map[string]interface{}{
		"content":      pdfmakeNodes(doc.Content),
		"defaultStyle": map[string]interface{}{"font": doc.DefaultStyle.Font},
	}
	if !doc.Info.IsEmpty() {
		info := map[string]interface{}{}
		setIf(info, "title", doc.Info.Title)
		setIf(info, "author", doc.Info.Author)
		setIf(info, "subject", doc.Info.Subject)
		if len(doc.Info.Keywords) > 0 {
			info["keywords"] = strings.Join(doc.Info.Keywords, ", ")
		}
		def["info"] = info
	}
	if doc.Language != language.Und {
		def["language"] = doc.Language.String()
	}
	tracer().Debugf("exporting %d content nodes as pdfmake definition", len(doc.Content))
	return json.Marshal(def)
}

func pdfmakeNodes(nodes []Node) []interface{} {
	out := make([]interface{}, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, pdfmakeNode(n))
	}
	return out
}

func pdfmakeNode(n Node) interface{} {
	switch x := n.(type) {
	case *TextRun:
		m := pdfmakeRun(x)
		if x.Lang != "" {
			m["preserveLeadingSpaces"] = true
		}
		return m
	case *Heading:
		return pdfmakeText(x.Inlines, func(m map[string]interface{}) {
			m["headlineLevel"] = x.Level
			applyStyle(m, x.Style)
		})
	case *Paragraph:
		return pdfmakeText(x.Inlines, func(m map[string]interface{}) {
			if !x.Tight {
				m["margin"] = []int{0, 5, 0, 5}
			}
		})
	case *ImageRef:
		return pdfmakeImage(x)
	case *ListBlock:
		items := make([]interface{}, 0, len(x.Items))
		for _, item := range x.Items {
			items = append(items, pdfmakeItem(item))
		}
		if x.Ordered {
			m := map[string]interface{}{"ol": items}
			if x.Start != 0 && x.Start != 1 {
				m["start"] = x.Start
			}
			return m
		}
		return map[string]interface{}{"ul": items}
	case *TableBlock:
		return map[string]interface{}{
			"layout": "lightHorizontalLines",
			"table": map[string]interface{}{
				"headerRows": x.HeaderRows,
				"body":       x.Body(),
			},
		}
	case *Quote:
		return map[string]interface{}{
			"stack": pdfmakeNodes(x.Content),
			"style": "blockquote",
		}
	case *Divider:
		w := dimen.DINA4.ContentWidth(dimen.DefaultPageMargin).Points()
		return map[string]interface{}{
			"canvas": []interface{}{
				map[string]interface{}{
					"type": "line", "x1": 0, "y1": 5, "x2": w, "y2": 5, "lineWidth": 0.5,
				},
			},
		}
	case *BlankLine:
		return map[string]interface{}{"text": x.Text}
	}
	tracer().Errorf("pdfmake export: unknown content node %T", n)
	return map[string]interface{}{"text": ""}
}

// Check box prefixes of task list items.
const (
	TaskOpen = "[ ] "
	TaskDone = "[x] "
)

func pdfmakeItem(item *ListItem) interface{} {
	nodes := item.Content
	if item.Task {
		nodes = withTaskMarker(item)
	}
	if len(nodes) == 1 {
		return pdfmakeNode(nodes[0])
	}
	return map[string]interface{}{"stack": pdfmakeNodes(nodes)}
}

// withTaskMarker prepends a check box to the first paragraph of a task item,
// or puts it in front of the item's content otherwise.
func withTaskMarker(item *ListItem) []Node {
	marker := &TextRun{Text: TaskOpen}
	if item.Checked {
		marker.Text = TaskDone
	}
	nodes := make([]Node, 0, len(item.Content)+1)
	if len(item.Content) > 0 {
		if p, ok := item.Content[0].(*Paragraph); ok {
			q := *p
			q.Inlines = append([]Node{marker}, p.Inlines...)
			nodes = append(nodes, &q)
			return append(nodes, item.Content[1:]...)
		}
	}
	nodes = append(nodes, marker)
	return append(nodes, item.Content...)
}

// pdfmakeText exports a block of inline content. pdfmake does not render
// images inside a text array, so inline images split the block into a
// stack of text pieces and images. decorate is applied to every text piece.
func pdfmakeText(inlines []Node, decorate func(map[string]interface{})) interface{} {
	var pieces []interface{}
	start := 0
	flush := func(end int) {
		if end > start || len(pieces) == 0 && end == len(inlines) {
			m := map[string]interface{}{"text": pdfmakeInlines(inlines[start:end])}
			decorate(m)
			pieces = append(pieces, m)
		}
	}
	for i, n := range inlines {
		if img, ok := n.(*ImageRef); ok {
			flush(i)
			pieces = append(pieces, pdfmakeImage(img))
			start = i + 1
		}
	}
	flush(len(inlines))
	if len(pieces) == 1 {
		return pieces[0]
	}
	return map[string]interface{}{"stack": pieces}
}

func pdfmakeInlines(inlines []Node) []interface{} {
	out := make([]interface{}, 0, len(inlines))
	for _, n := range inlines {
		if run, ok := n.(*TextRun); ok && run.Style.IsPlain() && !run.Placeholder {
			out = append(out, run.Text)
			continue
		}
		out = append(out, pdfmakeNode(n))
	}
	return out
}

func pdfmakeRun(run *TextRun) map[string]interface{} {
	m := map[string]interface{}{"text": run.Text}
	applyStyle(m, run.Style)
	if run.Placeholder {
		m["italics"] = true
	}
	return m
}

func pdfmakeImage(img *ImageRef) map[string]interface{} {
	m := map[string]interface{}{"image": img.DataURL()}
	if img.Width > 0 {
		m["width"] = img.Width.Points()
	}
	if img.Height > 0 {
		m["height"] = img.Height.Points()
	}
	if img.Link != "" {
		m["link"] = img.Link
	}
	return m
}

func applyStyle(m map[string]interface{}, s Style) {
	if s.Bold {
		m["bold"] = true
	}
	if s.Italic {
		m["italics"] = true
	}
	if s.Monospace {
		m["style"] = "code"
	}
	switch {
	case s.Underline && s.Strike:
		m["decoration"] = []string{"underline", "lineThrough"}
	case s.Underline:
		m["decoration"] = "underline"
	case s.Strike:
		m["decoration"] = "lineThrough"
	}
	if s.FontSize > 0 {
		m["fontSize"] = s.FontSize
	}
	if s.Color != nil {
		m["color"] = hexColor(s.Color)
	}
	if s.Link != "" {
		m["link"] = s.Link
	}
}

func hexColor(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func setIf(m map[string]interface{}, key, value string) {
	if value != "" {
		m[key] = value
	}
}
