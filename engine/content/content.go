package content

import (
	"encoding/base64"
	"image/color"
	"strings"

	"github.com/npillmayer/marklay/core/dimen"
	"golang.org/x/text/language"
)

// Kind is the kind of a content node.
type Kind int8

// Node kinds
const (
	KindTextRun Kind = iota + 1
	KindHeading
	KindParagraph
	KindImage
	KindList
	KindTable
	KindQuote
	KindDivider
	KindBlankLine
)

var kindNames = [...]string{
	"?", "text", "heading", "paragraph", "image", "list", "table", "quote", "divider", "blank",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

// Node is a node of the content model. The set of node types is closed.
type Node interface {
	Kind() Kind
	node()
}

// Style is the style descriptor of a text run. The zero value inherits
// everything from the enclosing block or the document's default style.
type Style struct {
	Bold      bool
	Italic    bool
	Monospace bool
	Strike    bool
	Underline bool
	FontSize  float64     // in points; 0 inherits
	Color     color.Color // nil inherits
	Link      string      // link target
}

// LinkColor is the color given to text runs within links.
var LinkColor = color.RGBA{R: 0x1a, G: 0x0d, B: 0xab, A: 0xff}

// IsPlain returns true if s does not change any style property.
func (s Style) IsPlain() bool {
	return s.Equal(Style{})
}

// Equal compares two styles.
func (s Style) Equal(o Style) bool {
	if s.Bold != o.Bold || s.Italic != o.Italic || s.Monospace != o.Monospace ||
		s.Strike != o.Strike || s.Underline != o.Underline ||
		s.FontSize != o.FontSize || s.Link != o.Link {
		return false
	}
	return sameColor(s.Color, o.Color)
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// TextRun is a string of text with a uniform style.
type TextRun struct {
	Text        string
	Style       Style
	Lang        string // language tag of a code block, if any
	Placeholder bool   // stands in for content which could not be resolved
}

// Heading is a heading with a level of 1…6.
type Heading struct {
	Level   int
	Style   Style // carries font size and underline
	Inlines []Node
}

// Paragraph is a paragraph of inline nodes (text runs and image references).
type Paragraph struct {
	Inlines []Node
	Tight   bool // text of a tight list item, rendered without paragraph spacing
}

// ImageRef references an image. After conversion, Data holds the encoded
// image bytes and Format their format name ("png", "jpeg", …).
type ImageRef struct {
	Src   string
	Alt   string
	Title string
	// Link is the target of an enclosing link, if any.
	Link   string
	Format string
	Data   []byte
	// PixelWidth and PixelHeight are the intrinsic image dimensions.
	PixelWidth, PixelHeight int
	// Width and Height are the dimensions on the page, fitted to the
	// maximum content width.
	Width, Height dimen.Dimen
}

// DataURL returns the image data as a data URL, or Src if no data is
// present.
func (img *ImageRef) DataURL() string {
	if len(img.Data) == 0 {
		return img.Src
	}
	var b strings.Builder
	b.WriteString("data:image/")
	b.WriteString(img.Format)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(img.Data))
	return b.String()
}

// ListBlock is an ordered or unordered list.
type ListBlock struct {
	Ordered bool
	Loose   bool
	Start   int
	Items   []*ListItem
}

// ListItem is an item of a list block.
type ListItem struct {
	Task    bool
	Checked bool
	Content []Node
}

// Alignment is the alignment of a table column.
type Alignment int8

// Column alignments
const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// TableBlock is a table of strings. Rows may differ in length.
type TableBlock struct {
	HeaderRows int
	Header     []string
	Align      []Alignment
	Rows       [][]string
}

// Body returns the header row followed by all data rows.
func (t *TableBlock) Body() [][]string {
	body := make([][]string, 0, len(t.Rows)+1)
	body = append(body, t.Header)
	return append(body, t.Rows...)
}

// Quote marks its content as quoted.
type Quote struct {
	Content []Node
}

// Divider is a horizontal rule.
type Divider struct{}

// BlankLine is an explicit line break between blocks.
type BlankLine struct {
	Text string
}

func (*TextRun) Kind() Kind    { return KindTextRun }
func (*Heading) Kind() Kind    { return KindHeading }
func (*Paragraph) Kind() Kind  { return KindParagraph }
func (*ImageRef) Kind() Kind   { return KindImage }
func (*ListBlock) Kind() Kind  { return KindList }
func (*TableBlock) Kind() Kind { return KindTable }
func (*Quote) Kind() Kind      { return KindQuote }
func (*Divider) Kind() Kind    { return KindDivider }
func (*BlankLine) Kind() Kind  { return KindBlankLine }

func (*TextRun) node()    {}
func (*Heading) node()    {}
func (*Paragraph) node()  {}
func (*ImageRef) node()   {}
func (*ListBlock) node()  {}
func (*TableBlock) node() {}
func (*Quote) node()      {}
func (*Divider) node()    {}
func (*BlankLine) node()  {}

// --- Document --------------------------------------------------------------

// Document is the complete content model of a converted markdown document.
type Document struct {
	Content      []Node
	DefaultStyle DefaultStyle
	Info         Info
	Language     language.Tag
}

// DefaultStyle is the document-wide default style.
type DefaultStyle struct {
	Font string
}

// Info is document metadata, usually taken from front matter.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
}

// IsEmpty returns true if no metadata is set.
func (info Info) IsEmpty() bool {
	return info.Title == "" && info.Author == "" && info.Subject == "" && len(info.Keywords) == 0
}
