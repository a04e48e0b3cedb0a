/*
Package token defines the markdown token tree which is the input for the
conversion to a print content model.

Tokens are produced by a tokenizer front-end (see package input/markdown)
and are read-only thereafter. The set of token types is closed: every
concrete type implements the unexported marker method of interface Token.
Tokenizer kinds without a dedicated type are represented as Other.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package token

// Kind is the kind of a token.
type Kind int8

// Token kinds. Names follow the type names established by common markdown
// lexers (see Kind.String).
const (
	KindOther Kind = iota
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindBlockquote
	KindImage
	KindCode
	KindHR
	KindSpace
	KindBreak
	KindTable
	KindText
	KindStrong
	KindEm
	KindCodeSpan
	KindLink
	KindDel
	KindHTML
)

var kindNames = [...]string{
	KindOther:      "other",
	KindParagraph:  "paragraph",
	KindHeading:    "heading",
	KindList:       "list",
	KindListItem:   "list_item",
	KindBlockquote: "blockquote",
	KindImage:      "image",
	KindCode:       "code",
	KindHR:         "hr",
	KindSpace:      "space",
	KindBreak:      "br",
	KindTable:      "table",
	KindText:       "text",
	KindStrong:     "strong",
	KindEm:         "em",
	KindCodeSpan:   "codespan",
	KindLink:       "link",
	KindDel:        "del",
	KindHTML:       "html",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "other"
	}
	return kindNames[k]
}

// Token is a node of the markdown token tree.
type Token interface {
	Kind() Kind
	// Type returns the type name of the token, as reported in diagnostics.
	Type() string
	isToken()
}

// --- Block tokens ----------------------------------------------------------

// Paragraph is a paragraph of inline tokens.
type Paragraph struct {
	Inline []Token
}

// Heading is a heading of depth 1…6.
type Heading struct {
	Depth  int
	Inline []Token
}

// List is an ordered or unordered list.
type List struct {
	Ordered bool
	Loose   bool
	Start   int // first number of an ordered list
	Items   []*ListItem
}

// ListItem is an item of a list, holding a sequence of block tokens.
type ListItem struct {
	Task    bool // item is a task list item
	Checked bool // task is checked
	Blocks  []Token
}

// Blockquote holds a sequence of block tokens.
type Blockquote struct {
	Blocks []Token
}

// Image is an image reference. It may occur as a block or as an inline token.
type Image struct {
	Src   string
	Alt   string
	Title string
}

// Code is a code block.
type Code struct {
	Text string
	Lang string
}

// HR is a horizontal rule (thematic break).
type HR struct{}

// Space is blank space between blocks. It carries no content.
type Space struct{}

// Break is an explicit line break, either between blocks or within a line.
type Break struct{}

// Alignment is the alignment of a table column.
type Alignment int8

// Column alignments
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Table is a table with a header row and data rows of cell strings.
// Rows are not required to have the same number of cells.
type Table struct {
	Header []string
	Align  []Alignment
	Rows   [][]string
}

// HTML is raw HTML, either inline or as a block.
type HTML struct {
	Raw   string
	Block bool
}

// Other is a token of a kind the tokenizer knows but this package does not
// model.
type Other struct {
	Name string
	Raw  string
}

// --- Inline tokens ---------------------------------------------------------

// Text is literal text. If Inline is non-empty, it takes precedence over Text
// (tokenizers produce this for block-level text in tight lists).
type Text struct {
	Text   string
	Inline []Token
}

// Strong is strong emphasis.
type Strong struct {
	Inline []Token
}

// Em is emphasis.
type Em struct {
	Inline []Token
}

// Del is deleted (strikethrough) text.
type Del struct {
	Inline []Token
}

// CodeSpan is inline code.
type CodeSpan struct {
	Text string
}

// Link is a hyperlink around inline tokens.
type Link struct {
	Href   string
	Title  string
	Inline []Token
}

// ---------------------------------------------------------------------------

func (*Paragraph) Kind() Kind  { return KindParagraph }
func (*Heading) Kind() Kind    { return KindHeading }
func (*List) Kind() Kind       { return KindList }
func (*ListItem) Kind() Kind   { return KindListItem }
func (*Blockquote) Kind() Kind { return KindBlockquote }
func (*Image) Kind() Kind      { return KindImage }
func (*Code) Kind() Kind       { return KindCode }
func (*HR) Kind() Kind         { return KindHR }
func (*Space) Kind() Kind      { return KindSpace }
func (*Break) Kind() Kind      { return KindBreak }
func (*Table) Kind() Kind      { return KindTable }
func (*HTML) Kind() Kind       { return KindHTML }
func (*Other) Kind() Kind      { return KindOther }
func (*Text) Kind() Kind       { return KindText }
func (*Strong) Kind() Kind     { return KindStrong }
func (*Em) Kind() Kind         { return KindEm }
func (*Del) Kind() Kind        { return KindDel }
func (*CodeSpan) Kind() Kind   { return KindCodeSpan }
func (*Link) Kind() Kind       { return KindLink }

func (t *Paragraph) Type() string  { return t.Kind().String() }
func (t *Heading) Type() string    { return t.Kind().String() }
func (t *List) Type() string       { return t.Kind().String() }
func (t *ListItem) Type() string   { return t.Kind().String() }
func (t *Blockquote) Type() string { return t.Kind().String() }
func (t *Image) Type() string      { return t.Kind().String() }
func (t *Code) Type() string       { return t.Kind().String() }
func (t *HR) Type() string         { return t.Kind().String() }
func (t *Space) Type() string      { return t.Kind().String() }
func (t *Break) Type() string      { return t.Kind().String() }
func (t *Table) Type() string      { return t.Kind().String() }
func (t *HTML) Type() string       { return t.Kind().String() }
func (t *Text) Type() string       { return t.Kind().String() }
func (t *Strong) Type() string     { return t.Kind().String() }
func (t *Em) Type() string         { return t.Kind().String() }
func (t *Del) Type() string        { return t.Kind().String() }
func (t *CodeSpan) Type() string   { return t.Kind().String() }
func (t *Link) Type() string       { return t.Kind().String() }

// Type returns the tokenizer's name for the token, if present.
func (t *Other) Type() string {
	if t.Name == "" {
		return t.Kind().String()
	}
	return t.Name
}

func (*Paragraph) isToken()  {}
func (*Heading) isToken()    {}
func (*List) isToken()       {}
func (*ListItem) isToken()   {}
func (*Blockquote) isToken() {}
func (*Image) isToken()      {}
func (*Code) isToken()       {}
func (*HR) isToken()         {}
func (*Space) isToken()      {}
func (*Break) isToken()      {}
func (*Table) isToken()      {}
func (*HTML) isToken()       {}
func (*Other) isToken()      {}
func (*Text) isToken()       {}
func (*Strong) isToken()     {}
func (*Em) isToken()         {}
func (*Del) isToken()        {}
func (*CodeSpan) isToken()   {}
func (*Link) isToken()       {}

// PlainText returns the concatenated literal text of a sequence of inline
// tokens, e.g. for an image's alt text or a table cell.
func PlainText(tokens []Token) string {
	var b []byte
	var walk func([]Token)
	walk = func(tt []Token) {
		for _, t := range tt {
			switch x := t.(type) {
			case *Text:
				if len(x.Inline) > 0 {
					walk(x.Inline)
				} else {
					b = append(b, x.Text...)
				}
			case *CodeSpan:
				b = append(b, x.Text...)
			case *Strong:
				walk(x.Inline)
			case *Em:
				walk(x.Inline)
			case *Del:
				walk(x.Inline)
			case *Link:
				walk(x.Inline)
			case *Image:
				b = append(b, x.Alt...)
			case *Break:
				b = append(b, '\n')
			}
		}
	}
	walk(tokens)
	return string(b)
}
