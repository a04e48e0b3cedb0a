package convert

import (
	"context"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/core/dimen"
	"github.com/npillmayer/marklay/core/locate/resources"
	"github.com/npillmayer/marklay/engine/content"
	"github.com/npillmayer/marklay/engine/style"
	"github.com/npillmayer/marklay/input/markdown"
	"github.com/npillmayer/marklay/input/token"
)

// ImageResolver resolves image locators. *resources.Resolver is the
// standard implementation.
type ImageResolver interface {
	ResolveImage(ctx context.Context, src string) resources.ImagePromise
}

// Converter converts token trees into content models. A Converter is
// immutable after construction and may be used by concurrent goroutines.
type Converter struct {
	resolver  ImageResolver
	onWarning WarningHandler
	tokenizer markdown.Tokenizer
	defaults  style.Effective
	maxWidth  dimen.Dimen
	dpi       float64
}

// Option configures a Converter.
type Option func(*Converter)

// WithImageResolver sets the resolver for image locators.
func WithImageResolver(r ImageResolver) Option {
	return func(c *Converter) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithWarningHandler sets a callback receiving conversion warnings.
func WithWarningHandler(h WarningHandler) Option {
	return func(c *Converter) { c.onWarning = h }
}

// WithTokenizer sets the markdown tokenizer used by Markdown.
func WithTokenizer(t markdown.Tokenizer) Option {
	return func(c *Converter) {
		if t != nil {
			c.tokenizer = t
		}
	}
}

// WithMaxImageWidth sets the width images are scaled down to if they are
// wider. Default is the content width of an A4 page with default margins.
func WithMaxImageWidth(w dimen.Dimen) Option {
	return func(c *Converter) { c.maxWidth = w }
}

// WithImageDPI sets the resolution for converting image pixels to
// dimensions. Default is 72 dpi, i.e. one pixel per point.
func WithImageDPI(dpi float64) Option {
	return func(c *Converter) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithStyleDefaults sets the style configuration which per-call overrides
// are merged onto. Default is style.Defaults().
func WithStyleDefaults(defaults style.Effective) Option {
	return func(c *Converter) { c.defaults = defaults }
}

// New creates a converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		defaults: style.Defaults(),
		maxWidth: dimen.DINA4.ContentWidth(dimen.DefaultPageMargin),
		dpi:      72,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolver == nil {
		c.resolver = resources.NewResolver()
	}
	if c.tokenizer == nil {
		c.tokenizer = markdown.NewGoldmark()
	}
	return c
}

// Convert converts a sequence of block tokens into a document, applying
// style overrides (which may be nil) on top of the converter's style
// defaults.
//
// Invalid overrides result in an error of code core.EINVALID before any
// token is processed. If ctx is done before conversion has completed,
// ctx's error is returned and no document.
func (c *Converter) Convert(ctx context.Context, tokens []token.Token, overrides *style.Options) (*content.Document, error) {
	eff, err := style.Resolve(c.defaults, overrides)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cv := &conversion{ctx: ctx, c: c, style: eff}
	doc := &content.Document{
		DefaultStyle: content.DefaultStyle{Font: eff.Font()},
	}
	cv.walk(tokens, &doc.Content)
	if err := cv.finishImages(); err != nil {
		return nil, err
	}
	tracer().Infof("converted %d tokens into %d nodes, %d images, %d warnings",
		len(tokens), len(doc.Content), len(cv.pending), cv.warnings)
	return doc, nil
}

// Markdown converts markdown source into a document. Front matter, if
// present, fills the document's info and language.
func (c *Converter) Markdown(ctx context.Context, src []byte, overrides *style.Options) (*content.Document, error) {
	meta, body, err := markdown.SplitFrontMatter(src)
	if err != nil {
		return nil, err
	}
	lang, err := meta.Language()
	if err != nil {
		return nil, err
	}
	tokens, err := c.tokenizer.Tokenize(body)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot tokenize markdown")
	}
	doc, err := c.Convert(ctx, tokens, overrides)
	if err != nil {
		return nil, err
	}
	doc.Info = content.Info{
		Title:    meta.Title,
		Author:   meta.Author,
		Subject:  meta.Subject,
		Keywords: meta.Keywords,
	}
	doc.Language = lang
	return doc, nil
}

// Convert converts tokens with a converter created from options.
func Convert(ctx context.Context, tokens []token.Token, overrides *style.Options, opts ...Option) (*content.Document, error) {
	return New(opts...).Convert(ctx, tokens, overrides)
}

// Markdown converts markdown source with a converter created from options.
func Markdown(ctx context.Context, src []byte, overrides *style.Options, opts ...Option) (*content.Document, error) {
	return New(opts...).Markdown(ctx, src, overrides)
}

// --- Conversion ------------------------------------------------------------

// conversion holds the state of a single call to Convert.
type conversion struct {
	ctx      context.Context
	c        *Converter
	style    style.Effective
	pending  []pendingImage
	warnings int
}

// work is a sequence of block tokens together with the node sequence their
// output goes to. pos is the next token to convert.
type work struct {
	tokens []token.Token
	pos    int
	out    *[]content.Node
}

// walk converts block tokens depth-first and in document order. Nested
// block sequences of lists and quotes are put on an explicit stack, so
// nesting depth is not limited by the call stack.
func (cv *conversion) walk(tokens []token.Token, out *[]content.Node) {
	stack := arraystack.New()
	stack.Push(&work{tokens: tokens, out: out})
	for !stack.Empty() {
		top, _ := stack.Pop()
		w := top.(*work)
		for w.pos < len(w.tokens) {
			t := w.tokens[w.pos]
			w.pos++
			nested := cv.block(t, w.out)
			if len(nested) > 0 {
				stack.Push(w) // continue here after nested content
				for i := len(nested) - 1; i >= 0; i-- {
					stack.Push(nested[i])
				}
				break
			}
		}
	}
}
