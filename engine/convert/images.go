package convert

import (
	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/core/dimen"
	"github.com/npillmayer/marklay/core/locate/resources"
	"github.com/npillmayer/marklay/engine/content"
	"github.com/npillmayer/marklay/input/token"
)

// pendingImage is an image reference at out[index] waiting for its
// resolution to complete.
type pendingImage struct {
	out     *[]content.Node
	index   int
	ref     *content.ImageRef
	promise resources.ImagePromise
}

// image appends an image reference to out and starts resolving it.
// link is the target of an enclosing link, if any.
func (cv *conversion) image(x *token.Image, link string, out *[]content.Node) {
	ref := &content.ImageRef{Src: x.Src, Alt: x.Alt, Title: x.Title, Link: link}
	*out = append(*out, ref)
	cv.pending = append(cv.pending, pendingImage{
		out:     out,
		index:   len(*out) - 1,
		ref:     ref,
		promise: cv.c.resolver.ResolveImage(cv.ctx, x.Src),
	})
}

// finishImages awaits all image resolutions in document order. Resolved
// images get their data and size; unresolved ones are replaced by a
// placeholder. Only a done context is an error.
func (cv *conversion) finishImages() error {
	for _, p := range cv.pending {
		img, err := p.promise.Await(cv.ctx)
		if cerr := cv.ctx.Err(); cerr != nil {
			tracer().Infof("conversion cancelled while resolving images")
			return cerr
		}
		if err != nil {
			(*p.out)[p.index] = placeholder(p.ref)
			cv.warn(WarnImageUnresolved, token.KindImage.String(), "image %q replaced by placeholder: %s",
				p.ref.Src, core.UserMessage(err))
			continue
		}
		cv.fill(p.ref, img)
	}
	return nil
}

func (cv *conversion) fill(ref *content.ImageRef, img *resources.Image) {
	ref.Format = img.Format
	ref.Data = img.Data
	ref.PixelWidth, ref.PixelHeight = img.Width, img.Height
	w := dimen.FromPixels(img.Width, cv.c.dpi)
	h := dimen.FromPixels(img.Height, cv.c.dpi)
	ref.Width, ref.Height = dimen.FitWidth(w, h, cv.c.maxWidth)
	tracer().Debugf("image %s: %dx%d px, %.1fx%.1f bp", img.Format, img.Width, img.Height,
		ref.Width.Points(), ref.Height.Points())
}

// placeholder creates the text which stands in for an unresolved image:
// its alt text, or its source if alt text is missing.
func placeholder(ref *content.ImageRef) *content.TextRun {
	text := ref.Alt
	if text == "" {
		text = ref.Src
	}
	st := content.Style{Italic: true}
	if ref.Link != "" {
		st.Link, st.Color = ref.Link, content.LinkColor
	}
	return &content.TextRun{
		Text:        text,
		Style:       st,
		Placeholder: true,
	}
}
