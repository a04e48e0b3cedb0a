package markdown

import (
	"strings"

	"github.com/npillmayer/marklay/input/token"
	"golang.org/x/net/html"
)

// rawHTML creates a token for a piece of raw HTML. A lone <br> tag is the
// only HTML which is interpreted, producing a line break.
func rawHTML(raw string, block bool) token.Token {
	if !block && isLineBreakTag(raw) {
		return &token.Break{}
	}
	return &token.HTML{Raw: raw, Block: block}
}

// isLineBreakTag checks if raw consists of exactly one <br>, <br/> or <br />
// tag (ignoring surrounding white space).
func isLineBreakTag(raw string) bool {
	z := html.NewTokenizer(strings.NewReader(strings.TrimSpace(raw)))
	switch z.Next() {
	case html.StartTagToken, html.SelfClosingTagToken:
		name, _ := z.TagName()
		if string(name) != "br" {
			return false
		}
	default:
		return false
	}
	return z.Next() == html.ErrorToken
}
