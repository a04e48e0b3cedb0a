/*
Package markdown tokenizes markdown source into a token tree (see package
input/token).

Two tokenizer front-ends are available: Goldmark, which is the default and
supports the GitHub flavoured extensions (tables, strikethrough, task lists,
linkify), and RSC, based on rsc.io/markdown. Both produce the same token
kinds for the same constructs, although edge cases of the markdown syntax
may differ.

YAML front matter is split from the source by SplitFrontMatter.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markdown

import (
	"github.com/npillmayer/marklay/input/token"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'marklay.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("marklay.markdown")
}

// Tokenizer splits markdown source into a sequence of block tokens.
type Tokenizer interface {
	Tokenize(src []byte) ([]token.Token, error)
}

// Tokenize tokenizes markdown source with the default tokenizer.
func Tokenize(src []byte) ([]token.Token, error) {
	return NewGoldmark().Tokenize(src)
}
