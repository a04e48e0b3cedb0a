/*
Package content defines the document content model which is handed to a
page-layout renderer.

A Document is a flat, ordered sequence of Nodes plus a default style. Nodes
are headings, paragraphs, styled text runs, image references, lists,
tables, quotes, dividers and blank lines. Lists, quotes and tables carry
their nested structure themselves; once built, the renderer owns them.

The model can be exported as a pdfmake document definition
(Document.MarshalJSON), and paragraph text can be viewed as a styled text
(cords/styled) for line breaking.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package content

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'marklay.content'.
func tracer() tracing.Trace {
	return tracing.Select("marklay.content")
}
