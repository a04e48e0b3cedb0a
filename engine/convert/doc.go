/*
Package convert converts a markdown token tree into a print content model.

Conversion maps every block token to content nodes (headings, paragraphs,
lists, quotes, images, code, rules, tables) and every inline token to styled
text runs. Lists and quotes may nest to arbitrary depth. Token kinds which
have no representation in the content model are skipped with a warning;
they never abort a conversion.

Images are resolved asynchronously while the token tree is walked, and are
put in place after the walk, in document order. An image which cannot be
resolved is replaced by a placeholder text showing its alt text.

	doc, err := convert.Markdown(ctx, src, nil)
	…
	def, err := json.Marshal(doc)   // pdfmake document definition

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package convert

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'marklay.convert'.
func tracer() tracing.Trace {
	return tracing.Select("marklay.convert")
}
