/*
Package resources resolves external resources referenced by a document,
most notably images.

As resource loading may be a time-consuming task, functions in this package
work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed or the client's context is done.

Images may be referenced by file path (relative to a base directory),
file://, http:// and https:// URLs, or data URLs. Remote images may be kept
in a download cache located in the user's cache directory.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'marklay.resources'.
func tracer() tracing.Trace {
	return tracing.Select("marklay.resources")
}
