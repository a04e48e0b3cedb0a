/*
Package style resolves the heading style configuration for a conversion.

Callers supply optional overrides (type Options), which are merged onto the
built-in defaults exactly once per conversion call. The result, type
Effective, is an immutable value which is handed down to every converter.
There is no process-wide style state: two conversions running concurrently
with different overrides never observe each other's settings.

Options may come from Go code, from a JSON options document (ParseOptions)
or from the global configuration (OptionsFromConfig).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'marklay.style'.
func tracer() tracing.Trace {
	return tracing.Select("marklay.style")
}
