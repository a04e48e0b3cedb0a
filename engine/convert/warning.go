package convert

import "fmt"

// WarningType classifies conversion warnings.
type WarningType string

// Warning types
const (
	WarnUnknownToken    WarningType = "unknown_token"
	WarnUnsupportedHTML WarningType = "unsupported_html"
	WarnImageUnresolved WarningType = "image_unresolved"
)

// Warning reports content which has been skipped or substituted during
// conversion. Warnings are not part of the content model.
type Warning struct {
	Type    WarningType
	Kind    string // token type the warning refers to
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Type, w.Kind, w.Message)
}

// WarningHandler receives warnings. It is called synchronously from the
// goroutine running the conversion.
type WarningHandler func(Warning)

func (cv *conversion) warn(typ WarningType, kind string, format string, args ...interface{}) {
	w := Warning{Type: typ, Kind: kind, Message: fmt.Sprintf(format, args...)}
	tracer().Errorf("%s", w)
	cv.warnings++
	if cv.c.onWarning != nil {
		cv.c.onWarning(w)
	}
}
