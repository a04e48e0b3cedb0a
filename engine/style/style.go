package style

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/core/option"
)

// HeadingLevels is the number of heading levels, and therefore the number of
// heading font sizes in a style configuration.
const HeadingLevels = 6

// MaxFontSize is the largest font size (in points) accepted for headings.
const MaxFontSize = 1000.0

// DefaultFont is the font family a renderer should use if not told otherwise.
const DefaultFont = "Roboto"

var defaultHeadingSizes = [HeadingLevels]float64{36, 30, 24, 18, 15, 12}

// Options are caller-supplied overrides for the style configuration.
// The zero value overrides nothing.
type Options struct {
	// HeadingFontSizes overrides the leading heading font sizes. Entries
	// beyond the sixth are ignored.
	HeadingFontSizes []float64 `json:"headingFontSizes,omitempty"`
	// HeadingUnderline, if set, replaces the underline flag for headings.
	HeadingUnderline option.BoolT `json:"headingUnderline"`
	// DefaultFont, if non-empty, replaces the default font family.
	DefaultFont string `json:"defaultFont,omitempty"`
}

// Validate checks option values. Heading font sizes must be positive,
// finite and not larger than MaxFontSize.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.HeadingFontSizes, validation.Each(
			validation.By(positiveSize),
			validation.Max(MaxFontSize).Error(fmt.Sprintf("must be no larger than %gpt", MaxFontSize)),
		)),
		validation.Field(&o.DefaultFont, validation.By(func(value interface{}) error {
			if s, _ := value.(string); s != "" && strings.TrimSpace(s) == "" {
				return validation.NewError("marklay.style.font_blank", "must not be blank")
			}
			return nil
		})),
	)
}

// positiveSize rejects zero, negative and NaN sizes. validation.Min does
// not apply to zero values.
func positiveSize(value interface{}) error {
	if f, ok := value.(float64); ok && !(f > 0) {
		return validation.NewError("marklay.style.size_positive", "must be a positive font size")
	}
	return nil
}

// Effective is the resolved style configuration of a conversion.
// It is a value type; copies are independent of each other.
type Effective struct {
	sizes     [HeadingLevels]float64
	underline bool
	font      string
}

// Defaults returns the built-in style configuration: heading sizes
// 36, 30, 24, 18, 15, 12 with underlined headings and font family Roboto.
func Defaults() Effective {
	return Effective{
		sizes:     defaultHeadingSizes,
		underline: true,
		font:      DefaultFont,
	}
}

// Resolve merges overrides onto defaults. overrides may be nil.
//
// For every index i of overrides.HeadingFontSizes less than six, the
// effective size at i is the override; all other sizes keep the default.
// The underline flag is replaced if it is set in overrides.
//
// Invalid overrides are rejected with an error of code core.EINVALID;
// the returned configuration is then the unchanged defaults.
func Resolve(defaults Effective, overrides *Options) (Effective, error) {
	if overrides == nil {
		return defaults, nil
	}
	if err := overrides.Validate(); err != nil {
		tracer().Errorf("invalid style options")
		return defaults, core.WrapError(err, core.EINVALID, "invalid style options")
	}
	eff := defaults
	for i, size := range overrides.HeadingFontSizes {
		if i >= HeadingLevels {
			tracer().Debugf("ignoring heading font sizes beyond level %d", HeadingLevels)
			break
		}
		eff.sizes[i] = size
	}
	eff.underline = overrides.HeadingUnderline.OrElse(defaults.underline)
	if overrides.DefaultFont != "" {
		eff.font = overrides.DefaultFont
	}
	tracer().Debugf("effective style: sizes=%v, underline=%v, font=%s", eff.sizes, eff.underline, eff.font)
	return eff, nil
}

// HeadingSize returns the font size for a heading of a given depth.
// Depths outside 1…6 are clamped to the nearest valid level.
func (e Effective) HeadingSize(depth int) float64 {
	return e.sizes[ClampDepth(depth)-1]
}

// Sizes returns a copy of the six heading font sizes.
func (e Effective) Sizes() [HeadingLevels]float64 {
	return e.sizes
}

// Underline returns true if headings are to be underlined.
func (e Effective) Underline() bool {
	return e.underline
}

// Font returns the default font family.
func (e Effective) Font() string {
	if e.font == "" {
		return DefaultFont
	}
	return e.font
}

// ClampDepth clamps a heading depth to 1…6.
func ClampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > HeadingLevels {
		return HeadingLevels
	}
	return depth
}
