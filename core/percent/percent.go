// Package percent implements a type for percentage values in 0…100.
package percent

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/core/dimen"
)

// Percent is a percentage value in 0…100.
type Percent uint8

// FromInt clamps n to 0…100.
func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= 100:
		return Percent(100)
	}
	return Percent(n)
}

// FromFloat rounds and clamps f to 0…100. NaN is 0.
func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f):
		return Percent(0)
	case f >= 100:
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// IsPercentage checks if s is written as a percentage, i.e. ends in '%'.
func IsPercentage(s string) bool {
	return strings.HasSuffix(strings.TrimSpace(s), "%")
}

// FromString parses strings like "80%" or "80". Values outside 0…100 are
// an error.
func FromString(s string) (Percent, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "not a percentage: %q", s)
	}
	if f < 0 || f > 100 || math.IsNaN(f) {
		return 0, core.Error(core.EINVALID, "percentage out of range: %q", s)
	}
	return FromFloat(f), nil
}

// Of returns p percent of a dimension.
func (p Percent) Of(d dimen.Dimen) dimen.Dimen {
	return dimen.Dimen(math.Round(float64(d) * float64(p) / 100))
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}
