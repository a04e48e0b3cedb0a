package option

import (
	"encoding/json"
	"strconv"
)

// --- BoolT -----------------------------------------------------------------

// BoolT is an option type for bool. The zero value is unset.
type BoolT int8

const (
	boolNone BoolT = iota
	boolFalse
	boolTrue
)

// SomeBool creates an optional bool with an initial value of b.
func SomeBool(b bool) BoolT {
	if b {
		return boolTrue
	}
	return boolFalse
}

// Bool creates an optional bool without a value.
func Bool() BoolT {
	return boolNone
}

// ParseBool creates an optional bool from a string. The empty string
// results in an unset value.
func ParseBool(s string) (BoolT, error) {
	if s == "" {
		return boolNone, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return boolNone, err
	}
	return SomeBool(b), nil
}

// Unwrap returns the bool value of o. An unset value unwraps to false.
func (o BoolT) Unwrap() bool {
	return o == boolTrue
}

// OrElse returns the value of o, or dflt if o is unset.
func (o BoolT) OrElse(dflt bool) bool {
	if o.IsNone() {
		return dflt
	}
	return o.Unwrap()
}

// IsNone returns true if o is unset.
func (o BoolT) IsNone() bool {
	return o == boolNone
}

func (o BoolT) String() string {
	if o.IsNone() {
		return "Bool.None"
	}
	return strconv.FormatBool(o.Unwrap())
}

// MarshalJSON encodes an unset value as null.
func (o BoolT) MarshalJSON() ([]byte, error) {
	if o.IsNone() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Unwrap())
}

// UnmarshalJSON decodes true, false or null.
func (o *BoolT) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	if b == nil {
		*o = boolNone
	} else {
		*o = SomeBool(*b)
	}
	return nil
}
