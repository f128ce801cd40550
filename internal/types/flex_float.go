package types

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// FlexFloat64 is a float64 that can be unmarshaled from either a JSON number or a JSON string.
type FlexFloat64 float64

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexFloat64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat64(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("FlexFloat64: invalid number string %q: %w", s, err)
		}
		// ParseFloat accepts "NaN" and "Inf"; neither is a usable measurement
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: reflect.TypeOf(float64(0))}
		}
		*f = FlexFloat64(val)
		return nil
	}

	return fmt.Errorf("FlexFloat64: unexpected type, expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexFloat64) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// Float64 converts FlexFloat64 back to float64.
func (f FlexFloat64) Float64() float64 {
	return float64(f)
}

// FlexInt is an int that can be unmarshaled from either a JSON number or a JSON string.
// Fractional values are rejected.
type FlexInt int

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var fl FlexFloat64
	if err := fl.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("FlexInt: %w", err)
	}
	if float64(int(fl)) != float64(fl) {
		return fmt.Errorf("FlexInt: %v is not a whole number", float64(fl))
	}
	*f = FlexInt(int(fl))
	return nil
}

// Int converts FlexInt back to int.
func (f FlexInt) Int() int {
	return int(f)
}
