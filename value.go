package vitals

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is a nullable number.
//
// In a Table a null Value means the source had nothing for that day. As the result of an aggregate
// it means "undefined": there was not enough data to compute it. Null is never zero.
type Value struct {
	v  float64
	ok bool
}

// Null is the absent Value.
var Null = Value{}

// V returns a present Value. Only finite numbers are values: V(NaN) and V(±Inf) are Null.
func V(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Null
	}
	return Value{v: x, ok: true}
}

// Float64 returns the value and true, or 0 and false if the value is null.
func (v Value) Float64() (float64, bool) { return v.v, v.ok }

// IsNull reports whether v is absent or undefined.
func (v Value) IsNull() bool { return !v.ok }

// Or returns the value, or def if it is null.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.v
}

// Mul scales the value by factor, null stays null.
func (v Value) Mul(factor float64) Value {
	if !v.ok {
		return Null
	}
	return V(v.v * factor)
}

func (v Value) String() string {
	if !v.ok {
		return "null"
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

// MarshalJSON encodes a null Value as json null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var f *float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f == nil {
		*v = Null
		return nil
	}
	*v = V(*f)
	return nil
}

var _ json.Marshaler = Value{}
var _ json.Unmarshaler = (*Value)(nil)

// ParseValue parses a decimal number. An empty string is Null. Numbers beyond the float64 range
// are errors.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Null, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Null, fmt.Errorf("invalid number %q: %w", s, err)
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return Null, fmt.Errorf("number %q out of range", s)
	}
	return V(f), nil
}

// valueOf converts a decoded json value into a Value. Numbers and numeric strings are accepted,
// anything else is Null.
func valueOf(x any) Value {
	switch n := x.(type) {
	case float64:
		return V(n)
	case float32:
		return V(float64(n))
	case int:
		return V(float64(n))
	case int64:
		return V(float64(n))
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return Null
		}
		return V(f)
	case string:
		v, err := ParseValue(n)
		if err != nil {
			return Null
		}
		return v
	default:
		return Null
	}
}
