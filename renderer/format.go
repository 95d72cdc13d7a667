package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/vitals"
	"github.com/shopspring/decimal"
)

// undefined is how an aggregate without enough data is displayed.
const undefined = "n/a"

// format rounds v to 'places' decimals, or returns "n/a" if v is undefined.
func format(v vitals.Value, places int32) string {
	x, ok := v.Float64()
	if !ok {
		return undefined
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

// cell is like format, but a missing value is an empty cell.
func cell(v vitals.Value, places int32) string {
	if v.IsNull() {
		return ""
	}
	return format(v, places)
}

// raw displays v with all its digits.
func raw(v vitals.Value) string {
	x, ok := v.Float64()
	if !ok {
		return ""
	}
	return decimal.NewFromFloat(x).String()
}

// bars turns histogram bins into displayable bars at most 'width' characters long.
func bars(bins []vitals.Bin, places int32, width int) []Bar {
	longest := 0
	for _, b := range bins {
		longest = max(longest, b.Count)
	}
	out := make([]Bar, 0, len(bins))
	for _, b := range bins {
		n := 0
		if longest > 0 {
			n = b.Count * width / longest
		}
		out = append(out, Bar{
			Range: fmt.Sprintf("%s - %s", format(vitals.V(b.Low), places), format(vitals.V(b.High), places)),
			Count: b.Count,
			Bar:   strings.Repeat("█", n),
		})
	}
	return out
}
