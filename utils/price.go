package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice reads a price that may arrive as a plain number from the
// catalog or as a formatted currency string ("1 500 Ft") from an old
// snapshot. Every non-digit is stripped from strings; anything unparsable
// is 0.
func ParsePrice(raw any) int {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		return ParsePrice(v.String())
	case string:
		digits := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) && r < unicode.MaxASCII {
				return r
			}
			return -1
		}, v)
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
