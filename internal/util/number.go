package util

import (
	"math"
	"strings"
)

// SanitizeNumber turns a form value into a non-negative integer.
//
// Leading whitespace is skipped and the leading run of digits is parsed, so
// "025" is 25 and "12kg" is 12. Anything without leading digits is 0.
// A minus sign is accepted while parsing but the result is clamped to 0,
// the quantity fields never hold negative values.
func SanitizeNumber(value string) int {
	s := strings.TrimLeft(value, " \t\r\n")
	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	digits := 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			break
		}
		d := int(ch - '0')
		if n > (math.MaxInt32-d)/10 {
			n = math.MaxInt32
		} else {
			n = n*10 + d
		}
		digits++
	}

	if digits == 0 || negative {
		return 0
	}
	return n
}
