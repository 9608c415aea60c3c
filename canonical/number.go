package canonical

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatInt renders an integer as plain decimal.
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FormatUint renders an unsigned integer as plain decimal.
func FormatUint(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// FormatFloat renders f with the frozen float rule: shortest round-trip digits,
// positional for decimal exponents in [-4, 16), scientific otherwise.
// NaN and infinities render as NaN, Infinity and -Infinity.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	// Shortest digits in the form [-]d[.ddd]e±XX.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expStr, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expStr)

	var b strings.Builder
	if strings.HasPrefix(mantissa, "-") {
		b.WriteByte('-')
		mantissa = mantissa[1:]
	}
	digits := strings.Replace(mantissa, ".", "", 1)

	switch {
	case exp < -4 || exp >= 16:
		b.WriteByte(digits[0])
		if len(digits) > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if exp < 0 {
			b.WriteByte('-')
			exp = -exp
		} else {
			b.WriteByte('+')
		}
		if exp < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(exp))

	case exp < 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -exp-1))
		b.WriteString(digits)

	case len(digits) <= exp+1:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", exp+1-len(digits)))
		b.WriteString(".0")

	default:
		b.WriteString(digits[:exp+1])
		b.WriteByte('.')
		b.WriteString(digits[exp+1:])
	}
	return b.String()
}

// formatNumber renders a json.Number. Integer literals keep arbitrary precision;
// anything with a fraction or exponent is read as a float64 first, so "1.50"
// and "1.5" canonicalize identically. ok is false when n is not a number.
func formatNumber(n json.Number) (string, bool) {
	s := string(n)
	if s == "" {
		return "", false
	}
	if !strings.ContainsAny(s, ".eE") {
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return "", false
		}
		return i.String(), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeError(err) {
		return "", false
	}
	return FormatFloat(f), true
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}
