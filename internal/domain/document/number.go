package document

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber converts raw form input into a finite number.
// The longest numeric prefix is used ("12abc" is 12); anything that yields
// no number, NaN or an infinity becomes 0. Negative values are kept.
func ParseNumber(raw string) float64 {
	prefix := numericPrefix(strings.TrimLeftFunc(raw, isLeadingSpace))
	if prefix == "" {
		return 0
	}

	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return 0
	}
	return v
}

// isLeadingSpace matches the characters skipped before a number,
// including no-break space and the byte order mark
func isLeadingSpace(r rune) bool {
	return r == '\ufeff' || unicode.IsSpace(r)
}

// numericPrefix returns the leading decimal literal of s, or "" if there is none
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	start := i
	i = skipDigits(s, i)
	intDigits := i - start

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := skipDigits(s, i+1)
		fracDigits = j - (i + 1)
		if fracDigits > 0 {
			i = j
		}
	}

	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	// exponent only counts when digits follow it
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if k := skipDigits(s, j); k > j {
			i = k
		}
	}

	return s[:i]
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// finite replaces NaN and infinities with 0
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
