package product

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseFloat accepts sheet-style numbers: spaces and NBSP as thousand
// separators, comma as the decimal separator.
func ParseFloat(s string) (float64, bool) {
	raw := strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(s)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInt accepts sheet-style integers with embedded spaces.
func ParseInt(s string) (int, bool) {
	raw := strings.NewReplacer(" ", "", " ", "").Replace(s)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeStr upper-cases the first rune and swaps comma decimals to dots,
// mirroring how sheet cells are cleaned before storage.
func NormalizeStr(s string) string {
	if s == "" {
		return s
	}
	cleaned := strings.ReplaceAll(s, ",", ".")
	runes := []rune(cleaned)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
