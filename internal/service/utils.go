package service

import (
	"regexp"
	"strings"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,10}$`)

// normalizeSymbol trims and upper-cases a ticker so "aapl " and "AAPL"
// book against the same holding.
func normalizeSymbol(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, symbolPattern.MatchString(s)
}
