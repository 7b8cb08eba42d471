package ledger

import (
	"strconv"
	"strings"
)

// ParseLocaleNumber parses a vi-VN formatted spreadsheet cell into a
// number. Commas are dropped, then any remaining dots are treated as
// thousands separators ("10.000.000" -> 10000000). Malformed cells are
// common in manually edited sheets, so anything unparseable degrades to 0
// instead of failing the whole reduction.
func ParseLocaleNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
