package ledger

import "strings"

// NormalizeKey derives the identity of a physical item type: the trimmed
// item code when present, otherwise the trimmed item name. Keys are
// lower-cased so that spreadsheet cells differing only in case collide.
// An empty result means the row carries no identity and must be excluded
// from every snapshot map.
func NormalizeKey(code, name string) string {
	if c := strings.TrimSpace(code); c != "" {
		return strings.ToLower(c)
	}
	return strings.ToLower(strings.TrimSpace(name))
}
