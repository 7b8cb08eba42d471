package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// NextDocumentID scans the document ids of the given class prefix (PN or
// PX) and returns the next unused sequential id, zero-padded to four
// digits. Classes are fully isolated: PX rows never influence PN
// allocation. With no matching rows the first id of the class is issued.
//
// All non-digit characters after the prefix are stripped before the
// numeric comparison, so "PN007-A" counts as 7. That collapsing is
// deliberate tolerance for inconsistent manual entry. Suffixes with no
// digits at all are ignored rather than treated as zero.
func NextDocumentID(rows []TransactionRow, classPrefix string) string {
	prefix := strings.ToUpper(strings.TrimSpace(classPrefix))
	max := 0
	for _, row := range rows {
		doc := strings.ToUpper(strings.TrimSpace(row.DocumentID))
		if doc == "" || headerSentinels[doc] || row.Seq == "STT" {
			continue
		}
		if !strings.HasPrefix(doc, prefix) {
			continue
		}
		digits := nonDigitRe.ReplaceAllString(doc[len(prefix):], "")
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1)
}
