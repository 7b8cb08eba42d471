package ledger

import "testing"

func docRows(ids ...string) []TransactionRow {
	rows := make([]TransactionRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, TransactionRow{DocumentID: id, ItemName: "x"})
	}
	return rows
}

func TestNextDocumentID(t *testing.T) {
	testCases := []struct {
		name   string
		ids    []string
		prefix string
		want   string
	}{
		{"empty table", nil, "PN", "PN0001"},
		{"max wins", []string{"PN0007", "PN0003"}, "PN", "PN0008"},
		{"class isolation", []string{"PX0099"}, "PN", "PN0001"},
		{"lowercase entry", []string{"pn0012"}, "PN", "PN0013"},
		{"non-digit suffix collapses", []string{"PN007-A"}, "PN", "PN0008"},
		{"digitless suffix ignored", []string{"PNXYZ", "PN0002"}, "PN", "PN0003"},
		{"header sentinel skipped", []string{"SỐ PHIẾU", "PN0004"}, "PN", "PN0005"},
		{"outbound class", []string{"PX0099", "PN0500"}, "PX", "PX0100"},
		{"grows past padding", []string{"PN10000"}, "PN", "PN10001"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextDocumentID(docRows(tc.ids...), tc.prefix); got != tc.want {
				t.Errorf("NextDocumentID(%v, %q) = %q, want %q", tc.ids, tc.prefix, got, tc.want)
			}
		})
	}
}

func TestNextDocumentIDAfterAppend(t *testing.T) {
	rows := docRows("PN0001")
	first := NextDocumentID(rows, "PN")
	if first != "PN0002" {
		t.Fatalf("first = %q", first)
	}
	// The allocator is re-run against the updated table, never patched.
	rows = append(rows, TransactionRow{DocumentID: first, ItemName: "x"})
	if next := NextDocumentID(rows, "PN"); next != "PN0003" {
		t.Errorf("next = %q, want PN0003", next)
	}
}
