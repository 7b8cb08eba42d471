package ledger

import "testing"

func TestNormalizeKey(t *testing.T) {
	testCases := []struct {
		code, name, want string
	}{
		{"TB001", "Monitor", "tb001"},
		{"  TB001  ", "Monitor", "tb001"},
		{"", "Monitor", "monitor"},
		{"", "  Máy đo SpO2  ", "máy đo spo2"},
		{"ABC", "", "abc"},
		{"", "", ""},
		{"   ", "   ", ""},
	}

	for _, tc := range testCases {
		if got := NormalizeKey(tc.code, tc.name); got != tc.want {
			t.Errorf("NormalizeKey(%q, %q) = %q, want %q", tc.code, tc.name, got, tc.want)
		}
	}
}

func TestNormalizeKeyCaseCollision(t *testing.T) {
	if NormalizeKey("ABC", "") != NormalizeKey("abc", "") {
		t.Error("keys differing only in case must collide")
	}
}

func TestParseLocaleNumber(t *testing.T) {
	testCases := []struct {
		raw  string
		want float64
	}{
		{"10.000.000", 10000000},
		{"1,500", 1500},
		{"42", 42},
		{"  7  ", 7},
		{"", 0},
		{"abc", 0},
		{"12x", 0},
		{"0", 0},
	}

	for _, tc := range testCases {
		if got := ParseLocaleNumber(tc.raw); got != tc.want {
			t.Errorf("ParseLocaleNumber(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseSheetDate(t *testing.T) {
	testCases := []struct {
		raw  string
		want string
	}{
		{"2024-03-05", "05/03/2024"},
		{"05/03/2024", "05/03/2024"},
		{"5/3/2024", "05/03/2024"},
		{"Date(2024,2,5)", "05/03/2024"}, // GViz months are 0-based
		{"Date(2023,11,31)", "31/12/2023"},
		{"not a date", "not a date"},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := ParseSheetDate(tc.raw); got != tc.want {
			t.Errorf("ParseSheetDate(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}

	// Idempotent on already-formatted input.
	once := ParseSheetDate("2024-03-05")
	if twice := ParseSheetDate(once); twice != once {
		t.Errorf("not idempotent: %q -> %q", once, twice)
	}
}

func TestDateRoundTrip(t *testing.T) {
	if got := ToInputDate("05/03/2024"); got != "2024-03-05" {
		t.Errorf("ToInputDate = %q, want 2024-03-05", got)
	}
	if got := ToDisplayDate("2024-03-05"); got != "05/03/2024" {
		t.Errorf("ToDisplayDate = %q, want 05/03/2024", got)
	}
	if got := ToInputDate("garbage"); got != "" {
		t.Errorf("ToInputDate(garbage) = %q, want empty", got)
	}
}

func TestDecodeRowShortAndWide(t *testing.T) {
	short := DecodeRow([]string{"1", "Phiếu nhập", "Công ty A"})
	if short.Partner != "Công ty A" || short.DocumentID != "" || short.Quantity != 0 {
		t.Errorf("short row decoded wrong: %+v", short)
	}

	cells := make([]string, 19)
	cells[4] = "PN0001"
	cells[14] = "2"
	cells[15] = "10.000"
	cells[18] = "qr payload"
	wide := DecodeRow(cells)
	if wide.Quantity != 2 || wide.UnitPrice != 10000 || wide.QRPayload != "qr payload" {
		t.Errorf("wide row decoded wrong: %+v", wide)
	}

	out := wide.Cells()
	if len(out) != RowWidth+1 {
		t.Fatalf("Cells() length = %d, want %d", len(out), RowWidth+1)
	}
	if out[14] != "2" || out[15] != "10000" {
		t.Errorf("numeric cells re-encoded wrong: qty=%q price=%q", out[14], out[15])
	}
	if out[18] != "qr payload" {
		t.Errorf("column S not re-encoded: %q", out[18])
	}

	wide.QRPayload = ""
	if got := len(wide.Cells()); got != RowWidth {
		t.Errorf("Cells() without payload length = %d, want %d", got, RowWidth)
	}
}
