package printer

import (
	"bytes"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{5, "5"},
		{999, "999"},
		{1000, "1.000"},
		{1200000, "1.200.000"},
		{45000000, "45.000.000"},
		{-1500, "-1.500"},
	}
	for _, tc := range testCases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGenerateLabelsPDF(t *testing.T) {
	items := []LabelItem{
		{Title: "Máy đo SpO2", Payload: "Tên thiết bị: Máy đo SpO2\nNhà CC: Công ty A"},
		{Title: "", Payload: ""}, // skipped, no payload
		{Title: "Bơm tiêm điện", Payload: "Tên thiết bị: Bơm tiêm điện"},
	}

	pdfBytes, err := GenerateLabelsPDF(LabelConfig{}, items, "")
	if err != nil {
		t.Fatalf("GenerateLabelsPDF: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestGenerateVoucherPDF(t *testing.T) {
	v := Voucher{
		Number:        "PN0002",
		Date:          "10/02/2025",
		Partner:       "Công ty B",
		Section:       "Kho chính",
		OrgName:       "BỆNH VIỆN ĐA KHOA BUÔN HỒ",
		OrgDepartment: "KHOA DƯỢC - KHO LINH KIỆN, THIẾT BỊ",
		Lines: []VoucherLine{
			{Name: "Monitor 5 thông số", Code: "MON01", Unit: "Cái",
				Quantity: 1, UnitPrice: 45000000, LineTotal: 45000000},
		},
	}

	pdfBytes, err := GenerateVoucherPDF(v, "")
	if err != nil {
		t.Fatalf("GenerateVoucherPDF: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}

	v.Outbound = true
	if _, err := GenerateVoucherPDF(v, ""); err != nil {
		t.Fatalf("outbound voucher: %v", err)
	}
}
