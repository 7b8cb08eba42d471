package printer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ndtien/khovt/internal/vnnum"
)

// VoucherLine is one device row of the printed voucher table.
type VoucherLine struct {
	Name      string
	Code      string
	Unit      string
	Quantity  float64
	UnitPrice float64
	LineTotal float64
}

// Voucher carries everything the 01-VT form prints. Dates use the
// DD/MM/YYYY display format.
type Voucher struct {
	Outbound      bool
	Number        string
	Date          string
	Partner       string
	Section       string
	OrgName       string
	OrgDepartment string
	Lines         []VoucherLine
}

// FormatMoney renders an amount with dot thousand separators, the way
// Vietnamese accounting documents group digits.
func FormatMoney(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := fmt.Sprintf("%.0f", amount)

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, ".")
	if neg {
		out = "-" + out
	}
	return out
}

func splitDisplayDate(date string) (day, month, year string) {
	parts := strings.Split(date, "/")
	if len(parts) == 3 {
		return parts[0], parts[1], parts[2]
	}
	return "....", "....", "........"
}

// GenerateVoucherPDF renders the ticket as a goods received or goods
// issued voucher on the 01-VT form of Thông tư 200/2014/TT-BTC.
func GenerateVoucherPDF(v Voucher, fontPath string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 12, 15)
	pdf.SetAutoPageBreak(true, 15)
	family := setupFont(pdf, fontPath)
	pdf.AddPage()

	usableW := 180.0

	// Header: issuing unit left, form designation right.
	pdf.SetFont(family, "B", 9)
	pdf.CellFormat(usableW/2, 4.5, v.OrgName, "", 0, "L", false, 0, "")
	pdf.CellFormat(usableW/2, 4.5, "Mẫu số: 01-VT", "", 1, "R", false, 0, "")
	pdf.SetFont(family, "", 8)
	pdf.CellFormat(usableW/2, 4, v.OrgDepartment, "", 0, "L", false, 0, "")
	pdf.CellFormat(usableW/2, 4, "(Ban hành theo Thông tư 200/2014/TT-BTC", "", 1, "R", false, 0, "")
	pdf.CellFormat(usableW/2, 4, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(usableW/2, 4, "ngày 22/12/2014 của Bộ Tài chính)", "", 1, "R", false, 0, "")
	pdf.Ln(4)

	title := "PHIẾU NHẬP KHO"
	partnerLabel := "Họ và tên người giao: "
	if v.Outbound {
		title = "PHIẾU XUẤT KHO"
		partnerLabel = "Họ và tên người nhận hàng: "
	}
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(usableW, 7, title, "", 1, "C", false, 0, "")

	day, month, year := splitDisplayDate(v.Date)
	pdf.SetFont(family, "", 9)
	pdf.CellFormat(usableW, 5,
		fmt.Sprintf("Ngày %s tháng %s năm %s", day, month, year), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "B", 9)
	pdf.CellFormat(usableW, 5, "Số: "+v.Number, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(family, "", 9)
	pdf.CellFormat(usableW, 5, partnerLabel+v.Partner, "", 1, "L", false, 0, "")
	pdf.CellFormat(usableW, 5, "Bộ phận sử dụng: "+v.Section, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Device table.
	colW := []float64{10, 62, 24, 14, 14, 26, 30}
	headers := []string{"STT", "Tên, nhãn hiệu, quy cách", "Mã số", "ĐVT",
		"SL", "Đơn giá", "Thành tiền"}
	pdf.SetFont(family, "B", 8)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 8)
	var total float64
	for i, line := range v.Lines {
		qty := ""
		if line.Quantity != 0 {
			qty = FormatMoney(line.Quantity)
		}
		price := ""
		if line.UnitPrice != 0 {
			price = FormatMoney(line.UnitPrice)
		}
		pdf.CellFormat(colW[0], 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 6, line.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 6, line.Code, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[3], 6, line.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[4], 6, qty, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[5], 6, price, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[6], 6, FormatMoney(line.LineTotal), "1", 1, "R", false, 0, "")
		total += line.LineTotal
	}

	pdf.SetFont(family, "B", 8)
	pdf.CellFormat(colW[0]+colW[1]+colW[2]+colW[3]+colW[4]+colW[5], 6,
		"Cộng", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colW[6], 6, FormatMoney(total), "1", 1, "R", false, 0, "")
	pdf.Ln(2)

	words, err := vnnum.AmountToWords(total)
	if err != nil {
		return nil, fmt.Errorf("amount in words: %w", err)
	}
	pdf.SetFont(family, "", 9)
	pdf.MultiCell(usableW, 5, "Tổng số tiền (viết bằng chữ): "+words+".", "", "L", false)
	pdf.Ln(6)

	// Signature blocks.
	signColW := usableW / 4
	signers := []string{"Người lập phiếu", "Người giao hàng", "Thủ kho", "Kế toán trưởng"}
	if v.Outbound {
		signers[1] = "Người nhận hàng"
	}
	pdf.SetFont(family, "B", 9)
	for _, s := range signers {
		pdf.CellFormat(signColW, 5, s, "", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont(family, "", 7)
	for range signers {
		pdf.CellFormat(signColW, 4, "(Ký, họ tên)", "", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
