package ledger

import (
	"strconv"
	"strings"
)

// Document number prefixes. PN tickets receive stock, PX tickets issue it.
const (
	PrefixInbound  = "PN"
	PrefixOutbound = "PX"
)

// Type labels as they appear in column B of the sheet.
const (
	LabelInbound  = "Phiếu nhập"
	LabelOutbound = "Phiếu xuất"
)

// RowWidth is the number of cells written per transaction line. Column S
// (index 18) additionally carries a prebuilt QR payload on older rows.
const RowWidth = 18

// TransactionRow is one device line-item of one warehouse ticket, decoded
// from the fixed positional layout of the DULIEU sheet.
type TransactionRow struct {
	Seq          string
	TypeLabel    string
	Partner      string
	Section      string
	DocumentID   string
	DocumentDate string
	ItemCode     string
	ItemName     string
	Description  string
	Unit         string
	Manufacturer string
	Country      string
	ModelSerial  string
	WarrantyDate string
	Quantity     float64
	UnitPrice    float64
	LineTotal    float64
	Note         string
	QRPayload    string
}

// DecodeRow maps a raw sheet row onto named fields. The sheet has no
// enforced header contract, so cells are read strictly by position; short
// rows are treated as padded with empty cells. Decoding never fails, bad
// numeric cells degrade to zero.
func DecodeRow(cells []string) TransactionRow {
	at := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	row := TransactionRow{
		Seq:          at(0),
		TypeLabel:    at(1),
		Partner:      at(2),
		Section:      at(3),
		DocumentID:   at(4),
		DocumentDate: at(5),
		ItemCode:     at(6),
		ItemName:     at(7),
		Description:  at(8),
		Unit:         at(9),
		Manufacturer: at(10),
		Country:      at(11),
		ModelSerial:  at(12),
		WarrantyDate: at(13),
		Quantity:     ParseLocaleNumber(at(14)),
		UnitPrice:    ParseLocaleNumber(at(15)),
		LineTotal:    ParseLocaleNumber(at(16)),
		Note:         at(17),
	}
	if len(cells) > 18 {
		row.QRPayload = strings.TrimSpace(cells[18])
	}
	return row
}

// DecodeRows decodes a whole fetched table.
func DecodeRows(table [][]string) []TransactionRow {
	rows := make([]TransactionRow, 0, len(table))
	for _, cells := range table {
		rows = append(rows, DecodeRow(cells))
	}
	return rows
}

// Cells re-encodes the row into the positional layout expected by the
// append collaborator. A non-empty QR payload is written to column S.
func (r TransactionRow) Cells() []string {
	cells := []string{
		r.Seq,
		r.TypeLabel,
		r.Partner,
		r.Section,
		r.DocumentID,
		r.DocumentDate,
		r.ItemCode,
		r.ItemName,
		r.Description,
		r.Unit,
		r.Manufacturer,
		r.Country,
		r.ModelSerial,
		r.WarrantyDate,
		formatCell(r.Quantity),
		formatCell(r.UnitPrice),
		formatCell(r.LineTotal),
		r.Note,
	}
	if r.QRPayload != "" {
		cells = append(cells, r.QRPayload)
	}
	return cells
}

// Outbound reports whether the row belongs to an issue (PX) document.
// Every other prefix, including unrecognized ones, counts as inbound.
func (r TransactionRow) Outbound() bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(r.DocumentID)), PrefixOutbound)
}

func formatCell(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
