package ledger

import (
	"reflect"
	"testing"
)

func inboundRow(doc, code, name string, qty, price float64) TransactionRow {
	return TransactionRow{
		Seq:          "1",
		TypeLabel:    LabelInbound,
		DocumentID:   doc,
		ItemCode:     code,
		ItemName:     name,
		Quantity:     qty,
		UnitPrice:    price,
		Unit:         "Cái",
		Manufacturer: "Mindray",
		Country:      "Trung Quốc",
	}
}

func outboundRow(doc, code, name string, qty float64) TransactionRow {
	return TransactionRow{
		Seq:        "1",
		TypeLabel:  LabelOutbound,
		DocumentID: doc,
		ItemCode:   code,
		ItemName:   name,
		Quantity:   qty,
	}
}

func TestReduceSignedAccumulation(t *testing.T) {
	rows := []TransactionRow{
		inboundRow("PN0001", "TB01", "Monitor", 5, 1000),
		outboundRow("PX0001", "TB01", "Monitor", 2),
		inboundRow("PN0002", "TB01", "Monitor", 3, 1200),
	}
	snap := Reduce(rows)
	if got := snap.Stock["tb01"]; got != 6 {
		t.Errorf("stock = %v, want 6", got)
	}
	if got := snap.LastPrice["tb01"]; got != 1200 {
		t.Errorf("last price = %v, want 1200", got)
	}
}

func TestReduceNegativeStockNotClamped(t *testing.T) {
	rows := []TransactionRow{
		inboundRow("PN0001", "", "Bơm tiêm điện", 1, 0),
		outboundRow("PX0001", "", "Bơm tiêm điện", 1),
		outboundRow("PX0002", "", "Bơm tiêm điện", 1),
	}
	snap := Reduce(rows)
	if got := snap.Stock["bơm tiêm điện"]; got != -1 {
		t.Errorf("stock = %v, want -1 (clamping is a display decision, not the reducer's)", got)
	}
}

func TestReduceZeroQuantityFallback(t *testing.T) {
	// A blank quantity on an inbound row with a name means "one unit".
	snap := Reduce([]TransactionRow{inboundRow("PN0001", "", "Monitor", 0, 0)})
	if got := snap.Stock["monitor"]; got != 1 {
		t.Errorf("stock = %v, want 1", got)
	}

	// Outbound rows subtract the parsed value as-is.
	snap = Reduce([]TransactionRow{
		inboundRow("PN0001", "", "Monitor", 5, 0),
		outboundRow("PX0001", "", "Monitor", 0),
	})
	if got := snap.Stock["monitor"]; got != 5 {
		t.Errorf("stock after zero-qty outbound = %v, want 5", got)
	}
}

func TestReduceMetadataInboundOnly(t *testing.T) {
	in := inboundRow("PN0001", "TB01", "Monitor", 1, 500)
	in.Description = "Màn hình theo dõi bệnh nhân"
	in.ModelSerial = "uMEC-12 / SN998"
	in.WarrantyDate = "2025-06-30"

	out := outboundRow("PX0001", "TB01", "Monitor", 1)
	// Outbound rows legitimately leave metadata blank.

	snap := Reduce([]TransactionRow{in, out})
	meta, ok := snap.LastMeta["tb01"]
	if !ok {
		t.Fatal("metadata missing")
	}
	want := ItemMeta{
		Code:         "TB01",
		Name:         "Monitor",
		Description:  "Màn hình theo dõi bệnh nhân",
		Unit:         "Cái",
		Manufacturer: "Mindray",
		Country:      "Trung Quốc",
		ModelSerial:  "uMEC-12 / SN998",
	}
	if !reflect.DeepEqual(meta, want) {
		t.Errorf("metadata = %+v, want %+v", meta, want)
	}
	if got := snap.LastWarranty["tb01"]; got != "30/06/2025" {
		t.Errorf("warranty = %q, want 30/06/2025", got)
	}
}

func TestReduceLastKnownGoodPriceAndWarranty(t *testing.T) {
	first := inboundRow("PN0001", "TB01", "Monitor", 1, 900)
	first.WarrantyDate = "01/01/2026"
	second := inboundRow("PN0002", "TB01", "Monitor", 1, 0)
	second.WarrantyDate = "" // blank must not erase the known value

	snap := Reduce([]TransactionRow{first, second})
	if got := snap.LastPrice["tb01"]; got != 900 {
		t.Errorf("zero price overwrote last known good: %v", got)
	}
	if got := snap.LastWarranty["tb01"]; got != "01/01/2026" {
		t.Errorf("empty warranty overwrote last known good: %q", got)
	}
}

func TestReduceSkipsMalformedRows(t *testing.T) {
	rows := []TransactionRow{
		{Seq: "STT", DocumentID: "PN0001", ItemName: "hdr"}, // re-ingested header
		{DocumentID: "SỐ PHIẾU", ItemName: "hdr"},
		{DocumentID: "", ItemName: "no document"},
		{DocumentID: "PN0002"}, // empty key
		inboundRow("PN0003", "", "Real Item", 2, 0),
	}
	snap := Reduce(rows)
	if len(snap.Stock) != 1 {
		t.Fatalf("stock has %d keys, want 1: %v", len(snap.Stock), snap.Stock)
	}
	if snap.Stock["real item"] != 2 {
		t.Errorf("stock = %v, want 2", snap.Stock["real item"])
	}
}

func TestReduceDeterministic(t *testing.T) {
	rows := []TransactionRow{
		inboundRow("PN0001", "A", "Item A", 3, 100),
		outboundRow("PX0001", "A", "Item A", 1),
		inboundRow("PN0002", "B", "Item B", 7, 50),
	}
	a := Reduce(rows)
	b := Reduce(rows)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced different snapshots")
	}
}
