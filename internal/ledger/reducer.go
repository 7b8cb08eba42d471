package ledger

import "strings"

// Header sentinels that show up when the sheet's header row gets
// re-ingested as data.
var headerSentinels = map[string]bool{
	"SỐ PHIẾU": true,
	"SO PHIEU": true,
}

// IsHeaderSentinel reports whether an upper-cased document id cell is a
// re-ingested header rather than data.
func IsHeaderSentinel(doc string) bool {
	return headerSentinels[doc]
}

// ItemMeta is the canonical description of an item type, captured from
// its most recent inbound row.
type ItemMeta struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Unit         string `json:"unit"`
	Manufacturer string `json:"manufacturer"`
	Country      string `json:"country"`
	ModelSerial  string `json:"modelSerial"`
}

// Snapshot is the derived inventory view. It is always rebuilt from
// scratch by Reduce and has no identity of its own; all four maps share
// the same normalized item key so callers can join them directly.
//
// Stock is signed and never clamped: a negative balance is a real data
// inconsistency the UI is supposed to surface.
type Snapshot struct {
	Stock        map[string]float64  `json:"stock"`
	LastPrice    map[string]float64  `json:"lastPrice"`
	LastWarranty map[string]string   `json:"lastWarranty"`
	LastMeta     map[string]ItemMeta `json:"lastMeta"`
}

// Reduce folds the ordered transaction log into the current inventory
// snapshot in a single forward pass. Input order is insertion order is
// time order: "last known" metadata, warranty and price mean the most
// recent inbound row for that key.
//
// Per-row rules:
//   - rows with an empty normalized key, an empty document id or a header
//     sentinel are skipped, never fatal;
//   - PX documents subtract the parsed quantity, everything else adds;
//   - on inbound rows a zero quantity with a non-empty item name counts
//     as 1 (blank cell means "one unit"); outbound rows subtract the
//     parsed value as-is;
//   - metadata is overwritten on every inbound row, while warranty and
//     price keep the last known good value: warranty only when the cell
//     normalizes to a dated string, price only when greater than zero.
func Reduce(rows []TransactionRow) *Snapshot {
	snap := &Snapshot{
		Stock:        make(map[string]float64),
		LastPrice:    make(map[string]float64),
		LastWarranty: make(map[string]string),
		LastMeta:     make(map[string]ItemMeta),
	}

	for _, row := range rows {
		doc := strings.ToUpper(strings.TrimSpace(row.DocumentID))
		if doc == "" || headerSentinels[doc] || row.Seq == "STT" {
			continue
		}
		key := NormalizeKey(row.ItemCode, row.ItemName)
		if key == "" {
			continue
		}

		if row.Outbound() {
			snap.Stock[key] -= row.Quantity
			continue
		}

		qty := row.Quantity
		if qty == 0 && row.ItemName != "" {
			qty = 1
		}
		snap.Stock[key] += qty

		snap.LastMeta[key] = ItemMeta{
			Code:         row.ItemCode,
			Name:         row.ItemName,
			Description:  row.Description,
			Unit:         row.Unit,
			Manufacturer: row.Manufacturer,
			Country:      row.Country,
			ModelSerial:  row.ModelSerial,
		}
		if row.WarrantyDate != "" {
			if w := ParseSheetDate(row.WarrantyDate); strings.Contains(w, "/") {
				snap.LastWarranty[key] = w
			}
		}
		if row.UnitPrice > 0 {
			snap.LastPrice[key] = row.UnitPrice
		}
	}

	return snap
}
