package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ndtien/khovt/internal/ledger"
)

// RecentTicket is one entry of the dashboard activity feed.
type RecentTicket struct {
	Number    string   `json:"number"`
	Date      string   `json:"date"`
	ItemNames []string `json:"itemNames"` // at most three
	Remaining int      `json:"remaining"` // lines beyond the first three
	Outbound  bool     `json:"outbound"`
}

// TopItem is one row of the inbound spend ranking.
type TopItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Money    float64 `json:"money"`
}

// Stats is the dashboard summary.
type Stats struct {
	TotalDevices      int            `json:"totalDevices"`
	UniqueTickets     int            `json:"uniqueTickets"`
	UniqueDepartments int            `json:"uniqueDepartments"`
	UniquePartners    int            `json:"uniquePartners"`
	Recent            []RecentTicket `json:"recent"`
	TopItems          []TopItem      `json:"topItems"`
	MaxMoney          float64        `json:"maxMoney"`
	LastRefresh       time.Time      `json:"lastRefresh"`
}

// Dashboard computes the summary from the current log. Rows without a
// document number are ignored, as the reducer ignores them.
func (s *Service) Dashboard() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{LastRefresh: s.lastRefresh}

	tickets := make(map[string]bool)
	departments := make(map[string]bool)
	partners := make(map[string]bool)
	spendQty := make(map[string]float64)
	spendMoney := make(map[string]float64)

	var valid []ledger.TransactionRow
	for _, row := range s.rows {
		id := strings.ToUpper(strings.TrimSpace(row.DocumentID))
		if id == "" || ledger.IsHeaderSentinel(id) {
			continue
		}
		valid = append(valid, row)

		stats.TotalDevices++
		tickets[id] = true
		if dep := strings.TrimSpace(row.Section); dep != "" {
			departments[dep] = true
		}
		if p := strings.TrimSpace(row.Partner); p != "" {
			partners[p] = true
		}

		if !row.Outbound() && row.ItemName != "" {
			qty := row.Quantity
			if qty == 0 {
				qty = 1
			}
			spendQty[row.ItemName] += qty
			spendMoney[row.ItemName] += row.LineTotal
		}
	}
	stats.UniqueTickets = len(tickets)
	stats.UniqueDepartments = len(departments)
	stats.UniquePartners = len(partners)

	// Most recent six tickets, newest appended rows first.
	seen := make(map[string]int)
	for i := len(valid) - 1; i >= 0 && len(stats.Recent) <= 6; i-- {
		row := valid[i]
		id := strings.ToUpper(strings.TrimSpace(row.DocumentID))
		idx, ok := seen[id]
		if !ok {
			if len(stats.Recent) == 6 {
				break
			}
			seen[id] = len(stats.Recent)
			stats.Recent = append(stats.Recent, RecentTicket{
				Number:   id,
				Date:     ledger.ParseSheetDate(row.DocumentDate),
				Outbound: row.Outbound(),
			})
			idx = seen[id]
		}
		entry := &stats.Recent[idx]
		if row.ItemName != "" {
			if len(entry.ItemNames) < 3 {
				// Rows come newest-last inside a ticket; order within
				// the preview does not matter on the dashboard.
				entry.ItemNames = append(entry.ItemNames, row.ItemName)
			} else {
				entry.Remaining++
			}
		}
	}

	for name, money := range spendMoney {
		stats.TopItems = append(stats.TopItems, TopItem{
			Name:     name,
			Quantity: spendQty[name],
			Money:    money,
		})
	}
	sort.Slice(stats.TopItems, func(i, j int) bool {
		if stats.TopItems[i].Money != stats.TopItems[j].Money {
			return stats.TopItems[i].Money > stats.TopItems[j].Money
		}
		return stats.TopItems[i].Name < stats.TopItems[j].Name
	})
	if len(stats.TopItems) > 10 {
		stats.TopItems = stats.TopItems[:10]
	}
	if len(stats.TopItems) > 0 {
		stats.MaxMoney = stats.TopItems[0].Money
	}
	return stats
}

// AssistantContext renders a compact inventory summary for the chat
// assistant prompt.
func (s *Service) AssistantContext() string {
	stats := s.Dashboard()

	var b strings.Builder
	fmt.Fprintf(&b, "Tổng số thiết bị đã ghi nhận: %d\n", stats.TotalDevices)
	fmt.Fprintf(&b, "Tổng số phiếu: %d\n", stats.UniqueTickets)
	fmt.Fprintf(&b, "Số khoa phòng: %d\n", stats.UniqueDepartments)
	fmt.Fprintf(&b, "Số đối tác: %d\n", stats.UniquePartners)
	if len(stats.TopItems) > 0 {
		b.WriteString("Thiết bị có giá trị nhập cao nhất:\n")
		for i, item := range stats.TopItems {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "- %s: SL %v, thành tiền %.0f\n", item.Name, item.Quantity, item.Money)
		}
	}
	if len(stats.Recent) > 0 {
		r := stats.Recent[0]
		fmt.Fprintf(&b, "Phiếu gần nhất: %s ngày %s (%d thiết bị)\n",
			r.Number, r.Date, len(r.ItemNames)+r.Remaining)
	}
	return b.String()
}

// MasterData is the reference lists backing the entry form datalists.
type MasterData struct {
	Devices   [][]string `json:"devices"`   // catalog rows: code, name, unit, ...
	Suppliers []string   `json:"suppliers"` // distinct column values of the master range
	Sections  []string   `json:"sections"`
	Units     []string   `json:"units"`
}

// LoadMasterData fetches the catalog and master ranges. The lists are
// read on demand; they change far too rarely to cache.
func (s *Service) LoadMasterData(ctx context.Context) (*MasterData, error) {
	catalog, err := s.repo.ReadRange(ctx, s.cfg.CatalogRange)
	if err != nil {
		return nil, fmt.Errorf("read catalog range: %w", err)
	}
	master, err := s.repo.ReadRange(ctx, s.cfg.MasterRange)
	if err != nil {
		return nil, fmt.Errorf("read master range: %w", err)
	}

	data := &MasterData{}
	for _, row := range catalog {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		data.Devices = append(data.Devices, row)
	}
	data.Suppliers = distinctColumn(master, 0)
	data.Sections = distinctColumn(master, 1)
	data.Units = distinctColumn(master, 2)
	return data, nil
}

func distinctColumn(rows [][]string, col int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
