// Package inventory orchestrates the transaction log: it keeps the
// derived snapshot, validates and appends new tickets, and feeds the
// dashboard, label printer and assistant.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ndtien/khovt/internal/config"
	"github.com/ndtien/khovt/internal/ledger"
	"github.com/ndtien/khovt/internal/sheets"
)

var (
	// ErrInsufficientStock rejects outbound lines exceeding current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrTicketNotFound means no row carries the requested document id.
	ErrTicketNotFound = errors.New("ticket not found")
)

// Service owns the in-memory snapshot. The snapshot is always rebuilt
// whole from a fresh fetch of the transaction range; it is never patched
// incrementally, which keeps refresh and append free of update races.
type Service struct {
	repo      sheets.Repository
	cfg       config.SheetsConfig
	logger    *zap.Logger
	onRefresh func()

	mu          sync.RWMutex
	rows        []ledger.TransactionRow
	snap        *ledger.Snapshot
	lastRefresh time.Time
}

// NewService builds the service. The snapshot starts empty until the
// first Refresh.
func NewService(repo sheets.Repository, cfg config.SheetsConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		snap:   ledger.Reduce(nil),
	}
}

// SetRefreshHook registers a callback fired after every successful
// refresh (used to nudge connected dashboards).
func (s *Service) SetRefreshHook(hook func()) {
	s.onRefresh = hook
}

// Refresh re-fetches the transaction range and rebuilds the snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	table, err := s.repo.ReadRange(ctx, s.cfg.DataRange)
	if err != nil {
		return fmt.Errorf("refresh transaction log: %w", err)
	}

	rows := ledger.DecodeRows(table)
	snap := ledger.Reduce(rows)

	s.mu.Lock()
	s.rows = rows
	s.snap = snap
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	s.logger.Info("snapshot rebuilt",
		zap.Int("rows", len(rows)),
		zap.Int("items", len(snap.Stock)))

	if s.onRefresh != nil {
		s.onRefresh()
	}
	return nil
}

// Snapshot returns the current derived view and when it was built.
func (s *Service) Snapshot() (*ledger.Snapshot, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.lastRefresh
}

// Rows returns a copy of the decoded transaction log.
func (s *Service) Rows() []ledger.TransactionRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.TransactionRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// Stock looks up the signed balance for one item.
func (s *Service) Stock(code, name string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Stock[ledger.NormalizeKey(code, name)]
}

// Tickets returns the distinct document ids in the log, sorted.
func (s *Service) Tickets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var ids []string
	for _, row := range s.rows {
		id := strings.ToUpper(strings.TrimSpace(row.DocumentID))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NextNumber allocates the next document id of the class against the
// current table. It must be re-run after every append.
func (s *Service) NextNumber(class string) (string, error) {
	class = strings.ToUpper(strings.TrimSpace(class))
	if class != ledger.PrefixInbound && class != ledger.PrefixOutbound {
		return "", fmt.Errorf("unknown document class %q", class)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.NextDocumentID(s.rows, class), nil
}

// TicketLine is one device line of a ticket, with its label payload
// resolved (stored column S value, or the reconstructed fallback).
type TicketLine struct {
	ItemCode     string  `json:"itemCode"`
	ItemName     string  `json:"itemName"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit"`
	Manufacturer string  `json:"manufacturer"`
	Country      string  `json:"country"`
	ModelSerial  string  `json:"modelSerial"`
	Warranty     string  `json:"warranty"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	LineTotal    float64 `json:"lineTotal"`
	Note         string  `json:"note"`
	QRPayload    string  `json:"qrPayload"`
}

// TicketDetail is one warehouse document with all of its lines.
type TicketDetail struct {
	Type    string       `json:"type"` // PN or PX
	Number  string       `json:"number"`
	Date    string       `json:"date"` // DD/MM/YYYY
	Partner string       `json:"partner"`
	Section string       `json:"section"`
	Lines   []TicketLine `json:"items"`
	Total   float64      `json:"total"`
}

// Ticket assembles the detail view for one document id.
func (s *Service) Ticket(id string) (*TicketDetail, error) {
	id = strings.ToUpper(strings.TrimSpace(id))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var detail *TicketDetail
	for _, row := range s.rows {
		if strings.ToUpper(strings.TrimSpace(row.DocumentID)) != id {
			continue
		}
		if detail == nil {
			class := ledger.PrefixInbound
			if row.Outbound() {
				class = ledger.PrefixOutbound
			}
			detail = &TicketDetail{
				Type:    class,
				Number:  id,
				Date:    ledger.ParseSheetDate(row.DocumentDate),
				Partner: row.Partner,
				Section: row.Section,
			}
		}
		detail.Lines = append(detail.Lines, TicketLine{
			ItemCode:     row.ItemCode,
			ItemName:     row.ItemName,
			Description:  row.Description,
			Unit:         row.Unit,
			Manufacturer: row.Manufacturer,
			Country:      row.Country,
			ModelSerial:  row.ModelSerial,
			Warranty:     ledger.ParseSheetDate(row.WarrantyDate),
			Quantity:     row.Quantity,
			UnitPrice:    row.UnitPrice,
			LineTotal:    row.LineTotal,
			Note:         row.Note,
			QRPayload:    QRPayload(row),
		})
		detail.Total += row.LineTotal
	}

	if detail == nil {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	return detail, nil
}

// QRPayload returns the label content for one row: the stored column S
// payload when present, otherwise the reconstructed fallback block the
// paper labels have always carried.
func QRPayload(row ledger.TransactionRow) string {
	if row.QRPayload != "" {
		return row.QRPayload
	}
	if strings.TrimSpace(row.DocumentID) == "" {
		return ""
	}

	partnerLabel, dateLabel := "Nhà CC: ", "Ngày giao: "
	if row.Outbound() {
		partnerLabel, dateLabel = "Khoa phòng: ", "Ngày cấp: "
	}

	return "Tên thiết bị: " + row.ItemName + "\n" +
		partnerLabel + row.Partner + "\n" +
		"Bộ phận sử dụng: " + row.Section + "\n" +
		dateLabel + ledger.ParseSheetDate(row.DocumentDate) + "\n" +
		"Model, Serial: " + row.ModelSerial + "\n" +
		"Bảo hành: " + ledger.ParseSheetDate(row.WarrantyDate)
}

// LineInput is one device line of a ticket being created.
type LineInput struct {
	ItemCode     string  `json:"itemCode"`
	ItemName     string  `json:"itemName"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit"`
	Manufacturer string  `json:"manufacturer"`
	Country      string  `json:"country"`
	ModelSerial  string  `json:"modelSerial"`
	Warranty     string  `json:"warranty"` // YYYY-MM-DD or DD/MM/YYYY
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Note         string  `json:"note"`
}

// CreateRequest is a new warehouse ticket.
type CreateRequest struct {
	Type    string      `json:"type"` // PN or PX
	Number  string      `json:"number,omitempty"`
	Date    string      `json:"date"`
	Partner string      `json:"partner"`
	Section string      `json:"section"`
	Lines   []LineInput `json:"items"`
}

// CreateTicket validates the request, allocates a document number when
// none was supplied, appends the rows and rebuilds the snapshot.
// Outbound quantities above current stock are rejected before anything
// is written.
func (s *Service) CreateTicket(ctx context.Context, req CreateRequest) (*TicketDetail, error) {
	class := strings.ToUpper(strings.TrimSpace(req.Type))
	if class != ledger.PrefixInbound && class != ledger.PrefixOutbound {
		return nil, fmt.Errorf("unknown document class %q", req.Type)
	}
	if strings.TrimSpace(req.Partner) == "" {
		return nil, fmt.Errorf("partner is required")
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("a ticket needs at least one device line")
	}
	for i, line := range req.Lines {
		if strings.TrimSpace(line.ItemName) == "" {
			return nil, fmt.Errorf("line %d: device name is required", i+1)
		}
	}

	s.mu.RLock()
	if class == ledger.PrefixOutbound {
		for i, line := range req.Lines {
			key := ledger.NormalizeKey(line.ItemCode, line.ItemName)
			stock := s.snap.Stock[key]
			if line.Quantity > stock {
				s.mu.RUnlock()
				return nil, fmt.Errorf("%w: line %d (%s) requests %v, current stock is %v",
					ErrInsufficientStock, i+1, line.ItemName, line.Quantity, stock)
			}
		}
	}
	number := strings.ToUpper(strings.TrimSpace(req.Number))
	if number == "" {
		number = ledger.NextDocumentID(s.rows, class)
	}
	s.mu.RUnlock()

	label := ledger.LabelInbound
	if class == ledger.PrefixOutbound {
		label = ledger.LabelOutbound
	}
	date := ledger.ToDisplayDate(strings.TrimSpace(req.Date))

	cells := make([][]string, 0, len(req.Lines))
	detail := &TicketDetail{
		Type:    class,
		Number:  number,
		Date:    date,
		Partner: req.Partner,
		Section: req.Section,
	}
	for i, line := range req.Lines {
		row := ledger.TransactionRow{
			Seq:          strconv.Itoa(i + 1),
			TypeLabel:    label,
			Partner:      req.Partner,
			Section:      req.Section,
			DocumentID:   number,
			DocumentDate: date,
			ItemCode:     line.ItemCode,
			ItemName:     line.ItemName,
			Description:  line.Description,
			Unit:         line.Unit,
			Manufacturer: line.Manufacturer,
			Country:      line.Country,
			ModelSerial:  line.ModelSerial,
			WarrantyDate: ledger.ToDisplayDate(strings.TrimSpace(line.Warranty)),
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			LineTotal:    line.Quantity * line.UnitPrice,
			Note:         line.Note,
		}
		row.QRPayload = QRPayload(row)
		cells = append(cells, row.Cells())
		detail.Lines = append(detail.Lines, TicketLine{
			ItemCode:     row.ItemCode,
			ItemName:     row.ItemName,
			Description:  row.Description,
			Unit:         row.Unit,
			Manufacturer: row.Manufacturer,
			Country:      row.Country,
			ModelSerial:  row.ModelSerial,
			Warranty:     row.WarrantyDate,
			Quantity:     row.Quantity,
			UnitPrice:    row.UnitPrice,
			LineTotal:    row.LineTotal,
			Note:         row.Note,
			QRPayload:    QRPayload(row),
		})
		detail.Total += row.LineTotal
	}

	if err := s.repo.AppendRows(ctx, s.cfg.DataSheet, cells); err != nil {
		return nil, err
	}

	s.logger.Info("ticket saved",
		zap.String("number", number),
		zap.Int("lines", len(req.Lines)))

	if err := s.Refresh(ctx); err != nil {
		// The rows are persisted; a failed re-fetch only leaves the
		// snapshot stale until the next scheduled refresh.
		s.logger.Warn("refresh after append failed", zap.Error(err))
	}
	return detail, nil
}
