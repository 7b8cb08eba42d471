package inventory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ndtien/khovt/internal/config"
	"github.com/ndtien/khovt/internal/ledger"
)

// fakeRepo serves canned ranges and records appends in-place so a
// follow-up refresh sees the new rows, like the live sheet does.
type fakeRepo struct {
	data      [][]string
	catalog   [][]string
	master    [][]string
	appendErr error
	appends   int
}

func (f *fakeRepo) ReadRange(_ context.Context, sheetRange string) ([][]string, error) {
	switch {
	case strings.HasPrefix(sheetRange, "DANHMUC"):
		return f.catalog, nil
	case strings.HasPrefix(sheetRange, "DMDC"):
		return f.master, nil
	default:
		return f.data, nil
	}
}

func (f *fakeRepo) AppendRows(_ context.Context, _ string, rows [][]string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appends++
	f.data = append(f.data, rows...)
	return nil
}

func testConfig() config.SheetsConfig {
	return config.SheetsConfig{
		DataSheet:    "DULIEU",
		DataRange:    "DULIEU!A3:U",
		CatalogRange: "DANHMUC!C4:I",
		MasterRange:  "DMDC!A4:E",
	}
}

func seedRows() [][]string {
	return [][]string{
		{"1", "Phiếu nhập", "Công ty A", "Kho chính", "PN0001", "02/01/2025",
			"MAY01", "Máy đo SpO2", "Loại kẹp ngón", "Cái", "Contec", "Trung Quốc",
			"CMS50D/SN123", "02/01/2026", "5", "1200000", "6000000", ""},
		{"2", "Phiếu nhập", "Công ty A", "Kho chính", "PN0001", "02/01/2025",
			"BOM01", "Bơm tiêm điện", "", "Cái", "Terumo", "Nhật Bản",
			"TE-331/SN9", "", "2", "8500000", "17000000", ""},
		{"1", "Phiếu xuất", "Khoa Nội", "Tầng 2", "PX0001", "05/01/2025",
			"MAY01", "Máy đo SpO2", "", "Cái", "", "",
			"", "", "2", "0", "0", "Cấp cho khoa"},
	}
}

func newTestService(t *testing.T, repo *fakeRepo) *Service {
	t.Helper()
	svc := NewService(repo, testConfig(), nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return svc
}

func TestRefreshBuildsSnapshot(t *testing.T) {
	svc := newTestService(t, &fakeRepo{data: seedRows()})

	snap, at := svc.Snapshot()
	if at.IsZero() {
		t.Error("refresh timestamp not set")
	}
	if got := snap.Stock["may01"]; got != 3 {
		t.Errorf("stock = %v, want 3", got)
	}
	if got := svc.Stock("BOM01", "Bơm tiêm điện"); got != 2 {
		t.Errorf("Stock() = %v, want 2", got)
	}
}

func TestTicketsAndDetail(t *testing.T) {
	svc := newTestService(t, &fakeRepo{data: seedRows()})

	ids := svc.Tickets()
	want := []string{"PN0001", "PX0001"}
	if len(ids) != len(want) {
		t.Fatalf("Tickets() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Tickets()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	detail, err := svc.Ticket("pn0001")
	if err != nil {
		t.Fatalf("Ticket: %v", err)
	}
	if detail.Type != ledger.PrefixInbound {
		t.Errorf("Type = %q, want PN", detail.Type)
	}
	if detail.Date != "02/01/2025" {
		t.Errorf("Date = %q", detail.Date)
	}
	if len(detail.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(detail.Lines))
	}
	if detail.Total != 23000000 {
		t.Errorf("Total = %v, want 23000000", detail.Total)
	}
	if !strings.Contains(detail.Lines[0].QRPayload, "Nhà CC: Công ty A") {
		t.Errorf("fallback payload missing partner: %q", detail.Lines[0].QRPayload)
	}

	if _, err := svc.Ticket("PN9999"); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("missing ticket error = %v, want ErrTicketNotFound", err)
	}
}

func TestQRPayloadPrefersStoredColumn(t *testing.T) {
	row := ledger.TransactionRow{DocumentID: "PN0001", ItemName: "X", QRPayload: "stored"}
	if got := QRPayload(row); got != "stored" {
		t.Errorf("QRPayload = %q, want stored column", got)
	}

	row.QRPayload = ""
	row.TypeLabel = ledger.LabelOutbound
	row.DocumentID = "PX0002"
	got := QRPayload(row)
	if !strings.Contains(got, "Khoa phòng: ") || !strings.Contains(got, "Ngày cấp: ") {
		t.Errorf("outbound fallback uses wrong labels: %q", got)
	}
}

func TestNextNumber(t *testing.T) {
	svc := newTestService(t, &fakeRepo{data: seedRows()})

	if got, err := svc.NextNumber("PN"); err != nil || got != "PN0002" {
		t.Errorf("NextNumber(PN) = %q, %v", got, err)
	}
	if got, err := svc.NextNumber("px"); err != nil || got != "PX0002" {
		t.Errorf("NextNumber(px) = %q, %v", got, err)
	}
	if _, err := svc.NextNumber("ZZ"); err == nil {
		t.Error("NextNumber(ZZ) accepted an unknown class")
	}
}

func TestCreateTicketInbound(t *testing.T) {
	repo := &fakeRepo{data: seedRows()}
	svc := newTestService(t, repo)

	var refreshed bool
	svc.SetRefreshHook(func() { refreshed = true })

	detail, err := svc.CreateTicket(context.Background(), CreateRequest{
		Type:    "PN",
		Date:    "2025-02-10",
		Partner: "Công ty B",
		Section: "Kho chính",
		Lines: []LineInput{
			{ItemName: "Monitor 5 thông số", Unit: "Cái", Quantity: 1,
				UnitPrice: 45000000, Warranty: "2026-02-10"},
		},
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if detail.Number != "PN0002" {
		t.Errorf("allocated number = %q, want PN0002", detail.Number)
	}
	if detail.Date != "10/02/2025" {
		t.Errorf("date = %q, want 10/02/2025", detail.Date)
	}
	if detail.Lines[0].Warranty != "10/02/2026" {
		t.Errorf("warranty = %q, want 10/02/2026", detail.Lines[0].Warranty)
	}
	if detail.Total != 45000000 {
		t.Errorf("total = %v", detail.Total)
	}
	if repo.appends != 1 {
		t.Errorf("appends = %d, want 1", repo.appends)
	}
	if !refreshed {
		t.Error("refresh hook not fired after create")
	}

	// The written rows feed the next allocation.
	if got, _ := svc.NextNumber("PN"); got != "PN0003" {
		t.Errorf("NextNumber after create = %q, want PN0003", got)
	}
	if got := svc.Stock("", "Monitor 5 thông số"); got != 1 {
		t.Errorf("stock after create = %v, want 1", got)
	}
}

func TestCreateTicketOutboundStockGuard(t *testing.T) {
	repo := &fakeRepo{data: seedRows()}
	svc := newTestService(t, repo)

	_, err := svc.CreateTicket(context.Background(), CreateRequest{
		Type:    "PX",
		Date:    "2025-02-11",
		Partner: "Khoa Ngoại",
		Lines:   []LineInput{{ItemName: "Máy đo SpO2", Quantity: 10}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if repo.appends != 0 {
		t.Error("rows were written despite the stock guard")
	}

	// Exactly the available quantity passes.
	detail, err := svc.CreateTicket(context.Background(), CreateRequest{
		Type:    "PX",
		Date:    "2025-02-11",
		Partner: "Khoa Ngoại",
		Lines:   []LineInput{{ItemCode: "MAY01", ItemName: "Máy đo SpO2", Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if detail.Number != "PX0002" {
		t.Errorf("number = %q, want PX0002", detail.Number)
	}
	if got := svc.Stock("MAY01", "Máy đo SpO2"); got != 0 {
		t.Errorf("stock after issue = %v, want 0", got)
	}
}

func TestCreateTicketValidation(t *testing.T) {
	svc := newTestService(t, &fakeRepo{data: seedRows()})

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"unknown class", CreateRequest{Type: "XX", Partner: "A",
			Lines: []LineInput{{ItemName: "x"}}}},
		{"missing partner", CreateRequest{Type: "PN",
			Lines: []LineInput{{ItemName: "x"}}}},
		{"no lines", CreateRequest{Type: "PN", Partner: "A"}},
		{"blank device name", CreateRequest{Type: "PN", Partner: "A",
			Lines: []LineInput{{ItemName: "  "}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateTicket(context.Background(), tc.req); err == nil {
				t.Error("invalid request accepted")
			}
		})
	}
}

func TestDashboard(t *testing.T) {
	svc := newTestService(t, &fakeRepo{data: seedRows()})

	stats := svc.Dashboard()
	if stats.TotalDevices != 3 {
		t.Errorf("TotalDevices = %d, want 3", stats.TotalDevices)
	}
	if stats.UniqueTickets != 2 {
		t.Errorf("UniqueTickets = %d, want 2", stats.UniqueTickets)
	}
	if stats.UniquePartners != 2 {
		t.Errorf("UniquePartners = %d, want 2", stats.UniquePartners)
	}
	if len(stats.Recent) == 0 || stats.Recent[0].Number != "PX0001" {
		t.Fatalf("Recent = %+v, want PX0001 first", stats.Recent)
	}
	if !stats.Recent[0].Outbound {
		t.Error("PX0001 not flagged outbound")
	}
	if len(stats.TopItems) != 2 {
		t.Fatalf("TopItems = %+v, want 2 entries", stats.TopItems)
	}
	if stats.TopItems[0].Name != "Bơm tiêm điện" || stats.TopItems[0].Money != 17000000 {
		t.Errorf("top item = %+v", stats.TopItems[0])
	}
	if stats.MaxMoney != 17000000 {
		t.Errorf("MaxMoney = %v", stats.MaxMoney)
	}

	ctxBlock := svc.AssistantContext()
	if !strings.Contains(ctxBlock, "Tổng số phiếu: 2") {
		t.Errorf("assistant context missing totals: %q", ctxBlock)
	}
}

func TestLoadMasterData(t *testing.T) {
	repo := &fakeRepo{
		data: seedRows(),
		catalog: [][]string{
			{"MAY01", "Máy đo SpO2", "Cái"},
			{"", "", ""},
			{"BOM01", "Bơm tiêm điện", "Cái"},
		},
		master: [][]string{
			{"Công ty A", "Kho chính", "Cái"},
			{"Công ty B", "Tầng 2", "Hộp"},
			{"Công ty A", "", "Cái"},
		},
	}
	svc := newTestService(t, repo)

	data, err := svc.LoadMasterData(context.Background())
	if err != nil {
		t.Fatalf("LoadMasterData: %v", err)
	}
	if len(data.Devices) != 2 {
		t.Errorf("Devices = %d rows, want 2 (blank row dropped)", len(data.Devices))
	}
	if len(data.Suppliers) != 2 {
		t.Errorf("Suppliers = %v, want 2 distinct", data.Suppliers)
	}
	if len(data.Units) != 2 {
		t.Errorf("Units = %v, want 2 distinct", data.Units)
	}
}
