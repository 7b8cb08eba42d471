package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ndtien/khovt/internal/ledger"
	"github.com/ndtien/khovt/internal/services/inventory"
	"github.com/ndtien/khovt/internal/services/printer"
)

// LabelPrintRequest selects what goes on the label sheet: a whole
// ticket, explicit items, or both.
type LabelPrintRequest struct {
	Ticket string              `json:"ticket,omitempty"`
	Items  []printer.LabelItem `json:"items,omitempty"`
	Config printer.LabelConfig `json:"config"`
}

// printLabels renders a QR label sheet PDF
func (r *Router) printLabels(w http.ResponseWriter, req *http.Request) {
	var body LabelPrintRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	items := body.Items
	if body.Ticket != "" {
		detail, err := r.inv.Ticket(body.Ticket)
		if err != nil {
			if errors.Is(err, inventory.ErrTicketNotFound) {
				respondError(w, http.StatusNotFound, "Ticket not found")
				return
			}
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for _, line := range detail.Lines {
			// One label per physical unit.
			count := int(line.Quantity)
			if count < 1 {
				count = 1
			}
			for i := 0; i < count; i++ {
				items = append(items, printer.LabelItem{
					Title:   line.ItemName,
					Payload: line.QRPayload,
				})
			}
		}
	}
	if len(items) == 0 {
		respondError(w, http.StatusBadRequest, "Nothing to print")
		return
	}

	pdfBytes, err := printer.GenerateLabelsPDF(body.Config, items, r.cfg.Print.FontPath)
	if err != nil {
		r.logger.Error("render labels", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Could not render labels")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="labels.pdf"`)
	w.Write(pdfBytes)
}

// printVoucher renders the 01-VT voucher PDF for one ticket
func (r *Router) printVoucher(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	detail, err := r.inv.Ticket(id)
	if err != nil {
		if errors.Is(err, inventory.ErrTicketNotFound) {
			respondError(w, http.StatusNotFound, "Ticket not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pdfBytes, err := r.renderVoucher(detail)
	if err != nil {
		r.logger.Error("render voucher", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Could not render voucher")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`inline; filename="%s.pdf"`, detail.Number))
	w.Write(pdfBytes)
}

func (r *Router) renderVoucher(detail *inventory.TicketDetail) ([]byte, error) {
	v := printer.Voucher{
		Outbound:      detail.Type == ledger.PrefixOutbound,
		Number:        detail.Number,
		Date:          detail.Date,
		Partner:       detail.Partner,
		Section:       detail.Section,
		OrgName:       r.cfg.Org.Name,
		OrgDepartment: r.cfg.Org.Department,
	}
	for _, line := range detail.Lines {
		v.Lines = append(v.Lines, printer.VoucherLine{
			Name:      line.ItemName,
			Code:      line.ItemCode,
			Unit:      line.Unit,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	return printer.GenerateVoucherPDF(v, r.cfg.Print.FontPath)
}
