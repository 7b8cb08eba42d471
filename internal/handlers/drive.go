package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ndtien/khovt/internal/services/inventory"
)

// listDriveFiles returns the document archive folder listing
func (r *Router) listDriveFiles(w http.ResponseWriter, req *http.Request) {
	if r.drive == nil {
		respondError(w, http.StatusServiceUnavailable, "Drive archive is not configured")
		return
	}

	files, err := r.drive.ListFolder(req.Context())
	if err != nil {
		r.logger.Error("list drive folder", zap.Error(err))
		respondError(w, http.StatusBadGateway, "Could not list archive folder")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"files": files})
}

// uploadVoucher renders the ticket voucher and stores it in the archive
// folder under the conventional name.
func (r *Router) uploadVoucher(w http.ResponseWriter, req *http.Request) {
	if r.drive == nil {
		respondError(w, http.StatusServiceUnavailable, "Drive archive is not configured")
		return
	}

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

	name := fmt.Sprintf("Chung tu %s+%s.pdf", detail.Number, detail.Partner)
	link, err := r.drive.UploadPDF(req.Context(), name, pdfBytes)
	if err != nil {
		r.logger.Error("upload voucher", zap.Error(err))
		respondError(w, http.StatusBadGateway, "Could not upload voucher")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"name": name,
		"link": link,
	})
}
