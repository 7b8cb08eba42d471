package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ndtien/khovt/internal/services/inventory"
)

// AskRequest is a free-form inventory question
type AskRequest struct {
	Question string `json:"question"`
}

// askAssistant answers a question using the current inventory summary
func (r *Router) askAssistant(w http.ResponseWriter, req *http.Request) {
	if r.ai == nil {
		respondError(w, http.StatusServiceUnavailable, "Assistant is not configured")
		return
	}

	var body AskRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if body.Question == "" {
		respondError(w, http.StatusBadRequest, "Question is required")
		return
	}

	answer, err := r.ai.AskInventory(req.Context(), body.Question, r.inv.AssistantContext())
	if err != nil {
		r.logger.Error("assistant ask", zap.Error(err))
		respondError(w, http.StatusBadGateway, "Assistant is unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// analyzeTicket asks the assistant to review one document
func (r *Router) analyzeTicket(w http.ResponseWriter, req *http.Request) {
	if r.ai == nil {
		respondError(w, http.StatusServiceUnavailable, "Assistant is not configured")
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

	lines := make([]string, 0, len(detail.Lines))
	for _, line := range detail.Lines {
		lines = append(lines, fmt.Sprintf("- %s (mã %s): SL %v %s, đơn giá %v, bảo hành %s",
			line.ItemName, line.ItemCode, line.Quantity, line.Unit,
			line.UnitPrice, line.Warranty))
	}

	analysis, err := r.ai.AnalyzeTicket(req.Context(), detail.Number, lines)
	if err != nil {
		r.logger.Error("assistant analyze", zap.Error(err))
		respondError(w, http.StatusBadGateway, "Assistant is unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}
