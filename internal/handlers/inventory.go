package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ndtien/khovt/internal/services/inventory"
)

// getSnapshot returns the derived stock view
func (r *Router) getSnapshot(w http.ResponseWriter, req *http.Request) {
	snap, at := r.inv.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot":    snap,
		"lastRefresh": at,
	})
}

// getDashboard returns the summary statistics
func (r *Router) getDashboard(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.inv.Dashboard())
}

// getMasterData returns the form reference lists
func (r *Router) getMasterData(w http.ResponseWriter, req *http.Request) {
	data, err := r.inv.LoadMasterData(req.Context())
	if err != nil {
		r.logger.Error("load master data", zap.Error(err))
		respondError(w, http.StatusBadGateway, "Could not load reference lists")
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// triggerRefresh forces a snapshot rebuild
func (r *Router) triggerRefresh(w http.ResponseWriter, req *http.Request) {
	if err := r.inv.Refresh(req.Context()); err != nil {
		r.logger.Error("manual refresh", zap.Error(err))
		respondError(w, http.StatusBadGateway, "Refresh failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// listTickets returns the distinct document ids
func (r *Router) listTickets(w http.ResponseWriter, req *http.Request) {
	ids := r.inv.Tickets()
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"tickets": ids})
}

// getTicket returns one document with all lines
func (r *Router) getTicket(w http.ResponseWriter, req *http.Request) {
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
	respondJSON(w, http.StatusOK, detail)
}

// nextTicketNumber previews the next document id for ?type=PN or PX
func (r *Router) nextTicketNumber(w http.ResponseWriter, req *http.Request) {
	class := strings.TrimSpace(req.URL.Query().Get("type"))
	number, err := r.inv.NextNumber(class)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"number": number})
}

// createTicket validates and appends a new document
func (r *Router) createTicket(w http.ResponseWriter, req *http.Request) {
	var body inventory.CreateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	detail, err := r.inv.CreateTicket(req.Context(), body)
	if err != nil {
		if errors.Is(err, inventory.ErrInsufficientStock) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, detail)
}
