package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ndtien/khovt/internal/ai"
	"github.com/ndtien/khovt/internal/config"
	"github.com/ndtien/khovt/internal/drive"
	"github.com/ndtien/khovt/internal/middleware"
	"github.com/ndtien/khovt/internal/services/inventory"
	ws "github.com/ndtien/khovt/internal/websocket"
	"github.com/ndtien/khovt/web"
)

// Router wraps the mux router and the service dependencies
type Router struct {
	*mux.Router
	inv    *inventory.Service
	drive  *drive.Service // nil when no Drive folder is configured
	ai     *ai.Assistant  // nil when no API key is configured
	hub    *ws.Hub
	cfg    *config.Config
	logger *zap.Logger
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(inv *inventory.Service, driveSvc *drive.Service, assistant *ai.Assistant,
	hub *ws.Hub, cfg *config.Config, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		Router: mux.NewRouter(),
		inv:    inv,
		drive:  driveSvc,
		ai:     assistant,
		hub:    hub,
		cfg:    cfg,
		logger: logger,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.Auth.JWTSecret))

	api.HandleFunc("/snapshot", r.getSnapshot).Methods("GET")
	api.HandleFunc("/dashboard", r.getDashboard).Methods("GET")
	api.HandleFunc("/masterdata", r.getMasterData).Methods("GET")
	api.HandleFunc("/refresh", r.triggerRefresh).Methods("POST")

	api.HandleFunc("/tickets", r.listTickets).Methods("GET")
	api.HandleFunc("/tickets", r.createTicket).Methods("POST")
	api.HandleFunc("/tickets/next", r.nextTicketNumber).Methods("GET")
	api.HandleFunc("/tickets/{id}", r.getTicket).Methods("GET")

	api.HandleFunc("/drive/files", r.listDriveFiles).Methods("GET")
	api.HandleFunc("/drive/upload/{id}", r.uploadVoucher).Methods("POST")

	api.HandleFunc("/ai/ask", r.askAssistant).Methods("POST")
	api.HandleFunc("/ai/analyze/{id}", r.analyzeTicket).Methods("POST")

	api.HandleFunc("/print/labels", r.printLabels).Methods("POST")
	api.HandleFunc("/print/voucher/{id}", r.printVoucher).Methods("GET")

	// WebSocket for live dashboard refresh
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWs(hub, w, req)
	})

	// Static files
	staticFS, err := web.GetFileSystem()
	if err != nil {
		logger.Error("static filesystem unavailable", zap.Error(err))
	} else {
		r.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
