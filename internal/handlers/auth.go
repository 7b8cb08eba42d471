package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ndtien/khovt/internal/utils"
)

// LoginRequest carries the warehouse access PIN
type LoginRequest struct {
	PIN string `json:"pin"`
}

// login exchanges the shared PIN for a session token
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var body LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if body.PIN == "" {
		respondError(w, http.StatusBadRequest, "PIN is required")
		return
	}

	ok := false
	if utils.CheckPIN(body.PIN, r.cfg.Auth.PIN) {
		// APP_PIN may hold a bcrypt hash.
		ok = true
	} else if subtle.ConstantTimeCompare([]byte(body.PIN), []byte(r.cfg.Auth.PIN)) == 1 {
		ok = true
	}
	if !ok {
		r.logger.Warn("login rejected", zap.String("remote", req.RemoteAddr))
		respondError(w, http.StatusUnauthorized, "Wrong PIN")
		return
	}

	token, err := utils.GenerateSessionToken(r.cfg.Auth.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not create session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"token": token,
	})
}
