package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_assist/internal/ai"
	"github.com/Vovarama1992/voice_assist/internal/session"
	json "github.com/goccy/go-json"
)

type Handler struct {
	sessions *session.Registry
	log      *logger.ZapLogger
}

func NewHandler(sessions *session.Registry, log *logger.ZapLogger) *Handler {
	return &Handler{
		sessions: sessions,
		log:      log,
	}
}

type sessionResponse struct {
	session.Snapshot
	Models []ai.Model `json:"models"`
}

// GET /api/session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap := h.sessions.Draft()
	if sess := sessionFrom(r); sess != nil {
		snap = sess.Snapshot()
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Snapshot: snap,
		Models:   ai.Models,
	})
}

// POST /api/session/key
func (h *Handler) SetKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r)
	notice := sess.SetAPIKey(req.APIKey)

	writeJSON(w, http.StatusOK, map[string]any{
		"notice":         notice,
		"has_credential": sess.HasCredential(),
		"state":          sess.State(),
	})
}

// POST /api/session/model
func (h *Handler) SetModel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r)
	if err := sess.SetModel(req.Model); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"model": sess.Model()})
}

// POST /api/session/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Reset()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// DELETE /api/session
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFrom(r); sess != nil {
		h.sessions.End(sess.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
