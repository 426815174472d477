package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/voicevote/voicevote/internal/logging"
)

// Handler serves the suggestion endpoint consumed by the post composer.
type Handler struct {
	service *Service
	logger  logging.Logger
	timeout time.Duration
}

func NewHandler(service *Service, logger logging.Logger) *Handler {
	return &Handler{service: service, logger: logger, timeout: 30 * time.Second}
}

// Routes mounts the handler on a fresh mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ai-suggest-caption", h.suggestCaption)
	return withCORS(mux)
}

func (h *Handler) suggestCaption(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	suggestion, err := h.service.Suggest(ctx, req.Content)
	if err != nil {
		if errors.Is(err, ErrNotCivic) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "Content not appropriate for civic reporting. Please focus on community issues.",
			})
			return
		}
		h.logger.Error(ctx, "suggestion failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "AI service temporarily unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, suggestion)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// withCORS mirrors the permissive policy of the original service; the
// composer runs on a different origin.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}
