package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/okanalatt/FullStackAIChat/internal/model"
	"github.com/okanalatt/FullStackAIChat/internal/service"
)

type Handler struct {
	ingestion *service.Ingestion
}

func NewHandler(ing *service.Ingestion) *Handler {
	return &Handler{ingestion: ing}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type submitRequest struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	msg, err := h.ingestion.Submit(r.Context(), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid input", err.Error())
		case errors.Is(err, service.ErrStorageUnavailable):
			slog.Error("message append failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "storage unavailable", err.Error())
		default:
			slog.Error("submit failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.ingestion.List(r.Context())
	if err != nil {
		slog.Error("message list failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable", err.Error())
		return
	}

	if msgs == nil {
		msgs = []model.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, map[string]string{"error": msg, "details": details})
}
