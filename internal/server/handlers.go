package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tingnect/event-api/internal/config"
	"github.com/tingnect/event-api/internal/form"
	"github.com/tingnect/event-api/internal/pipeline"
)

type handlers struct {
	pipe   *pipeline.Pipeline
	event  config.EventConfig
	logger *slog.Logger
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, &form.Contact{})
}

func (h *handlers) submitSponsor(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, &form.Sponsor{})
}

func (h *handlers) submitRegistration(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, &form.Registration{})
}

// submit decodes the request body into sub and runs the notification
// pipeline. The response depends only on decoding and validation: delivery
// failures in the best-effort stages never reach the caller.
func (h *handlers) submit(w http.ResponseWriter, r *http.Request, sub form.Submission) {
	if err := json.NewDecoder(r.Body).Decode(sub); err != nil {
		AddError(r.Context(), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	result := h.pipe.Process(r.Context(), sub)
	if !result.Accepted {
		// Field-level detail stays server-side.
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
		return
	}

	AddLogField(r.Context(), "form", sub.Kind())
	writeJSON(w, http.StatusOK, messageResponse{Message: result.Message})
}

func (h *handlers) eventInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.event)
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
