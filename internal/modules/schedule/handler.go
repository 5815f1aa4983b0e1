package schedule

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/printops/scheduler/internal/events"
)

// Handler exposes the scheduling endpoint and the live decision stream.
type Handler struct {
	service Service
	broker  events.Broker
}

func NewHandler(service Service, broker events.Broker) *Handler {
	return &Handler{service: service, broker: broker}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/schedule", func(r chi.Router) {
		r.Post("/", h.scheduleOrder)
		r.Get("/events", events.SSEHandler(h.broker))
	})
}

func (h *Handler) scheduleOrder(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.Description == "" || req.Quantity <= 0 || req.Kinds <= 0 {
		respond(w, http.StatusBadRequest, map[string]string{"error": "description, misOrderQTY and kinds are required"})
		return
	}

	result, err := h.service.Schedule(r.Context(), req)
	if err != nil {
		zap.S().Errorw("scheduling failed", "err", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if result == nil {
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": "unable to schedule order"})
		return
	}
	respond(w, http.StatusOK, result)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
