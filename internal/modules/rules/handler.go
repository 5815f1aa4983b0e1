package rules

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes rule-set HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/rules", func(r chi.Router) {
		r.Get("/hub", h.listHubRules)
		r.Post("/hub", h.saveHubRule)
		r.Delete("/hub/{id}", h.deleteHubRule)

		r.Get("/imposing", h.listImposingRules)
		r.Post("/imposing", h.saveImposingRule)
		r.Delete("/imposing/{id}", h.deleteImposingRule)

		r.Get("/preflight", h.listPreflightRules)
		r.Post("/preflight", h.savePreflightRule)
		r.Delete("/preflight/{id}", h.deletePreflightRule)

		r.Get("/finishing", h.listFinishingRules)
		r.Post("/finishing/keyword", h.saveKeywordRule)
		r.Post("/finishing/center", h.saveCenterRule)
		r.Delete("/finishing/{id}", h.deleteFinishingRule)
	})
}

func (h *Handler) listHubRules(w http.ResponseWriter, r *http.Request) {
	ruleList, err := h.service.HubRules(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, ruleList)
}

func (h *Handler) saveHubRule(w http.ResponseWriter, r *http.Request) {
	var rule HubRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	saved, err := h.service.SaveHubRule(r.Context(), rule)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, saved)
}

func (h *Handler) deleteHubRule(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHubRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listImposingRules(w http.ResponseWriter, r *http.Request) {
	ruleList, err := h.service.ImposingRules(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, ruleList)
}

func (h *Handler) saveImposingRule(w http.ResponseWriter, r *http.Request) {
	var rule ImposingRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	saved, err := h.service.SaveImposingRule(r.Context(), rule)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, saved)
}

func (h *Handler) deleteImposingRule(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteImposingRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listPreflightRules(w http.ResponseWriter, r *http.Request) {
	ruleList, err := h.service.PreflightRules(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, ruleList)
}

func (h *Handler) savePreflightRule(w http.ResponseWriter, r *http.Request) {
	var rule PreflightRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	saved, err := h.service.SavePreflightRule(r.Context(), rule)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, saved)
}

func (h *Handler) deletePreflightRule(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePreflightRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listFinishingRules(w http.ResponseWriter, r *http.Request) {
	set, err := h.service.FinishingRules(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, set)
}

func (h *Handler) saveKeywordRule(w http.ResponseWriter, r *http.Request) {
	var rule KeywordRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	saved, err := h.service.SaveKeywordRule(r.Context(), rule)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, saved)
}

func (h *Handler) saveCenterRule(w http.ResponseWriter, r *http.Request) {
	var rule CenterRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	saved, err := h.service.SaveCenterRule(r.Context(), rule)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, saved)
}

func (h *Handler) deleteFinishingRule(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFinishingRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "must") || strings.Contains(msg, "invalid"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
