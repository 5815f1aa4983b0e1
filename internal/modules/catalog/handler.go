package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", h.getProducts)
		r.Put("/products", h.putProducts)
		r.Get("/product-keywords", h.getProductKeywords)
		r.Put("/product-keywords", h.putProductKeywords)
		r.Get("/hubs", h.getHubs)
		r.Put("/hubs", h.putHubs)
		r.Get("/preflight-profiles", h.getPreflightProfiles)
		r.Put("/preflight-profiles", h.putPreflightProfiles)
		r.Get("/production-groups", h.getProductionGroups)
		r.Put("/production-groups", h.putProductionGroups)
		r.Get("/postcode-overrides", h.getPostcodeOverrides)
		r.Put("/postcode-overrides", h.putPostcodeOverrides)
	})
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Products(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) putProducts(w http.ResponseWriter, r *http.Request) {
	var products map[int]Product
	if err := json.NewDecoder(r.Body).Decode(&products); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.SaveProducts(r.Context(), products); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) getProductKeywords(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ProductKeywords(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, entries)
}

func (h *Handler) putProductKeywords(w http.ResponseWriter, r *http.Request) {
	var entries []ProductKeywordEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.SaveProductKeywords(r.Context(), entries); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) getHubs(w http.ResponseWriter, r *http.Request) {
	hubs, err := h.service.Hubs(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, hubs)
}

func (h *Handler) putHubs(w http.ResponseWriter, r *http.Request) {
	var hubs []Hub
	if err := json.NewDecoder(r.Body).Decode(&hubs); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.SaveHubs(r.Context(), hubs); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) getPreflightProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.PreflightProfiles(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, profiles)
}

func (h *Handler) putPreflightProfiles(w http.ResponseWriter, r *http.Request) {
	var profiles []PreflightProfile
	if err := json.NewDecoder(r.Body).Decode(&profiles); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.SavePreflightProfiles(r.Context(), profiles); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) getProductionGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ProductionGroups(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, groups)
}

func (h *Handler) putProductionGroups(w http.ResponseWriter, r *http.Request) {
	var groups []ProductionGroup
	if err := json.NewDecoder(r.Body).Decode(&groups); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.SaveProductionGroups(r.Context(), groups); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) getPostcodeOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.service.PostcodeOverrides(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, overrides)
}

func (h *Handler) putPostcodeOverrides(w http.ResponseWriter, r *http.Request) {
	var overrides []PostcodeOverride
	if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.SavePostcodeOverrides(r.Context(), overrides); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
