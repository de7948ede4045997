package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushq/campus-assistant/internal/campuserr"
	"github.com/campushq/campus-assistant/internal/observability"
	"github.com/campushq/campus-assistant/internal/store"
)

// AdminHandler handles record management requests.
type AdminHandler struct {
	logger *observability.Logger
	store  store.Store
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(logger *observability.Logger, s store.Store) *AdminHandler {
	return &AdminHandler{
		logger: logger,
		store:  s,
	}
}

// parseCategory resolves the {category} URL parameter.
func parseCategory(r *http.Request) (store.Category, error) {
	return store.ParseCategory(chi.URLParam(r, "category"))
}

// List handles GET /admin/{category}.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	cat, err := parseCategory(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "unknown category", err.Error())
		return
	}

	records, err := h.store.ListAll(r.Context(), cat)
	if err != nil {
		h.logger.Error().Err(err).Str("category", string(cat)).Msg("List failed")
		WriteError(w, campuserr.HTTPStatus(err), "list failed", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"category": cat,
		"count":    len(records),
		"records":  records,
	})
}

// Get handles GET /admin/{category}/{id}.
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	cat, err := parseCategory(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "unknown category", err.Error())
		return
	}

	rec, err := h.store.Get(r.Context(), cat, chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, campuserr.HTTPStatus(err), "get failed", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, rec)
}

// Create handles POST /admin/{category}.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	cat, err := parseCategory(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "unknown category", err.Error())
		return
	}

	var rec store.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id, err := h.store.Add(r.Context(), cat, rec)
	if err != nil {
		status := campuserr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("category", string(cat)).Msg("Create failed")
		}
		WriteError(w, status, "create failed", err.Error())
		return
	}

	h.logger.Info().Str("category", string(cat)).Str("id", id).Msg("record created")
	WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Update handles PUT /admin/{category}/{id}.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	cat, err := parseCategory(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "unknown category", err.Error())
		return
	}
	id := chi.URLParam(r, "id")

	var rec store.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.store.Update(r.Context(), cat, id, rec); err != nil {
		status := campuserr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("category", string(cat)).Str("id", id).Msg("Update failed")
		}
		WriteError(w, status, "update failed", err.Error())
		return
	}

	h.logger.Info().Str("category", string(cat)).Str("id", id).Msg("record updated")
	WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}

// Delete handles DELETE /admin/{category}/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cat, err := parseCategory(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "unknown category", err.Error())
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), cat, id); err != nil {
		WriteError(w, campuserr.HTTPStatus(err), "delete failed", err.Error())
		return
	}

	h.logger.Info().Str("category", string(cat)).Str("id", id).Msg("record deleted")
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /admin/{category}/search?q=.
func (h *AdminHandler) Search(w http.ResponseWriter, r *http.Request) {
	cat, err := parseCategory(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "unknown category", err.Error())
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "query parameter q is required", "")
		return
	}

	records, err := h.store.Search(r.Context(), cat, query)
	if err != nil {
		WriteError(w, campuserr.HTTPStatus(err), "search failed", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"category": cat,
		"query":    query,
		"count":    len(records),
		"records":  records,
	})
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Stats failed")
		WriteError(w, campuserr.HTTPStatus(err), "stats failed", err.Error())
		return
	}

	total := 0
	for _, count := range stats {
		total += count
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":      total,
		"categories": stats,
	})
}
