// Package rest provides HTTP handlers for item-related operations.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	itemerrors "github.com/abgdnv/itemservice/internal/errors"
	"github.com/abgdnv/itemservice/internal/service"
	"github.com/abgdnv/itemservice/pkg/web"
	"github.com/go-chi/chi/v5"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	service service.ItemService
	health  HealthChecker
	logger  *slog.Logger
}

// NewHandler creates a new item API handler.
func NewHandler(service service.ItemService, health HealthChecker, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		health:  health,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the item service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
	r.Get("/readyz", h.ReadinessCheck)
}

// FindAll retrieves a list of all items.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving item list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved item list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByID retrieves an item by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, itemerrors.ErrItemNotFound) {
			h.logger.WarnContext(r.Context(), "Item not found", "ID", id)
			web.RespondJSON(w, h.logger, http.StatusNotFound, nil)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error retrieving item", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve item with ID %d", id))
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Create handles the creation of a new item.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	// a JSON null body leaves the pointer nil
	var createDto *service.ItemCreateDto
	if err := json.NewDecoder(r.Body).Decode(&createDto); err != nil || createDto == nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), *createDto)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error creating item", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to create item")
		return
	}
	h.logger.InfoContext(r.Context(), "Item created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// Update replaces name and quantity of an existing item.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	var updateDto *service.ItemUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&updateDto); err != nil || updateDto == nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, *updateDto)
	if err != nil {
		if errors.Is(err, itemerrors.ErrItemNotFound) {
			h.logger.WarnContext(r.Context(), "Item not found for update", "ID", id)
			web.RespondJSON(w, h.logger, http.StatusNotFound, nil)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error updating item", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to update item with ID %d", id))
		return
	}
	h.logger.InfoContext(r.Context(), "Item updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteByID deletes an item by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, itemerrors.ErrItemNotFound) {
			h.logger.WarnContext(r.Context(), "Item not found for deletion", "ID", id)
			web.RespondJSON(w, h.logger, http.StatusNotFound, nil)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error deleting item", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete item with ID %d", id))
		return
	}
	h.logger.InfoContext(r.Context(), "Item deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple liveness endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ReadinessCheck answers 200 only when the store can be reached.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
