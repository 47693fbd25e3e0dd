package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/contact-manager/internal/api/httpx"
	"github.com/baharkarakas/contact-manager/internal/middleware"
	"github.com/baharkarakas/contact-manager/internal/models"
	"github.com/baharkarakas/contact-manager/internal/validate"
)

type ContactService interface {
	Create(ctx context.Context, in models.ContactInput) (models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Get(ctx context.Context, id string) (models.Contact, error)
	Update(ctx context.Context, id string, p models.ContactPatch) (models.Contact, error)
	Delete(ctx context.Context, id string) error
}

type ContactHandler struct {
	svc ContactService
	log *slog.Logger
}

func NewContactHandler(svc ContactService, log *slog.Logger) *ContactHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ContactHandler{svc: svc, log: log}
}

// POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// GET /api/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []models.Contact{}
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// GET /api/contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// PUT /api/contacts/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.ContactPatch
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// DELETE /api/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Contact removed")
}

// fail maps the service error taxonomy onto status codes.
func (h *ContactHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr validate.Errors
	switch {
	case errors.As(err, &verr):
		httpx.WriteMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "Contact not found")
	default:
		attrs := []any{
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFrom(r.Context()),
		}
		if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
			attrs = append(attrs, "admin", claims.Subject)
		}
		h.log.ErrorContext(r.Context(), "contact store failure", attrs...)
		httpx.WriteServerError(w, err)
	}
}
