package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/MikhailRaia/shortener-form/internal/form"
	"github.com/MikhailRaia/shortener-form/internal/logger"
	"github.com/MikhailRaia/shortener-form/internal/middleware"
	"github.com/MikhailRaia/shortener-form/internal/model"
	"github.com/MikhailRaia/shortener-form/internal/page"
	"github.com/MikhailRaia/shortener-form/internal/pool"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Form field names posted by the home page.
const (
	fieldOriginalURL     = "original_url"
	fieldCustomCode      = "custom_code"
	fieldValidityMinutes = "validity_minutes"
)

const renderBufferPoolSize = 64

// PageStore hands out the page of a session, creating it on first use.
type PageStore interface {
	Get(sessionID string) *page.Page
}

type Handler struct {
	pages    PageStore
	sessions *middleware.SessionMiddleware
	buffers  *pool.Pool[*bytes.Buffer]
}

func NewHandler(pages PageStore, sessions *middleware.SessionMiddleware) *Handler {
	return &Handler{
		pages:    pages,
		sessions: sessions,
		buffers: pool.New(renderBufferPoolSize, func() *bytes.Buffer {
			return new(bytes.Buffer)
		}),
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)

	r.Use(middleware.GzipReader)
	r.Use(middleware.GzipMiddleware)

	r.Get("/ping", h.handlePing)

	r.Group(func(r chi.Router) {
		r.Use(h.sessions.EnsureSession)

		r.Get("/", h.handleHome)
		r.Post("/", h.handleSubmit)
		r.Post("/api/shorten", h.HandleShortenJSON)
		r.Get("/api/results", h.HandleResultsJSON)
	})

	return r
}

// sessionPage returns the page bound to the request's session.
func (h *Handler) sessionPage(r *http.Request) (*page.Page, bool) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		return nil, false
	}
	return h.pages.Get(sessionID), true
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	p, ok := h.sessionPage(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	h.renderPage(w, p, http.StatusOK)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	p, ok := h.sessionPage(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Fields missing from the post keep what the form already holds.
	state := p.Form().State()
	req := model.ShortenRequest{
		OriginalURL:     postedValue(r, fieldOriginalURL, state.OriginalURL),
		CustomCode:      postedValue(r, fieldCustomCode, state.CustomCode),
		ValidityMinutes: postedValue(r, fieldValidityMinutes, state.ValidityMinutes),
	}

	// A dropped connection must not abandon a submission halfway.
	_, err := p.Submit(context.WithoutCancel(r.Context()), req)
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, form.ErrInvalidURL):
		h.renderPage(w, p, http.StatusUnprocessableEntity)
	case errors.Is(err, form.ErrSubmissionFailed):
		h.renderPage(w, p, http.StatusBadGateway)
	case errors.Is(err, form.ErrSubmissionInProgress):
		h.renderPage(w, p, http.StatusConflict)
	default:
		log.Error().Err(err).Msg("Unexpected submission error")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func postedValue(r *http.Request, field, current string) string {
	if values, ok := r.PostForm[field]; ok && len(values) > 0 {
		return values[0]
	}
	return current
}

func (h *Handler) renderPage(w http.ResponseWriter, p *page.Page, status int) {
	buf := h.buffers.Get()
	defer h.buffers.Put(buf)

	if err := p.Render(buf); err != nil {
		log.Error().Err(err).Msg("Failed to render page")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
