package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mssola/useragent"

	"cookieconsent/internal/consent/models"
	"cookieconsent/internal/consent/session"
	dErrors "cookieconsent/pkg/domain-errors"
	"cookieconsent/pkg/platform/httputil"
	"cookieconsent/pkg/requestcontext"
)

// Registry defines the page session operations the handler needs.
type Registry interface {
	Open(ctx context.Context, clientID string, binding models.Binding) (*session.Page, error)
	Get(pageID string) (*session.Page, error)
	Close(pageID string) error
}

// Handler serves the page-facing consent endpoints.
type Handler struct {
	registry     Registry
	logger       *slog.Logger
	defaults     models.Binding
	loadWait     time.Duration
	secureCookie bool
}

type Option func(*Handler)

// WithDefaultBinding sets provider ids used when the host element omits them.
func WithDefaultBinding(b models.Binding) Option {
	return func(h *Handler) {
		h.defaults = b
	}
}

// WithLoadWait bounds how long a response waits for script loads to settle.
// Zero responds immediately.
func WithLoadWait(d time.Duration) Option {
	return func(h *Handler) {
		if d >= 0 {
			h.loadWait = d
		}
	}
}

// WithSecureCookie marks the client cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(h *Handler) {
		h.secureCookie = secure
	}
}

// New creates a new consent Handler.
func New(registry Registry, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		registry: registry,
		logger:   logger,
		loadWait: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the page routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.clientCookie)
		r.Post("/pages", h.handleMount)
		r.Route("/pages/{pageID}", func(r chi.Router) {
			r.Delete("/", h.handleClose)
			r.Post("/events/"+models.EventCookieConsent, h.handleDecision)
			r.Get("/events", h.handleEvents)
			r.Get("/scripts", h.handleScripts)
			r.Get("/accessor/{name}", h.handleAccessor)
		})
	})
}

func (h *Handler) handleMount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.MountRequest](w, r, h.logger, ctx, true)
	if !ok {
		return
	}
	binding := req.Binding().Or(h.defaults)

	page, err := h.registry.Open(ctx, requestcontext.ClientID(ctx), binding)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to mount page",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.settle(ctx, page)

	httputil.WriteJSON(w, http.StatusCreated, &models.MountResponse{
		PageID:    page.ID,
		Consent:   page.Mounted,
		Events:    page.Drain(),
		Providers: page.Gate.Status(),
	})
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	page, ok := h.page(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.DecisionRequest](w, r, h.logger, ctx, false)
	if !ok {
		return
	}
	record := req.Record()

	ua := useragent.New(requestcontext.UserAgent(ctx))
	browser, _ := ua.Browser()
	h.logger.InfoContext(ctx, "cookie consent decision received",
		"request_id", requestID,
		"page_id", page.ID,
		"analytics", record.Analytics,
		"marketing", record.Marketing,
		"browser", browser,
		"mobile", ua.Mobile(),
	)

	if err := page.Gate.HandleDecision(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to save consent decision",
			"request_id", requestID,
			"page_id", page.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.settle(ctx, page)

	httputil.WriteJSON(w, http.StatusOK, &models.DecisionResponse{
		Consent:   record,
		Events:    page.Drain(),
		Providers: page.Gate.Status(),
	})
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &models.EventsResponse{Events: page.Drain()})
}

func (h *Handler) handleScripts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, ok := h.page(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := page.Document.Render(&buf); err != nil {
		h.logger.ErrorContext(ctx, "failed to render page scripts",
			"request_id", requestcontext.RequestID(ctx),
			"page_id", page.ID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to render scripts"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleAccessor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	accessor, ok := page.Accessor(chi.URLParam(r, "name"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "accessor not exposed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &models.AccessorResponse{Consent: accessor(ctx)})
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	if err := h.registry.Close(page.ID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// page resolves the path's page and checks it belongs to the requesting
// client. Pages of other clients are reported as not found.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) (*session.Page, bool) {
	pageID := chi.URLParam(r, "pageID")
	page, err := h.registry.Get(pageID)
	if err == nil && page.ClientID != requestcontext.ClientID(r.Context()) {
		err = dErrors.New(dErrors.CodeNotFound, "page not found")
	}
	if err != nil {
		h.logger.WarnContext(r.Context(), "page lookup failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"page_id", pageID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	return page, true
}

// settle waits up to loadWait for script loads so responses reflect them.
// Loads still running afterwards report as loading.
func (h *Handler) settle(ctx context.Context, page *session.Page) {
	if h.loadWait <= 0 {
		return
	}
	waitCtx, cancel := context.WithTimeout(ctx, h.loadWait)
	defer cancel()
	_ = page.Gate.Wait(waitCtx)
}
