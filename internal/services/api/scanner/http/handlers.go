// Package http provides http transport for scanner sessions
package http

import (
	stdhttp "net/http"
	"strconv"

	"scanwedge/internal/modkit/httpkit"
	perr "scanwedge/internal/platform/errors"
	"scanwedge/internal/services/api/scanner/domain"
	svc "scanwedge/internal/services/api/scanner/service"
)

// Register mounts scanner endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/defaults", h.defaults)

	// session lifecycle
	httpkit.PostJSON[domain.OpenInput](r, "/sessions", h.open)
	httpkit.Get(r, "/sessions/{id}", h.get)
	httpkit.Delete(r, "/sessions/{id}", h.close)

	// keystrokes and manual entry
	httpkit.PostJSON[domain.FeedInput](r, "/sessions/{id}/keys", h.feed)
	httpkit.PostJSON[domain.SubmitInput](r, "/sessions/{id}/submit", h.submit)
	httpkit.Post(r, "/sessions/{id}/reset", h.reset)
	httpkit.PostJSON[domain.EnabledInput](r, "/sessions/{id}/enabled", h.enabled)

	// results
	httpkit.Get(r, "/sessions/{id}/events", h.events)
	r.Get("/sessions/{id}/stream", h.stream)
}

type handlers struct{ svc svc.Service }

// caller collects the identity the tenancy and auth middleware left on the request
func caller(r *stdhttp.Request) domain.Caller {
	uid, _ := httpkit.User(r)
	tid, _ := httpkit.Tenant(r)
	tok, _ := httpkit.JWT(r)
	return domain.Caller{UserID: uid, CompanyID: tid, Token: tok}
}

// swagger:route GET /scanner/defaults Scanner scannerDefaults
// @Summary Default classifier thresholds
// @Tags Scanner
// @Produce json
// @Success 200 {object} domain.Thresholds "ok"
// @Router /scanner/defaults [get]
func (h *handlers) defaults(_ *stdhttp.Request) (any, error) {
	return h.svc.Defaults(), nil
}

// swagger:route POST /scanner/sessions Scanner scannerOpen
// @Summary Open a capture session
// @Description Starts a keystroke classifier. Zero thresholds take the service defaults.
// @Tags Scanner
// @Accept json
// @Produce json
// @Param X-Company-Id header string false "Company id"
// @Param payload body domain.OpenInput true "Session options"
// @Success 201 {object} domain.SessionInfo "created"
// @Failure 422 {object} httpkit.Envelope "invalid thresholds"
// @Failure 429 {object} httpkit.Envelope "session limit reached"
// @Router /scanner/sessions [post]
func (h *handlers) open(r *stdhttp.Request, in domain.OpenInput) (any, error) {
	info, err := h.svc.Open(r.Context(), caller(r), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(info), nil
}

// swagger:route GET /scanner/sessions/{id} Scanner scannerGet
// @Summary Describe a capture session
// @Tags Scanner
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} domain.SessionInfo "ok"
// @Failure 404 {object} httpkit.Envelope "unknown session"
// @Failure 410 {object} httpkit.Envelope "closed session"
// @Router /scanner/sessions/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route DELETE /scanner/sessions/{id} Scanner scannerClose
// @Summary Close a capture session
// @Tags Scanner
// @Param id path string true "Session id"
// @Success 204 "closed"
// @Failure 410 {object} httpkit.Envelope "already closed"
// @Router /scanner/sessions/{id} [delete]
func (h *handlers) close(r *stdhttp.Request) (any, error) {
	if err := h.svc.Close(r.Context(), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// swagger:route POST /scanner/sessions/{id}/keys Scanner scannerFeed
// @Summary Feed key presses
// @Description Keys are applied in order. Bursts that complete are returned and queued as events.
// @Tags Scanner
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param payload body domain.FeedInput true "Key presses"
// @Success 200 {object} domain.FeedResult "ok"
// @Router /scanner/sessions/{id}/keys [post]
func (h *handlers) feed(r *stdhttp.Request, in domain.FeedInput) (any, error) {
	return h.svc.Feed(r.Context(), httpkit.Param(r, "id"), caller(r), in.Keys)
}

// swagger:route POST /scanner/sessions/{id}/submit Scanner scannerSubmit
// @Summary Resolve a manually entered code
// @Tags Scanner
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param payload body domain.SubmitInput true "Code"
// @Success 200 {object} domain.ScanEvent "ok"
// @Router /scanner/sessions/{id}/submit [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	return h.svc.Submit(r.Context(), httpkit.Param(r, "id"), caller(r), in.Code)
}

// swagger:route POST /scanner/sessions/{id}/reset Scanner scannerReset
// @Summary Drop the partial burst
// @Tags Scanner
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} domain.SessionInfo "ok"
// @Router /scanner/sessions/{id}/reset [post]
func (h *handlers) reset(r *stdhttp.Request) (any, error) {
	return h.svc.Reset(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route POST /scanner/sessions/{id}/enabled Scanner scannerEnabled
// @Summary Turn keystroke classification on or off
// @Tags Scanner
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param payload body domain.EnabledInput true "Toggle"
// @Success 200 {object} domain.SessionInfo "ok"
// @Router /scanner/sessions/{id}/enabled [post]
func (h *handlers) enabled(r *stdhttp.Request, in domain.EnabledInput) (any, error) {
	return h.svc.SetEnabled(r.Context(), httpkit.Param(r, "id"), *in.Enabled)
}

// swagger:route GET /scanner/sessions/{id}/events Scanner scannerEvents
// @Summary List queued scan events
// @Tags Scanner
// @Produce json
// @Param id path string true "Session id"
// @Param after query int false "Only events with a higher sequence number"
// @Success 200 {object} domain.EventsResult "ok"
// @Router /scanner/sessions/{id}/events [get]
func (h *handlers) events(r *stdhttp.Request) (any, error) {
	var after uint64
	if v := r.URL.Query().Get("after"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "after must be a non negative integer"), "after")
		}
		after = n
	}
	return h.svc.Events(r.Context(), httpkit.Param(r, "id"), after)
}
