package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	"scanwedge/internal/modkit/httpkit"
	perr "scanwedge/internal/platform/errors"
	"scanwedge/internal/platform/logger"
	"scanwedge/internal/services/api/scanner/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxFrame   = 64 << 10
	maxKeys    = 512
)

// frame is a client message on the stream
type frame struct {
	Type     string            `json:"type"`
	Key      string            `json:"key,omitempty"`
	AtMs     int64             `json:"at_ms,omitempty"`
	Target   string            `json:"target,omitempty"`
	TargetID string            `json:"target_id,omitempty"`
	Keys     []domain.KeyInput `json:"keys,omitempty"`
	Code     string            `json:"code,omitempty"`
	Enabled  *bool             `json:"enabled,omitempty"`
}

// reply is a server message on the stream
type reply struct {
	Type    string              `json:"type"`
	Event   *domain.ScanEvent   `json:"event,omitempty"`
	Feed    *domain.FeedResult  `json:"feed,omitempty"`
	Session *domain.SessionInfo `json:"session,omitempty"`
	Error   *perr.Wire          `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// origin checks belong to the CORS layer in front of the api
	CheckOrigin: func(*stdhttp.Request) bool { return true },
}

// swagger:route GET /scanner/sessions/{id}/stream Scanner scannerStream
// @Summary Stream keys in and scan events out over a websocket
// @Description Client frames: key, keys, submit, reset, enabled. Server frames: event, feed, session, error.
// @Tags Scanner
// @Param id path string true "Session id"
// @Success 101 "switching protocols"
// @Failure 404 {object} httpkit.Envelope "unknown session"
// @Router /scanner/sessions/{id}/stream [get]
func (h *handlers) stream(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id := httpkit.Param(r, "id")
	c := caller(r)
	log := logger.C(r.Context()).With().Str("session_id", id).Logger()

	events, unsubscribe, err := h.svc.Subscribe(r.Context(), id)
	if err != nil {
		httpkit.WriteError(w, r, err)
		return
	}
	defer unsubscribe()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already answered the client
		log.Warn().Err(err).Msg("scanner stream upgrade failed")
		return
	}
	defer conn.Close()
	log.Debug().Msg("scanner stream opened")

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	out := make(chan reply, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(ctx, conn, id, events, out)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxFrame)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("scanner stream read ended")
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var f frame
		var rep reply
		if err := json.Unmarshal(data, &f); err != nil {
			rep = errorReply(perr.JSONErrf("malformed frame: %v", err))
		} else if rep, err = h.apply(ctx, id, c, f); err != nil {
			rep = errorReply(err)
		}
		if rep.Type == "" {
			continue
		}
		select {
		case out <- rep:
		case <-ctx.Done():
		}
	}
	cancel()
	<-done
	log.Debug().Msg("scanner stream closed")
}

// apply runs one client frame. An empty reply means the result arrives as an event.
func (h *handlers) apply(ctx context.Context, id string, c domain.Caller, f frame) (reply, error) {
	switch f.Type {
	case "key":
		return h.feedReply(ctx, id, c, []domain.KeyInput{{Key: f.Key, AtMs: f.AtMs, Target: f.Target, TargetID: f.TargetID}})
	case "keys":
		return h.feedReply(ctx, id, c, f.Keys)
	case "submit":
		if _, err := h.svc.Submit(ctx, id, c, f.Code); err != nil {
			return reply{}, err
		}
		return reply{}, nil
	case "reset":
		info, err := h.svc.Reset(ctx, id)
		if err != nil {
			return reply{}, err
		}
		return reply{Type: "session", Session: &info}, nil
	case "enabled":
		if f.Enabled == nil {
			return reply{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "enabled is required"), "enabled")
		}
		info, err := h.svc.SetEnabled(ctx, id, *f.Enabled)
		if err != nil {
			return reply{}, err
		}
		return reply{Type: "session", Session: &info}, nil
	default:
		return reply{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "unknown frame type %q", f.Type), "type")
	}
}

func (h *handlers) feedReply(ctx context.Context, id string, c domain.Caller, keys []domain.KeyInput) (reply, error) {
	if len(keys) == 0 || len(keys) > maxKeys {
		return reply{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "keys must hold 1 to %d entries", maxKeys), "keys")
	}
	for _, k := range keys {
		if k.Key == "" {
			return reply{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "key is required"), "key")
		}
	}
	res, err := h.svc.Feed(ctx, id, c, keys)
	if err != nil {
		return reply{}, err
	}
	return reply{Type: "feed", Feed: &res}, nil
}

// writeLoop owns every write on the connection
func (h *handlers) writeLoop(ctx context.Context, conn *websocket.Conn, id string, events <-chan domain.ScanEvent, out <-chan reply) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	write := func(v reply) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(v) == nil
	}
	closeWith := func(code int, text string) {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(writeWait))
	}

	for {
		select {
		case <-ctx.Done():
			closeWith(websocket.CloseNormalClosure, "")
			return
		case ev, ok := <-events:
			if !ok {
				closeWith(websocket.CloseGoingAway, "session closed")
				return
			}
			if !write(reply{Type: "event", Event: &ev}) {
				return
			}
		case rep := <-out:
			if !write(rep) {
				return
			}
		case <-ping.C:
			h.svc.Touch(id)
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func errorReply(err error) reply {
	wire := perr.WireFrom(err)
	return reply{Type: "error", Error: &wire}
}
