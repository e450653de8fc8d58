package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tbourn/juris-ledger/internal/http/middleware"
)

const (
	eventBuffer = 32
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = pongWait * 9 / 10
)

// StreamEvents godoc
// @ID          streamEvents
// @Summary     Change notifications
// @Description Upgrades to a websocket and sends one JSON object per change: {"kind":"payment.changed","entity_id":3,"at":"..."}. data.imported follows a restore.
// @Tags        Events
// @Success     101  {object}  events.Event
// @Router      /events [get]
func (h *Handlers) StreamEvents(c *gin.Context) {
	// Subscribe before the handshake completes so no event published after
	// the client sees 101 is missed.
	ch, cancel := h.feed.Subscribe(eventBuffer)
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		middleware.LoggerFrom(c).Debug().Err(err).Msg("event stream upgrade failed")
		return
	}
	defer conn.Close()

	middleware.EventStreams.Inc()
	defer middleware.EventStreams.Dec()

	lg := middleware.LoggerFrom(c)
	lg.Debug().Msg("event stream opened")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			lg.Debug().Msg("event stream closed by peer")
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				lg.Debug().Err(err).Msg("event stream write failed")
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
