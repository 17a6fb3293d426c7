package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

const eventWriteTimeout = 5 * time.Second

// handleEvents GET /api/events?game_id=...：先推一份当前快照，之后每个成功的命令推一份。
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("game_id")
	if id == "" {
		h.writeError(w, r, fmt.Errorf("%w: missing game_id", ErrBadRequest))
		return
	}
	s, err := h.games.Get(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Debug("websocket accept failed", zap.String("game_id", id), zap.Error(err))
		return
	}
	defer c.CloseNow()

	views, cancel := s.Subscribe()
	defer cancel()

	// 只推不收；客户端断开时 ctx 被取消
	ctx := c.CloseRead(r.Context())
	log := h.log.With(zap.String("game_id", id))
	log.Debug("event stream opened")

	if err := writeEvent(ctx, c, s.View()); err != nil {
		log.Debug("event write failed", zap.Error(err))
		return
	}
	for {
		select {
		case <-ctx.Done():
			log.Debug("event stream closed")
			return
		case v, ok := <-views:
			if !ok {
				c.Close(websocket.StatusGoingAway, "game removed")
				return
			}
			if err := writeEvent(ctx, c, v); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Debug("event write failed", zap.Error(err))
				}
				return
			}
		}
	}
}

func writeEvent(ctx context.Context, c *websocket.Conn, v any) error {
	ctx, cancel := context.WithTimeout(ctx, eventWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, c, v)
}
