package server

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// wsWriteTimeout bounds each snapshot push.
const wsWriteTimeout = 10 * time.Second

// handleSubscribe upgrades to a websocket and streams the viewer's redacted
// snapshot: one immediately, then one per committed operation until the game
// is deleted or the client goes away.
func (s *Server) handleSubscribe(c *gin.Context) {
	gameID := c.Param("id")
	viewer := actorUID(c)

	doc, err := s.svc.Get(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	updates, cancel := s.svc.Notifier().Subscribe(gameID)
	defer cancel()

	ctx := c.Request.Context()
	log := s.log.WithFields(logrus.Fields{"game_id": gameID, "viewer": viewer})

	// Reader goroutine: clients send nothing meaningful, but reading surfaces
	// disconnects promptly.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	push := func(ctx context.Context, payload any) error {
		wctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
		defer cancel()
		return wsjson.Write(wctx, conn, payload)
	}

	if err := push(ctx, s.svc.ViewFor(doc, viewer)); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "bye")
			return
		case <-readDone:
			return
		case next, ok := <-updates:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "bye")
				return
			}
			if next == nil {
				// Game deleted.
				_ = push(ctx, gin.H{"deleted": true})
				conn.Close(websocket.StatusNormalClosure, "game deleted")
				return
			}
			if err := push(ctx, s.svc.ViewFor(next, viewer)); err != nil {
				log.WithError(err).Debug("websocket push failed")
				return
			}
		}
	}
}
