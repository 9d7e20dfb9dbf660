// Package server exposes the game service over HTTP: gin routes for every
// operation, jwt guest auth and a websocket stream of document snapshots.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Daniangio/golem/internal/game"
	"github.com/Daniangio/golem/internal/models"
	"github.com/Daniangio/golem/internal/service"
	"github.com/Daniangio/golem/internal/store"
)

// Server holds the HTTP surface.
type Server struct {
	svc       *service.Service
	jwtSecret string
	log       *logrus.Logger
}

// New builds a server around the service.
func New(svc *service.Service, jwtSecret string, log *logrus.Logger) *Server {
	return &Server{svc: svc, jwtSecret: jwtSecret, log: log}
}

// Router assembles the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	r.POST("/api/auth/guest", s.handleGuestLogin)

	api := r.Group("/api", s.authRequired())
	{
		api.GET("/catalog", s.handleCatalog)

		api.POST("/games", s.handleCreateGame)
		api.GET("/games", s.handleListGames)
		api.GET("/games/:id", s.handleGetGame)
		api.GET("/games/:id/ws", s.handleSubscribe)
		api.GET("/games/:id/outcomes", s.handleOutcomes)

		api.POST("/games/:id/join", s.handleJoin)
		api.POST("/games/:id/leave", s.handleLeave)
		api.POST("/games/:id/bots", s.handleAddBot)
		api.DELETE("/games/:id/bots/:botId", s.handleRemoveBot)
		api.POST("/games/:id/invites", s.handleInvite)
		api.DELETE("/games/:id/invites/:uid", s.handleRevokeInvite)
		api.POST("/games/:id/start", s.handleStart)

		api.POST("/games/:id/location/vote", s.handleLocationVote)
		api.POST("/games/:id/location/auto-vote-bots", s.handleAutoVoteBots)
		api.POST("/games/:id/location/confirm", s.handleConfirmLocation)
		api.POST("/games/:id/parts/pick", s.handlePartPick)
		api.POST("/games/:id/parts/confirm", s.handleConfirmParts)

		api.POST("/games/:id/play", s.handlePlayCard)
		api.POST("/games/:id/exchange/offer", s.handleExchangeOffer)
		api.POST("/games/:id/exchange/return", s.handleExchangeReturn)
		api.POST("/games/:id/aux-battery", s.handleAuxBattery)
		api.POST("/games/:id/fuse", s.handleFuse)
		api.POST("/games/:id/reservoir-swap", s.handleReservoirSwap)
		api.POST("/games/:id/end-actions", s.handleEndActions)
		api.POST("/games/:id/complete", s.handleComplete)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
			"dur":    time.Since(start).String(),
		}).Debug("http")
	}
}

// respondError maps engine and store sentinels to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrNotFound), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, game.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrInvalidPhase),
		errors.Is(err, game.ErrPreconditionNotMet),
		errors.Is(err, game.ErrRoomFull),
		errors.Is(err, store.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondView renders the per-viewer snapshot of a committed document. A nil
// doc (deleted lobby) renders as a bare ok.
func (s *Server) respondView(c *gin.Context, doc *models.GameDoc) {
	if doc == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": true})
		return
	}
	c.JSON(http.StatusOK, s.svc.ViewFor(doc, actorUID(c)))
}
