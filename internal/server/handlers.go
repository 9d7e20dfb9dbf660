package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daniangio/golem/internal/models"
	"github.com/Daniangio/golem/internal/store"
)

// handleCatalog serves the static content catalog.
func (s *Server) handleCatalog(c *gin.Context) {
	cat := s.svc.Engine().Catalog()
	c.JSON(http.StatusOK, gin.H{
		"locations": cat.AllLocations(),
		"parts":     cat.AllParts(),
	})
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req struct {
		Visibility models.Visibility `json:"visibility"`
		Mode       models.Mode       `json:"mode"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.CreateGame(c.Request.Context(), actorUID(c), actorName(c), req.Visibility, req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleListGames(c *gin.Context) {
	f := store.Filter{
		Status:     models.Status(c.Query("status")),
		Visibility: models.Visibility(c.Query("visibility")),
		PlayerUID:  c.Query("uid"),
	}
	docs, err := s.svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]any, 0, len(docs))
	for _, doc := range docs {
		views = append(views, s.svc.ViewFor(doc, actorUID(c)))
	}
	c.JSON(http.StatusOK, gin.H{"games": views})
}

func (s *Server) handleGetGame(c *gin.Context) {
	doc, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleOutcomes(c *gin.Context) {
	outcomes, err := s.svc.Outcomes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcomes": outcomes})
}

func (s *Server) handleJoin(c *gin.Context) {
	doc, err := s.svc.Join(c.Request.Context(), c.Param("id"), actorUID(c), actorName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleLeave(c *gin.Context) {
	doc, err := s.svc.Leave(c.Request.Context(), c.Param("id"), actorUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleAddBot(c *gin.Context) {
	doc, err := s.svc.AddBot(c.Request.Context(), c.Param("id"), actorUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleRemoveBot(c *gin.Context) {
	doc, err := s.svc.RemoveBot(c.Request.Context(), c.Param("id"), actorUID(c), c.Param("botId"))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleInvite(c *gin.Context) {
	var req struct {
		UID string `json:"uid"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.Invite(c.Request.Context(), c.Param("id"), actorUID(c), req.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleRevokeInvite(c *gin.Context) {
	doc, err := s.svc.RevokeInvite(c.Request.Context(), c.Param("id"), actorUID(c), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleStart(c *gin.Context) {
	doc, err := s.svc.Start(c.Request.Context(), c.Param("id"), actorUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleLocationVote(c *gin.Context) {
	var req struct {
		Seat       models.Seat `json:"seat"`
		LocationID string      `json:"locationId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.SetLocationVote(c.Request.Context(), c.Param("id"), actorUID(c), req.Seat, req.LocationID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleAutoVoteBots(c *gin.Context) {
	doc, err := s.svc.AutoVoteBots(c.Request.Context(), c.Param("id"), actorUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleConfirmLocation(c *gin.Context) {
	var req struct {
		PreferredID string `json:"preferredId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.ConfirmLocation(c.Request.Context(), c.Param("id"), actorUID(c), req.PreferredID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handlePartPick(c *gin.Context) {
	var req struct {
		Seat   models.Seat `json:"seat"`
		PartID string      `json:"partId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.SetPartPick(c.Request.Context(), c.Param("id"), actorUID(c), req.Seat, req.PartID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleConfirmParts(c *gin.Context) {
	doc, err := s.svc.ConfirmParts(c.Request.Context(), c.Param("id"), actorUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handlePlayCard(c *gin.Context) {
	var req struct {
		Seat   models.Seat `json:"seat"`
		CardID string      `json:"cardId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.PlayCard(c.Request.Context(), c.Param("id"), actorUID(c), req.Seat, req.CardID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleExchangeOffer(c *gin.Context) {
	var req struct {
		Seat   models.Seat `json:"seat"`
		CardID string      `json:"cardId"`
		To     models.Seat `json:"to"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.OfferExchangeCard(c.Request.Context(), c.Param("id"), actorUID(c), req.Seat, req.CardID, req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleExchangeReturn(c *gin.Context) {
	var req struct {
		Seat   models.Seat `json:"seat"`
		CardID string      `json:"cardId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.ReturnExchangeCard(c.Request.Context(), c.Param("id"), actorUID(c), req.Seat, req.CardID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleAuxBattery(c *gin.Context) {
	var req struct {
		Seat   models.Seat `json:"seat"`
		CardID string      `json:"cardId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.PlayAuxBattery(c.Request.Context(), c.Param("id"), actorUID(c), req.Seat, req.CardID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleFuse(c *gin.Context) {
	var req struct {
		Seat   models.Seat `json:"seat"`
		Target models.Seat `json:"target"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.UseFuse(c.Request.Context(), c.Param("id"), actorUID(c), req.Seat, req.Target)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleReservoirSwap(c *gin.Context) {
	var req struct {
		Seat models.Seat `json:"seat"`
		Slot int         `json:"slot"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.SwapWithReservoir(c.Request.Context(), c.Param("id"), actorUID(c), req.Seat, req.Slot)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleEndActions(c *gin.Context) {
	doc, err := s.svc.EndActions(c.Request.Context(), c.Param("id"), actorUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}

func (s *Server) handleComplete(c *gin.Context) {
	var req struct {
		Reason models.EndReason `json:"reason"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc, err := s.svc.CompleteGame(c.Request.Context(), c.Param("id"), actorUID(c), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondView(c, doc)
}
