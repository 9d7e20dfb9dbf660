// Package service binds the pure engine to the store: every operation runs
// inside a store transaction, gets its UpdatedAt stamp, and fans the committed
// snapshot out to subscribers and the redis activity trail.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Daniangio/golem/internal/cache"
	"github.com/Daniangio/golem/internal/game"
	"github.com/Daniangio/golem/internal/models"
	"github.com/Daniangio/golem/internal/store"
)

// Service orchestrates game operations.
type Service struct {
	engine   *game.Engine
	store    store.Store
	notifier *store.Notifier
	cache    *cache.Cache
	log      *logrus.Logger
}

// New wires a service. cache may be nil (no activity trail).
func New(engine *game.Engine, st store.Store, notifier *store.Notifier, c *cache.Cache, log *logrus.Logger) *Service {
	return &Service{engine: engine, store: st, notifier: notifier, cache: c, log: log}
}

// Engine exposes the engine for read-side consumers (views, catalog).
func (s *Service) Engine() *game.Engine { return s.engine }

// Notifier exposes the subscription hub to the websocket layer.
func (s *Service) Notifier() *store.Notifier { return s.notifier }

// apply runs one engine operation transactionally and publishes the result.
func (s *Service) apply(ctx context.Context, gameID, actor, op string, fn store.TxFunc) (*models.GameDoc, error) {
	doc, err := s.store.RunTransaction(ctx, gameID, func(doc *models.GameDoc) (bool, error) {
		deleteDoc, err := fn(doc)
		if err != nil {
			return false, err
		}
		doc.UpdatedAt = time.Now().UTC()
		return deleteDoc, nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(gameID, doc)
	s.cache.PublishAction(gameID, actor, op)
	s.log.WithFields(logrus.Fields{"game_id": gameID, "actor": actor, "op": op}).Info("operation applied")
	return doc, nil
}

// CreateGame builds and persists a fresh lobby. The creator is seated at p1.
func (s *Service) CreateGame(ctx context.Context, actor, name string, visibility models.Visibility, mode models.Mode) (*models.GameDoc, error) {
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if mode == "" {
		mode = models.ModeCampaign
	}
	doc := s.engine.NewGame(uuid.NewString(), actor, name, visibility, mode)
	if err := s.store.Create(ctx, doc); err != nil {
		return nil, err
	}
	s.cache.PublishAction(doc.ID, actor, "create")
	s.log.WithFields(logrus.Fields{"game_id": doc.ID, "actor": actor, "op": "create"}).Info("game created")
	return doc, nil
}

// Get returns the raw document.
func (s *Service) Get(ctx context.Context, gameID string) (*models.GameDoc, error) {
	return s.store.Get(ctx, gameID)
}

// List returns documents matching the filter.
func (s *Service) List(ctx context.Context, f store.Filter) ([]*models.GameDoc, error) {
	return s.store.List(ctx, f)
}

// Outcomes returns the redis audit trail for a game, empty without a cache.
func (s *Service) Outcomes(ctx context.Context, gameID string) ([]models.PulseOutcome, error) {
	return s.cache.Outcomes(ctx, gameID)
}

func (s *Service) Join(ctx context.Context, gameID, actor, name string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "join", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.Join(doc, actor, name)
	})
}

func (s *Service) Leave(ctx context.Context, gameID, actor string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "leave", func(doc *models.GameDoc) (bool, error) {
		return s.engine.Leave(doc, actor)
	})
}

func (s *Service) AddBot(ctx context.Context, gameID, actor string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "add_bot", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.AddBot(doc, actor)
	})
}

func (s *Service) RemoveBot(ctx context.Context, gameID, actor, botID string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "remove_bot", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.RemoveBot(doc, actor, botID)
	})
}

func (s *Service) Invite(ctx context.Context, gameID, actor, uid string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "invite", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.Invite(doc, actor, uid)
	})
}

func (s *Service) RevokeInvite(ctx context.Context, gameID, actor, uid string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "revoke_invite", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.RevokeInvite(doc, actor, uid)
	})
}

func (s *Service) Start(ctx context.Context, gameID, actor string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "start", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.Start(doc, actor)
	})
}

func (s *Service) SetLocationVote(ctx context.Context, gameID, actor string, seat models.Seat, locationID string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "vote_location", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.SetLocationVote(doc, actor, seat, locationID)
	})
}

func (s *Service) AutoVoteBots(ctx context.Context, gameID, actor string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "auto_vote_bots", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.AutoVoteBots(doc, actor)
	})
}

func (s *Service) ConfirmLocation(ctx context.Context, gameID, actor, preferredID string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "confirm_location", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.ConfirmLocation(doc, actor, preferredID)
	})
}

func (s *Service) SetPartPick(ctx context.Context, gameID, actor string, seat models.Seat, partID string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "pick_part", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.SetPartPick(doc, actor, seat, partID)
	})
}

func (s *Service) ConfirmParts(ctx context.Context, gameID, actor string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "confirm_parts", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.ConfirmParts(doc, actor)
	})
}

func (s *Service) PlayCard(ctx context.Context, gameID, actor string, seat models.Seat, cardID string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "play_card", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.PlayCard(doc, actor, seat, cardID)
	})
}

func (s *Service) OfferExchangeCard(ctx context.Context, gameID, actor string, seat models.Seat, cardID string, to models.Seat) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "offer_exchange", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.OfferExchangeCard(doc, actor, seat, cardID, to)
	})
}

func (s *Service) ReturnExchangeCard(ctx context.Context, gameID, actor string, seat models.Seat, cardID string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "return_exchange", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.ReturnExchangeCard(doc, actor, seat, cardID)
	})
}

func (s *Service) PlayAuxBattery(ctx context.Context, gameID, actor string, seat models.Seat, cardID string) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "play_aux_battery", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.PlayAuxBattery(doc, actor, seat, cardID)
	})
}

func (s *Service) UseFuse(ctx context.Context, gameID, actor string, seat, target models.Seat) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "use_fuse", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.UseFuse(doc, actor, seat, target)
	})
}

func (s *Service) SwapWithReservoir(ctx context.Context, gameID, actor string, seat models.Seat, slot int) (*models.GameDoc, error) {
	return s.apply(ctx, gameID, actor, "swap_reservoir", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.SwapWithReservoir(doc, actor, seat, slot)
	})
}

// EndActions resolves the pulse and additionally mirrors the outcome to redis.
func (s *Service) EndActions(ctx context.Context, gameID, actor string) (*models.GameDoc, error) {
	doc, err := s.apply(ctx, gameID, actor, "end_actions", func(doc *models.GameDoc) (bool, error) {
		return false, s.engine.EndActions(doc, actor)
	})
	if err != nil {
		return nil, err
	}
	if doc != nil && doc.LastOutcome != nil {
		s.cache.PublishOutcome(gameID, *doc.LastOutcome)
	}
	return doc, nil
}

// CompleteGame force-flips a match into its terminal state. Host only. This
// is a plain read-modify-write rather than a transaction; it is an
// administrative flip and last write wins.
func (s *Service) CompleteGame(ctx context.Context, gameID, actor string, reason models.EndReason) (*models.GameDoc, error) {
	doc, err := s.store.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !doc.IsHost(actor) {
		return nil, fmt.Errorf("%w: host only", game.ErrUnauthorized)
	}
	if reason != models.EndWin {
		reason = models.EndLoss
	}
	doc.Status = models.StatusCompleted
	doc.EndedReason = reason
	doc.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(ctx, doc); err != nil {
		return nil, err
	}
	s.notifier.Publish(gameID, doc)
	s.cache.PublishAction(gameID, actor, "complete")
	s.log.WithFields(logrus.Fields{"game_id": gameID, "actor": actor, "op": "complete"}).Info("game force-completed")
	return doc, nil
}
