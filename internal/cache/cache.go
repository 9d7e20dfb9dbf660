// Package cache mirrors match activity into redis: every applied operation is
// appended to a per-game action list and pulse outcomes additionally land in a
// bounded audit trail. Everything here is best effort; a dead redis never
// blocks gameplay.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Daniangio/golem/internal/models"
)

// actionTTL expires per-game trails well after any match has ended.
const actionTTL = 24 * time.Hour

// Cache publishes game activity to redis. A nil *Cache is a valid no-op.
type Cache struct {
	client *redis.Client
	log    *logrus.Logger
}

// New connects to redis at addr. A connection failure is logged and reported;
// callers typically fall back to a nil cache.
func New(ctx context.Context, addr string, log *logrus.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Cache{client: client, log: log}, nil
}

// Action is one applied operation, as recorded in the trail.
type Action struct {
	GameID string    `json:"gameId"`
	Actor  string    `json:"actor"`
	Op     string    `json:"op"`
	At     time.Time `json:"at"`
}

// PublishAction appends an operation record to the game's action list,
// asynchronously.
func (c *Cache) PublishAction(gameID, actor, op string) {
	if c == nil {
		return
	}
	action := Action{GameID: gameID, Actor: actor, Op: op, At: time.Now().UTC()}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		payload, err := json.Marshal(action)
		if err != nil {
			return
		}
		key := "game:" + gameID + ":actions"
		pipe := c.client.TxPipeline()
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, actionTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			c.log.WithError(err).WithField("game_id", gameID).Warn("failed to publish action")
		}
	}()
}

// PublishOutcome appends a resolved pulse to the game's outcome trail,
// trimmed to the same bound the document keeps.
func (c *Cache) PublishOutcome(gameID string, outcome models.PulseOutcome) {
	if c == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		payload, err := json.Marshal(outcome)
		if err != nil {
			return
		}
		key := "game:" + gameID + ":outcomes"
		pipe := c.client.TxPipeline()
		pipe.RPush(ctx, key, payload)
		pipe.LTrim(ctx, key, -int64(models.OutcomeLogCap), -1)
		pipe.Expire(ctx, key, actionTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			c.log.WithError(err).WithField("game_id", gameID).Warn("failed to publish outcome")
		}
	}()
}

// Outcomes returns the audit trail for one game, oldest first.
func (c *Cache) Outcomes(ctx context.Context, gameID string) ([]models.PulseOutcome, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := c.client.LRange(ctx, "game:"+gameID+":outcomes", 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]models.PulseOutcome, 0, len(raw))
	for _, item := range raw {
		var o models.PulseOutcome
		if err := json.Unmarshal([]byte(item), &o); err != nil {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// Close releases the redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
