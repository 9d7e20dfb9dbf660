package store

import (
	"sync"

	"github.com/Daniangio/golem/internal/models"
)

// Notifier fans committed documents out to in-process subscribers, one channel
// per websocket client. Slow subscribers drop intermediate snapshots instead
// of blocking the committer; the latest state always gets through.
type Notifier struct {
	mu   sync.Mutex
	subs map[string]map[chan *models.GameDoc]struct{}
}

// NewNotifier returns an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[chan *models.GameDoc]struct{})}
}

// Subscribe registers interest in one game. The returned cancel function must
// be called exactly once; it closes the channel.
func (n *Notifier) Subscribe(gameID string) (<-chan *models.GameDoc, func()) {
	ch := make(chan *models.GameDoc, 1)
	n.mu.Lock()
	if n.subs[gameID] == nil {
		n.subs[gameID] = make(map[chan *models.GameDoc]struct{})
	}
	n.subs[gameID][ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if set, ok := n.subs[gameID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(n.subs, gameID)
			}
		}
		n.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

// Publish delivers a committed snapshot to every subscriber of the game. A nil
// doc signals deletion and is delivered as-is.
func (n *Notifier) Publish(gameID string, doc *models.GameDoc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[gameID] {
		// Replace a stale pending snapshot rather than blocking.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- doc:
		default:
		}
	}
}
