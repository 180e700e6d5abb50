package extractor

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type pendingItem struct {
	deadline Deadline
	at       time.Time
}

// Pending holds at most one unconfirmed candidate per user. Candidates older
// than ttl are treated as absent; ttl <= 0 disables expiry.
type Pending struct {
	mu    sync.Mutex
	clock clockwork.Clock
	ttl   time.Duration
	items map[int64]pendingItem
}

func NewPending(clock clockwork.Clock, ttl time.Duration) *Pending {
	return &Pending{
		clock: clock,
		ttl:   ttl,
		items: make(map[int64]pendingItem),
	}
}

// Put stores d for the user and reports whether a live candidate was replaced.
func (p *Pending) Put(userID int64, d Deadline) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	for id, it := range p.items {
		if p.expired(it, now) {
			delete(p.items, id)
		}
	}

	_, replaced := p.items[userID]
	p.items[userID] = pendingItem{deadline: d, at: now}
	return replaced
}

// Take removes and returns the user's live candidate.
func (p *Pending) Take(userID int64) (Deadline, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	it, ok := p.items[userID]
	if !ok {
		return Deadline{}, false
	}
	delete(p.items, userID)
	if p.expired(it, p.clock.Now()) {
		return Deadline{}, false
	}
	return it.deadline, true
}

// Drop discards the user's candidate, reporting whether a live one existed.
func (p *Pending) Drop(userID int64) bool {
	_, ok := p.Take(userID)
	return ok
}

func (p *Pending) expired(it pendingItem, now time.Time) bool {
	return p.ttl > 0 && now.Sub(it.at) >= p.ttl
}
