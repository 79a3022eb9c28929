// Package csrf issues single-use anti-forgery tokens bound to an item's
// booking context. Tokens live only in process memory for the serving
// session; they are never persisted.
package csrf

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danacastroman/app-vestidos/services/api/internal/clock"
)

const defaultTTL = 30 * time.Minute

type entry struct {
	itemID    int64
	expiresAt time.Time
	consumed  bool
}

// Service hands out unguessable token values and accepts each of them at
// most once, for the item it was issued for.
type Service struct {
	mu     sync.Mutex
	clock  clock.Clock
	ttl    time.Duration
	tokens map[string]entry
}

type Option func(*Service)

// WithTTL overrides the default token freshness window.
func WithTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func New(clk clock.Clock, opts ...Option) *Service {
	s := &Service{
		clock:  clk,
		ttl:    defaultTTL,
		tokens: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a fresh token for the given item's booking context.
func (s *Service) Issue(itemID int64) string {
	token := uuid.NewString()
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune(now)
	s.tokens[token] = entry{itemID: itemID, expiresAt: now.Add(s.ttl)}
	return token
}

// Valid reports whether the token could currently be consumed for the item.
// It has no side effects, so a request rejected later in validation leaves
// the token usable.
func (s *Service) Valid(token string, itemID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[token]
	return ok && !e.consumed && e.itemID == itemID && s.clock.Now().Before(e.expiresAt)
}

// Consume atomically marks the token used. It returns false if the token was
// never issued for this item, expired, or was already consumed; at most one
// caller ever gets true per issued token.
func (s *Service) Consume(token string, itemID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[token]
	if !ok || e.consumed || e.itemID != itemID || !s.clock.Now().Before(e.expiresAt) {
		return false
	}
	e.consumed = true
	s.tokens[token] = e
	return true
}

// prune drops expired entries; called under s.mu on each issue so the map
// does not grow with abandoned page renders.
func (s *Service) prune(now time.Time) {
	for token, e := range s.tokens {
		if !now.Before(e.expiresAt) {
			delete(s.tokens, token)
		}
	}
}
