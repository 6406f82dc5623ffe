package memory

import (
	"context"
	"sync"
	"time"

	"github.com/PabloGalante/aide/internal/domain"
)

// ExchangeStore keeps the transcript of every session in insertion order.
type ExchangeStore struct {
	mu        sync.RWMutex
	exchanges map[domain.SessionID][]*domain.Exchange
}

func NewExchangeStore() *ExchangeStore {
	return &ExchangeStore{
		exchanges: make(map[domain.SessionID][]*domain.Exchange),
	}
}

func (s *ExchangeStore) AppendExchange(_ context.Context, ex *domain.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *ex
	s.exchanges[ex.SessionID] = append(s.exchanges[ex.SessionID], &cp)
	return nil
}

func (s *ExchangeStore) ListExchangesBySession(
	_ context.Context,
	sessionID domain.SessionID,
	limit int,
) ([]*domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exs := s.exchanges[sessionID]
	if limit > 0 && len(exs) > limit {
		exs = exs[len(exs)-limit:]
	}

	out := make([]*domain.Exchange, 0, len(exs))
	for _, ex := range exs {
		cp := *ex
		out = append(out, &cp)
	}
	return out, nil
}

func (s *ExchangeStore) CountExchangesSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, exs := range s.exchanges {
		for _, ex := range exs {
			if !ex.Timestamp.Before(since) {
				n++
			}
		}
	}
	return n, nil
}
