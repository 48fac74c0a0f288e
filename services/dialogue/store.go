package dialogue

import (
	"context"
	"sync"
	"time"

	"agendador/models"
)

// DraftStore keeps the per-user conversation drafts. Get returns (nil, nil)
// when the user has no open draft.
type DraftStore interface {
	Get(ctx context.Context, userID string) (*models.ConversationDraft, error)
	Set(ctx context.Context, userID string, draft *models.ConversationDraft) error
	Clear(ctx context.Context, userID string) error
}

// MemoryDraftStore is the default, volatile draft store. Drafts older than
// the TTL are discarded on access; Sweep removes them eagerly so abandoned
// conversations do not accumulate.
type MemoryDraftStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	drafts map[string]*models.ConversationDraft
}

func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	return &MemoryDraftStore{
		ttl:    ttl,
		drafts: make(map[string]*models.ConversationDraft),
	}
}

func (s *MemoryDraftStore) Get(ctx context.Context, userID string) (*models.ConversationDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[userID]
	if !ok {
		return nil, nil
	}
	if s.expired(draft, time.Now()) {
		delete(s.drafts, userID)
		return nil, nil
	}
	return draft.Clone(), nil
}

func (s *MemoryDraftStore) Set(ctx context.Context, userID string, draft *models.ConversationDraft) error {
	stored := draft.Clone()
	stored.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[userID] = stored
	return nil
}

func (s *MemoryDraftStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return nil
}

// Sweep drops all expired drafts and returns how many were removed.
func (s *MemoryDraftStore) Sweep() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, draft := range s.drafts {
		if s.expired(draft, now) {
			delete(s.drafts, userID)
			removed++
		}
	}
	return removed
}

func (s *MemoryDraftStore) expired(draft *models.ConversationDraft, now time.Time) bool {
	return s.ttl > 0 && now.Sub(draft.UpdatedAt) > s.ttl
}
