package dialogue

import (
	"context"
	"encoding/json"
	"time"

	"agendador/models"

	"github.com/go-redis/redis/v8"
)

const draftKeyPrefix = "draft:ctx:"

// RedisDraftStore is the opt-in Redis-backed draft store. The key TTL doubles
// as the draft expiry window.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func (s *RedisDraftStore) Get(ctx context.Context, userID string) (*models.ConversationDraft, error) {
	key := draftKeyPrefix + userID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft models.ConversationDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *RedisDraftStore) Set(ctx context.Context, userID string, draft *models.ConversationDraft) error {
	stored := draft.Clone()
	stored.UpdatedAt = time.Now()

	key := draftKeyPrefix + userID
	b, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisDraftStore) Clear(ctx context.Context, userID string) error {
	key := draftKeyPrefix + userID
	return s.client.Del(ctx, key).Err()
}
