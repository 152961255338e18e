// File: services/conversation/store.go
package conversation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"riverwood/models"

	"github.com/go-redis/redis/v8"
)

const conversationPrefix = "conv:state:"

// StateStore persists the per-subject conversation record. Implementations
// are injected into the dispatcher; a subject with no stored record is at the
// main menu with an empty payload. Records are overwritten every turn and
// never hard-deleted.
type StateStore interface {
	Get(ctx context.Context, subjectID string) (*models.Conversation, error)
	Set(ctx context.Context, subjectID string, state models.ConversationState, payload models.Payload) error
}

// RedisStateStore implements StateStore on Redis, one JSON document per
// subject. No TTL is set: conversation records outlive any single session.
type RedisStateStore struct {
	client *redis.Client
}

func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client}
}

func (s *RedisStateStore) Get(ctx context.Context, subjectID string) (*models.Conversation, error) {
	key := conversationPrefix + subjectID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return freshConversation(subjectID), nil
	}
	if err != nil {
		return nil, err
	}
	var conv models.Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		// A corrupt record must not break the conversation; the dispatcher
		// restarts the subject at the main menu.
		return freshConversation(subjectID), nil
	}
	if conv.Payload == nil {
		conv.Payload = models.Payload{}
	}
	return &conv, nil
}

func (s *RedisStateStore) Set(ctx context.Context, subjectID string, state models.ConversationState, payload models.Payload) error {
	conv := models.Conversation{
		SubjectID: subjectID,
		State:     state,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	b, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, conversationPrefix+subjectID, b, 0).Err()
}

func freshConversation(subjectID string) *models.Conversation {
	return &models.Conversation{
		SubjectID: subjectID,
		State:     models.StateMainMenu,
		Payload:   models.Payload{},
	}
}

// MemoryStateStore implements StateStore in process memory. Used in tests and
// when running without Redis.
type MemoryStateStore struct {
	mu    sync.RWMutex
	convs map[string]models.Conversation
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{convs: make(map[string]models.Conversation)}
}

func (s *MemoryStateStore) Get(ctx context.Context, subjectID string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.convs[subjectID]
	if !ok {
		return freshConversation(subjectID), nil
	}
	conv.Payload = conv.Payload.Clone()
	return &conv, nil
}

func (s *MemoryStateStore) Set(ctx context.Context, subjectID string, state models.ConversationState, payload models.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.convs[subjectID] = models.Conversation{
		SubjectID: subjectID,
		State:     state,
		Payload:   payload.Clone(),
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}
