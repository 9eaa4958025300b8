package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/complainthub/complainthub/internal/domain"
)

// ChatStore keeps chat sessions and transcripts in Redis. Transcripts are
// volatile by design; they expire after the configured TTL.
type ChatStore interface {
	CreateSession(ctx context.Context, session *domain.ChatSession) error
	GetSession(ctx context.Context, sessionID string) (*domain.ChatSession, error)
	AppendMessage(ctx context.Context, sessionID string, msg domain.ChatMessage) error
	Messages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	MessageCount(ctx context.Context, sessionID string) (int64, error)
}

type chatStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewChatStore instantiates the store.
func NewChatStore(client *redis.Client, ttl time.Duration) ChatStore {
	return &chatStore{client: client, ttl: ttl}
}

func sessionKey(id string) string  { return fmt.Sprintf("chat:session:%s", id) }
func messagesKey(id string) string { return fmt.Sprintf("chat:messages:%s", id) }

func (s *chatStore) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.ID), payload, s.ttl).Err()
}

func (s *chatStore) GetSession(ctx context.Context, sessionID string) (*domain.ChatSession, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		return nil, err
	}
	var session domain.ChatSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *chatStore) AppendMessage(ctx context.Context, sessionID string, msg domain.ChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := messagesKey(sessionID)
	if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

func (s *chatStore) Messages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	raw, err := s.client.LRange(ctx, messagesKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	messages := make([]domain.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg domain.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *chatStore) MessageCount(ctx context.Context, sessionID string) (int64, error) {
	return s.client.LLen(ctx, messagesKey(sessionID)).Result()
}
