package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const settingsKey = "admin:settings"

// SettingsStore holds admin-tunable runtime settings in Redis.
type SettingsStore interface {
	GetAll(ctx context.Context) (map[string]string, error)
	SetAll(ctx context.Context, values map[string]string) error
}

type settingsStore struct {
	client *redis.Client
}

// NewSettingsStore instantiates the store.
func NewSettingsStore(client *redis.Client) SettingsStore {
	return &settingsStore{client: client}
}

func (s *settingsStore) GetAll(ctx context.Context) (map[string]string, error) {
	return s.client.HGetAll(ctx, settingsKey).Result()
}

func (s *settingsStore) SetAll(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	args := make([]any, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, v)
	}
	return s.client.HSet(ctx, settingsKey, args...).Err()
}
