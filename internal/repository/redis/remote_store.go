package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/gangetabel-api/internal/domain/entity"
	apperrors "github.com/yourusername/gangetabel-api/internal/pkg/errors"
)

// RemoteStore реализует repository.RemoteLeaderboardStore поверх Redis.
// Весь список записей хранится одним JSON-значением под фиксированным ключом —
// удаленное хранилище трактуется как непрозрачный key-value сервис с
// семантикой полной перезаписи (read-merge-write выполняет вызывающая сторона).
type RemoteStore struct {
	client redis.UniversalClient
	key    string
}

// NewRemoteStore создает новое удаленное хранилище лидерборда
func NewRemoteStore(client redis.UniversalClient, key string) (*RemoteStore, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for RemoteStore")
	}
	if key == "" {
		return nil, fmt.Errorf("leaderboard key cannot be empty for RemoteStore")
	}
	return &RemoteStore{
		client: client,
		key:    key,
	}, nil
}

// GetEntries читает весь список с удаленного хранилища.
// Отсутствие ключа — валидный пустой лидерборд, не ошибка.
// Некорректный payload (не JSON-список) возвращается как ErrRemoteUnavailable:
// для вызывающей стороны это неотличимо от недоступности хранилища.
func (s *RemoteStore) GetEntries(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []entity.LeaderboardEntry{}, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}

	var entries []entity.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", apperrors.ErrRemoteUnavailable, err)
	}
	return entries, nil
}

// SetEntries целиком перезаписывает список в удаленном хранилище.
// Значение живет без TTL: лидерборд глобальный и не истекает.
func (s *RemoteStore) SetEntries(ctx context.Context, entries []entity.LeaderboardEntry) error {
	if entries == nil {
		entries = []entity.LeaderboardEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	return nil
}
