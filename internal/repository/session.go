package repo

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/LanSanter/GO-game-proj/internal/errors"
)

type RedisSessionStorage struct {
	client *redis.Client
}

func NewSessionRedisStorage(redis *redis.Client) *RedisSessionStorage {
	return &RedisSessionStorage{
		client: redis,
	}
}

func (r RedisSessionStorage) GetUserIdBySession(ctx context.Context, sessionID string) (string, error) {
	v, err := r.client.Get(ctx, sessionID).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", errors.ErrSessionNotFound
	} else if err != nil {
		return "", err
	}
	return v, nil
}

// RedisDeckStorage keeps one saved deck per user under deck:<userID> as a JSON array.
type RedisDeckStorage struct {
	client *redis.Client
}

func NewDeckRedisStorage(redis *redis.Client) *RedisDeckStorage {
	return &RedisDeckStorage{
		client: redis,
	}
}

func deckKey(userID string) string {
	return "deck:" + userID
}

func (r RedisDeckStorage) GetDeck(ctx context.Context, userID string) ([]int, error) {
	raw, err := r.client.Get(ctx, deckKey(userID)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.ErrRecordNotFound
	} else if err != nil {
		return nil, err
	}
	var deck []int
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, fmt.Errorf("corrupt deck of user %s: %w", userID, err)
	}
	return deck, nil
}

func (r RedisDeckStorage) SaveDeck(ctx context.Context, userID string, deck []int) error {
	raw, err := json.Marshal(deck)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, deckKey(userID), raw, 0).Err()
}
