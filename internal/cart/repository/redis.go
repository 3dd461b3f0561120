package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/redis/go-redis/v9"
)

type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func cartKey(storeID, sessionID string) string {
	return fmt.Sprintf("storefront:cart:%s:%s", storeID, sessionID)
}

func (r *RedisRepository) Load(ctx context.Context, storeID, sessionID string) ([]cart.LineItem, error) {
	val, err := r.client.Get(ctx, cartKey(storeID, sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []cart.LineItem{}, nil
		}
		return nil, err
	}

	var items []cart.LineItem
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (r *RedisRepository) Save(ctx context.Context, storeID, sessionID string, items []cart.LineItem) error {
	if len(items) == 0 {
		return r.Delete(ctx, storeID, sessionID)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(storeID, sessionID), data, r.ttl).Err()
}

func (r *RedisRepository) Delete(ctx context.Context, storeID, sessionID string) error {
	return r.client.Del(ctx, cartKey(storeID, sessionID)).Err()
}
