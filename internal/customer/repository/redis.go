package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/redis/go-redis/v9"
)

type RedisRepository struct {
	client     *redis.Client
	sessionTTL time.Duration
	contactTTL time.Duration
}

func NewRedisRepository(client *redis.Client, sessionTTL, contactTTL time.Duration) *RedisRepository {
	return &RedisRepository{
		client:     client,
		sessionTTL: sessionTTL,
		contactTTL: contactTTL,
	}
}

func sessionKey(storeID, phone string) string {
	return fmt.Sprintf("storefront:customer:%s:%s", storeID, phone)
}

func contactKey(browserSessionID string) string {
	return fmt.Sprintf("storefront:contact:%s", browserSessionID)
}

func (r *RedisRepository) SaveSession(ctx context.Context, s *model.CustomerSession) error {
	return r.set(ctx, sessionKey(s.StoreID, s.Phone), s, r.sessionTTL)
}

func (r *RedisRepository) FindSession(ctx context.Context, storeID, phone string) (*model.CustomerSession, error) {
	var s model.CustomerSession
	ok, err := r.get(ctx, sessionKey(storeID, phone), &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *RedisRepository) SaveContact(ctx context.Context, browserSessionID string, c *model.Contact) error {
	return r.set(ctx, contactKey(browserSessionID), c, r.contactTTL)
}

func (r *RedisRepository) GetContact(ctx context.Context, browserSessionID string) (*model.Contact, error) {
	var c model.Contact
	ok, err := r.get(ctx, contactKey(browserSessionID), &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (r *RedisRepository) set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *RedisRepository) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
