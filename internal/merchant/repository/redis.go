package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/merchant"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedRepository is a read-through Redis cache in front of another
// merchant.Repository. Misses are not cached.
type CachedRepository struct {
	next   merchant.Repository
	client *redis.Client
	ttl    time.Duration
	logger logger.ZapLogger
}

func NewCachedRepository(next merchant.Repository, client *redis.Client, ttl time.Duration, log logger.ZapLogger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func storeKey(id string) string {
	return fmt.Sprintf("storefront:store:%s", id)
}

func (r *CachedRepository) FindByID(ctx context.Context, id string) (*model.Store, error) {
	// 1. Check cache
	val, err := r.client.Get(ctx, storeKey(id)).Bytes()
	if err == nil {
		var s model.Store
		if err := json.Unmarshal(val, &s); err == nil {
			return &s, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("store cache read failed", zap.String("store_id", id), zap.Error(err))
	}

	// 2. Source of truth
	s, err := r.next.FindByID(ctx, id)
	if err != nil || s == nil {
		return s, err
	}

	// 3. Fill cache
	if data, err := json.Marshal(s); err == nil {
		if err := r.client.Set(ctx, storeKey(id), data, r.ttl).Err(); err != nil {
			r.logger.Warn("store cache write failed", zap.String("store_id", id), zap.Error(err))
		}
	}
	return s, nil
}
