package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"penpals_server/models"

	"github.com/redis/go-redis/v9"
)

const storeCacheKey = "penpals:database"

// CachedStore wraps a Store with a short-TTL Redis snapshot of the document.
// Saves write through and refresh the snapshot; a broken cache degrades to
// the backend instead of failing the request.
type CachedStore struct {
	Backend Store
	Client  *redis.Client
	TTL     time.Duration
	Logger  *slog.Logger
}

func NewCachedStore(backend Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{Backend: backend, Client: client, TTL: ttl, Logger: logger}
}

func (s *CachedStore) Load(ctx context.Context) (*models.Database, error) {
	cached, err := s.Client.Get(ctx, storeCacheKey).Result()
	if err == nil {
		db := models.NewDatabase()
		if err := json.Unmarshal([]byte(cached), db); err == nil {
			db.Normalize()
			return db, nil
		}
		s.Logger.Warn("discarding unreadable cached database snapshot")
	} else if !errors.Is(err, redis.Nil) {
		s.Logger.Warn("store cache read failed, falling back to backend", "err", err)
	}

	db, err := s.Backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, db)
	return db, nil
}

func (s *CachedStore) Save(ctx context.Context, db *models.Database) error {
	if err := s.Backend.Save(ctx, db); err != nil {
		return err
	}
	s.refresh(ctx, db)
	return nil
}

func (s *CachedStore) refresh(ctx context.Context, db *models.Database) {
	data, err := json.Marshal(db)
	if err != nil {
		s.Logger.Warn("failed to marshal database for cache", "err", err)
		return
	}
	if err := s.Client.Set(ctx, storeCacheKey, data, s.TTL).Err(); err != nil {
		s.Logger.Warn("failed to refresh store cache", "err", err)
	}
}
