package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/pkg/rediskit"
)

const defaultSettingsTTL = 30 * time.Second

type SettingsCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSettingsCache(rdb redis.Cmdable) *SettingsCache {
	return &SettingsCache{rdb: rdb, ttl: defaultSettingsTTL}
}

type settingsPayload struct {
	AutoDelivery bool `json:"autoDelivery"`
	StoreEnabled bool `json:"storeEnabled"`
}

// Get returns nil without an error on a cache miss.
func (s *SettingsCache) Get(ctx context.Context) (*domain.StoreSettings, error) {
	raw, err := s.rdb.Get(ctx, rediskit.SettingsKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil //nolint:nilnil
	}
	if err != nil {
		return nil, fmt.Errorf("[redis/settings] get: %w", err)
	}
	var p settingsPayload
	if unmarshalErr := json.Unmarshal(raw, &p); unmarshalErr != nil {
		return nil, fmt.Errorf("[redis/settings] decode: %w", unmarshalErr)
	}
	return &domain.StoreSettings{AutoDelivery: p.AutoDelivery, StoreEnabled: p.StoreEnabled}, nil
}

func (s *SettingsCache) Set(ctx context.Context, settings domain.StoreSettings) error {
	raw, err := json.Marshal(settingsPayload{AutoDelivery: settings.AutoDelivery, StoreEnabled: settings.StoreEnabled})
	if err != nil {
		return fmt.Errorf("[redis/settings] encode: %w", err)
	}
	if setErr := s.rdb.Set(ctx, rediskit.SettingsKey(), raw, s.ttl).Err(); setErr != nil {
		return fmt.Errorf("[redis/settings] set: %w", setErr)
	}
	return nil
}

func (s *SettingsCache) Invalidate(ctx context.Context) error {
	if err := s.rdb.Del(ctx, rediskit.SettingsKey()).Err(); err != nil {
		return fmt.Errorf("[redis/settings] invalidate: %w", err)
	}
	return nil
}
