// Package cache provides the Redis-backed read cache. Cached wallets and
// prices are a convenience layer only; they are invalidated on mutation and
// never participate in the financial unit of work.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get unmarshals the cached value into dest; the bool reports a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Wallet caching, keyed by (user, currency).

func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	key := s.walletKey(wallet.UserID, wallet.Currency)
	return s.Set(ctx, key, wallet)
}

func (s *CacheService) GetWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error) {
	var wallet models.Wallet
	found, err := s.Get(ctx, s.walletKey(userID, currency), &wallet)
	if err != nil || !found {
		return nil, err
	}
	return &wallet, nil
}

func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint, currency string) error {
	return s.Delete(ctx, s.walletKey(userID, currency))
}

func (s *CacheService) walletKey(userID uint, currency string) string {
	return fmt.Sprintf("wallet:%d:%s", userID, currency)
}

// Crypto price caching. Prices flow in from the external feed and are read
// hot on every trade quote, so a short TTL keeps them close.

func (s *CacheService) CachePrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	key := s.GenerateKey("crypto", "price", symbol)
	return s.SetWithTTL(ctx, key, price, 5*time.Minute)
}

func (s *CacheService) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	var price decimal.Decimal
	found, err := s.Get(ctx, s.GenerateKey("crypto", "price", symbol), &price)
	return price, found, err
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
