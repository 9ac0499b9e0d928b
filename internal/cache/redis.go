// internal/cache/redis.go

// Package cache wraps the Redis client used for revoked JWT tracking.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/greeniecart/greeniecart-backend/internal/config"
)

// TokenBlacklist records revoked JWT IDs until their natural expiry. Logout
// writes the token's JTI here; the auth middleware rejects any token whose
// JTI is present.
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(cfg *config.RedisConfig) (*TokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &TokenBlacklist{client: client}, nil
}

func blacklistKey(jti string) string {
	return "auth:revoked:" + jti
}

// Revoke marks the token ID as revoked for ttl. Tokens already past expiry
// need no entry.
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return n > 0, nil
}

func (b *TokenBlacklist) Close() error {
	return b.client.Close()
}
