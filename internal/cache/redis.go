package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Preview cache keys: preview:<user>:<ticket>:<template>:<content hash>
const (
	PreviewKeyFmt     = "preview:%d:%s:%s:%s"
	PreviewPatternFmt = "preview:%d:%s:*"
	PreviewTTL        = 10 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. On failure the package degrades to no-ops.
func Init(addr, password string, db int) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// SetClient replaces the package client. Passing nil disables caching.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Close releases the connection pool
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, userID, 15*time.Minute)
}

// ============================================
// Preview Cache Functions
// ============================================

// ContentHash fingerprints a rendered input so edited drafts never hit a stale entry
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:24]
}

// PreviewKey builds the cache key for one rendered preview
func PreviewKey(userID int, ticketID, templateID, contentHash string) string {
	return fmt.Sprintf(PreviewKeyFmt, userID, ticketID, templateID, contentHash)
}

// InvalidateTicketPreviews drops every cached preview of a ticket
// Called when: SaveTicket, DeleteTicket
func InvalidateTicketPreviews(ctx context.Context, userID int, ticketID string) {
	InvalidatePattern(ctx, fmt.Sprintf(PreviewPatternFmt, userID, ticketID))
}

// ============================================
// Generic Cache Functions
// ============================================

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// ============================================
// Token Revocation
// ============================================

// RevokeToken marks a token id as signed out until its expiry
// Called when: Logout
func RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) {
	if client == nil || tokenID == "" || ttl <= 0 {
		return
	}
	client.Set(ctx, "revoked:"+tokenID, 1, ttl)
}

// IsRevoked reports whether a token id was signed out. Without Redis nothing is revoked.
func IsRevoked(ctx context.Context, tokenID string) bool {
	if client == nil || tokenID == "" {
		return false
	}
	n, err := client.Exists(ctx, "revoked:"+tokenID).Result()
	return err == nil && n > 0
}
