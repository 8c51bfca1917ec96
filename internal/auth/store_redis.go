// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Redis cache in front of the user directory.

Every role-gated request resolves an email address to an account, so this is
the hottest lookup in the system. Entries are keyed by the SHA-256 of the
lower-cased address to keep raw emails out of the keyspace, carry a short
TTL, and are invalidated on profile updates. The cache is strictly an
accelerator: any miss or Redis failure falls through to PostgreSQL.
*/
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/hanvu/lectern/internal/platform/constants"
)

// # Directory Cache

// Cache stores directory accounts by email address with a bounded TTL.
type Cache struct {
	client *redis.Client
}

// NewCache constructs a directory [Cache] on the shared Redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// cacheKey hashes the lower-cased address into the directory keyspace.
func cacheKey(emailAddress string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(emailAddress)))
	return constants.RedisPrefixUserByEmail + hex.EncodeToString(sum[:])
}

// Get returns the cached account, or nil on miss or on any Redis error.
func (cache *Cache) Get(ctx context.Context, emailAddress string) *User {
	payload, err := cache.client.Get(ctx, cacheKey(emailAddress)).Bytes()
	if err != nil {
		return nil
	}

	user := &User{}
	if err := json.Unmarshal(payload, user); err != nil {
		return nil
	}
	return user
}

// Set stores the account under its email key. Failures are ignored; the
// next lookup just pays the database round trip.
func (cache *Cache) Set(ctx context.Context, user *User) {
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}

	cache.client.Set(ctx, cacheKey(user.EmailAddress), payload, constants.UserCacheTTL)
}

// Invalidate drops the cached entry after a profile or role change.
func (cache *Cache) Invalidate(ctx context.Context, emailAddress string) {
	cache.client.Del(ctx, cacheKey(emailAddress))
}
