package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps opaque auth tokens in redis with a TTL, so a token dies
// on its own if the holder never logs out.
type TokenStore struct {
	Client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{Client: client}
}

func tokenKey(token string) string {
	return "auth:" + token
}

func (s *TokenStore) Save(ctx context.Context, token string, userID int, ttl time.Duration) error {
	return s.Client.Set(ctx, tokenKey(token), userID, ttl).Err()
}

// Lookup resolves a token to a user id. redis.Nil maps to a zero id so
// callers only branch on the id.
func (s *TokenStore) Lookup(ctx context.Context, token string) (int, error) {
	value, err := s.Client.Get(ctx, tokenKey(token)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.Atoi(value)
	if err != nil {
		return 0, nil
	}
	return userID, nil
}

func (s *TokenStore) Delete(ctx context.Context, token string) error {
	return s.Client.Del(ctx, tokenKey(token)).Err()
}
