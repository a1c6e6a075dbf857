package service

import (
	"context"
	"fmt"
	"time"

	"healthcare-records/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// TokenStore is the allow-list of issued tokens. A token that is not in the
// store is treated as revoked even if its signature and expiry are valid.
type TokenStore interface {
	Store(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

const scanBatchSize = 100

type redisTokenStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisTokenStore(client *redis.Client, log *logrus.Logger) TokenStore {
	return &redisTokenStore{
		client: client,
		log:    log,
	}
}

// TokenKey yields keys such as access_token:<user id>:<token id>.
func TokenKey(userID uuid.UUID, tokenType jwt.TokenType, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, userID.String(), tokenID)
}

func (s *redisTokenStore) Store(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, TokenKey(userID, tokenType, tokenID), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store %s token in Redis: %+v", tokenType, err)
		return err
	}
	return nil
}

func (s *redisTokenStore) Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, TokenKey(userID, tokenType, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error {
	if err := s.client.Del(ctx, TokenKey(userID, tokenType, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to delete %s token: %+v", tokenType, err)
		return err
	}
	return nil
}

// RevokeAll removes every access and refresh token of the user.
func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := TokenKey(userID, tokenType, "*")
		iter := s.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			s.log.Warnf("Failed to scan %s token keys: %+v", tokenType, err)
			return err
		}

		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				s.log.Warnf("Failed to delete %s tokens: %+v", tokenType, err)
				return err
			}
		}
	}
	return nil
}
