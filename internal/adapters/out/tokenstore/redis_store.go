// Package tokenstore keeps issued refresh-token ids until they are used or expire.
// A token id can be consumed exactly once.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:refresh:"

var _ ports.RefreshTokenStore = (*RedisStore)(nil)

// RedisStore stores token ids as keys with a TTL; the value is the owner's id.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, tokenID string, userID kernel.UUID, ttl time.Duration) error {
	if tokenID == "" {
		return errs.NewValueIsRequiredError("token id")
	}
	if ttl <= 0 {
		return errs.NewValueIsOutOfRangeError("ttl", ttl, time.Second, "unbounded")
	}

	if err := s.client.Set(ctx, keyPrefix+tokenID, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Consume uses GETDEL so two concurrent refreshes cannot both succeed.
func (s *RedisStore) Consume(ctx context.Context, tokenID string) (kernel.UUID, error) {
	value, err := s.client.GetDel(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return kernel.UUID{}, errs.NewUnauthenticatedError("refresh token is unknown or already used")
		}
		return kernel.UUID{}, fmt.Errorf("consume refresh token: %w", err)
	}

	userID, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewUnauthenticatedErrorWithCause("refresh token is corrupt", err)
	}
	return userID, nil
}
