package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records password-change timestamps so refresh tokens minted
// before a change can be rejected. Key format: pwchange:<email>. Entries
// expire after the refresh-token lifetime, past which every token minted
// before the change has expired on its own.
type RevocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis
// client. ttl should match the refresh-token lifetime.
func NewRevocationStore(client *redis.Client, ttl time.Duration) *RevocationStore {
	return &RevocationStore{client: client, ttl: ttl}
}

// StampPasswordChange records that the user's password changed at the given time.
func (s *RevocationStore) StampPasswordChange(ctx context.Context, email string, at time.Time) error {
	if err := s.client.Set(ctx, s.key(email), at.Unix(), s.ttl).Err(); err != nil {
		return fmt.Errorf("stamp password change: %w", err)
	}
	return nil
}

// ChangedSince reports whether the user's password changed after issuedAt.
func (s *RevocationStore) ChangedSince(ctx context.Context, email string, issuedAt time.Time) (bool, error) {
	val, err := s.client.Get(ctx, s.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}

	stamp, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("revocation check: bad stamp %q", val)
	}
	return issuedAt.Unix() < stamp, nil
}

func (s *RevocationStore) key(email string) string {
	return "pwchange:" + email
}
