package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const changeGuardTTL = time.Hour

// ChangeGuard remembers the last change set announced for each shift.
// Key format: dedup:shift-updated:<shift_id>, value is the fingerprint.
// Marking a different change set overwrites the previous one, so a revert
// followed by a re-apply is announced every time.
type ChangeGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewChangeGuard(client *redis.Client) *ChangeGuard {
	return &ChangeGuard{client: client, ttl: changeGuardTTL}
}

// IsDuplicate reports whether fingerprint is the most recent change set
// announced for the shift.
func (g *ChangeGuard) IsDuplicate(ctx context.Context, shiftID, fingerprint string) (bool, error) {
	last, err := g.client.Get(ctx, g.key(shiftID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("change guard check: %w", err)
	}
	return last == fingerprint, nil
}

// Mark records fingerprint as the shift's latest announced change set.
func (g *ChangeGuard) Mark(ctx context.Context, shiftID, fingerprint string) error {
	if err := g.client.Set(ctx, g.key(shiftID), fingerprint, g.ttl).Err(); err != nil {
		return fmt.Errorf("change guard mark: %w", err)
	}
	return nil
}

func (g *ChangeGuard) key(shiftID string) string {
	return "dedup:shift-updated:" + shiftID
}
