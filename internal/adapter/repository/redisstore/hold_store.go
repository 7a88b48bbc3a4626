// Package redisstore keeps provisional holds in Redis so they expire on
// their own through key TTLs.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/platform/clock"
)

const resourceIndexKey = "holds:resources"

func holdKey(token string) string {
	return "hold:" + token
}

func resourceHoldsKey(resourceID string) string {
	return "holds:" + resourceID
}

// HoldStore stores each hold as JSON under hold:{token} with a TTL matching
// its expiry. holds:{resource} indexes tokens per resource; entries whose
// key already expired are pruned on read.
type HoldStore struct {
	client *redis.Client
	clock  clock.Clock
}

func NewHoldStore(client *redis.Client, clk clock.Clock) *HoldStore {
	return &HoldStore{client: client, clock: clk}
}

func (s *HoldStore) Save(ctx context.Context, hold *domain.ProvisionalHold) error {
	ttl := hold.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		_, err := s.Delete(ctx, hold.Token)
		return err
	}

	body, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("encode hold %s: %w", hold.Token, err)
	}
	if err := s.client.Set(ctx, holdKey(hold.Token), body, ttl).Err(); err != nil {
		return err
	}
	if err := s.client.SAdd(ctx, resourceHoldsKey(hold.ResourceID), hold.Token).Err(); err != nil {
		return err
	}
	return s.client.SAdd(ctx, resourceIndexKey, hold.ResourceID).Err()
}

func (s *HoldStore) GetByToken(ctx context.Context, token string) (*domain.ProvisionalHold, error) {
	raw, err := s.client.Get(ctx, holdKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decodeHold(raw)
}

func (s *HoldStore) ListByResource(ctx context.Context, resourceID string) ([]domain.ProvisionalHold, error) {
	tokens, err := s.client.SMembers(ctx, resourceHoldsKey(resourceID)).Result()
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	keys := make([]string, len(tokens))
	for i, token := range tokens {
		keys[i] = holdKey(token)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	holds := make([]domain.ProvisionalHold, 0, len(values))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, tokens[i])
			continue
		}
		hold, err := decodeHold([]byte(raw))
		if err != nil {
			return nil, err
		}
		holds = append(holds, *hold)
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, resourceHoldsKey(resourceID), stale...).Err(); err != nil {
			return nil, err
		}
	}
	return holds, nil
}

func (s *HoldStore) ListAll(ctx context.Context) ([]domain.ProvisionalHold, error) {
	resources, err := s.client.SMembers(ctx, resourceIndexKey).Result()
	if err != nil {
		return nil, err
	}
	var all []domain.ProvisionalHold
	for _, resourceID := range resources {
		holds, err := s.ListByResource(ctx, resourceID)
		if err != nil {
			return nil, err
		}
		all = append(all, holds...)
	}
	return all, nil
}

func (s *HoldStore) Delete(ctx context.Context, token string) (bool, error) {
	raw, err := s.client.GetDel(ctx, holdKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	hold, err := decodeHold(raw)
	if err != nil {
		return true, err
	}
	return true, s.client.SRem(ctx, resourceHoldsKey(hold.ResourceID), token).Err()
}

// DeleteExpired removes holds the engine considers dead before Redis has
// expired them, and prunes index entries of keys Redis already dropped.
func (s *HoldStore) DeleteExpired(ctx context.Context, resourceID string, now time.Time) (int64, error) {
	resources := []string{resourceID}
	if resourceID == "" {
		var err error
		if resources, err = s.client.SMembers(ctx, resourceIndexKey).Result(); err != nil {
			return 0, err
		}
	}

	var n int64
	for _, id := range resources {
		holds, err := s.ListByResource(ctx, id)
		if err != nil {
			return n, err
		}
		for i := range holds {
			if holds[i].IsLive(now) {
				continue
			}
			removed, err := s.Delete(ctx, holds[i].Token)
			if err != nil {
				return n, err
			}
			if removed {
				n++
			}
		}
	}
	return n, nil
}

func decodeHold(raw []byte) (*domain.ProvisionalHold, error) {
	var hold domain.ProvisionalHold
	if err := json.Unmarshal(raw, &hold); err != nil {
		return nil, fmt.Errorf("decode hold: %w", err)
	}
	return &hold, nil
}
