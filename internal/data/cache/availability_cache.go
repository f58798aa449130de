package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AvailabilityCache remembers which slot times are booked on a date. It is
// a read-path optimisation only; booking creation never consults it.
type AvailabilityCache interface {
	// BookedTimes returns ok=false on a miss.
	BookedTimes(ctx context.Context, date string) (times []string, ok bool, err error)
	SetBookedTimes(ctx context.Context, date string, times []string) error
	Invalidate(ctx context.Context, date string) error
}

const (
	keyPrefix = "studio:booked:"
	// emptyMarker lets a cached "nothing booked" be told apart from a miss.
	emptyMarker = ""
)

type redisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration, log *zap.Logger) AvailabilityCache {
	return &redisAvailabilityCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "availability")),
	}
}

func key(date string) string {
	return keyPrefix + date
}

func (c *redisAvailabilityCache) BookedTimes(ctx context.Context, date string) ([]string, bool, error) {
	members, err := c.client.SMembers(ctx, key(date)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("read booked times for %s: %w", date, err)
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	times := make([]string, 0, len(members))
	for _, m := range members {
		if m != emptyMarker {
			times = append(times, m)
		}
	}
	return times, true, nil
}

func (c *redisAvailabilityCache) SetBookedTimes(ctx context.Context, date string, times []string) error {
	members := make([]interface{}, 0, len(times)+1)
	members = append(members, emptyMarker)
	for _, t := range times {
		members = append(members, t)
	}

	k := key(date)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.SAdd(ctx, k, members...)
		pipe.Expire(ctx, k, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store booked times for %s: %w", date, err)
	}

	c.log.Debug("Booked times cached", zap.String("date", date), zap.Int("count", len(times)))
	return nil
}

func (c *redisAvailabilityCache) Invalidate(ctx context.Context, date string) error {
	if err := c.client.Del(ctx, key(date)).Err(); err != nil {
		return fmt.Errorf("invalidate booked times for %s: %w", date, err)
	}
	return nil
}

type nopAvailabilityCache struct{}

// NewNopAvailabilityCache always misses.
func NewNopAvailabilityCache() AvailabilityCache {
	return nopAvailabilityCache{}
}

func (nopAvailabilityCache) BookedTimes(context.Context, string) ([]string, bool, error) {
	return nil, false, nil
}

func (nopAvailabilityCache) SetBookedTimes(context.Context, string, []string) error { return nil }

func (nopAvailabilityCache) Invalidate(context.Context, string) error { return nil }
