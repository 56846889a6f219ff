package service

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/queue"
)

// CacheInvalidationPort evicts cached availability answers for a hotel after
// a booking transition changes the ledger. Invalidation runs after commit
// and is best effort; a failure is logged, never surfaced to the caller.
type CacheInvalidationPort interface {
	InvalidateHotel(ctx context.Context, hotelID uint64) error
}

// NotificationPort emits booking lifecycle events for downstream consumers.
// Delivery is best effort and runs after commit.
type NotificationPort interface {
	Notify(ctx context.Context, ev queue.BookingLifecycleEvent) error
}

// RedisInvalidator drops cached responses from Redis. Cache keys are hashed
// under a common prefix, so they cannot be addressed per hotel; the whole
// namespace is scanned and deleted. Entries carry a short TTL, which keeps
// the blast radius of a missed invalidation small.
type RedisInvalidator struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisInvalidator returns an invalidator over the given client. A nil
// client yields a no-op invalidator so callers need no special casing.
func NewRedisInvalidator(rdb *redis.Client, prefix string) CacheInvalidationPort {
	if rdb == nil {
		return NopInvalidator{}
	}
	if prefix == "" {
		prefix = "cache"
	}
	return &RedisInvalidator{rdb: rdb, prefix: prefix}
}

func (r *RedisInvalidator) InvalidateHotel(ctx context.Context, hotelID uint64) error {
	var cursor uint64
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, r.prefix+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// NopInvalidator satisfies CacheInvalidationPort without doing anything.
type NopInvalidator struct{}

func (NopInvalidator) InvalidateHotel(context.Context, uint64) error { return nil }

// NopNotifier satisfies NotificationPort without doing anything. Used when
// the broker is not configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, queue.BookingLifecycleEvent) error { return nil }

// LogNotifier writes events to the process log. Useful in development when
// no broker is running.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, ev queue.BookingLifecycleEvent) error {
	log.Printf("booking event: %s booking_id=%d ref=%s", ev.Event, ev.BookingID, ev.Reference)
	return nil
}
