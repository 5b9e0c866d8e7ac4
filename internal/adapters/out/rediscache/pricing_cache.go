// Package rediscache provides a Redis-backed read-through cache for the
// pricing catalog. Price rules change rarely but are read on every delivered
// parcel, which makes them the one hot read path worth caching; everything
// else in the core reads its own consistent snapshot from Postgres.
package rediscache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// PricingCache wraps a PricingCatalog with a Redis read-through cache.
// Cache failures degrade to the underlying catalog: a Redis outage slows
// pricing down, it never breaks it.
type PricingCache struct {
	client *redis.Client
	next   ports.PricingCatalog
	ttl    time.Duration
}

// NewPricingCache creates a read-through cache in front of the given catalog.
// A non-positive ttl falls back to the default of five minutes.
func NewPricingCache(client *redis.Client, next ports.PricingCatalog, ttl time.Duration) *PricingCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PricingCache{
		client: client,
		next:   next,
		ttl:    ttl,
	}
}

// Price returns the cached unit amount for the scope, falling through to the
// underlying catalog on miss and writing the result back with a TTL.
// NotFound results are not cached: a missing price row is an operational
// problem that should resolve as soon as the row lands.
func (c *PricingCache) Price(
	ctx context.Context, kind delivery.ServiceKind, base, subBase string,
) (kernel.Money, error) {
	key := priceKey(kind, base, subBase)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		cents, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr == nil {
			return kernel.NewMoneyFromCents(cents), nil
		}
		// Unparseable entry, fall through and overwrite it.
	}

	price, err := c.next.Price(ctx, kind, base, subBase)
	if err != nil {
		return 0, err
	}

	// Best effort: a failed write-back only costs the next reader a miss.
	c.client.Set(ctx, key, strconv.FormatInt(price.Cents(), 10), c.ttl)

	return price, nil
}

// Invalidate drops the cached price for one scope. Called when the billing
// back office updates a price rule.
func (c *PricingCache) Invalidate(ctx context.Context, kind delivery.ServiceKind, base, subBase string) error {
	return c.client.Del(ctx, priceKey(kind, base, subBase)).Err()
}

func priceKey(kind delivery.ServiceKind, base, subBase string) string {
	return fmt.Sprintf("price:%d:%s:%s", int(kind), base, subBase)
}
