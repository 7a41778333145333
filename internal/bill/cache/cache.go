// Package cache provides a Redis-backed cache for the ordered bill list.
// Every write to the store invalidates it, so readers never observe a
// list the store would not return itself.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lucasvgarcia/contas/internal/bill"
)

const keyList = "bills:list"

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached ordered list, or nil on a miss.
func (c *Cache) GetList(ctx context.Context) ([]*bill.Bill, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var bills []*bill.Bill
	if err := json.Unmarshal(b, &bills); err != nil {
		return nil, err
	}

	return bills, nil
}

// SetList stores the ordered list.
func (c *Cache) SetList(ctx context.Context, bills []*bill.Bill) error {
	b, err := json.Marshal(bills)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, keyList, b, c.ttl).Err()
}

// Invalidate drops the cached list.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyList).Err()
}
