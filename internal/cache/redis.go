package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// New connects to Redis at addr. A nil *Cache is a valid no-op cache, so
// callers never branch on availability: a failed connection just means
// every lookup is a miss.
func New(addr string) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v (continuing without cache)", addr, err)
		return nil
	}
	return &Cache{client: client}
}

type Cache struct {
	client *redis.Client
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
