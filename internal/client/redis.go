package client

import "github.com/redis/go-redis/v9"

// InitRedisClient returns nil when no address is configured; callers treat
// a nil client as "locking disabled".
func InitRedisClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}
