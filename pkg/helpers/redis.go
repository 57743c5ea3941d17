package helpers

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client with short timeouts; callers fall
// back to Postgres when Redis errors.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}
