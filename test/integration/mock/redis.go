package mock

import (
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisServer *miniredis.Miniredis
	redisClient *redis.Client
)

// NewRedis starts one miniredis server for the test process and returns a client for it.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		redisServer = miniredis.NewMiniRedis()
		if err := redisServer.Start(); err != nil {
			panic("failed to start miniredis. err: " + err.Error())
		}
		redisClient = redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	})
	return redisClient
}

// ClearRedis drops every key, including scheduler locks left by a scenario.
func ClearRedis() {
	if redisServer != nil {
		redisServer.FlushAll()
	}
}

