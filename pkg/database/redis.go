package database

import (
	"context"
	"log"
	"time"

	"github.com/4vald/Shop-Project-EKEB/pkg/config"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the client used for session-scoped storage.
func InitRedis(cfg config.RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.Db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}

	log.Println("✅ Redis connected")
	return rdb
}
