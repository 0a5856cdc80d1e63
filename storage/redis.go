package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

func InitializeRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "",
		DB:       0,
	})

	log.Println("Redis initialized with address:", redisURL)
}

func transitionLockKey(proposalID uint) string {
	return fmt.Sprintf("proposal:transition:%d", proposalID)
}

// AcquireTransitionLock takes a short-lived per-proposal lock so concurrent
// accept/cancel requests cannot interleave their fetch-then-write sequences.
func AcquireTransitionLock(ctx context.Context, proposalID uint, ttl time.Duration) (bool, error) {
	if Redis == nil {
		return false, fmt.Errorf("redis is not initialized")
	}
	return Redis.SetNX(ctx, transitionLockKey(proposalID), "1", ttl).Result()
}

func ReleaseTransitionLock(ctx context.Context, proposalID uint) {
	if Redis == nil {
		return
	}
	Redis.Del(ctx, transitionLockKey(proposalID))
}
