package lib

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// PingSummaryCache round-trips a marker key through the summary-cache
// keyspace so a broken cache surfaces at boot instead of on the first
// dashboard poll.
func PingSummaryCache() {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	key := "summary:healthcheck"
	if err := rdb.Set(context.Background(), key, time.Now().Format(time.RFC3339), time.Minute).Err(); err != nil {
		log.Printf("[redis] summary cache unavailable: %s\n", err.Error())
		return
	}
	val, err := rdb.Get(context.Background(), key).Result()
	if err == redis.Nil {
		log.Printf("[redis] marker key %s missing after write\n", key)
		return
	} else if err != nil {
		log.Printf("[redis] error reading %s: %s\n", key, err.Error())
		return
	}
	log.Printf("[redis] summary cache ready as of %s\n", val)
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}
