// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"riverwood/config"

	"github.com/go-redis/redis/v8"
)

// ConversationCacheClient is the dedicated client for conversation state storage.
var ConversationCacheClient *redis.Client

// InitConversationCache initializes the Redis client backing the conversation
// state store (using the DB from AppConfig reserved for conversations).
func InitConversationCache() {
	ConversationCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisConversationDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ConversationCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Conversation Cache): %v", err)
	}
}

// GetConversationCacheClient returns the conversation state client.
func GetConversationCacheClient() *redis.Client {
	if ConversationCacheClient == nil {
		InitConversationCache()
	}
	return ConversationCacheClient
}

// QueueRedisReachable reports whether the Redis instance backing the turn
// queue answers a ping. The gate uses this to pick between queued and direct
// turn processing.
func QueueRedisReachable() bool {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
