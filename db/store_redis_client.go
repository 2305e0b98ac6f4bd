package db

import (
	"context"
	"errors"
	"log"

	"github.com/go-redis/redis/v8"
)

// StoreRedisClient struct holds the Redis client and context
type StoreRedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewStoreRedisClient initializes a new Redis client with default options
func NewStoreRedisClient(ctx context.Context, client *redis.Client) *StoreRedisClient {
	// Test the connection
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	return &StoreRedisClient{
		client: client,
		ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis
func (r *StoreRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Get retrieves the value for a given key from Redis
func (r *StoreRedisClient) Get(key string) (string, error) {
	value, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (r *StoreRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *StoreRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}

func (r *StoreRedisClient) Keys(pattern string) ([]string, error) {
	return r.client.Keys(r.ctx, pattern).Result()
}

func (r *StoreRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}
