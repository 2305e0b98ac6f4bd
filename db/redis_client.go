package db

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key is absent. Implementations
// must map their driver's miss signal (redis.Nil) to this value.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the methods available in the record-store client
type RedisClient interface {
	Set(key, value string) error
	Get(key string) (string, error)
	GetContext() context.Context
	Ping() error
	Keys(pattern string) ([]string, error)
	Del(key string) error
}
