package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func InitRedis(redisURL string, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}

	rdb := redis.NewClient(opts)

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	return rdb, nil
}
