package redislock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client подмножество команд Redis, нужное для блокировки (*redis.Client)
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	redis.Scripter
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
