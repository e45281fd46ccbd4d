package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rdb 进程级 Redis 客户端，只有 redis.enabled 时才初始化
var Rdb *redis.Client

func InitRedis(addr, password string, db int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return Rdb.Ping(ctx).Err()
}
