package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

// key 约定：
//
//	set: room:dir:index          -> Set(roomId,...)
//	kv : room:dir:{roomId}       -> JSON(RoomInfo)，带 TTL 避免进程崩溃后遗留脏房间
func NewRedisRepo(rdb *redis.Client, ttlSeconds int) Repo {
	if ttlSeconds <= 0 {
		ttlSeconds = 3600
	}
	return &redisRepo{rdb: rdb, ttl: time.Duration(ttlSeconds) * time.Second}
}

func roomKey(id string) string {
	return fmt.Sprintf("room:dir:%s", id)
}

const indexKey = "room:dir:index"

func (r *redisRepo) Save(ctx context.Context, info RoomInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	p := r.rdb.Pipeline()
	p.SAdd(ctx, indexKey, info.ID)
	p.Set(ctx, roomKey(info.ID), data, r.ttl)
	_, err = p.Exec(ctx)
	return err
}

func (r *redisRepo) Remove(ctx context.Context, roomID string) error {
	p := r.rdb.Pipeline()
	p.SRem(ctx, indexKey, roomID)
	p.Del(ctx, roomKey(roomID))
	_, err := p.Exec(ctx)
	return err
}

func (r *redisRepo) List(ctx context.Context) ([]RoomInfo, error) {
	ids, err := r.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	out := make([]RoomInfo, 0, len(ids))
	for _, id := range ids {
		val, err := r.rdb.Get(ctx, roomKey(id)).Result()
		if err == redis.Nil {
			// TTL 到期但 index 未清，顺手移除
			_ = r.rdb.SRem(ctx, indexKey, id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		var info RoomInfo
		if err := json.Unmarshal([]byte(val), &info); err != nil {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
