package directory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// ---------- 内存实现测试 ----------
func Test_MemoryRepo_SaveListRemove(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, RoomInfo{ID: "room-b", PlayerCount: 3, MaxPlayers: 8, Stage: "flop"}))
	assert.NoError(t, repo.Save(ctx, RoomInfo{ID: "room-a", PlayerCount: 2, MaxPlayers: 8, Stage: "waiting"}))

	list, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	// roomId 排序
	assert.Equal(t, "room-a", list[0].ID)
	assert.Equal(t, "room-b", list[1].ID)

	// 覆盖写：人数变化
	assert.NoError(t, repo.Save(ctx, RoomInfo{ID: "room-a", PlayerCount: 4, MaxPlayers: 8, Stage: "preflop"}))
	list, _ = repo.List(ctx)
	assert.Equal(t, 4, list[0].PlayerCount)
	assert.Equal(t, "preflop", list[0].Stage)

	assert.NoError(t, repo.Remove(ctx, "room-a"))
	list, _ = repo.List(ctx)
	assert.Len(t, list, 1)
	assert.Equal(t, "room-b", list[0].ID)
}

// ---------- Redis（miniredis）实现测试 ----------
func Test_RedisRepo_SaveListRemove(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisRepo(rdb, 60)
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, RoomInfo{ID: "r1", PlayerCount: 2, MaxPlayers: 8, Stage: "preflop"}))
	assert.NoError(t, repo.Save(ctx, RoomInfo{ID: "r2", PlayerCount: 5, MaxPlayers: 8, Stage: "waiting"}))

	// key 应存在
	assert.True(t, mr.Exists("room:dir:r1"))
	assert.True(t, mr.Exists("room:dir:index"))

	list, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "r1", list[0].ID)
	assert.Equal(t, 2, list[0].PlayerCount)

	assert.NoError(t, repo.Remove(ctx, "r1"))
	assert.False(t, mr.Exists("room:dir:r1"))

	list, err = repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "r2", list[0].ID)
}

// room key TTL 到期后，List 应自动清理 index 里的残留成员
func Test_RedisRepo_ExpiredRoomPruned(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisRepo(rdb, 1)
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, RoomInfo{ID: "ghost", PlayerCount: 2, MaxPlayers: 8, Stage: "river"}))
	assert.True(t, mr.Exists("room:dir:ghost"))

	// 快进时间让 room key 过期，index 仍残留
	mr.FastForward(2 * time.Second)
	assert.False(t, mr.Exists("room:dir:ghost"))

	list, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 0)

	// index 中的残留应被顺手清掉
	members, _ := mr.SMembers("room:dir:index")
	assert.Len(t, members, 0)
}
