package directory

import "context"

// RoomInfo 房间目录里的一条公开信息（大厅列表用）
type RoomInfo struct {
	ID          string `json:"roomId"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Stage       string `json:"stage"`
}

// Repo 定义对房间目录的抽象操作
type Repo interface {
	// Save 写入/覆盖一条房间信息
	Save(ctx context.Context, info RoomInfo) error
	// Remove 将房间从目录移除（房间清空时）
	Remove(ctx context.Context, roomID string) error
	// List 返回目录中全部房间（按 roomId 排序，列表稳定）
	List(ctx context.Context) ([]RoomInfo, error)
}
