package table

import "PokerRoom/internal/game/deck"

// Status 座位状态，替代 folded/isAllIn 布尔组合
type Status string

const (
	StatusActive Status = "active"
	StatusFolded Status = "folded"
	StatusAllIn  Status = "all_in"
)

// Stats 跨局累计数据
type Stats struct {
	HandsPlayed   int   `json:"handsPlayed"`
	Wins          int   `json:"wins"`
	TotalWinnings int64 `json:"totalWinnings"`
	NetProfit     int64 `json:"netProfit"`
}

// Player 座位记录。Session 是边界层解析的不透明会话令牌，
// 引擎本身不持有任何连接对象；同名重连只需换掉 Session。
type Player struct {
	ID      string
	Name    string
	Session string

	Chips      int64
	Cards      []deck.Card
	CurrentBet int64
	TotalBet   int64
	Status     Status
	Stats      Stats
}

func NewPlayer(id, name, session string, chips int64) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Session: session,
		Chips:   chips,
		Status:  StatusActive,
	}
}

func (p *Player) ResetForNewHand() {
	p.Cards = nil
	p.CurrentBet = 0
	p.TotalBet = 0
	p.Status = StatusActive
}
