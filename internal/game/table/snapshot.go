package table

import "PokerRoom/internal/game/deck"

// SeatView 对某个观察者可见的座位信息
type SeatView struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Chips      int64       `json:"chips"`
	CurrentBet int64       `json:"currentBet"`
	Status     Status      `json:"status"`
	Cards      []deck.Card `json:"cards"`
	Stats      Stats       `json:"stats"`
}

// Snapshot 发给单个玩家的桌面状态
type Snapshot struct {
	RoomID          string        `json:"roomId"`
	Players         []SeatView    `json:"players"`
	CommunityCards  []deck.Card   `json:"communityCards"`
	Pot             int64         `json:"pot"`
	CurrentBet      int64         `json:"currentBet"`
	CurrentPlayer   string        `json:"currentPlayer"`
	Stage           Stage         `json:"stage"`
	DealerIndex     int           `json:"dealerIndex"`
	SmallBlindIndex int           `json:"smallBlindIndex"`
	BigBlindIndex   int           `json:"bigBlindIndex"`
	LastAction      *ActionRecord `json:"lastAction,omitempty"`
}

// SnapshotFor 生成按观察者过滤的快照：
// 自己的底牌总是可见，别家底牌只在 showdown 公开（弃牌的除外）
func (g *Game) SnapshotFor(viewerID string) Snapshot {
	snap := Snapshot{
		RoomID:          g.ID,
		CommunityCards:  g.CommunityCards,
		Pot:             g.Pot,
		CurrentBet:      g.CurrentBet,
		Stage:           g.Stage,
		DealerIndex:     g.DealerIndex,
		SmallBlindIndex: g.SmallBlindIndex,
		BigBlindIndex:   g.BigBlindIndex,
	}
	if len(g.ActionHistory) > 0 {
		last := g.ActionHistory[len(g.ActionHistory)-1]
		snap.LastAction = &last
	}
	if len(g.Players) > 0 && g.CurrentPlayerIndex < len(g.Players) {
		snap.CurrentPlayer = g.Players[g.CurrentPlayerIndex].ID
	}

	for _, p := range g.Players {
		view := SeatView{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			Status:     p.Status,
			Stats:      p.Stats,
		}
		reveal := g.Stage == StageShowdown && p.Status != StatusFolded
		if p.ID == viewerID || reveal {
			view.Cards = p.Cards
		}
		snap.Players = append(snap.Players, view)
	}
	return snap
}
