package table

import (
	"PokerRoom/internal/game/deck"
	"PokerRoom/internal/game/hand"
)

// FoldWinHandType 未经摊牌的弃牌获胜
const FoldWinHandType = "Fold Win"

type WinnerEntry struct {
	PlayerID   string      `json:"playerId"`
	PlayerName string      `json:"playerName"`
	Winnings   int64       `json:"winnings"`
	HandType   string      `json:"handType"`
	BestHand   []deck.Card `json:"bestHand,omitempty"`
	HoleCards  []deck.Card `json:"holeCards,omitempty"`
}

type SettlementEntry struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Change     int64  `json:"change"`
	TotalBet   int64  `json:"totalBet"`
	NewChips   int64  `json:"newChips"`
}

type HandReveal struct {
	PlayerID     string      `json:"playerId"`
	PlayerName   string      `json:"playerName"`
	Cards        []deck.Card `json:"cards"`
	HandStrength string      `json:"handStrength"`
	Folded       bool        `json:"folded"`
}

// RoundResult 一手牌的结算快照，随 round-result 消息下发
type RoundResult struct {
	Type           string            `json:"type"`
	Pot            int64             `json:"pot"`
	Winners        []WinnerEntry     `json:"winners"`
	Settlement     []SettlementEntry `json:"settlement"`
	AllHands       []HandReveal      `json:"allHands"`
	CommunityCards []deck.Card       `json:"communityCards"`
	Confirmations  map[string]bool   `json:"confirmations"`
}

type showdownEntry struct {
	player *Player
	best   []deck.Card
	eval   hand.Evaluation
}

// endHand 进入 showdown：排名、分池、更新累计数据并打开确认栅栏。
// 整个彩池归入同一个池——不做边池，是沿用的已知简化。
func (g *Game) endHand() *RoundResult {
	g.Stage = StageShowdown

	result := &RoundResult{
		Type:           "round-end",
		Pot:            g.Pot,
		CommunityCards: g.CommunityCards,
	}

	for _, p := range g.Players {
		reveal := HandReveal{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Cards:      p.Cards,
			Folded:     p.Status == StatusFolded,
		}
		switch {
		case p.Status == StatusFolded:
			reveal.HandStrength = "Fold"
		case len(p.Cards)+len(g.CommunityCards) >= 5:
			_, eval := hand.Best(append(append([]deck.Card{}, p.Cards...), g.CommunityCards...))
			reveal.HandStrength = eval.Name
		}
		result.AllHands = append(result.AllHands, reveal)
	}

	contenders := g.nonFolded()
	if len(contenders) == 1 {
		// 弃牌获胜：无需评牌
		winner := contenders[0]
		winner.Chips += g.Pot
		winner.Stats.Wins++
		winner.Stats.TotalWinnings += g.Pot
		result.Winners = []WinnerEntry{{
			PlayerID:   winner.ID,
			PlayerName: winner.Name,
			Winnings:   g.Pot,
			HandType:   FoldWinHandType,
		}}
	} else {
		winners := g.pickWinners(contenders)
		// 整除分池，余数不补发（沿用源行为）
		winnings := g.Pot / int64(len(winners))
		for _, w := range winners {
			w.player.Chips += winnings
			w.player.Stats.Wins++
			w.player.Stats.TotalWinnings += winnings
			result.Winners = append(result.Winners, WinnerEntry{
				PlayerID:   w.player.ID,
				PlayerName: w.player.Name,
				Winnings:   winnings,
				HandType:   w.eval.Name,
				BestHand:   w.best,
				HoleCards:  w.player.Cards,
			})
		}
	}

	for _, p := range g.Players {
		var won int64
		for _, w := range result.Winners {
			if w.PlayerID == p.ID {
				won = w.Winnings
				break
			}
		}
		change := won - p.TotalBet
		p.Stats.NetProfit += change
		p.Stats.HandsPlayed++
		result.Settlement = append(result.Settlement, SettlementEntry{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Change:     change,
			TotalBet:   p.TotalBet,
			NewChips:   p.Chips,
		})
	}

	g.Confirmations = make(map[string]bool, len(g.Players))
	for _, p := range g.Players {
		g.Confirmations[p.ID] = false
	}
	result.Confirmations = g.Confirmations

	return result
}

// pickWinners 赢家集合：
// 1. 最高牌型的所有座位；
// 2. 并列时逐位比较 Kickers，再比较完整牌值序列；
// 3. 仍完全相同的只有在整个获胜牌值组合都能由公共牌凑齐时才算真平分，
//    否则按座位顺序取第一位。
func (g *Game) pickWinners(contenders []*Player) []showdownEntry {
	entries := make([]showdownEntry, 0, len(contenders))
	for _, p := range contenders {
		cards := append(append([]deck.Card{}, p.Cards...), g.CommunityCards...)
		best, eval := hand.Best(cards)
		entries = append(entries, showdownEntry{player: p, best: best, eval: eval})
	}

	topCat := entries[0].eval.Category
	for _, e := range entries[1:] {
		if e.eval.Category > topCat {
			topCat = e.eval.Category
		}
	}
	top := entries[:0:0]
	for _, e := range entries {
		if e.eval.Category == topCat {
			top = append(top, e)
		}
	}
	if len(top) == 1 {
		return top
	}

	best := top[0]
	for _, e := range top[1:] {
		if hand.Compare(e.eval, best.eval) > 0 {
			best = e
		}
	}
	tied := top[:0:0]
	for _, e := range top {
		if hand.Compare(e.eval, best.eval) == 0 {
			tied = append(tied, e)
		}
	}
	if len(tied) == 1 {
		return tied
	}

	if g.canSplitFromCommunity(best.eval.AllValues) {
		return tied
	}
	return tied[:1]
}

// canSplitFromCommunity 获胜牌值组合的每个值都必须能完全由公共牌提供。
// 只有公开牌凑成的组合才保证双方手牌真正等同；依赖底牌凑出的相同序列
// 只是巧合，不平分。
func (g *Game) canSplitFromCommunity(values []int) bool {
	available := make(map[int]int, len(g.CommunityCards))
	for _, c := range g.CommunityCards {
		available[c.Rank]++
	}
	needed := make(map[int]int, len(values))
	for _, v := range values {
		needed[v]++
	}
	for v, n := range needed {
		if available[v] < n {
			return false
		}
	}
	return true
}
