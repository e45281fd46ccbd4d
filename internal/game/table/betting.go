package table

import "time"

// Action 玩家意图
type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
)

// HandleAction 校验并执行当前行动者的动作。
// 任何不合法的请求返回错误且不改动任何状态；合法动作完整提交筹码变动后，
// 根据回合完成判定推进阶段或轮转行动者。
// 返回非 nil 的 RoundResult 表示这手牌就此结束。
func (g *Game) HandleAction(playerID string, action Action, amount int64) (*RoundResult, error) {
	switch g.Stage {
	case StagePreflop, StageFlop, StageTurn, StageRiver:
	default:
		return nil, ErrWrongStage
	}

	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if g.Players[g.CurrentPlayerIndex].ID != playerID {
		return nil, ErrNotYourTurn
	}

	switch action {
	case ActionFold:
		p.Status = StatusFolded

	case ActionCheck:
		if p.CurrentBet != g.CurrentBet {
			return nil, ErrBetMismatch
		}

	case ActionCall:
		callAmount := g.CurrentBet - p.CurrentBet
		if callAmount <= 0 {
			return nil, ErrNothingToCall
		}
		if callAmount >= p.Chips {
			// 整付筹码跟注即全下
			p.Status = StatusAllIn
			g.Pot += p.Chips
			p.TotalBet += p.Chips
			p.CurrentBet += p.Chips
			p.Chips = 0
		} else {
			p.Chips -= callAmount
			p.CurrentBet += callAmount
			p.TotalBet += callAmount
			g.Pot += callAmount
		}

	case ActionRaise:
		if amount <= g.CurrentBet {
			return nil, ErrRaiseTooSmall
		}
		delta := amount - p.CurrentBet
		if delta > p.Chips {
			return nil, ErrInsufficientChips
		}
		p.Chips -= delta
		p.CurrentBet = amount
		p.TotalBet += delta
		g.Pot += delta
		g.CurrentBet = amount
		// 加注重新开启行动：已行动集合只剩加注者
		g.acted = map[string]struct{}{playerID: {}}

	default:
		return nil, ErrUnknownAction
	}

	g.acted[playerID] = struct{}{}
	g.ActionHistory = append(g.ActionHistory, ActionRecord{
		PlayerID:   playerID,
		PlayerName: p.Name,
		Action:     action,
		Amount:     amount,
		Timestamp:  time.Now(),
	})

	// 只剩一家未弃牌：立刻弃牌获胜，不再发剩余公共牌
	if len(g.nonFolded()) <= 1 {
		return g.endHand(), nil
	}

	if g.bettingRoundComplete() {
		return g.nextStage()
	}
	g.advanceToNextPlayer()
	return nil, nil
}

// bettingRoundComplete 回合完成判定：
// (a) 可行动座位 ≤1，或
// (b) 所有可行动座位下注额等于桌面注额，且每个座位自上次加注以来都已行动。
// 大盲的翻前选择权由 (b) 自然覆盖——盲注不算行动。
func (g *Game) bettingRoundComplete() bool {
	active := g.activePlayers()
	if len(active) <= 1 {
		return true
	}
	for _, p := range active {
		if p.CurrentBet != g.CurrentBet {
			return false
		}
	}
	for _, p := range active {
		if _, ok := g.acted[p.ID]; !ok {
			return false
		}
	}
	return true
}

// setFirstPlayerForPreflop 翻前行动顺序：
// 2 人桌小盲先行动；3+ 人桌从大盲下一位（UTG）开始顺时针
func (g *Game) setFirstPlayerForPreflop() {
	if len(g.Players) == 2 {
		g.CurrentPlayerIndex = g.SmallBlindIndex
		return
	}
	utg := (g.BigBlindIndex + 1) % len(g.Players)
	for i := 0; i < len(g.Players); i++ {
		idx := (utg + i) % len(g.Players)
		if g.Players[idx].Status == StatusActive {
			g.CurrentPlayerIndex = idx
			return
		}
	}
}

// setFirstPlayerForPostFlop 翻后从小盲位开始找第一个可行动座位。
// 找不到返回 false。
func (g *Game) setFirstPlayerForPostFlop() bool {
	for i := 0; i < len(g.Players); i++ {
		idx := (g.SmallBlindIndex + i) % len(g.Players)
		if g.Players[idx].Status == StatusActive {
			g.CurrentPlayerIndex = idx
			return true
		}
	}
	return false
}

// advanceToNextPlayer 顺时针跳过弃牌与全下座位
func (g *Game) advanceToNextPlayer() {
	next := (g.CurrentPlayerIndex + 1) % len(g.Players)
	for g.Players[next].Status != StatusActive {
		next = (next + 1) % len(g.Players)
	}
	g.CurrentPlayerIndex = next
}
