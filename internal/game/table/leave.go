package table

// Leave 处理玩家离桌（主动退出或断线）。
// 等待或结算阶段直接让出座位；牌局进行中按弃牌处理，座位保留到本局
// 结束，由调用方在结算后清理。返回非 nil 结果表示离开直接触发了结算。
func (g *Game) Leave(playerID string) (*RoundResult, error) {
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}

	switch g.Stage {
	case StageWaiting, StageShowdown:
		g.RemovePlayer(playerID)
		return nil, nil
	}

	wasTurn := len(g.Players) > 0 &&
		g.CurrentPlayerIndex < len(g.Players) &&
		g.Players[g.CurrentPlayerIndex].ID == playerID

	p.Status = StatusFolded
	delete(g.acted, playerID)

	if len(g.nonFolded()) <= 1 {
		return g.endHand(), nil
	}
	// 弃牌可能正好补齐本轮最后一个待行动座位
	if g.bettingRoundComplete() {
		return g.nextStage()
	}
	if wasTurn {
		g.advanceToNextPlayer()
	}
	return nil, nil
}

// Reseat 同名重连：沿用原座位与筹码，替换玩家 ID 与会话令牌。
// 确认栅栏和行动记录一并跟随新 ID。找不到同名座位返回 nil。
func (g *Game) Reseat(name, id, session string) *Player {
	p := g.PlayerByName(name)
	if p == nil {
		return nil
	}
	if g.Confirmations != nil {
		if v, ok := g.Confirmations[p.ID]; ok {
			delete(g.Confirmations, p.ID)
			g.Confirmations[id] = v
		}
	}
	if _, ok := g.acted[p.ID]; ok {
		delete(g.acted, p.ID)
		g.acted[id] = struct{}{}
	}
	p.ID = id
	p.Session = session
	return p
}
