package table

import (
	"math/rand"
	"time"

	"PokerRoom/internal/game/deck"
)

// Stage 牌局阶段
type Stage string

const (
	StageWaiting  Stage = "waiting"
	StagePreflop  Stage = "preflop"
	StageFlop     Stage = "flop"
	StageTurn     Stage = "turn"
	StageRiver    Stage = "river"
	StageShowdown Stage = "showdown"
)

const MaxSeats = 8

// Config 一张桌子的参数，Seed 非零时牌序可复现
type Config struct {
	SmallBlind    int64
	BigBlind      int64
	StartingChips int64
	Seed          int64
}

func (c *Config) fill() {
	if c.SmallBlind <= 0 {
		c.SmallBlind = 5
	}
	if c.BigBlind <= 0 {
		c.BigBlind = c.SmallBlind * 2
	}
	if c.StartingChips <= 0 {
		c.StartingChips = 1000
	}
}

// ActionRecord 动作流水，快照里带最后一条
type ActionRecord struct {
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Action     Action    `json:"action"`
	Amount     int64     `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// ChatMessage 桌内聊天，引擎只存储转发，不参与规则
type ChatMessage struct {
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// Game 一个房间唯一的牌桌聚合。所有修改必须由房间持有者串行调用，
// Game 自身不加锁（见 manager.Room）。
type Game struct {
	ID      string
	Players []*Player // 入座顺序即座位顺序，一局之内不变
	Config  Config

	deck           *deck.Deck
	CommunityCards []deck.Card
	Pot            int64
	CurrentBet     int64
	Stage          Stage

	CurrentPlayerIndex int
	DealerIndex        int
	SmallBlindIndex    int
	BigBlindIndex      int

	// 自上次加注以来已行动的座位
	acted map[string]struct{}
	// showdown 暂停期间的确认栅栏；nil 表示未开启
	Confirmations map[string]bool

	ActionHistory []ActionRecord
	ChatMessages  []ChatMessage

	rng *rand.Rand
}

func NewGame(id string, cfg Config) *Game {
	cfg.fill()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		ID:     id,
		Config: cfg,
		Stage:  StageWaiting,
		acted:  make(map[string]struct{}),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// AddPlayer 入座；满 8 人拒绝，重复 ID 拒绝
func (g *Game) AddPlayer(p *Player) error {
	for _, seated := range g.Players {
		if seated.ID == p.ID {
			return ErrUnknownPlayer
		}
	}
	if len(g.Players) >= MaxSeats {
		return ErrRoomFull
	}
	g.Players = append(g.Players, p)
	return nil
}

// RemovePlayer 离座。座位被移除后不会带旧状态重建。
func (g *Game) RemovePlayer(playerID string) {
	for i, p := range g.Players {
		if p.ID == playerID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			break
		}
	}
	if g.Confirmations != nil {
		delete(g.Confirmations, playerID)
	}
}

func (g *Game) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) PlayerByName(name string) *Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Start 开新一局：新牌堆、清每局字段、下盲注、发底牌、定首个行动者
func (g *Game) Start() error {
	if len(g.Players) < 2 {
		return ErrInsufficientPlayers
	}

	g.deck = deck.New(g.rng)
	g.CommunityCards = nil
	g.Pot = 0
	g.CurrentBet = g.Config.BigBlind
	g.Stage = StagePreflop
	g.Confirmations = nil
	g.acted = make(map[string]struct{})

	for _, p := range g.Players {
		p.ResetForNewHand()
	}

	g.postBlinds()
	if err := g.dealHoleCards(); err != nil {
		g.abortHand()
		return err
	}
	g.setFirstPlayerForPreflop()
	return nil
}

func (g *Game) postBlinds() {
	n := len(g.Players)
	g.SmallBlindIndex = (g.DealerIndex + 1) % n
	g.BigBlindIndex = (g.DealerIndex + 2) % n

	sb := g.Players[g.SmallBlindIndex]
	bb := g.Players[g.BigBlindIndex]

	sb.CurrentBet = g.Config.SmallBlind
	sb.Chips -= g.Config.SmallBlind
	sb.TotalBet += g.Config.SmallBlind

	bb.CurrentBet = g.Config.BigBlind
	bb.Chips -= g.Config.BigBlind
	bb.TotalBet += g.Config.BigBlind

	g.Pot = g.Config.SmallBlind + g.Config.BigBlind
}

func (g *Game) dealHoleCards() error {
	for _, p := range g.Players {
		c1, err := g.deck.Deal()
		if err != nil {
			return err
		}
		c2, err := g.deck.Deal()
		if err != nil {
			return err
		}
		p.Cards = []deck.Card{c1, c2}
	}
	return nil
}

// nextStage 当前下注轮结束后推进阶段。
// 返回非 nil 的结果表示这一步直接走到了结算。
func (g *Game) nextStage() (*RoundResult, error) {
	for _, p := range g.Players {
		p.CurrentBet = 0
	}
	g.acted = make(map[string]struct{})

	var n int
	switch g.Stage {
	case StagePreflop:
		g.Stage = StageFlop
		n = 3
	case StageFlop:
		g.Stage = StageTurn
		n = 1
	case StageTurn:
		g.Stage = StageRiver
		n = 1
	case StageRiver:
		return g.endHand(), nil
	default:
		return nil, ErrWrongStage
	}

	for i := 0; i < n; i++ {
		c, err := g.deck.Deal()
		if err != nil {
			g.abortHand()
			return nil, err
		}
		g.CommunityCards = append(g.CommunityCards, c)
	}

	g.CurrentBet = 0
	if !g.setFirstPlayerForPostFlop() {
		// 没有可行动的座位（都已全下），直接摊牌
		return g.endHand(), nil
	}
	return nil, nil
}

// abortHand 弃掉这一局并回到等待。只有 DeckExhausted 这类程序缺陷会走到这里，
// 不影响其他房间。
func (g *Game) abortHand() {
	g.Stage = StageWaiting
	g.Confirmations = nil
	g.CommunityCards = nil
	g.CurrentBet = 0
	for _, p := range g.Players {
		p.CurrentBet = 0
	}
}

// Confirm 结算确认。返回是否全员已确认。
func (g *Game) Confirm(playerID string) (bool, error) {
	if g.Confirmations == nil {
		return false, ErrNoConfirmation
	}
	if _, ok := g.Confirmations[playerID]; !ok {
		return false, ErrUnknownPlayer
	}
	g.Confirmations[playerID] = true
	return g.AllConfirmed(), nil
}

func (g *Game) AllConfirmed() bool {
	if len(g.Confirmations) == 0 {
		return false
	}
	for _, ok := range g.Confirmations {
		if !ok {
			return false
		}
	}
	return true
}

// AdvanceButton 庄家按钮顺移一位
func (g *Game) AdvanceButton() {
	if len(g.Players) > 0 {
		g.DealerIndex = (g.DealerIndex + 1) % len(g.Players)
	}
}

// EligiblePlayers 还付得起大盲的座位数，决定能否再开一局
func (g *Game) EligiblePlayers() int {
	n := 0
	for _, p := range g.Players {
		if p.Chips >= g.Config.BigBlind {
			n++
		}
	}
	return n
}

// ParkWaiting 人数不足时停桌
func (g *Game) ParkWaiting() {
	g.Stage = StageWaiting
	g.Confirmations = nil
}

func (g *Game) AddChat(playerID, message string) *ChatMessage {
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil
	}
	msg := ChatMessage{
		PlayerID:   playerID,
		PlayerName: p.Name,
		Message:    message,
		Timestamp:  time.Now(),
	}
	g.ChatMessages = append(g.ChatMessages, msg)
	return &msg
}

func (g *Game) nonFolded() []*Player {
	out := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Status != StatusFolded {
			out = append(out, p)
		}
	}
	return out
}

func (g *Game) activePlayers() []*Player {
	out := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Status == StatusActive {
			out = append(out, p)
		}
	}
	return out
}
