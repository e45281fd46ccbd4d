package manager

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"PokerRoom/internal/directory"
	"PokerRoom/internal/game/table"
	"PokerRoom/internal/utils"
	ws "PokerRoom/internal/websocket"
)

// Config 房间管理参数
type Config struct {
	Table            table.Config
	NextHandDelay    time.Duration // 全员确认后到下一局开始的间隔
	RoomListInterval time.Duration // 大厅列表周期推送间隔
}

func (c *Config) fill() {
	if c.NextHandDelay <= 0 {
		c.NextHandDelay = 5 * time.Second
	}
	if c.RoomListInterval <= 0 {
		c.RoomListInterval = 10 * time.Second
	}
}

// Room 一张牌桌及其调度状态。Game 不加锁，所有触碰必须持有 mu。
type Room struct {
	mu       sync.Mutex
	Game     *table.Game
	nextHand *time.Timer
	// 牌局进行中断线的座位，结算后统一清理
	departed map[string]struct{}
}

// Manager 管理所有房间：玩家意图路由、断线处理、下一局调度、大厅目录
type Manager struct {
	mu         sync.RWMutex
	rooms      map[string]*Room
	playerRoom map[string]string // playerId -> roomId
	hub        ws.HubInterface
	dir        directory.Repo
	cfg        Config
}

func NewManager(hub ws.HubInterface, dir directory.Repo, cfg Config) *Manager {
	cfg.fill()
	return &Manager{
		rooms:      make(map[string]*Room),
		playerRoom: make(map[string]string),
		hub:        hub,
		dir:        dir,
		cfg:        cfg,
	}
}

// Run 周期推送大厅列表，直到 ctx 取消
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.RoomListInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.pushRoomList()
		case <-ctx.Done():
			return
		}
	}
}

// RoomList 大厅当前房间列表（REST /rooms 也走这里）
func (m *Manager) RoomList(ctx context.Context) ([]directory.RoomInfo, error) {
	return m.dir.List(ctx)
}

// HandlePlayerMessage 统一入口（来自 Hub.OnIncoming）
func (m *Manager) HandlePlayerMessage(msg ws.IncomingMessage) {
	switch msg.Event {
	case "join_room":
		m.handleJoin(msg)
	case "get_room_list":
		list, err := m.dir.List(context.Background())
		if err != nil {
			m.sendError(msg.From, "room list unavailable")
			return
		}
		m.hub.SendToPlayer(msg.From, ws.OutgoingMessage{Event: "room_list", Data: list})
	case "start_game", "player_action", "confirm_result", "chat":
		roomID, room := m.roomOf(msg.From)
		if room == nil {
			m.sendError(msg.From, "not in a room")
			return
		}
		m.handleRoomMessage(roomID, room, msg)
	default:
		m.sendError(msg.From, "unknown event: "+msg.Event)
	}
}

// HandleDisconnect 断线即离桌（挂到 Hub.OnDisconnect）
func (m *Manager) HandleDisconnect(playerID string) {
	roomID, room := m.roomOf(playerID)
	if room == nil {
		return
	}

	m.mu.Lock()
	delete(m.playerRoom, playerID)
	m.mu.Unlock()

	room.mu.Lock()
	inHand := room.Game.Stage != table.StageWaiting && room.Game.Stage != table.StageShowdown
	result, err := room.Game.Leave(playerID)
	if err != nil {
		room.mu.Unlock()
		return
	}
	if inHand && result == nil {
		// 本局未结束，座位先占着，结算后再腾
		room.departed[playerID] = struct{}{}
	}
	if result != nil {
		// 离开直接打完了这手牌：本人和此前局中断线的座位一并清掉，
		// 断线座位留在确认栅栏里会把房间永远卡住
		room.Game.RemovePlayer(playerID)
		m.purgeDeparted(room)
	}
	empty := len(room.Game.Players) == 0
	barrierDone := room.Game.AllConfirmed()
	room.mu.Unlock()

	utils.Print.Info("player left room", "player", playerID, "room", roomID)

	if empty {
		m.dropRoom(roomID)
		return
	}
	if result != nil {
		m.hub.BroadcastToPlayers(m.roomPlayerIDs(room), ws.OutgoingMessage{Event: "round_result", Data: result})
	}
	m.broadcastState(room)
	// 栅栏可能因为这个座位消失而刚好齐了
	if barrierDone {
		m.scheduleNextHand(roomID, room)
	}
	m.syncDirectory(roomID, room)
}

func (m *Manager) handleJoin(msg ws.IncomingMessage) {
	var req struct {
		RoomID string `json:"roomId"`
		Name   string `json:"name"`
	}
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Name == "" {
		m.sendError(msg.From, "join_room requires a name")
		return
	}

	m.mu.Lock()
	if cur, ok := m.playerRoom[msg.From]; ok {
		m.mu.Unlock()
		m.sendError(msg.From, "already in room "+cur)
		return
	}
	roomID := req.RoomID
	if roomID == "" {
		roomID = uuid.NewString()[:8]
	}
	room, ok := m.rooms[roomID]
	if !ok {
		room = &Room{
			Game:     table.NewGame(roomID, m.cfg.Table),
			departed: make(map[string]struct{}),
		}
		m.rooms[roomID] = room
	}
	m.playerRoom[msg.From] = roomID
	m.mu.Unlock()

	session := uuid.NewString()

	room.mu.Lock()
	var joinErr error
	if seat := room.Game.PlayerByName(req.Name); seat != nil {
		// 同名重连：沿用原座位与筹码。断线名单按旧 ID 记录，
		// 要在 Reseat 换掉 ID 之前摘出来
		oldID := seat.ID
		room.Game.Reseat(req.Name, msg.From, session)
		delete(room.departed, oldID)
	} else {
		p := table.NewPlayer(msg.From, req.Name, session, m.cfg.Table.StartingChips)
		joinErr = room.Game.AddPlayer(p)
	}
	room.mu.Unlock()

	if joinErr != nil {
		m.mu.Lock()
		delete(m.playerRoom, msg.From)
		m.mu.Unlock()
		m.sendError(msg.From, joinErr.Error())
		return
	}

	utils.Print.Info("player joined room", "player", req.Name, "room", roomID)

	m.hub.SendToPlayer(msg.From, ws.OutgoingMessage{Event: "joined", Data: map[string]any{
		"roomId":   roomID,
		"playerId": msg.From,
		"session":  session,
	}})
	m.broadcastState(room)
	m.syncDirectory(roomID, room)
}

func (m *Manager) handleRoomMessage(roomID string, room *Room, msg ws.IncomingMessage) {
	switch msg.Event {

	case "start_game":
		room.mu.Lock()
		var err error
		if room.Game.Stage != table.StageWaiting {
			err = table.ErrWrongStage
		} else {
			err = room.Game.Start()
		}
		room.mu.Unlock()
		if err != nil {
			m.sendError(msg.From, err.Error())
			return
		}
		utils.Print.Info("hand started", "room", roomID)
		m.hub.BroadcastToPlayers(m.roomPlayerIDs(room), ws.OutgoingMessage{
			Event: "game_started",
			Data:  map[string]any{"roomId": roomID},
		})
		m.broadcastState(room)
		m.syncDirectory(roomID, room)

	case "player_action":
		var req struct {
			Action string `json:"action"`
			Amount int64  `json:"amount"`
		}
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			m.sendError(msg.From, "bad player_action payload")
			return
		}
		room.mu.Lock()
		result, err := room.Game.HandleAction(msg.From, table.Action(req.Action), req.Amount)
		if err == nil && result != nil {
			m.purgeDeparted(room)
		}
		room.mu.Unlock()
		if err != nil {
			m.sendError(msg.From, err.Error())
			return
		}
		if result != nil {
			m.hub.BroadcastToPlayers(m.roomPlayerIDs(room), ws.OutgoingMessage{Event: "round_result", Data: result})
		}
		m.broadcastState(room)
		m.syncDirectory(roomID, room)

	case "confirm_result":
		room.mu.Lock()
		all, err := room.Game.Confirm(msg.From)
		confirmations := room.Game.Confirmations
		room.mu.Unlock()
		if err != nil {
			m.sendError(msg.From, err.Error())
			return
		}
		m.hub.BroadcastToPlayers(m.roomPlayerIDs(room), ws.OutgoingMessage{
			Event: "confirmations_update",
			Data:  map[string]any{"confirmations": confirmations, "allConfirmed": all},
		})
		if all {
			m.scheduleNextHand(roomID, room)
		}

	case "chat":
		var req struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(msg.Data, &req); err != nil || req.Text == "" {
			return
		}
		room.mu.Lock()
		chat := room.Game.AddChat(msg.From, req.Text)
		room.mu.Unlock()
		if chat == nil {
			return
		}
		m.hub.BroadcastToPlayers(m.roomPlayerIDs(room), ws.OutgoingMessage{Event: "chat", Data: chat})
	}
}

// scheduleNextHand 全员确认后延时开下一局；重复确认只会重置定时器
func (m *Manager) scheduleNextHand(roomID string, room *Room) {
	room.mu.Lock()
	if room.nextHand != nil {
		room.nextHand.Stop()
	}
	room.nextHand = time.AfterFunc(m.cfg.NextHandDelay, func() {
		m.startNextHand(roomID)
	})
	room.mu.Unlock()
}

// startNextHand 定时器触发点。到点后条件必须重新验证：
// 等待期间可能有人离开，或筹码不足以再开一局。
func (m *Manager) startNextHand(roomID string) {
	m.mu.RLock()
	room, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if !ok {
		return
	}

	room.mu.Lock()
	if room.Game.Stage != table.StageShowdown || !room.Game.AllConfirmed() {
		room.mu.Unlock()
		return
	}
	if room.Game.EligiblePlayers() < 2 {
		room.Game.ParkWaiting()
		stats := m.finalStatsLocked(room)
		room.mu.Unlock()
		m.hub.BroadcastToPlayers(m.roomPlayerIDs(room), ws.OutgoingMessage{
			Event: "game_ended",
			Data:  map[string]any{"roomId": roomID, "finalStats": stats},
		})
		m.broadcastState(room)
		m.syncDirectory(roomID, room)
		return
	}
	room.Game.AdvanceButton()
	err := room.Game.Start()
	room.mu.Unlock()
	if err != nil {
		utils.Print.Error("next hand failed to start", "room", roomID, "err", err)
		return
	}
	utils.Print.Info("next hand started", "room", roomID)
	m.hub.BroadcastToPlayers(m.roomPlayerIDs(room), ws.OutgoingMessage{
		Event: "game_started",
		Data:  map[string]any{"roomId": roomID},
	})
	m.broadcastState(room)
	m.syncDirectory(roomID, room)
}

type finalStat struct {
	PlayerID   string      `json:"playerId"`
	PlayerName string      `json:"playerName"`
	Chips      int64       `json:"chips"`
	Stats      table.Stats `json:"stats"`
}

func (m *Manager) finalStatsLocked(room *Room) []finalStat {
	out := make([]finalStat, 0, len(room.Game.Players))
	for _, p := range room.Game.Players {
		out = append(out, finalStat{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Chips:      p.Chips,
			Stats:      p.Stats,
		})
	}
	return out
}

// purgeDeparted 结算后腾出断线玩家的座位，持锁调用
func (m *Manager) purgeDeparted(room *Room) {
	for id := range room.departed {
		room.Game.RemovePlayer(id)
		delete(room.departed, id)
	}
}

func (m *Manager) roomOf(playerID string) (string, *Room) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	roomID, ok := m.playerRoom[playerID]
	if !ok {
		return "", nil
	}
	return roomID, m.rooms[roomID]
}

func (m *Manager) roomPlayerIDs(room *Room) []string {
	room.mu.Lock()
	defer room.mu.Unlock()
	ids := make([]string, 0, len(room.Game.Players))
	for _, p := range room.Game.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// broadcastState 每个玩家一份按其视角过滤的快照（底牌不外泄）
func (m *Manager) broadcastState(room *Room) {
	room.mu.Lock()
	type pair struct {
		id   string
		snap table.Snapshot
	}
	snaps := make([]pair, 0, len(room.Game.Players))
	for _, p := range room.Game.Players {
		snaps = append(snaps, pair{id: p.ID, snap: room.Game.SnapshotFor(p.ID)})
	}
	room.mu.Unlock()

	for _, s := range snaps {
		m.hub.SendToPlayer(s.id, ws.OutgoingMessage{Event: "game_state", Data: s.snap})
	}
}

func (m *Manager) dropRoom(roomID string) {
	m.mu.Lock()
	room, ok := m.rooms[roomID]
	if ok {
		delete(m.rooms, roomID)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	room.mu.Lock()
	if room.nextHand != nil {
		room.nextHand.Stop()
	}
	room.mu.Unlock()
	_ = m.dir.Remove(context.Background(), roomID)
	utils.Print.Info("room closed", "room", roomID)
	m.pushRoomList()
}

// syncDirectory 目录写入 + 大厅即时推送
func (m *Manager) syncDirectory(roomID string, room *Room) {
	room.mu.Lock()
	info := directory.RoomInfo{
		ID:          roomID,
		PlayerCount: len(room.Game.Players),
		MaxPlayers:  table.MaxSeats,
		Stage:       string(room.Game.Stage),
	}
	room.mu.Unlock()
	if err := m.dir.Save(context.Background(), info); err != nil {
		utils.Print.Error("directory save failed", "room", roomID, "err", err)
	}
	m.pushRoomList()
}

func (m *Manager) pushRoomList() {
	list, err := m.dir.List(context.Background())
	if err != nil {
		return
	}
	m.hub.BroadcastAll(ws.OutgoingMessage{Event: "room_list", Data: list})
}

func (m *Manager) sendError(playerID, message string) {
	m.hub.SendToPlayer(playerID, ws.OutgoingMessage{
		Event: "error",
		Data:  map[string]any{"message": message},
	})
}
