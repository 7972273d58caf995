package room

import (
	"log"
	"strings"

	"github.com/palemoky/secret-duel/internal/apperrors"
	"github.com/palemoky/secret-duel/internal/game"
	"github.com/palemoky/secret-duel/internal/protocol"
	"github.com/palemoky/secret-duel/internal/protocol/codec"
	"github.com/palemoky/secret-duel/internal/types"
)

// CreateRoom 创建房间，创建者成为房主；已在其他房间时先离开
func (rm *RoomManager) CreateRoom(client types.ClientInterface, name string, kind game.Kind) (*Room, error) {
	_ = rm.LeaveRoom(client)

	id := client.GetID()
	player := &RoomPlayer{Client: client, Name: sanitizeName(name), IsHost: true}

	// 新房间尚未注册，先锁房间再写注册表，保证创建者最先收到 room_created
	rm.mu.Lock()
	room := newRoom(rm.generateRoomCode(), kind)
	room.mu.Lock()
	defer room.mu.Unlock()
	room.Players = append(room.Players, player)
	rm.rooms[room.Code] = room
	rm.byConn[id] = room.Code
	rm.mu.Unlock()

	client.SetRoom(room.Code)
	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomCreated, room.info()))
	room.broadcastPlayers()
	rm.persist(room)

	log.Printf("🏠 房间 %s 已创建（%s），房主 %s", room.Code, kind, player.Name)

	return room, nil
}

// JoinRoom 加入房间；已在其他房间时，确认可以加入后才离开原房间
func (rm *RoomManager) JoinRoom(client types.ClientInterface, code, name string) (*Room, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	id := client.GetID()

	room := rm.GetRoom(code)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}
	prev := rm.FindByConnection(id)
	if prev == room {
		prev = nil
	}

	unlock := lockRooms(room, prev)
	defer unlock()

	if room.closed {
		return nil, apperrors.ErrRoomNotFound
	}
	if p, _ := room.player(id); p != nil {
		// 重复加入，直接回放房间信息
		client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, room.info()))
		return room, nil
	}
	if len(room.Players) >= maxPlayers {
		return nil, apperrors.ErrRoomFull
	}
	if room.Status != StatusLobby {
		return nil, apperrors.ErrRoomAlreadyStarted
	}

	if prev != nil {
		_ = rm.leaveLocked(prev, client, true)
	}

	player := &RoomPlayer{Client: client, Name: sanitizeName(name)}
	room.Players = append(room.Players, player)
	rm.track(id, room.Code)
	client.SetRoom(room.Code)

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, room.info()))
	room.broadcastPlayers()
	rm.persist(room)

	log.Printf("👤 玩家 %s 加入房间 %s", player.Name, room.Code)

	return room, nil
}

// LeaveRoom 主动离开房间，离开者收到 left_room
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) error {
	return rm.leave(client, true)
}

// Disconnect 连接断开，按离开处理，对局中判对手获胜
func (rm *RoomManager) Disconnect(client types.ClientInterface) {
	_ = rm.leave(client, false)
}

func (rm *RoomManager) leave(client types.ClientInterface, notify bool) error {
	room := rm.FindByConnection(client.GetID())
	if room == nil {
		return apperrors.ErrNotInRoom
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	return rm.leaveLocked(room, client, notify)
}

// leaveLocked 离开房间，调用方需持有 room.mu
func (rm *RoomManager) leaveLocked(room *Room, client types.ClientInterface, notify bool) error {
	id := client.GetID()
	if room.closed {
		return apperrors.ErrNotInRoom
	}
	player, seat := room.player(id)
	if player == nil {
		return apperrors.ErrNotInRoom
	}

	if notify {
		client.SendMessage(codec.MustNewMessage(protocol.MsgLeftRoom, protocol.RoomPayload{Room: room.Code}))
	}

	if room.Status == StatusInProgress && room.Game != nil {
		outcome, err := room.Game.Concede(id)
		if err == nil {
			outcome.Reason = game.ReasonForfeit
			log.Printf("🏳️ 玩家 %s 离开对局中的房间 %s，判负", player.Name, room.Code)
			rm.finish(room, outcome, id)
			return nil
		}
	}

	rm.removeMember(room, seat)
	log.Printf("👋 玩家 %s 离开房间 %s", player.Name, room.Code)
	return nil
}

// FindByConnection 通过连接 ID 获取所在房间
func (rm *RoomManager) FindByConnection(connID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	code, ok := rm.byConn[connID]
	if !ok {
		return nil
	}
	return rm.rooms[code]
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[strings.ToUpper(code)]
}

// RoomCount 房间数量
func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// ActiveGamesCount 获取进行中的对局数量
func (rm *RoomManager) ActiveGamesCount() int {
	count := 0
	for _, room := range rm.snapshotRooms() {
		if room.CurrentStatus() == StatusInProgress {
			count++
		}
	}
	return count
}

// acquire 取得请求者所在的房间并加锁，调用方负责解锁
// code 为空时使用连接当前所在的房间
func (rm *RoomManager) acquire(client types.ClientInterface, code string) (*Room, error) {
	id := client.GetID()
	room := rm.FindByConnection(id)
	if room == nil {
		return nil, apperrors.ErrNotInRoom
	}
	if code = strings.TrimSpace(code); code != "" && !strings.EqualFold(code, room.Code) {
		return nil, apperrors.ErrNotInRoom
	}

	room.mu.Lock()
	if p, _ := room.player(id); room.closed || p == nil {
		room.mu.Unlock()
		return nil, apperrors.ErrNotInRoom
	}
	return room, nil
}

// lockRooms 按房间号顺序锁住一个或两个房间，返回解锁函数
func lockRooms(a, b *Room) func() {
	if b == nil {
		a.mu.Lock()
		return a.mu.Unlock
	}
	if b.Code < a.Code {
		a, b = b, a
	}
	a.mu.Lock()
	b.mu.Lock()
	return func() {
		b.mu.Unlock()
		a.mu.Unlock()
	}
}
