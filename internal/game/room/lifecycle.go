package room

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/palemoky/secret-duel/internal/logger"
	"github.com/palemoky/secret-duel/internal/protocol"
	"github.com/palemoky/secret-duel/internal/protocol/codec"
	"github.com/palemoky/secret-duel/internal/server/storage"
)

const (
	cleanupInterval = time.Minute
	storeTimeout    = 3 * time.Second
)

// generateRoomCode 生成房间号，调用方需持有 rm.mu
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

func (rm *RoomManager) track(connID, code string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.byConn[connID] = code
}

func (rm *RoomManager) untrack(connID, code string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.byConn[connID] == code {
		delete(rm.byConn, connID)
	}
}

func (rm *RoomManager) snapshotRooms() []*Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	rooms := make([]*Room, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// removeMember 把大厅中的玩家移出房间，调用方需持有 room.mu
func (rm *RoomManager) removeMember(room *Room, seat int) {
	player := room.Players[seat]
	id := player.Client.GetID()

	room.Players = append(room.Players[:seat], room.Players[seat+1:]...)
	room.escrow.Forget(id)
	player.Client.SetRoom("")
	rm.untrack(id, room.Code)

	if len(room.Players) == 0 {
		rm.teardown(room)
		return
	}

	// 房主离开，房主转交给剩下的玩家
	if player.IsHost {
		room.Players[0].IsHost = true
	}
	room.broadcastPlayers()
	rm.persist(room)
}

// teardown 解散房间，调用方需持有 room.mu
func (rm *RoomManager) teardown(room *Room) {
	if room.closed {
		return
	}
	room.closed = true
	room.Status = StatusFinished

	for _, p := range room.Players {
		p.Client.SetRoom("")
	}

	rm.mu.Lock()
	if rm.rooms[room.Code] == room {
		delete(rm.rooms, room.Code)
	}
	for _, p := range room.Players {
		if rm.byConn[p.Client.GetID()] == room.Code {
			delete(rm.byConn, p.Client.GetID())
		}
	}
	rm.mu.Unlock()

	rm.enqueue(storeOp{code: room.Code})

	log.Printf("🏠 房间 %s 已解散", room.Code)
}

// storeOp 一次镜像写入，data 为 nil 表示删除
type storeOp struct {
	code string
	data *storage.RoomData
}

// persist 异步保存房间镜像，调用方需持有 room.mu
func (rm *RoomManager) persist(room *Room) {
	if rm.store == nil {
		return
	}
	rm.enqueue(storeOp{code: room.Code, data: room.toRoomData()})
}

// enqueue 登记房间最新的镜像写入并唤醒写入协程，从不阻塞
// 同一房间只保留最后一次写入，保存与删除不会乱序
func (rm *RoomManager) enqueue(op storeOp) {
	if rm.store == nil {
		return
	}
	rm.pendingMu.Lock()
	rm.pending[op.code] = op
	rm.pendingMu.Unlock()

	select {
	case rm.wake <- struct{}{}:
	default:
	}
}

// takePending 取出全部待写入的房间镜像
func (rm *RoomManager) takePending() map[string]storeOp {
	rm.pendingMu.Lock()
	defer rm.pendingMu.Unlock()
	if len(rm.pending) == 0 {
		return nil
	}
	ops := rm.pending
	rm.pending = make(map[string]storeOp)
	return ops
}

// storeWriter 执行镜像写入，失败只记录日志
func (rm *RoomManager) storeWriter() {
	for {
		select {
		case <-rm.done:
			return
		case <-rm.wake:
			for _, op := range rm.takePending() {
				rm.write(op)
			}
		}
	}
}

func (rm *RoomManager) write(op storeOp) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	var err error
	if op.data != nil {
		err = rm.store.SaveRoom(ctx, op.data)
	} else {
		err = rm.store.DeleteRoom(ctx, op.code)
	}
	if err != nil {
		logger.LogError("房间 %s 镜像写入失败: %v", op.code, err)
	}
}

// cleanupLoop 定期清理超时房间
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rm.done:
			return
		case <-ticker.C:
			rm.cleanup(time.Now())
		}
	}
}

// cleanup 关闭等待超时的大厅房间
func (rm *RoomManager) cleanup(now time.Time) int {
	if rm.roomTimeout <= 0 {
		return 0
	}

	closed := 0
	for _, room := range rm.snapshotRooms() {
		room.mu.Lock()
		if !room.closed && room.Status == StatusLobby && now.Sub(room.CreatedAt) > rm.roomTimeout {
			room.Broadcast(codec.NewErrorMessageWithText(protocol.ErrCodeRoomNotFound, "房间超时已关闭"))
			rm.teardown(room)
			closed++
			log.Printf("🧹 房间 %s 超时已清理", room.Code)
		}
		room.mu.Unlock()
	}
	return closed
}
