package room

import (
	"time"

	"github.com/palemoky/secret-duel/internal/protocol"
	"github.com/palemoky/secret-duel/internal/server/storage"
)

// 以下方法调用方需持有 r.mu

// playerInfos 玩家公开信息，只暴露是否已设置秘密
func (r *Room) playerInfos() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.Players))
	for _, p := range r.Players {
		id := p.Client.GetID()
		infos = append(infos, protocol.PlayerInfo{
			ID:        id,
			Name:      p.Name,
			IsHost:    p.IsHost,
			SecretSet: r.escrow.IsSet(id),
		})
	}
	return infos
}

func (r *Room) info() protocol.RoomInfoPayload {
	return protocol.RoomInfoPayload{
		Code:     r.Code,
		GameKind: string(r.Kind),
		Players:  r.playerInfos(),
	}
}

// toRoomData 转换为 Redis 镜像数据
func (r *Room) toRoomData() *storage.RoomData {
	data := &storage.RoomData{
		Code:      r.Code,
		GameKind:  string(r.Kind),
		Status:    string(r.Status),
		Players:   make([]storage.PlayerData, 0, len(r.Players)),
		CreatedAt: r.CreatedAt.Unix(),
		UpdatedAt: time.Now().Unix(),
	}
	for _, info := range r.playerInfos() {
		data.Players = append(data.Players, storage.PlayerData{
			ID:        info.ID,
			Name:      info.Name,
			IsHost:    info.IsHost,
			SecretSet: info.SecretSet,
		})
	}
	return data
}

// Info 房间信息快照
func (r *Room) Info() protocol.RoomInfoPayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info()
}

// CurrentStatus 当前房间状态
func (r *Room) CurrentStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Status
}
