package room

import (
	"github.com/palemoky/secret-duel/internal/protocol"
	"github.com/palemoky/secret-duel/internal/protocol/codec"
)

// 以下方法调用方需持有 r.mu

// Broadcast 广播消息给房间内所有玩家
func (r *Room) Broadcast(msg *protocol.Message) {
	for _, p := range r.Players {
		p.Client.SendMessage(msg)
	}
}

// BroadcastExcept 广播消息给除指定玩家外的所有玩家
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	for _, p := range r.Players {
		if p.Client.GetID() != excludeID {
			p.Client.SendMessage(msg)
		}
	}
}

// sendTo 私发给房间内某个玩家
func (r *Room) sendTo(id string, msg *protocol.Message) {
	if p, _ := r.player(id); p != nil {
		p.Client.SendMessage(msg)
	}
}

func (r *Room) broadcastPlayers() {
	r.Broadcast(codec.MustNewMessage(protocol.MsgPlayersUpdate, protocol.PlayersUpdatePayload{
		Players: r.playerInfos(),
	}))
}

func (r *Room) broadcastState() {
	r.Broadcast(codec.MustNewMessage(protocol.MsgStateUpdate, protocol.StateUpdatePayload{
		State: r.Game.Snapshot(),
	}))
}
