package handler

import (
	"github.com/palemoky/secret-duel/internal/game"
	"github.com/palemoky/secret-duel/internal/protocol"
	"github.com/palemoky/secret-duel/internal/protocol/codec"
	"github.com/palemoky/secret-duel/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停创建房间"))
		return
	}

	payload, ok := parse[protocol.CreateRoomPayload](client, msg)
	if !ok {
		return
	}
	kind, ok := game.ParseKind(payload.GameKind)
	if !ok {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "未知的玩法: "+payload.GameKind))
		return
	}

	if _, err := h.roomManager.CreateRoom(client, payload.Name, kind); err != nil {
		h.replyError(client, msg.Type, err)
	}
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewTypedError(protocol.MsgJoinError,
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停加入房间"))
		return
	}

	payload, ok := parse[protocol.JoinRoomPayload](client, msg)
	if !ok {
		return
	}

	if _, err := h.roomManager.JoinRoom(client, payload.Code, payload.Name); err != nil {
		h.replyError(client, msg.Type, err)
	}
}

// handleLeaveRoom 处理离开房间
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	if err := h.roomManager.LeaveRoom(client); err != nil {
		h.replyError(client, protocol.MsgLeaveRoom, err)
	}
}

// handleSetSecret 处理设置秘密
func (h *Handler) handleSetSecret(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.SetSecretPayload](client, msg)
	if !ok {
		return
	}

	if err := h.roomManager.SetSecret(client, payload.Room, payload.Secret); err != nil {
		h.replyError(client, msg.Type, err)
	}
}

// handleStartGame 处理房主开局
func (h *Handler) handleStartGame(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.RoomPayload](client, msg)
	if !ok {
		return
	}

	if err := h.roomManager.StartGame(client, payload.Room); err != nil {
		h.replyError(client, msg.Type, err)
	}
}
