package handler

import (
	"github.com/palemoky/secret-duel/internal/protocol"
	"github.com/palemoky/secret-duel/internal/types"
)

// handleRollDice 处理掷骰子
func (h *Handler) handleRollDice(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.RoomPayload](client, msg)
	if !ok {
		return
	}

	if _, err := h.roomManager.RollDice(client, payload.Room); err != nil {
		h.replyError(client, msg.Type, err)
	}
}

// handleMoveToken 处理飞行棋走子
func (h *Handler) handleMoveToken(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.MoveTokenPayload](client, msg)
	if !ok {
		return
	}

	if err := h.roomManager.MoveToken(client, payload.Room, payload.TokenIndex); err != nil {
		h.replyError(client, msg.Type, err)
	}
}

// handleChessMove 处理象棋走子
func (h *Handler) handleChessMove(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.ChessMovePayload](client, msg)
	if !ok {
		return
	}

	if err := h.roomManager.ChessMove(client, payload.Room, payload.From, payload.To); err != nil {
		h.replyError(client, msg.Type, err)
	}
}

// handleResign 处理认输
func (h *Handler) handleResign(client types.ClientInterface, msg *protocol.Message) {
	payload, ok := parse[protocol.RoomPayload](client, msg)
	if !ok {
		return
	}

	if err := h.roomManager.Resign(client, payload.Room); err != nil {
		h.replyError(client, msg.Type, err)
	}
}
