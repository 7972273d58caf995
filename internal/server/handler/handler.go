package handler

import (
	"errors"
	"log"

	"github.com/palemoky/secret-duel/internal/apperrors"
	"github.com/palemoky/secret-duel/internal/game/room"
	"github.com/palemoky/secret-duel/internal/logger"
	"github.com/palemoky/secret-duel/internal/protocol"
	"github.com/palemoky/secret-duel/internal/protocol/codec"
	"github.com/palemoky/secret-duel/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server      types.ServerInterface
	RoomManager *room.RoomManager
}

// Handler 消息处理器
type Handler struct {
	server      types.ServerInterface
	roomManager *room.RoomManager
	handlers    map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:      deps.Server,
		roomManager: deps.RoomManager,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing:           h.handlePing,
		protocol.MsgGetOnlineCount: func(c types.ClientInterface, _ *protocol.Message) { h.handleGetOnlineCount(c) },

		// 房间操作
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgLeaveRoom:  func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveRoom(c) },
		protocol.MsgSetSecret:  h.handleSetSecret,
		protocol.MsgStartGame:  h.handleStartGame,

		// 游戏操作
		protocol.MsgRollDice:  h.handleRollDice,
		protocol.MsgMoveToken: h.handleMoveToken,
		protocol.MsgChessMove: h.handleChessMove,
		protocol.MsgResign:    h.handleResign,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (来自连接: %s)", msg.Type, client.GetID())
	logger.LogDebug("消息详情: Payload长度=%d bytes", len(msg.Payload))
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// HandleDisconnect 连接断开时调用，对局中的房间判对手获胜
func (h *Handler) HandleDisconnect(client types.ClientInterface) {
	h.roomManager.Disconnect(client)
}

// replyError 把错误私发给请求者，回复类型与请求种类对应
func (h *Handler) replyError(client types.ClientInterface, req protocol.MessageType, err error) {
	var gameErr *apperrors.GameError
	if !errors.As(err, &gameErr) {
		logger.LogError("处理 %s 失败 (连接 %s): %v", req, client.GetID(), err)
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
		return
	}
	client.SendMessage(codec.NewTypedError(replyType(req, gameErr), gameErr.Code, gameErr.Message))
}

// replyType 选择错误回复的消息类型
func replyType(req protocol.MessageType, err *apperrors.GameError) protocol.MessageType {
	if err.Code == protocol.ErrCodeNotYourTurn {
		return protocol.MsgNotYourTurn
	}

	switch req {
	case protocol.MsgJoinRoom:
		return protocol.MsgJoinError
	case protocol.MsgStartGame:
		return protocol.MsgStartDenied
	}

	switch err.Code {
	case protocol.ErrCodeNoRollPending, protocol.ErrCodeRollAlreadyPending:
		return protocol.MsgNoDice
	case protocol.ErrCodeGameNotStart:
		if req == protocol.MsgRollDice || req == protocol.MsgMoveToken {
			return protocol.MsgNoDice
		}
	case protocol.ErrCodeInvalidTokenIndex, protocol.ErrCodeIllegalMove:
		return protocol.MsgIllegalMove
	case protocol.ErrCodeNoPieceAtSource, protocol.ErrCodeNotYourPiece:
		return protocol.MsgInvalidMove
	}
	return protocol.MsgError
}

// parse 解析 payload，失败时回复 1001
func parse[T any](client types.ClientInterface, msg *protocol.Message) (*T, bool) {
	payload, err := codec.ParsePayload[T](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return nil, false
	}
	return payload, true
}
