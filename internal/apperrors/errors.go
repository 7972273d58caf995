package apperrors

import (
	"github.com/palemoky/secret-duel/internal/protocol"
)

// Kind 错误分类
type Kind int

const (
	KindMembership Kind = iota // 房间成员
	KindReadiness              // 准备/开局
	KindTurn                   // 回合
	KindLegality               // 走法合法性
)

// GameError 游戏错误（房间和对局共享）
type GameError struct {
	Code    int
	Kind    Kind
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newError(kind Kind, code int) *GameError {
	return &GameError{Code: code, Kind: kind, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrRoomNotFound       = newError(KindMembership, protocol.ErrCodeRoomNotFound)
	ErrRoomFull           = newError(KindMembership, protocol.ErrCodeRoomFull)
	ErrRoomAlreadyStarted = newError(KindMembership, protocol.ErrCodeRoomAlreadyStarted)
	ErrNotInRoom          = newError(KindMembership, protocol.ErrCodeNotInRoom)
	ErrNotHost            = newError(KindMembership, protocol.ErrCodeNotHost)

	ErrEmptySecret    = newError(KindReadiness, protocol.ErrCodeEmptySecret)
	ErrNotReady       = newError(KindReadiness, protocol.ErrCodeNotReady)
	ErrAlreadyStarted = newError(KindReadiness, protocol.ErrCodeAlreadyStarted)
	ErrGameNotStart   = newError(KindReadiness, protocol.ErrCodeGameNotStart)

	ErrNotYourTurn        = newError(KindTurn, protocol.ErrCodeNotYourTurn)
	ErrNoRollPending      = newError(KindTurn, protocol.ErrCodeNoRollPending)
	ErrRollAlreadyPending = newError(KindTurn, protocol.ErrCodeRollAlreadyPending)
	ErrWrongGame          = newError(KindTurn, protocol.ErrCodeWrongGame)
	ErrGameOver           = newError(KindTurn, protocol.ErrCodeGameOver)

	ErrInvalidTokenIndex = newError(KindLegality, protocol.ErrCodeInvalidTokenIndex)
	ErrIllegalMove       = newError(KindLegality, protocol.ErrCodeIllegalMove)
	ErrNoPieceAtSource   = newError(KindLegality, protocol.ErrCodeNoPieceAtSource)
	ErrNotYourPiece      = newError(KindLegality, protocol.ErrCodeNotYourPiece)
)
