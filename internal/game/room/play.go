package room

import (
	"errors"
	"log"

	"github.com/palemoky/secret-duel/internal/apperrors"
	"github.com/palemoky/secret-duel/internal/game"
	"github.com/palemoky/secret-duel/internal/game/capture"
	"github.com/palemoky/secret-duel/internal/game/race"
	"github.com/palemoky/secret-duel/internal/protocol"
	"github.com/palemoky/secret-duel/internal/protocol/codec"
	"github.com/palemoky/secret-duel/internal/types"
)

// SetSecret 设置秘密，可重复设置覆盖，开局后不可修改
func (rm *RoomManager) SetSecret(client types.ClientInterface, code, secret string) error {
	room, err := rm.acquire(client, code)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	if room.Status != StatusLobby {
		return apperrors.ErrAlreadyStarted
	}
	if err := room.escrow.Set(client.GetID(), secret); err != nil {
		return err
	}

	room.broadcastPlayers()
	rm.persist(room)
	return nil
}

// StartGame 房主开局，要求两名玩家且双方都已设置秘密
func (rm *RoomManager) StartGame(client types.ClientInterface, code string) error {
	room, err := rm.acquire(client, code)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	if p, _ := room.player(client.GetID()); !p.IsHost {
		return apperrors.ErrNotHost
	}
	if !room.ready() {
		return apperrors.ErrNotReady
	}
	if room.Status != StatusLobby {
		return apperrors.ErrAlreadyStarted
	}

	room.Game = newGame(room.Kind, room.order(), rm.roller)
	room.Status = StatusInProgress

	room.Broadcast(codec.MustNewMessage(protocol.MsgStartAck, protocol.StartAckPayload{
		Code:     room.Code,
		GameKind: string(room.Kind),
		State:    room.Game.Snapshot(),
		Players:  room.playerInfos(),
	}))
	room.broadcastState()
	rm.persist(room)

	log.Printf("🎮 房间 %s 开始对局（%s）", room.Code, room.Kind)
	return nil
}

// RollDice 掷骰子，广播点数与新局面
func (rm *RoomManager) RollDice(client types.ClientInterface, code string) (race.RollResult, error) {
	room, err := rm.acquire(client, code)
	if err != nil {
		return race.RollResult{}, err
	}
	defer room.mu.Unlock()

	g, err := raceGame(room)
	if err != nil {
		return race.RollResult{}, err
	}
	result, err := g.Roll(client.GetID())
	if err != nil {
		return race.RollResult{}, err
	}

	room.Broadcast(codec.MustNewMessage(protocol.MsgDiceResult, protocol.DiceResultPayload{
		PlayerID: client.GetID(),
		Value:    result.Value,
		Movable:  result.Movable,
	}))
	room.broadcastState()
	return result, nil
}

// MoveToken 移动飞行棋棋子
//
// 走不了的棋子会消耗点数，此时仍然广播局面后再返回 ErrIllegalMove。
func (rm *RoomManager) MoveToken(client types.ClientInterface, code string, tokenIndex int) error {
	room, err := rm.acquire(client, code)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	g, err := raceGame(room)
	if err != nil {
		return err
	}
	result, err := g.Move(client.GetID(), tokenIndex)
	if err != nil {
		if errors.Is(err, apperrors.ErrIllegalMove) {
			room.broadcastState()
		}
		return err
	}

	room.broadcastState()
	if result.Outcome.Over {
		rm.finish(room, result.Outcome, "")
	}
	return nil
}

// ChessMove 象棋走子
func (rm *RoomManager) ChessMove(client types.ClientInterface, code string, from, to protocol.Square) error {
	room, err := rm.acquire(client, code)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	g, err := captureGame(room)
	if err != nil {
		return err
	}
	result, err := g.Move(client.GetID(), capture.Square{R: from.R, C: from.C}, capture.Square{R: to.R, C: to.C})
	if err != nil {
		return err
	}

	room.broadcastState()
	if result.Outcome.Over {
		rm.finish(room, result.Outcome, "")
	}
	return nil
}

// Resign 认输，两种玩法都支持，不受回合限制
func (rm *RoomManager) Resign(client types.ClientInterface, code string) error {
	room, err := rm.acquire(client, code)
	if err != nil {
		return err
	}
	defer room.mu.Unlock()

	g, err := activeGame(room)
	if err != nil {
		return err
	}
	outcome, err := g.Concede(client.GetID())
	if err != nil {
		return err
	}

	room.broadcastState()
	rm.finish(room, outcome, "")
	return nil
}

// finish 结束对局：广播结果、私发败者秘密给胜者、解散房间
// excludeID 非空时该玩家不再接收 game_over（已主动离开）
func (rm *RoomManager) finish(room *Room, outcome game.Outcome, excludeID string) {
	room.Status = StatusFinished

	msg := codec.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		WinnerID:   outcome.Winner,
		WinnerName: room.nameOf(outcome.Winner),
		Reason:     outcome.Reason,
	})
	if excludeID == "" {
		room.Broadcast(msg)
	} else {
		room.BroadcastExcept(excludeID, msg)
	}

	if secret, ok := room.escrow.Reveal(outcome.Winner, outcome.Loser); ok {
		room.sendTo(outcome.Winner, codec.MustNewMessage(protocol.MsgRevealSecret, protocol.RevealSecretPayload{
			Secret: secret,
		}))
	}

	log.Printf("🏆 房间 %s 对局结束，%s 获胜（%s）", room.Code, room.nameOf(outcome.Winner), outcome.Reason)
	rm.teardown(room)
}

func activeGame(room *Room) (game.Game, error) {
	if room.Game == nil || room.Status == StatusLobby {
		return nil, apperrors.ErrGameNotStart
	}
	if room.Status != StatusInProgress {
		return nil, apperrors.ErrGameOver
	}
	return room.Game, nil
}

func raceGame(room *Room) (*race.Game, error) {
	g, err := activeGame(room)
	if err != nil {
		return nil, err
	}
	rg, ok := g.(*race.Game)
	if !ok {
		return nil, apperrors.ErrWrongGame
	}
	return rg, nil
}

func captureGame(room *Room) (*capture.Game, error) {
	g, err := activeGame(room)
	if err != nil {
		return nil, err
	}
	cg, ok := g.(*capture.Game)
	if !ok {
		return nil, apperrors.ErrWrongGame
	}
	return cg, nil
}
