// Package capture 实现简化象棋：标准走法，无王车易位、吃过路兵、升变与将军判定，吃掉对方王即获胜。
package capture

import (
	"github.com/palemoky/secret-duel/internal/apperrors"
	"github.com/palemoky/secret-duel/internal/game"
	"github.com/palemoky/secret-duel/internal/game/turn"
)

// Move 一步棋
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// MoveResult 走棋结果
type MoveResult struct {
	Piece    Piece
	Captured Piece
	Outcome  game.Outcome
}

// Game 象棋对局
type Game struct {
	turns    *turn.Controller
	board    Board
	colorOf  map[string]Color
	lastMove *Move
	status   game.Status
	winner   string
}

var _ game.Game = (*Game)(nil)

// New 以入座顺序创建对局，先手执白
func New(order []string) *Game {
	g := &Game{
		turns:   turn.NewController(order),
		board:   NewBoard(),
		colorOf: make(map[string]Color, len(order)),
		status:  game.StatusActive,
	}
	colors := [...]Color{White, Black}
	for i, id := range order {
		if i < len(colors) {
			g.colorOf[id] = colors[i]
		}
	}
	return g
}

func (g *Game) Kind() game.Kind { return game.KindCapture }
func (g *Game) Status() game.Status { return g.status }
func (g *Game) Winner() string { return g.winner }
func (g *Game) CurrentPlayer() string { return g.turns.Current() }
func (g *Game) TurnIndex() int { return g.turns.Index() }

// Board 返回棋盘副本
func (g *Game) Board() Board { return g.board }

// ColorOf 玩家执子颜色
func (g *Game) ColorOf(playerID string) Color { return g.colorOf[playerID] }

// LegalMoves 当前行棋方的全部合法走法，对局结束后为空
func (g *Game) LegalMoves() []Move {
	if g.status != game.StatusActive {
		return nil
	}
	color := g.colorOf[g.turns.Current()]
	var moves []Move
	for r := range Size {
		for c := range Size {
			from := Square{R: r, C: c}
			if g.board.At(from).Color != color {
				continue
			}
			for _, to := range g.board.LegalMoves(from) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// Move 走棋，拒绝时棋盘保持不变
func (g *Game) Move(playerID string, from, to Square) (MoveResult, error) {
	if g.status != game.StatusActive {
		return MoveResult{}, apperrors.ErrGameOver
	}
	if err := g.turns.Check(playerID); err != nil {
		return MoveResult{}, err
	}
	if !from.Valid() || !to.Valid() {
		return MoveResult{}, apperrors.ErrIllegalMove
	}

	piece := g.board.At(from)
	if piece.Empty() {
		return MoveResult{}, apperrors.ErrNoPieceAtSource
	}
	if piece.Color != g.colorOf[playerID] {
		return MoveResult{}, apperrors.ErrNotYourPiece
	}
	if !g.board.Legal(from, to) {
		return MoveResult{}, apperrors.ErrIllegalMove
	}

	captured := g.board.At(to)
	g.board[to.R][to.C] = piece
	g.board[from.R][from.C] = Piece{}
	g.lastMove = &Move{From: from, To: to}
	g.turns.Advance()

	result := MoveResult{Piece: piece, Captured: captured}
	if captured.Type == King && !captured.Empty() {
		g.status = game.StatusOver
		g.winner = playerID
		result.Outcome = game.Outcome{
			Over:   true,
			Winner: playerID,
			Loser:  g.turns.Opponent(playerID),
			Reason: game.ReasonWin,
		}
	}
	return result, nil
}

// Resign 认输，不受回合限制
func (g *Game) Resign(playerID string) (game.Outcome, error) {
	return g.Concede(playerID)
}

// Concede 认输或离开，对手获胜
func (g *Game) Concede(playerID string) (game.Outcome, error) {
	if g.status != game.StatusActive {
		return game.Outcome{}, apperrors.ErrGameOver
	}
	if !g.turns.Contains(playerID) {
		return game.Outcome{}, apperrors.ErrNotInRoom
	}

	g.status = game.StatusOver
	g.winner = g.turns.Opponent(playerID)
	return game.Outcome{Over: true, Winner: g.winner, Loser: playerID, Reason: game.ReasonResign}, nil
}
