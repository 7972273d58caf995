// Package race 实现两人飞行棋（Ludo 类）规则。
//
// 每名玩家 4 枚棋子，Steps 表示相对于自己起点的步数：
//
//	-1      停机坪（未出发）
//	0..50   在 52 格公共跑道上
//	100     已到达终点
//
// 只有掷出 6 才能出发到 0；Steps+点数 恰好等于 51 时到达终点，超过则非法。
// 非法走法同样消耗本次点数，视作空走一步。掷出 6 或吃子可以再掷一次。
package race

import (
	"github.com/palemoky/secret-duel/internal/apperrors"
	"github.com/palemoky/secret-duel/internal/game"
	"github.com/palemoky/secret-duel/internal/game/dice"
	"github.com/palemoky/secret-duel/internal/game/turn"
)

const (
	TokensPerPlayer = 4
	TrackLength     = 52

	StepsHome     = -1
	StepsFinished = 100
	// FinishLine 从起点走到终点需要的步数
	FinishLine = 51

	entryRoll = dice.Faces
)

// seatOffsets 四人棋盘的起点偏移，两人局使用对角的 0 号和 2 号位
var seatOffsets = [2]int{0, 26}

// Token 棋子
type Token struct {
	Steps int `json:"steps"`
}

// InYard 是否在停机坪
func (t Token) InYard() bool { return t.Steps == StepsHome }

// OnTrack 是否在跑道上
func (t Token) OnTrack() bool { return t.Steps >= 0 && t.Steps < FinishLine }

// Finished 是否已到达终点
func (t Token) Finished() bool { return t.Steps == StepsFinished }

// RollResult 掷骰结果
type RollResult struct {
	Value   int
	Movable []int // 本次点数下可合法移动的棋子编号
}

// MoveResult 走子结果
type MoveResult struct {
	Token     int
	Steps     int  // 移动后的步数
	Captured  int  // 被吃掉的对方棋子数
	ExtraRoll bool // 是否获得再掷一次
	Outcome   game.Outcome
}

// Game 飞行棋对局
type Game struct {
	turns    *turn.Controller
	roller   dice.Roller
	tokens   map[string]*[TokensPerPlayer]Token
	lastRoll int // 0 表示没有待用的点数
	status   game.Status
	winner   string
}

var _ game.Game = (*Game)(nil)

// New 以入座顺序创建对局，所有棋子都在停机坪
func New(order []string, roller dice.Roller) *Game {
	g := &Game{
		turns:  turn.NewController(order),
		roller: roller,
		tokens: make(map[string]*[TokensPerPlayer]Token, len(order)),
		status: game.StatusActive,
	}
	for _, id := range order {
		var ts [TokensPerPlayer]Token
		for i := range ts {
			ts[i].Steps = StepsHome
		}
		g.tokens[id] = &ts
	}
	return g
}

func (g *Game) Kind() game.Kind { return game.KindRace }
func (g *Game) Status() game.Status { return g.status }
func (g *Game) Winner() string { return g.winner }
func (g *Game) CurrentPlayer() string { return g.turns.Current() }
func (g *Game) TurnIndex() int { return g.turns.Index() }
func (g *Game) LastRoll() int { return g.lastRoll }
func (g *Game) Turns() *turn.Controller { return g.turns }

// Tokens 返回玩家棋子的副本
func (g *Game) Tokens(playerID string) []Token {
	ts, ok := g.tokens[playerID]
	if !ok {
		return nil
	}
	return append([]Token(nil), ts[:]...)
}

// Roll 掷骰子
func (g *Game) Roll(playerID string) (RollResult, error) {
	if g.status != game.StatusActive {
		return RollResult{}, apperrors.ErrGameOver
	}
	if err := g.turns.Check(playerID); err != nil {
		return RollResult{}, err
	}
	if g.lastRoll != 0 {
		return RollResult{}, apperrors.ErrRollAlreadyPending
	}

	g.lastRoll = g.roller.Roll()
	return RollResult{Value: g.lastRoll, Movable: g.Movable(playerID, g.lastRoll)}, nil
}

// Move 使用待用点数移动第 tokenIndex 枚棋子
//
// 编号越界不消耗点数；规则上走不了的棋子返回 ErrIllegalMove，但点数被消耗，
// 回合按空走处理（点数为 6 时仍可再掷）。
func (g *Game) Move(playerID string, tokenIndex int) (MoveResult, error) {
	if g.status != game.StatusActive {
		return MoveResult{}, apperrors.ErrGameOver
	}
	if err := g.turns.Check(playerID); err != nil {
		return MoveResult{}, err
	}
	if g.lastRoll == 0 {
		return MoveResult{}, apperrors.ErrNoRollPending
	}
	if tokenIndex < 0 || tokenIndex >= TokensPerPlayer {
		return MoveResult{}, apperrors.ErrInvalidTokenIndex
	}

	roll := g.lastRoll
	g.lastRoll = 0
	tok := &g.tokens[playerID][tokenIndex]
	result := MoveResult{Token: tokenIndex, Steps: tok.Steps}

	next, ok := advance(tok.Steps, roll)
	if !ok {
		result.ExtraRoll = g.endTurn(roll, false)
		return result, apperrors.ErrIllegalMove
	}

	tok.Steps = next
	result.Steps = next
	if tok.OnTrack() {
		result.Captured = g.capture(playerID, g.cell(playerID, next))
	}

	if g.allFinished(playerID) {
		g.status = game.StatusOver
		g.winner = playerID
		result.Outcome = game.Outcome{
			Over:   true,
			Winner: playerID,
			Loser:  g.turns.Opponent(playerID),
			Reason: game.ReasonWin,
		}
		return result, nil
	}

	result.ExtraRoll = g.endTurn(roll, result.Captured > 0)
	return result, nil
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
	g.lastRoll = 0
	g.winner = g.turns.Opponent(playerID)
	return game.Outcome{Over: true, Winner: g.winner, Loser: playerID, Reason: game.ReasonResign}, nil
}

// Movable 在给定点数下可合法移动的棋子编号
func (g *Game) Movable(playerID string, roll int) []int {
	ts, ok := g.tokens[playerID]
	if !ok {
		return nil
	}
	movable := make([]int, 0, TokensPerPlayer)
	for i, t := range ts {
		if _, ok := advance(t.Steps, roll); ok {
			movable = append(movable, i)
		}
	}
	return movable
}

// Counts 统计玩家棋子分布，三者之和恒为 4
func (g *Game) Counts(playerID string) (home, track, finished int) {
	ts, ok := g.tokens[playerID]
	if !ok {
		return 0, 0, 0
	}
	for _, t := range ts {
		switch {
		case t.InYard():
			home++
		case t.Finished():
			finished++
		case t.OnTrack():
			track++
		}
	}
	return home, track, finished
}

// advance 计算走 roll 步后的位置
func advance(steps, roll int) (int, bool) {
	if roll < 1 || roll > dice.Faces {
		return steps, false
	}
	switch {
	case steps == StepsHome:
		if roll == entryRoll {
			return 0, true
		}
		return steps, false
	case steps == StepsFinished:
		return steps, false
	}

	next := steps + roll
	switch {
	case next < FinishLine:
		return next, true
	case next == FinishLine:
		return StepsFinished, true
	default:
		return steps, false
	}
}

// endTurn 结束一次走子，返回是否由同一玩家再掷
func (g *Game) endTurn(roll int, captured bool) bool {
	if roll == entryRoll || captured {
		return true
	}
	g.turns.Advance()
	return false
}

// cell 跑道上的绝对格子编号
func (g *Game) cell(playerID string, steps int) int {
	seat := g.turns.Seat(playerID)
	offset := 0
	if seat >= 0 && seat < len(seatOffsets) {
		offset = seatOffsets[seat]
	}
	return (offset + steps) % TrackLength
}

// capture 把落在 cell 上的对方棋子全部打回停机坪
func (g *Game) capture(playerID string, cell int) int {
	captured := 0
	for id, ts := range g.tokens {
		if id == playerID {
			continue
		}
		for i := range ts {
			if ts[i].OnTrack() && g.cell(id, ts[i].Steps) == cell {
				ts[i].Steps = StepsHome
				captured++
			}
		}
	}
	return captured
}

func (g *Game) allFinished(playerID string) bool {
	for _, t := range g.tokens[playerID] {
		if !t.Finished() {
			return false
		}
	}
	return true
}
