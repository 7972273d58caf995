package capture

import "github.com/palemoky/secret-duel/internal/game"

// Snapshot 下发给双方的象棋局面
type Snapshot struct {
	Kind          game.Kind         `json:"kind"`
	Board         [][]string        `json:"board"`
	ColorOf       map[string]string `json:"colorOf"`
	Turn          string            `json:"turn"` // 当前行棋方颜色
	TurnOrder     []string          `json:"turnOrder"`
	TurnIndex     int               `json:"turnIndex"`
	CurrentPlayer string            `json:"currentPlayer"`
	LastMove      *Move             `json:"lastMove,omitempty"`
	LegalMoves    []Move            `json:"legalMoves,omitempty"` // 当前行棋方可走的着法，仅作提示
	Status        game.Status       `json:"status"`
	Winner        string            `json:"winner,omitempty"`
}

// Snapshot 生成当前局面
func (g *Game) Snapshot() any {
	return g.State()
}

// State 生成强类型的当前局面
func (g *Game) State() Snapshot {
	colorOf := make(map[string]string, len(g.colorOf))
	for id, c := range g.colorOf {
		colorOf[id] = c.String()
	}

	var lastMove *Move
	if g.lastMove != nil {
		m := *g.lastMove
		lastMove = &m
	}

	return Snapshot{
		Kind:          game.KindCapture,
		Board:         g.board.Encode(),
		ColorOf:       colorOf,
		Turn:          g.colorOf[g.turns.Current()].String(),
		TurnOrder:     g.turns.Order(),
		TurnIndex:     g.turns.Index(),
		CurrentPlayer: g.turns.Current(),
		LastMove:      lastMove,
		LegalMoves:    g.LegalMoves(),
		Status:        g.status,
		Winner:        g.winner,
	}
}
