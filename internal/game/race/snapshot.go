package race

import "github.com/palemoky/secret-duel/internal/game"

// Snapshot 下发给双方的飞行棋局面
type Snapshot struct {
	Kind          game.Kind          `json:"kind"`
	Tokens        map[string][]Token `json:"tokens"`
	Offsets       map[string]int     `json:"offsets"`
	TurnOrder     []string           `json:"turnOrder"`
	TurnIndex     int                `json:"turnIndex"`
	CurrentPlayer string             `json:"currentPlayer"`
	LastRoll      int                `json:"lastRoll,omitempty"`
	Status        game.Status        `json:"status"`
	Winner        string             `json:"winner,omitempty"`
}

// Snapshot 生成当前局面
func (g *Game) Snapshot() any {
	return g.State()
}

// State 生成强类型的当前局面
func (g *Game) State() Snapshot {
	order := g.turns.Order()
	snap := Snapshot{
		Kind:          game.KindRace,
		Tokens:        make(map[string][]Token, len(order)),
		Offsets:       make(map[string]int, len(order)),
		TurnOrder:     order,
		TurnIndex:     g.turns.Index(),
		CurrentPlayer: g.turns.Current(),
		LastRoll:      g.lastRoll,
		Status:        g.status,
		Winner:        g.winner,
	}
	for _, id := range order {
		snap.Tokens[id] = g.Tokens(id)
		snap.Offsets[id] = g.cell(id, 0)
	}
	return snap
}
