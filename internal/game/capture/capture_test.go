package capture

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/secret-duel/internal/apperrors"
	"github.com/palemoky/secret-duel/internal/game"
)

func sq(r, c int) Square { return Square{R: r, C: c} }

func TestNew_InitialPosition(t *testing.T) {
	t.Parallel()

	g := New([]string{"A", "B"})
	snap := g.State()

	assert.Equal(t, White, g.ColorOf("A"))
	assert.Equal(t, Black, g.ColorOf("B"))
	assert.Equal(t, map[string]string{"A": "w", "B": "b"}, snap.ColorOf)
	assert.Equal(t, "w", snap.Turn)
	assert.Equal(t, "A", snap.CurrentPlayer)

	assert.Equal(t, []string{"bR", "bN", "bB", "bQ", "bK", "bB", "bN", "bR"}, snap.Board[0])
	assert.Equal(t, []string{"wR", "wN", "wB", "wQ", "wK", "wB", "wN", "wR"}, snap.Board[7])
	for c := range Size {
		assert.Equal(t, "bP", snap.Board[1][c])
		assert.Equal(t, "wP", snap.Board[6][c])
		for r := 2; r < 6; r++ {
			assert.Empty(t, snap.Board[r][c])
		}
	}
}

func TestState_LegalMovesHint(t *testing.T) {
	t.Parallel()

	g := New([]string{"A", "B"})

	// 16 pawn moves and 4 knight moves for white at the start
	moves := g.State().LegalMoves
	assert.Len(t, moves, 20)
	assert.Contains(t, moves, Move{From: sq(7, 1), To: sq(5, 0)})
	assert.NotContains(t, moves, Move{From: sq(1, 4), To: sq(3, 4)})

	_, err := g.Move("A", sq(6, 4), sq(4, 4))
	require.NoError(t, err)
	moves = g.State().LegalMoves
	assert.Len(t, moves, 20)
	assert.Contains(t, moves, Move{From: sq(1, 4), To: sq(3, 4)})

	_, err = g.Resign("B")
	require.NoError(t, err)
	assert.Empty(t, g.State().LegalMoves)
}

func TestMove_PawnDoubleAdvance(t *testing.T) {
	t.Parallel()

	g := New([]string{"A", "B"})

	res, err := g.Move("A", sq(6, 4), sq(4, 4))
	require.NoError(t, err)
	assert.Equal(t, Piece{Color: White, Type: Pawn}, res.Piece)
	assert.True(t, res.Captured.Empty())

	board := g.Board()
	assert.True(t, board[6][4].Empty())
	assert.Equal(t, Piece{Color: White, Type: Pawn}, board[4][4])
	assert.Equal(t, "B", g.CurrentPlayer())
	assert.Equal(t, 1, g.TurnIndex())
	assert.Equal(t, &Move{From: sq(6, 4), To: sq(4, 4)}, g.State().LastMove)
}

func TestMove_NotYourTurnLeavesBoard(t *testing.T) {
	t.Parallel()

	g := New([]string{"A", "B"})
	_, err := g.Move("A", sq(6, 4), sq(4, 4))
	require.NoError(t, err)
	before := g.Board()

	_, err = g.Move("A", sq(6, 3), sq(5, 3))
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)
	_, err = g.Move("stranger", sq(1, 3), sq(2, 3))
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	assert.Equal(t, before, g.Board())
	assert.Equal(t, "B", g.CurrentPlayer())
}

func TestMove_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to Square
		err      error
	}{
		{"empty source", sq(4, 4), sq(3, 4), apperrors.ErrNoPieceAtSource},
		{"opponent piece", sq(1, 0), sq(2, 0), apperrors.ErrNotYourPiece},
		{"source off board", sq(8, 0), sq(7, 0), apperrors.ErrIllegalMove},
		{"destination off board", sq(6, 0), sq(6, -1), apperrors.ErrIllegalMove},
		{"negative coordinates", sq(-1, -1), sq(0, 0), apperrors.ErrIllegalMove},
		{"same square", sq(6, 0), sq(6, 0), apperrors.ErrIllegalMove},
		{"pawn triple step", sq(6, 0), sq(3, 0), apperrors.ErrIllegalMove},
		{"pawn backwards", sq(6, 0), sq(7, 0), apperrors.ErrIllegalMove},
		{"pawn diagonal onto empty", sq(6, 0), sq(5, 1), apperrors.ErrIllegalMove},
		{"rook blocked", sq(7, 0), sq(4, 0), apperrors.ErrIllegalMove},
		{"bishop blocked", sq(7, 2), sq(5, 4), apperrors.ErrIllegalMove},
		{"capture own piece", sq(7, 1), sq(6, 3), apperrors.ErrIllegalMove},
		{"king two squares", sq(7, 4), sq(5, 4), apperrors.ErrIllegalMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := New([]string{"A", "B"})
			before := g.Board()

			_, err := g.Move("A", tt.from, tt.to)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, before, g.Board())
			assert.Equal(t, "A", g.CurrentPlayer())
		})
	}
}

func TestBoard_Legal(t *testing.T) {
	t.Parallel()

	var b Board
	b[4][4] = Piece{Color: White, Type: Queen}
	b[4][6] = Piece{Color: Black, Type: Pawn}
	b[2][2] = Piece{Color: White, Type: Pawn}

	assert.True(t, b.Legal(sq(4, 4), sq(4, 6)), "queen captures along rank")
	assert.False(t, b.Legal(sq(4, 4), sq(4, 7)), "queen cannot jump")
	assert.True(t, b.Legal(sq(4, 4), sq(3, 3)))
	assert.False(t, b.Legal(sq(4, 4), sq(2, 2)), "own piece")
	assert.False(t, b.Legal(sq(4, 4), sq(1, 1)), "blocked diagonal")
	assert.False(t, b.Legal(sq(4, 4), sq(2, 3)), "queen has no knight jump")

	b[0][1] = Piece{Color: Black, Type: Knight}
	b[1][1] = Piece{Color: Black, Type: Pawn}
	b[1][3] = Piece{Color: Black, Type: Pawn}
	assert.True(t, b.Legal(sq(0, 1), sq(2, 0)), "knight jumps over pieces")
	assert.True(t, b.Legal(sq(0, 1), sq(2, 2)), "knight captures opponent pawn")
	assert.False(t, b.Legal(sq(0, 1), sq(1, 3)), "knight cannot take own pawn")

	// black pawn on its start row
	b[1][5] = Piece{Color: Black, Type: Pawn}
	assert.True(t, b.Legal(sq(1, 5), sq(3, 5)))
	b[2][5] = Piece{Color: White, Type: Rook}
	assert.False(t, b.Legal(sq(1, 5), sq(3, 5)), "double step needs empty middle")
	assert.False(t, b.Legal(sq(1, 5), sq(2, 5)), "pawn cannot capture straight")
	assert.True(t, b.Legal(sq(1, 1), sq(2, 2)), "black pawn captures diagonally forward")
	assert.False(t, b.Legal(sq(1, 3), sq(2, 4)), "diagonal needs an opponent")

	b[3][0] = Piece{Color: White, Type: Pawn}
	b[2][1] = Piece{Color: Black, Type: Pawn}
	assert.True(t, b.Legal(sq(3, 0), sq(2, 1)), "white pawn captures diagonally forward")
	assert.False(t, b.Legal(sq(3, 0), sq(1, 0)), "double step only from start row")
}

func TestBoard_LegalMovesInitial(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	assert.ElementsMatch(t, []Square{sq(5, 0), sq(5, 2)}, b.LegalMoves(sq(7, 1)))
	assert.ElementsMatch(t, []Square{sq(5, 4), sq(4, 4)}, b.LegalMoves(sq(6, 4)))
	assert.Empty(t, b.LegalMoves(sq(7, 0)))
	assert.Empty(t, b.LegalMoves(sq(7, 3)))
	assert.Empty(t, b.LegalMoves(sq(4, 4)))
}

func TestMove_KingCaptureEndsGame(t *testing.T) {
	t.Parallel()

	g := New([]string{"A", "B"})
	g.board = Board{}
	g.board[7][4] = Piece{Color: White, Type: King}
	g.board[0][4] = Piece{Color: Black, Type: King}
	g.board[5][4] = Piece{Color: White, Type: Rook}

	res, err := g.Move("A", sq(5, 4), sq(0, 4))
	require.NoError(t, err)
	assert.Equal(t, Piece{Color: Black, Type: King}, res.Captured)
	assert.True(t, res.Outcome.Over)
	assert.Equal(t, "A", res.Outcome.Winner)
	assert.Equal(t, "B", res.Outcome.Loser)
	assert.Equal(t, game.StatusOver, g.Status())
	assert.Equal(t, "A", g.Winner())

	_, err = g.Move("B", sq(7, 4), sq(6, 4))
	assert.ErrorIs(t, err, apperrors.ErrGameOver)
}

func TestResign(t *testing.T) {
	t.Parallel()

	g := New([]string{"A", "B"})

	// resign works regardless of whose turn it is
	out, err := g.Resign("B")
	require.NoError(t, err)
	assert.Equal(t, "A", out.Winner)
	assert.Equal(t, "B", out.Loser)
	assert.Equal(t, game.StatusOver, g.Status())

	_, err = g.Resign("A")
	assert.ErrorIs(t, err, apperrors.ErrGameOver)
}

func TestProperty_AcceptedMovesRelocatePiece(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(11, 13))
	g := New([]string{"A", "B"})

	for range 5000 {
		if g.Status() != game.StatusActive {
			g = New([]string{"A", "B"})
		}
		from := sq(rng.IntN(10)-1, rng.IntN(10)-1)
		to := sq(rng.IntN(10)-1, rng.IntN(10)-1)
		player := g.CurrentPlayer()
		if rng.IntN(4) == 0 {
			player = g.turns.Opponent(player)
		}

		before := g.Board()
		turnBefore := g.TurnIndex()
		moving := before.At(from)

		_, err := g.Move(player, from, to)
		after := g.Board()
		if err != nil {
			assert.Equal(t, before, after)
			assert.Equal(t, turnBefore, g.TurnIndex())
			continue
		}
		assert.Equal(t, moving, after.At(to))
		assert.True(t, after.At(from).Empty())
		assert.Equal(t, (turnBefore+1)%2, g.TurnIndex())
	}
}
