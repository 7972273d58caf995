package capture

// pawnDirection 兵的前进方向：白方向 0 行，黑方向 7 行
func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// pawnStartRow 兵的初始行
func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// Legal 判断棋子从 from 走到 to 是否合法（不考虑将军）
func (b *Board) Legal(from, to Square) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	piece := b.At(from)
	if piece.Empty() {
		return false
	}
	target := b.At(to)
	if target.Color == piece.Color {
		return false
	}

	dr, dc := to.R-from.R, to.C-from.C
	adr, adc := abs(dr), abs(dc)

	switch piece.Type {
	case Pawn:
		dir := pawnDirection(piece.Color)
		switch {
		case dc == 0 && dr == dir:
			return target.Empty()
		case dc == 0 && dr == 2*dir && from.R == pawnStartRow(piece.Color):
			mid := Square{R: from.R + dir, C: from.C}
			return target.Empty() && b.At(mid).Empty()
		case adc == 1 && dr == dir:
			return !target.Empty()
		}
		return false
	case Knight:
		return (adr == 2 && adc == 1) || (adr == 1 && adc == 2)
	case Bishop:
		return adr == adc && b.clearPath(from, to)
	case Rook:
		return (dr == 0 || dc == 0) && b.clearPath(from, to)
	case Queen:
		return (adr == adc || dr == 0 || dc == 0) && b.clearPath(from, to)
	case King:
		return max(adr, adc) == 1
	}
	return false
}

// LegalMoves 列出 from 上棋子的全部合法落点
func (b *Board) LegalMoves(from Square) []Square {
	var moves []Square
	for r := range Size {
		for c := range Size {
			to := Square{R: r, C: c}
			if b.Legal(from, to) {
				moves = append(moves, to)
			}
		}
	}
	return moves
}

// clearPath 直线/斜线上 from 与 to 之间的格子是否全部为空
func (b *Board) clearPath(from, to Square) bool {
	dr, dc := to.R-from.R, to.C-from.C
	steps := max(abs(dr), abs(dc))
	stepR, stepC := sign(dr), sign(dc)
	for i := 1; i < steps; i++ {
		if !b[from.R+stepR*i][from.C+stepC*i].Empty() {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
