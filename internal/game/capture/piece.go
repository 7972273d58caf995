package capture

// Size 棋盘边长
const Size = 8

// Color 棋子颜色
type Color byte

const (
	NoColor Color = 0
	White   Color = 'w'
	Black   Color = 'b'
)

// Opposite 对方颜色
func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	if c == NoColor {
		return ""
	}
	return string(c)
}

// PieceType 棋子类型
type PieceType byte

const (
	Pawn   PieceType = 'P'
	Knight PieceType = 'N'
	Bishop PieceType = 'B'
	Rook   PieceType = 'R'
	Queen  PieceType = 'Q'
	King   PieceType = 'K'
)

// Piece 棋子，零值表示空格
type Piece struct {
	Color Color
	Type  PieceType
}

// Empty 是否为空格
func (p Piece) Empty() bool { return p.Color == NoColor }

// String 编码为 "wP"、"bK" 形式，空格为 ""
func (p Piece) String() string {
	if p.Empty() {
		return ""
	}
	return string([]byte{byte(p.Color), byte(p.Type)})
}

// Square 棋盘坐标，R 为行，C 为列
type Square struct {
	R int `json:"r"`
	C int `json:"c"`
}

// Valid 坐标是否在棋盘内
func (s Square) Valid() bool {
	return s.R >= 0 && s.R < Size && s.C >= 0 && s.C < Size
}

// Board 8×8 棋盘，黑方在 0/1 行，白方在 6/7 行
type Board [Size][Size]Piece

var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard 标准初始局面
func NewBoard() Board {
	var b Board
	for c := range Size {
		b[0][c] = Piece{Color: Black, Type: backRank[c]}
		b[1][c] = Piece{Color: Black, Type: Pawn}
		b[6][c] = Piece{Color: White, Type: Pawn}
		b[7][c] = Piece{Color: White, Type: backRank[c]}
	}
	return b
}

// At 取坐标上的棋子，越界返回空
func (b *Board) At(s Square) Piece {
	if !s.Valid() {
		return Piece{}
	}
	return b[s.R][s.C]
}

// Encode 编码为字符串矩阵，便于客户端渲染
func (b *Board) Encode() [][]string {
	rows := make([][]string, Size)
	for r := range Size {
		rows[r] = make([]string, Size)
		for c := range Size {
			rows[r][c] = b[r][c].String()
		}
	}
	return rows
}
