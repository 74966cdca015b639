package model

import (
	"fmt"

	"github.com/notnil/chess"
)

var (
	fromChessType = map[chess.PieceType]PieceType{
		chess.King:   King,
		chess.Queen:  Queen,
		chess.Rook:   Rook,
		chess.Bishop: Bishop,
		chess.Knight: Knight,
		chess.Pawn:   Pawn,
	}
	toChessPiece = map[Piece]chess.Piece{
		{King, White}: chess.WhiteKing, {Queen, White}: chess.WhiteQueen,
		{Rook, White}: chess.WhiteRook, {Bishop, White}: chess.WhiteBishop,
		{Knight, White}: chess.WhiteKnight, {Pawn, White}: chess.WhitePawn,
		{King, Black}: chess.BlackKing, {Queen, Black}: chess.BlackQueen,
		{Rook, Black}: chess.BlackRook, {Bishop, Black}: chess.BlackBishop,
		{Knight, Black}: chess.BlackKnight, {Pawn, Black}: chess.BlackPawn,
	}
)

// ParseFEN decodes a FEN string into a board and the side to move. Castling,
// en passant and clock fields must be well formed but are otherwise ignored.
func ParseFEN(fen string) (*Board, Color, error) {
	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(fen)); err != nil {
		return nil, NoColor, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	board := &Board{}
	for sq, p := range pos.Board().SquareMap() {
		kind, ok := fromChessType[p.Type()]
		if !ok {
			continue
		}
		color := White
		if p.Color() == chess.Black {
			color = Black
		}
		board.Squares[fromChessSquare(sq)] = &Piece{Type: kind, Color: color}
	}

	turn := White
	if pos.Turn() == chess.Black {
		turn = Black
	}
	return board, turn, nil
}

// FEN encodes the piece placement field, e.g. "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR".
func (b *Board) FEN() string {
	m := make(map[chess.Square]chess.Piece)
	for i, p := range b.Squares {
		if p == nil {
			continue
		}
		m[toChessSquare(Square(i))] = toChessPiece[*p]
	}
	return chess.NewBoard(m).String()
}

// chess.Square counts from a1 upward, our rows count down from rank 8.
func fromChessSquare(sq chess.Square) Square {
	return NewSquare(Rows-1-int(sq.Rank()), int(sq.File()))
}

func toChessSquare(sq Square) chess.Square {
	return chess.Square((Rows-1-sq.Row())*Cols + sq.Col())
}
