package model

import (
	"fmt"
	"strconv"
	"strings"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) Valid() bool {
	switch p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

// Color is a side of the board. The zero value means no side has moved yet.
type Color string

const (
	NoColor Color = ""
	White   Color = "white"
	Black   Color = "black"
)

func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols
)

// Square indexes the board row-major: row 0 is black's back rank, row 7 is white's.
type Square int

func NewSquare(row, col int) Square {
	return Square(row*Cols + col)
}

func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

func (s Square) Row() int {
	return int(s) / Cols
}

func (s Square) Col() int {
	return int(s) % Cols
}

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("#%d", int(s))
	}
	return fmt.Sprintf("%c%d", s.Col()+'a', Rows-s.Row())
}

type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// Board maps each square to its occupant, nil when empty.
type Board struct {
	Squares [NumSquares]*Piece `json:"squares"`
}

var backRank = [Cols]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	board := &Board{}
	for col := 0; col < Cols; col++ {
		board.Squares[NewSquare(0, col)] = &Piece{Type: backRank[col], Color: Black}
		board.Squares[NewSquare(1, col)] = &Piece{Type: Pawn, Color: Black}
		board.Squares[NewSquare(6, col)] = &Piece{Type: Pawn, Color: White}
		board.Squares[NewSquare(7, col)] = &Piece{Type: backRank[col], Color: White}
	}
	return board
}

// Occupant returns the piece on sq, or nil when the square is empty.
func (b *Board) Occupant(sq Square) (*Piece, error) {
	if !sq.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, int(sq))
	}
	return b.Squares[sq], nil
}

func (b *Board) IsEmpty(sq Square) bool {
	p, err := b.Occupant(sq)
	return err == nil && p == nil
}

// IsColor reports whether sq holds a piece of color c.
func (b *Board) IsColor(sq Square, c Color) bool {
	p, err := b.Occupant(sq)
	return err == nil && p != nil && p.Color == c
}

func (b *Board) Place(sq Square, piece Piece) error {
	if !sq.Valid() {
		return fmt.Errorf("%w: %d", ErrOutOfRange, int(sq))
	}
	b.Squares[sq] = &piece
	return nil
}

// Remove empties sq and returns whatever stood there.
func (b *Board) Remove(sq Square) (*Piece, error) {
	p, err := b.Occupant(sq)
	if err != nil {
		return nil, err
	}
	b.Squares[sq] = nil
	return p, nil
}

func (b *Board) Clone() *Board {
	c := &Board{}
	for i, p := range b.Squares {
		if p != nil {
			cp := *p
			c.Squares[i] = &cp
		}
	}
	return c
}

// HasKing reports whether a king of color c is still on the board.
func (b *Board) HasKing(c Color) bool {
	for _, p := range b.Squares {
		if p != nil && p.Type == King && p.Color == c {
			return true
		}
	}
	return false
}

// ParseSquare accepts either a raw index ("52") or a coordinate ("e2").
func ParseSquare(s string) (Square, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		sq := Square(n)
		if !sq.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
		}
		return sq, nil
	}
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return NewSquare(Rows-int(s[1]-'0'), int(s[0]-'a')), nil
}
