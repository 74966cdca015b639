// Package render draws a board for terminal players.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/fatih/color"
)

var (
	lightSquare  = color.New(color.BgHiWhite, color.FgBlack)
	darkSquare   = color.New(color.BgGreen, color.FgBlack)
	targetSquare = color.New(color.BgYellow, color.FgBlack)
	whitePiece   = color.New(color.Bold)
	labels       = color.New(color.FgHiBlack)
)

var symbols = map[model.PieceType]string{
	model.King:   "K",
	model.Queen:  "Q",
	model.Rook:   "R",
	model.Bishop: "B",
	model.Knight: "N",
	model.Pawn:   "P",
}

// Symbol returns the FEN letter for p, upper case for white.
func Symbol(p *model.Piece) string {
	if p == nil {
		return "."
	}
	s := symbols[p.Type]
	if p.Color == model.Black {
		return strings.ToLower(s)
	}
	return s
}

// Board writes b with row 0 on top. Squares in highlight are drawn as targets.
func Board(w io.Writer, b *model.Board, highlight []model.Square) error {
	marked := make(map[model.Square]bool, len(highlight))
	for _, sq := range highlight {
		marked[sq] = true
	}

	for row := 0; row < model.Rows; row++ {
		if _, err := labels.Fprintf(w, "%d ", model.Rows-row); err != nil {
			return err
		}
		for col := 0; col < model.Cols; col++ {
			sq := model.NewSquare(row, col)
			bg := lightSquare
			switch {
			case marked[sq]:
				bg = targetSquare
			case (row+col)%2 == 1:
				bg = darkSquare
			}
			cell := " " + Symbol(b.Squares[sq]) + " "
			if p := b.Squares[sq]; p != nil && p.Color == model.White {
				cell = whitePiece.Sprint(cell)
			}
			if _, err := bg.Fprint(w, cell); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := labels.Fprintln(w, "   a  b  c  d  e  f  g  h")
	return err
}

// Status writes a one-line summary of whose move it is or who won.
func Status(w io.Writer, s model.GameState) error {
	if s.IsOver {
		_, err := color.New(color.FgRed, color.Bold).Fprintf(w, "%s won!\n", capitalize(string(s.Winner)))
		return err
	}
	_, err := fmt.Fprintf(w, "%s to move\n", capitalize(string(s.ToMove)))
	return err
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
