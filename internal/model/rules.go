package model

// IsLegal reports whether a piece of the given kind and color may move from
// start to end on b. It only reads the board. Callers are expected to have
// checked that start holds that piece and that it is that side's turn.
func IsLegal(b *Board, start, end Square, kind PieceType, color Color) bool {
	if !start.Valid() || !end.Valid() || start == end {
		return false
	}

	switch kind {
	case Pawn:
		return legalPawn(b, start, end, color)
	case Rook:
		return legalRook(b, start, end, color)
	case Knight:
		return legalKnight(b, start, end, color)
	case Bishop:
		return legalBishop(b, start, end, color)
	case Queen:
		return legalRook(b, start, end, color) || legalBishop(b, start, end, color)
	case King:
		return legalKing(b, start, end, color)
	default:
		return false
	}
}

func legalPawn(b *Board, start, end Square, color Color) bool {
	dir, homeRow := -1, 6
	switch color {
	case White:
	case Black:
		dir, homeRow = 1, 1
	default:
		return false
	}
	rowDiff := end.Row() - start.Row()
	colDiff := end.Col() - start.Col()

	switch {
	case colDiff == 0 && rowDiff == dir:
		return b.IsEmpty(end)
	case colDiff == 0 && rowDiff == 2*dir:
		between := NewSquare(start.Row()+dir, start.Col())
		return start.Row() == homeRow && b.IsEmpty(end) && b.IsEmpty(between)
	case abs(colDiff) == 1 && rowDiff == dir:
		return b.IsColor(end, color.Opponent())
	default:
		// en passant is not part of this rule set
		return false
	}
}

func legalRook(b *Board, start, end Square, color Color) bool {
	if (start.Row() == end.Row()) == (start.Col() == end.Col()) {
		return false
	}
	if b.IsColor(end, color) {
		return false
	}
	return pathClear(b, start, end)
}

func legalBishop(b *Board, start, end Square, color Color) bool {
	dr, dc := abs(end.Row()-start.Row()), abs(end.Col()-start.Col())
	if dr == 0 || dr != dc {
		return false
	}
	if b.IsColor(end, color) {
		return false
	}
	return pathClear(b, start, end)
}

func legalKnight(b *Board, start, end Square, color Color) bool {
	dr, dc := abs(end.Row()-start.Row()), abs(end.Col()-start.Col())
	if !(dr == 2 && dc == 1) && !(dr == 1 && dc == 2) {
		return false
	}
	return !b.IsColor(end, color)
}

// legalKing allows any single step. Moving into an attacked square is fine.
func legalKing(b *Board, start, end Square, color Color) bool {
	dr, dc := abs(end.Row()-start.Row()), abs(end.Col()-start.Col())
	if dr > 1 || dc > 1 {
		return false
	}
	return !b.IsColor(end, color)
}

// pathClear checks every square strictly between start and end along a rank,
// file or diagonal. Anything else is reported as blocked.
func pathClear(b *Board, start, end Square) bool {
	dr, dc := end.Row()-start.Row(), end.Col()-start.Col()
	steps := max(abs(dr), abs(dc))
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return false
	}
	rowStep, colStep := sign(dr), sign(dc)
	row, col := start.Row(), start.Col()
	for i := 1; i < steps; i++ {
		row += rowStep
		col += colStep
		if !b.IsEmpty(NewSquare(row, col)) {
			return false
		}
	}
	return true
}

// LegalTargets lists, in ascending order, every square the occupant of from
// may move to. It is empty when from is empty or out of range.
func (b *Board) LegalTargets(from Square) []Square {
	targets := []Square{}
	piece, err := b.Occupant(from)
	if err != nil || piece == nil {
		return targets
	}
	for sq := Square(0); sq < NumSquares; sq++ {
		if IsLegal(b, from, sq, piece.Type, piece.Color) {
			targets = append(targets, sq)
		}
	}
	return targets
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
