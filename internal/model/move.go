package model

// MoveRequest is a proposed relocation. The moving piece's kind and color are
// read from the board, never from the client.
type MoveRequest struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// MoveResult describes an accepted move.
type MoveResult struct {
	Piece         Piece  `json:"piece"`
	From          Square `json:"from"`
	To            Square `json:"to"`
	CapturedPiece *Piece `json:"capturedPiece"`
	GameOver      bool   `json:"gameOver"`
	Winner        Color  `json:"winner"`
}
