package model

import "errors"

var (
	ErrOutOfRange    = errors.New("square out of range")
	ErrInvalidFEN    = errors.New("invalid fen")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrIllegalMove   = errors.New("invalid move, not legal")
	ErrGameOver      = errors.New("game is over")
	ErrGameFull      = errors.New("game is full")
	ErrNotAuthorized = errors.New("not authorized to join this game")
	ErrNotAPlayer    = errors.New("player not in game")
	ErrNotYourPiece  = errors.New("piece belongs to the other side")
)
