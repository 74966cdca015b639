package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/kingcapture-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex
	sent        uint64 // newest state version written, guarded by writeMu
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	version     uint64 // bumped on every accepted move
	connections *GameConnections
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          *Board         `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	IsOver         bool           `json:"isOver"`
	Winner         Color          `json:"winner"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *SimpleMove `json:"lastMove"`
}

// CapturedPieces lists pieces taken, keyed by the side that took them.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

type gameConfig struct {
	fen string
}

type GameOption func(*gameConfig)

// WithFEN starts the game from a custom position instead of the standard one.
func WithFEN(fen string) GameOption {
	return func(cfg *gameConfig) {
		cfg.fen = fen
	}
}

func NewGame(id string, opts ...GameOption) (*Game, error) {
	cfg := &gameConfig{}
	for _, f := range opts {
		f(cfg)
	}

	g := &Game{
		ID:          id,
		state:       newGameState(),
		connections: NewGameConnections(),
	}
	if cfg.fen == "" {
		g.nextTurn()
		return g, nil
	}

	board, turn, err := ParseFEN(cfg.fen)
	if err != nil {
		return nil, err
	}
	g.state.Board = board
	g.state.ToMove = turn
	if g.isGameOver() {
		return nil, fmt.Errorf("%w: both kings must be on the board", ErrInvalidFEN)
	}
	return g, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func newGameState() GameState {
	return GameState{
		Board:  NewBoard(),
		ToMove: NoColor,
		CapturedPieces: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
	}
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c := g.playerColor(playerID); c != NoColor {
		return c, nil
	}
	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{ID: playerID, Color: White}
		return White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{ID: playerID, Color: Black}
		return Black, nil
	}
	return NoColor, ErrGameFull
}

// PlayerColor returns the seat held by playerID, or NoColor for spectators.
func (g *Game) PlayerColor(playerID string) Color {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.playerColor(playerID)
}

func (g *Game) playerColor(playerID string) Color {
	switch {
	case playerID == "":
		return NoColor
	case g.state.Players.White.ID == playerID:
		return White
	case g.state.Players.Black.ID == playerID:
		return Black
	}
	return NoColor
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// State returns a copy of the game state that is safe to hand to other goroutines.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	s := g.state
	s.Board = g.state.Board.Clone()
	s.CapturedPieces.White = copyPieces(g.state.CapturedPieces.White)
	s.CapturedPieces.Black = copyPieces(g.state.CapturedPieces.Black)
	if g.state.LastMove != nil {
		lm := *g.state.LastMove
		s.LastMove = &lm
	}
	return s
}

// copyPieces never returns nil so captured lists encode as [] rather than null.
func copyPieces(src []Piece) []Piece {
	dst := make([]Piece, len(src))
	copy(dst, src)
	return dst
}

// LegalTargets lists the squares the piece on from may move to.
func (g *Game) LegalTargets(from Square) ([]Square, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !from.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, int(from))
	}
	return g.state.Board.LegalTargets(from), nil
}

func (g *Game) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isGameOver()
}

func (g *Game) isGameOver() bool {
	return !g.state.Board.HasKing(White) || !g.state.Board.HasKing(Black)
}

// IsGameOver reports whether mover has just taken the last king of the other side.
func IsGameOver(b *Board, mover Color) bool {
	return !b.HasKing(mover.Opponent())
}

// ApplyMove validates m against the side to move and, when legal, relocates
// the piece, records any capture and passes the turn.
func (g *Game) ApplyMove(m MoveRequest) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	result, err := g.applyMove(m)
	if err != nil {
		return MoveResult{}, err
	}
	go g.broadcastState(g.version, g.snapshot())
	return result, nil
}

// ApplyPlayerMove is ApplyMove for a seated player, who may only move pieces
// of their own color.
func (g *Game) ApplyPlayerMove(playerID string, m MoveRequest) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.playerColor(playerID)
	if seat == NoColor {
		return MoveResult{}, ErrNotAPlayer
	}
	if piece, err := g.state.Board.Occupant(m.From); err == nil && piece != nil && piece.Color != seat {
		return MoveResult{}, ErrNotYourPiece
	}

	result, err := g.applyMove(m)
	if err != nil {
		return MoveResult{}, err
	}
	go g.broadcastState(g.version, g.snapshot())
	return result, nil
}

func (g *Game) applyMove(m MoveRequest) (MoveResult, error) {
	if g.state.IsOver {
		return MoveResult{}, ErrGameOver
	}
	piece, err := g.state.Board.Occupant(m.From)
	if err != nil {
		return MoveResult{}, err
	}
	if !m.To.Valid() {
		return MoveResult{}, fmt.Errorf("%w: %d", ErrOutOfRange, int(m.To))
	}
	if piece == nil {
		return MoveResult{}, ErrNoPiece
	}
	if piece.Color != g.state.ToMove {
		return MoveResult{}, ErrNotYourTurn
	}
	if !IsLegal(g.state.Board, m.From, m.To, piece.Type, piece.Color) {
		return MoveResult{}, fmt.Errorf("%w: %s %s to %s", ErrIllegalMove, piece.Type, m.From, m.To)
	}

	mover := piece.Color
	captured, _ := g.state.Board.Remove(m.To)
	g.state.Board.Squares[m.From] = nil
	g.state.Board.Squares[m.To] = piece

	g.state.Sound = "move"
	if captured != nil {
		g.state.Sound = "capture"
		switch mover {
		case White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *captured)
		case Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *captured)
		}
	}
	g.state.LastMove = &SimpleMove{From: m.From, To: m.To}
	g.version++

	result := MoveResult{Piece: *piece, From: m.From, To: m.To, CapturedPiece: captured}
	if IsGameOver(g.state.Board, mover) {
		g.state.IsOver = true
		g.state.Winner = mover
		g.state.Sound = "gameOver"
		result.GameOver = true
		result.Winner = mover
		return result, nil
	}
	g.nextTurn()
	return result, nil
}

// nextTurn hands the move to White on the first call and alternates after that.
func (g *Game) nextTurn() {
	if g.state.ToMove == NoColor {
		g.state.ToMove = White
		return
	}
	g.state.ToMove = g.state.ToMove.Opponent()
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	isAuthorized := g.playerColor(playerID) != NoColor || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the newcomer
		g.connections.mu.Unlock()
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		_ = conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection for player %s", g.ID, playerID)

	g.mu.Lock()
	version, state := g.version, g.snapshot()
	g.mu.Unlock()
	go g.broadcastState(version, state)
	return nil
}

func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	// only drop the entry if it is still this connection
	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Infof("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// broadcastState writes state to every observer. Broadcasts run on their own
// goroutines, so a state older than one already written is dropped.
func (g *Game) broadcastState(version uint64, state GameState) {
	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()
	if len(active) == 0 {
		return
	}

	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	if version < g.connections.sent {
		return
	}
	g.connections.sent = version

	var failed []string
	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Warnf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			failed = append(failed, playerID)
		}
	}

	if len(failed) == 0 {
		return
	}
	g.connections.mu.Lock()
	for _, playerID := range failed {
		if g.connections.connections[playerID] == active[playerID] {
			delete(g.connections.connections, playerID)
		}
	}
	g.connections.mu.Unlock()
}

// SendError writes an error frame to conn, serialized with the game's broadcasts.
func (g *Game) SendError(conn Conn, msg string) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload})
}
