package service

import (
	"errors"
	"testing"

	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestCreateGame(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fen     string
		toMove  model.Color
		wantErr error
	}{
		{name: "standard start", toMove: model.White},
		{name: "custom position", fen: "4k3/8/8/8/8/8/8/4K3 b - - 0 1", toMove: model.Black},
		{name: "malformed fen", fen: "not a fen", wantErr: model.ErrInvalidFEN},
		{name: "missing king", fen: "8/8/8/8/8/8/8/4K3 w - - 0 1", wantErr: model.ErrInvalidFEN},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gm := NewGameManager()
			err := gm.CreateGame("g1", tt.fen)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateGame error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if _, err := gm.GetGame("g1"); !errors.Is(err, ErrGameNotFound) {
					t.Errorf("failed create left a game behind: %v", err)
				}
				return
			}
			state, err := gm.GetGameState("g1")
			if err != nil {
				t.Fatal("GetGameState:", err)
			}
			if state.ToMove != tt.toMove {
				t.Errorf("ToMove = %s, want %s", state.ToMove, tt.toMove)
			}
		})
	}
}

func TestCreateGameTwice(t *testing.T) {
	t.Parallel()
	gm := NewGameManager()
	if err := gm.CreateGame("g1", ""); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if err := gm.CreateGame("g1", ""); !errors.Is(err, ErrGameExists) {
		t.Errorf("second CreateGame error = %v, want %v", err, ErrGameExists)
	}
}

func TestUnknownGame(t *testing.T) {
	t.Parallel()
	gm := NewGameManager()

	if _, err := gm.GetGameState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGameState error = %v, want %v", err, ErrGameNotFound)
	}
	if _, err := gm.AddPlayerToGame("missing", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("AddPlayerToGame error = %v, want %v", err, ErrGameNotFound)
	}
	if _, err := gm.LegalTargets("missing", 52); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LegalTargets error = %v, want %v", err, ErrGameNotFound)
	}
	if _, err := gm.MakeMove("missing", "alice", model.MoveRequest{From: 52, To: 36}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("MakeMove error = %v, want %v", err, ErrGameNotFound)
	}
}

func TestGameServiceFlow(t *testing.T) {
	t.Parallel()
	gs := NewGameService(NewGameManager())

	gameID, err := gs.CreateGame("")
	if err != nil {
		t.Fatal("CreateGame:", err)
	}
	if gameID == "" {
		t.Fatal("CreateGame returned an empty id")
	}

	if got, err := gs.JoinGame(gameID, "alice"); err != nil || got != model.White {
		t.Fatalf("JoinGame(alice) = %s, %v; want white", got, err)
	}
	if got, err := gs.JoinGame(gameID, "bob"); err != nil || got != model.Black {
		t.Fatalf("JoinGame(bob) = %s, %v; want black", got, err)
	}
	if _, err := gs.JoinGame(gameID, "carol"); !errors.Is(err, model.ErrGameFull) {
		t.Errorf("third JoinGame error = %v, want %v", err, model.ErrGameFull)
	}

	targets, err := gs.LegalTargets(gameID, 57)
	if err != nil {
		t.Fatal("LegalTargets:", err)
	}
	if diff := cmp.Diff([]model.Square{40, 42}, targets); diff != "" {
		t.Errorf("knight targets mismatch (-want +got):\n%s", diff)
	}

	res, err := gs.HandleMove(gameID, "alice", model.MoveRequest{From: 57, To: 42})
	if err != nil {
		t.Fatal("HandleMove:", err)
	}
	want := model.MoveResult{Piece: model.Piece{Type: model.Knight, Color: model.White}, From: 57, To: 42}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("MoveResult mismatch (-want +got):\n%s", diff)
	}

	if _, err := gs.HandleMove(gameID, "alice", model.MoveRequest{From: 42, To: 27}); !errors.Is(err, model.ErrNotYourTurn) {
		t.Errorf("second white move error = %v, want %v", err, model.ErrNotYourTurn)
	}
	if _, err := gs.HandleMove(gameID, "carol", model.MoveRequest{From: 12, To: 28}); !errors.Is(err, model.ErrNotAPlayer) {
		t.Errorf("spectator move error = %v, want %v", err, model.ErrNotAPlayer)
	}

	state, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatal("GetGameState:", err)
	}
	if state.ToMove != model.Black || !state.Board.IsColor(42, model.White) {
		t.Errorf("unexpected state after Nc3: to move %s", state.ToMove)
	}
}

func TestKingCaptureThroughService(t *testing.T) {
	t.Parallel()
	gs := NewGameService(NewGameManager())

	gameID, err := gs.CreateGame("4k3/4R3/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal("CreateGame:", err)
	}
	_, _ = gs.JoinGame(gameID, "alice")
	_, _ = gs.JoinGame(gameID, "bob")

	res, err := gs.HandleMove(gameID, "alice", model.MoveRequest{From: 12, To: 4})
	if err != nil {
		t.Fatal("HandleMove:", err)
	}
	if !res.GameOver || res.Winner != model.White {
		t.Errorf("result = %+v, want white win", res)
	}
	if _, err := gs.HandleMove(gameID, "alice", model.MoveRequest{From: 60, To: 59}); !errors.Is(err, model.ErrGameOver) {
		t.Errorf("move after game over error = %v, want %v", err, model.ErrGameOver)
	}
}
