package service

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

// CreateGame registers a new game under gameID. An empty fen means the
// standard starting position.
func (gm *GameManager) CreateGame(gameID, fen string) error {
	var opts []model.GameOption
	if fen != "" {
		opts = append(opts, model.WithFEN(fen))
	}
	game, err := model.NewGame(gameID, opts...)
	if err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}
	gm.games[gameID] = game
	log.Infof("created game %s", gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.NoColor, err
	}

	color, err := game.AddPlayer(playerID)
	if err != nil {
		return model.NoColor, err
	}
	log.Infof("player %s seated as %s in game %s", playerID, color, gameID)
	return color, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.State(), nil
}

func (gm *GameManager) LegalTargets(gameID string, from model.Square) ([]model.Square, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalTargets(from)
}

func (gm *GameManager) MakeMove(gameID, playerID string, move model.MoveRequest) (model.MoveResult, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}

	result, err := game.ApplyPlayerMove(playerID, move)
	if err != nil {
		log.Debugf("game %s: rejected move %s-%s by %s: %v", gameID, move.From, move.To, playerID, err)
		return model.MoveResult{}, err
	}
	if result.GameOver {
		log.Infof("game %s: %s captured the king", gameID, result.Winner)
	}
	return result, nil
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// SendError reports err to a single connection of gameID.
func (gm *GameManager) SendError(gameID string, conn model.Conn, err error) error {
	game, gerr := gm.GetGame(gameID)
	if gerr != nil {
		return gerr
	}
	return game.SendError(conn, err.Error())
}
