package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/kingcapture-backend/internal/middleware"
	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/benbeisheim/kingcapture-backend/internal/service"
	"github.com/benbeisheim/kingcapture-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error: %v", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		wsc.handleFrame(gameID, playerID, c, message)
	}
}

// handleFrame runs one inbound text frame and reports any failure back on conn.
func (wsc *WebSocketController) handleFrame(gameID, playerID string, conn model.Conn, frame []byte) {
	var msg ws.Message
	err := json.Unmarshal(frame, &msg)
	if err != nil {
		err = fmt.Errorf("malformed message: %w", err)
	} else {
		err = wsc.handleMessage(gameID, playerID, msg)
	}
	if err == nil {
		return
	}
	if sendErr := wsc.gameService.SendError(gameID, conn, err); sendErr != nil {
		log.Warnf("failed to send error to player %s: %v", playerID, sendErr)
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var body moveBody
		if err := json.Unmarshal(msg.Payload, &body); err != nil {
			return fmt.Errorf("malformed move: %w", err)
		}
		move, err := body.request()
		if err != nil {
			return err
		}
		_, err = wsc.gameService.HandleMove(gameID, playerID, move)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
