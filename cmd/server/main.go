package main

import (
	"strings"

	"github.com/benbeisheim/kingcapture-backend/internal/config"
	"github.com/benbeisheim/kingcapture-backend/internal/controller"
	"github.com/benbeisheim/kingcapture-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel())

	gameService := service.NewGameService(service.NewGameManager())
	app := newApp(cfg, gameService)

	log.Infof("listening on %s", cfg.Addr())
	log.Fatal(app.Listen(cfg.Addr()))
}

func newApp(cfg *config.Configuration, gameService *service.GameService) *fiber.App {
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins(), ","),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	controller.RegisterRoutes(app, gameService, websocket.Config{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		Origins:         cfg.Origins(),
	})
	return app
}
