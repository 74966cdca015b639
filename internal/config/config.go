package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/kelseyhightower/envconfig"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Configuration struct {
	Server struct {
		Host         string `envconfig:"SERVER_HOST"`
		Port         string `envconfig:"SERVER_PORT" default:"3000"`
		AllowOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}
	WebSocket struct {
		ReadBufferSize  int `envconfig:"WS_READ_BUFFER" default:"1024"`
		WriteBufferSize int `envconfig:"WS_WRITE_BUFFER" default:"1024"`
	}
	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}
}

// Load reads the configuration from the environment.
func Load() (*Configuration, error) {
	cfg := &Configuration{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: bad port %q", ErrInvalidConfig, c.Server.Port)
	}
	if c.WebSocket.ReadBufferSize <= 0 || c.WebSocket.WriteBufferSize <= 0 {
		return fmt.Errorf("%w: websocket buffers must be positive", ErrInvalidConfig)
	}
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

func (c *Configuration) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Origins splits the comma separated CORS origin list.
func (c *Configuration) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func (c *Configuration) LogLevel() log.Level {
	if lvl, ok := logLevels[strings.ToLower(c.Log.Level)]; ok {
		return lvl
	}
	return log.LevelInfo
}
