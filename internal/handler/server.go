package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewServer builds the echo instance with the shared middleware stack, the
// error envelope and the health check. Trivia routes are served at the root
// and again under /api.
func NewServer(logger *zap.Logger, db Pinger, trivia *TriviaHandler, feed *WebSocketHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(CORS())

	trivia.Register(e.Group(""))
	trivia.Register(e.Group("/api"))

	if feed != nil {
		e.GET("/ws/questions", feed.HandleWebSocket)
	}

	e.GET("/health", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	return e
}
