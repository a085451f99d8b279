package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"laundry/internal/adapters/in/http/auth"
	"laundry/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const actorKey = "actor"

// Authenticate verifies the bearer token once and stores the resulting actor
// in the echo context. Requests without a valid token never reach a handler.
func Authenticate(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "unauthorized"})
			}

			actor, err := tokens.ParseToken(strings.TrimSpace(raw))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "unauthorized"})
			}

			ctx.Set(actorKey, actor)
			return next(ctx)
		}
	}
}

var errNoActor = fmt.Errorf("%w: no verified actor on request", auth.ErrInvalidToken)

func actorFrom(ctx echo.Context) (kernel.Actor, bool) {
	actor, ok := ctx.Get(actorKey).(kernel.Actor)
	return actor, ok
}

func requireActor(ctx echo.Context) (kernel.Actor, error) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return kernel.Actor{}, errNoActor
	}
	return actor, nil
}

// RequestLogger writes one structured line per request into logger.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if actor, ok := actorFrom(ctx); ok {
				attrs = append(attrs, slog.String("actor", actor.String()))
			}
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
