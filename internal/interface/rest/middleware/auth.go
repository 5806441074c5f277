package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/zabal-art/zabal-hub/internal/interface/rest/presenter"
	"github.com/zabal-art/zabal-hub/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// RequireCronSecret rejects scheduled-endpoint calls that do not carry the
// shared bearer secret.
func (m *AuthMiddleware) RequireCronSecret(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.RequireCronSecret")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")
		if err := m.auth.VerifyCron(ctx, authHeader); err != nil {
			span.RecordError(err)
			slog.WarnContext(
				ctx, "Rejected cron request",
				slog.String("error", err.Error()),
				slog.String("module", "auth"),
			)
			return presenter.Unauthorized(c)
		}

		return next(c)
	}
}
