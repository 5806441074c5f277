package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("auth")

// AuthService guards the scheduled endpoints. Callers prove themselves with
// a shared bearer secret; there is no per-user auth on this surface.
type AuthService struct {
	cronSecret string
}

func NewAuthService(cronSecret string) *AuthService {
	return &AuthService{
		cronSecret: cronSecret,
	}
}

func (s *AuthService) VerifyCron(ctx context.Context, authHeader string) error {
	_, span := tracer.Start(ctx, "Auth.Service.VerifyCron")
	defer span.End()

	if s.cronSecret == "" {
		err := fmt.Errorf("cron secret not configured")
		span.RecordError(err)
		return err
	}

	split := strings.Split(authHeader, " ")
	if len(split) != 2 {
		err := fmt.Errorf("invalid authentication header")
		span.RecordError(err)
		return err
	}

	authType, token := split[0], split[1]
	if authType != "Bearer" {
		err := fmt.Errorf("only Bearer is acceptable")
		span.RecordError(err)
		return err
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cronSecret)) != 1 {
		err := fmt.Errorf("cron secret mismatch")
		span.RecordError(err)
		return err
	}

	return nil
}
