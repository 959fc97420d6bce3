package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ChairReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

const (
	HeaderUserID       = "X-User-ID"
	HeaderCapabilities = "X-User-Capabilities"
	HeaderDisplayName  = "X-Display-Name"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
)

type identityKey struct{}

// Auth извлекает утверждение о пользователе из доверенных заголовков шлюза.
// Аутентификация выполняется до сервиса, здесь заголовки только разбираются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		identity := domain.NewIdentity(
			userID,
			strings.TrimSpace(r.Header.Get(HeaderDisplayName)),
			splitCapabilities(r.Header.Get(HeaderCapabilities))...,
		)

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// WithIdentity кладет identity в контекст
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity возвращает identity из контекста запроса
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}

func splitCapabilities(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
