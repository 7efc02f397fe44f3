// Package middlewarectx содержит HTTP middleware сервиса и ключи контекста,
// через которые они передают данные обработчикам.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-manager/internal/http/response"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ текущего пользователя (*models.User) в контексте.
const User Key = "user"

// Verifier проверяет токен доступа у провайдера аутентификации.
type Verifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}

// Provisioner находит или заводит пользователя по подтверждённым данным.
type Provisioner interface {
	EnsureUser(ctx context.Context, ident models.Identity) (*models.User, error)
}

// WithUser кладёт пользователя в контекст.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, User, u)
}

// UserFromContext достаёт пользователя, положенного Auth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(User).(*models.User)
	return u, ok && u != nil
}

// Auth возвращает middleware, который проверяет bearer-токен и кладёт в
// контекст пользователя, при необходимости заводя его.
//
// Нет заголовка или он не Bearer: 401. Токен не прошёл проверку: 401.
// Не удалось найти или завести пользователя: 500.
func Auth(verifier Verifier, provisioner Provisioner, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Auth"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			ident, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			user, err := provisioner.EnsureUser(r.Context(), ident)
			if err != nil {
				log.Error("failed to provision user", slog.String("auth_id", ident.Subject), sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
