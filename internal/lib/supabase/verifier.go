// Package supabase проверяет токены доступа Supabase Auth.
//
// Если известен JWT-секрет проекта, токен проверяется локально (только HS256,
// exp обязателен). Иначе токен отправляется в GET {url}/auth/v1/user, и
// провайдер сам решает, действителен ли он.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// ErrInvalidToken токен не прошёл проверку.
var ErrInvalidToken = errors.New("invalid token")

// Config параметры проверки токенов.
type Config struct {
	URL       string
	AnonKey   string
	JWTSecret string
	Audience  string
	Timeout   time.Duration
}

// Claims полезная нагрузка токена Supabase.
type Claims struct {
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

type remoteUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// Verifier проверяет токены и возвращает подтверждённые данные пользователя.
type Verifier struct {
	cfg    Config
	client *http.Client
}

// NewVerifier создаёт Verifier.
func NewVerifier(cfg Config) *Verifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Verifier{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Verify проверяет token и возвращает Identity.
func (v *Verifier) Verify(ctx context.Context, token string) (models.Identity, error) {
	const op = "supabase.Verify"

	var (
		ident models.Identity
		err   error
	)
	if v.cfg.JWTSecret != "" {
		ident, err = v.verifyLocal(token)
	} else {
		ident, err = v.verifyRemote(ctx, token)
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := uuid.Parse(ident.Subject); err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w: subject is not a uuid", op, ErrInvalidToken)
	}
	if ident.Email == "" {
		return models.Identity{}, fmt.Errorf("%s: %w: token has no email", op, ErrInvalidToken)
	}
	return ident, nil
}

func (v *Verifier) verifyLocal(token string) (models.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.Audience))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return []byte(v.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	return identityFrom(claims.Subject, claims.Email, claims.UserMetadata), nil
}

func (v *Verifier) verifyRemote(ctx context.Context, token string) (models.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.URL+"/auth/v1/user", nil)
	if err != nil {
		return models.Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.cfg.AnonKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return models.Identity{}, fmt.Errorf("auth provider request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.Identity{}, fmt.Errorf("%w: rejected by auth provider", ErrInvalidToken)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return models.Identity{}, fmt.Errorf("auth provider status %d: %s", resp.StatusCode, body)
	}

	var u remoteUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return models.Identity{}, fmt.Errorf("decode user: %w", err)
	}
	return identityFrom(u.ID, u.Email, u.UserMetadata), nil
}

// identityFrom собирает Identity. Имя и фамилия берутся из name и surname
// метаданных, а при их отсутствии из full_name, разделённого по первому пробелу.
func identityFrom(subject, email string, meta map[string]any) models.Identity {
	ident := models.Identity{
		Subject: subject,
		Email:   models.NormalizeEmail(email),
		Name:    metaString(meta, "name"),
		Surname: metaString(meta, "surname"),
	}
	if ident.Name == "" {
		full := metaString(meta, "full_name")
		first, rest, _ := strings.Cut(full, " ")
		ident.Name = first
		if ident.Surname == "" {
			ident.Surname = strings.TrimSpace(rest)
		}
	}
	if ident.Name == "" {
		local, _, _ := strings.Cut(ident.Email, "@")
		ident.Name = local
	}
	return ident
}

func metaString(meta map[string]any, key string) string {
	if s, ok := meta[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
