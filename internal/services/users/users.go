// Package users отвечает за ленивое заведение пользователей при первом
// обращении с токеном провайдера аутентификации.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/models"
	"github.com/magabrotheeeer/fitness-manager/internal/services/resource"
	"github.com/magabrotheeeer/fitness-manager/internal/storage"
)

// Repository методы хранилища пользователей, нужные для заведения.
type Repository interface {
	GetByAuthID(ctx context.Context, authID string) (*models.User, error)
	CreateFromIdentity(ctx context.Context, ident models.Identity, role string) (*models.User, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// Cache кэш записей ресурса users.
type Cache interface {
	Invalidate(ctx context.Context, key string) error
}

// Service заводит пользователей по подтверждённым данным провайдера.
type Service struct {
	repo  Repository
	pub   Publisher
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewService создаёт Service.
func NewService(repo Repository, pub Publisher, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		pub:  pub,
		log:  log,
		now:  time.Now,
	}
}

// WithCache задаёт кэш, из которого убирается запись пользователя после
// заведения или привязки.
func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// EnsureUser возвращает пользователя, привязанного к ident.Subject, и заводит
// его с ролью client, если такого ещё нет. Если параллельный запрос успел
// завести пользователя первым, возвращается его запись.
func (s *Service) EnsureUser(ctx context.Context, ident models.Identity) (*models.User, error) {
	const op = "services.users.EnsureUser"

	u, err := s.repo.GetByAuthID(ctx, ident.Subject)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u, err = s.repo.CreateFromIdentity(ctx, ident, models.RoleClient)
	if errors.Is(err, storage.ErrAlreadyExists) {
		existing, getErr := s.repo.GetByAuthID(ctx, ident.Subject)
		if getErr != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, err, getErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("provisioned new user", slog.Int("user_id", u.ID), slog.String("role", u.Role))

	// Заведённая вручную запись могла попасть в кэш до привязки.
	if s.cache != nil {
		key := resource.CacheKey("users", u.ID)
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
		}
	}

	event := models.UserProvisionedEvent{
		UserID:     u.ID,
		AuthID:     ident.Subject,
		Email:      u.Email,
		Role:       u.Role,
		OccurredAt: s.now().UTC(),
	}
	if err := s.pub.Publish(ctx, models.EventUserProvisioned, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", models.EventUserProvisioned), sl.Err(err))
	}
	return u, nil
}
