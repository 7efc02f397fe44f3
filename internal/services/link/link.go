// Package link содержит бизнес-логику таблиц связей (состав диеты,
// упражнения тренировки, назначенные диеты).
package link

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// Repository определяет методы хранилища одной таблицы связей.
type Repository[In, Out any] interface {
	List(ctx context.Context, page models.Page) ([]*Out, error)
	ListByParent(ctx context.Context, parentID int) ([]*Out, error)
	Attach(ctx context.Context, in In) (*Out, error)
	Update(ctx context.Context, in In) (*Out, error)
	Detach(ctx context.Context, parentID, childID int) error
}

// Service реализует операции над таблицей связей.
type Service[In, Out any] struct {
	name string
	repo Repository[In, Out]
	log  *slog.Logger
}

// New создаёт сервис связей name.
func New[In, Out any](name string, repo Repository[In, Out], log *slog.Logger) *Service[In, Out] {
	return &Service[In, Out]{
		name: name,
		repo: repo,
		log:  log.With(slog.String("link", name)),
	}
}

// Name возвращает имя таблицы связей.
func (s *Service[In, Out]) Name() string {
	return s.name
}

func (s *Service[In, Out]) List(ctx context.Context, page models.Page) ([]*Out, error) {
	return s.repo.List(ctx, page)
}

// ListByParent возвращает связи одного родителя (диеты, тренировки, пользователя).
func (s *Service[In, Out]) ListByParent(ctx context.Context, parentID int) ([]*Out, error) {
	return s.repo.ListByParent(ctx, parentID)
}

func (s *Service[In, Out]) Attach(ctx context.Context, in In) (*Out, error) {
	out, err := s.repo.Attach(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("attached entry")
	return out, nil
}

func (s *Service[In, Out]) Update(ctx context.Context, in In) (*Out, error) {
	return s.repo.Update(ctx, in)
}

func (s *Service[In, Out]) Detach(ctx context.Context, parentID, childID int) error {
	if err := s.repo.Detach(ctx, parentID, childID); err != nil {
		return err
	}
	s.log.Info("detached entry", slog.Int("parent_id", parentID), slog.Int("child_id", childID))
	return nil
}
