// Package resource содержит обобщённую бизнес-логику CRUD-ресурсов с
// кэшированием чтения в Redis.
package resource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// MaxExportRows верхняя граница выгрузки одного ресурса.
const MaxExportRows = 10000

// Repository определяет методы хранилища одного ресурса.
type Repository[In, Out any] interface {
	// Create добавляет запись и возвращает её.
	Create(ctx context.Context, in In) (*Out, error)
	// Read возвращает запись по ID.
	Read(ctx context.Context, id int) (*Out, error)
	// Update перезаписывает запись по ID.
	Update(ctx context.Context, id int, in In) (*Out, error)
	// Remove удаляет запись по ID.
	Remove(ctx context.Context, id int) error
	// List возвращает страницу записей.
	List(ctx context.Context, page models.Page) ([]*Out, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// CacheKey возвращает ключ кэша записи id ресурса name.
func CacheKey(name string, id int) string {
	return fmt.Sprintf("%s:%d", name, id)
}

// AfterSaveFunc вызывается после успешного создания или изменения записи.
type AfterSaveFunc[Out any] func(ctx context.Context, saved *Out)

// AfterRemoveFunc вызывается после успешного удаления записи id.
type AfterRemoveFunc func(ctx context.Context, id int)

// Service реализует CRUD одного ресурса. Ошибки кэша только логируются.
type Service[In, Out any] struct {
	name        string
	repo        Repository[In, Out]
	cache       Cache
	ttl         time.Duration
	afterSave   AfterSaveFunc[Out]
	afterRemove AfterRemoveFunc
	log         *slog.Logger
}

// New создаёт сервис ресурса name без кэша.
func New[In, Out any](name string, repo Repository[In, Out], log *slog.Logger) *Service[In, Out] {
	return &Service[In, Out]{
		name: name,
		repo: repo,
		log:  log.With(slog.String("resource", name)),
	}
}

// WithCache включает кэширование чтения на время ttl.
func (s *Service[In, Out]) WithCache(c Cache, ttl time.Duration) *Service[In, Out] {
	s.cache = c
	s.ttl = ttl
	return s
}

// OnSave задаёт обработчик, вызываемый после Create и Update.
func (s *Service[In, Out]) OnSave(fn AfterSaveFunc[Out]) *Service[In, Out] {
	s.afterSave = fn
	return s
}

// OnRemove задаёт обработчик, вызываемый после Remove.
func (s *Service[In, Out]) OnRemove(fn AfterRemoveFunc) *Service[In, Out] {
	s.afterRemove = fn
	return s
}

// Name возвращает имя ресурса.
func (s *Service[In, Out]) Name() string {
	return s.name
}

func (s *Service[In, Out]) cacheKey(id int) string {
	return CacheKey(s.name, id)
}

func (s *Service[In, Out]) remember(ctx context.Context, id int, v *Out) {
	if s.cache == nil {
		return
	}
	key := s.cacheKey(id)
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
}

func (s *Service[In, Out]) forget(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	key := s.cacheKey(id)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}

// Create сохраняет новую запись.
func (s *Service[In, Out]) Create(ctx context.Context, in In) (*Out, error) {
	out, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new entry")

	if s.afterSave != nil {
		s.afterSave(ctx, out)
	}
	return out, nil
}

// Read возвращает запись по ID, используя кэш или репозиторий.
func (s *Service[In, Out]) Read(ctx context.Context, id int) (*Out, error) {
	if s.cache != nil {
		var cached Out
		found, err := s.cache.Get(ctx, s.cacheKey(id), &cached)
		if err != nil {
			s.log.Warn("failed to read from cache", slog.String("key", s.cacheKey(id)), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	out, err := s.repo.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, id, out)
	return out, nil
}

// Update перезаписывает запись и обновляет кэш.
func (s *Service[In, Out]) Update(ctx context.Context, id int, in In) (*Out, error) {
	out, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, id, out)

	if s.afterSave != nil {
		s.afterSave(ctx, out)
	}
	return out, nil
}

// Remove удаляет запись и инвалидирует кэш.
func (s *Service[In, Out]) Remove(ctx context.Context, id int) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.forget(ctx, id)

	if s.afterRemove != nil {
		s.afterRemove(ctx, id)
	}
	return nil
}

// Flush сбрасывает из кэша все записи ресурса. Нужен, когда записи меняются
// в базе в обход сервиса, например каскадом по внешнему ключу.
func (s *Service[In, Out]) Flush(ctx context.Context) {
	if s.cache == nil {
		return
	}
	prefix := s.name + ":"
	if err := s.cache.InvalidatePrefix(ctx, prefix); err != nil {
		s.log.Warn("failed to flush cache", slog.String("prefix", prefix), sl.Err(err))
	}
}

// List возвращает страницу записей.
func (s *Service[In, Out]) List(ctx context.Context, page models.Page) ([]*Out, error) {
	return s.repo.List(ctx, page)
}

// Export возвращает все записи ресурса, но не больше MaxExportRows.
func (s *Service[In, Out]) Export(ctx context.Context) ([]*Out, error) {
	result := make([]*Out, 0)
	for offset := 0; offset < MaxExportRows; offset += models.MaxLimit {
		limit := min(models.MaxLimit, MaxExportRows-offset)
		batch, err := s.repo.List(ctx, models.Page{Limit: limit, Offset: offset})
		if err != nil {
			return nil, err
		}
		result = append(result, batch...)
		if len(batch) < limit {
			break
		}
	}
	return result, nil
}
