// Package update реализует HTTP-обработчик полной замены записи ресурса.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitness-manager/internal/http/request"
	"github.com/magabrotheeeer/fitness-manager/internal/http/response"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// Service описывает интерфейс бизнес-логики обновления записи.
type Service[In, Out any] interface {
	Update(ctx context.Context, id int, in In) (*Out, error)
}

// Handler обрабатывает PUT-запросы к записи по ID.
type Handler[In, Out any] struct {
	log      *slog.Logger
	service  Service[In, Out]
	validate *validator.Validate
}

// New создает новый Handler для ресурса name.
func New[In, Out any](log *slog.Logger, name string, service Service[In, Out]) *Handler[In, Out] {
	return &Handler[In, Out]{
		log:      log.With(slog.String("resource", name)),
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Изменить запись
// @Description Полностью заменяет поля записи
// @Tags resources
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param resource path string true "Имя ресурса: clients, diets, foods, exercises, workouts, products, users"
// @Param id path int true "ID записи"
// @Param request body object true "Новые поля записи"
// @Success 200 {object} response.Response "Обновлённая запись"
// @Failure 400 {object} response.Response "Неверный запрос"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 404 {object} response.Response "Запись не найдена"
// @Failure 409 {object} response.Response "Конфликт уникальности"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{resource}/{id} [put]
func (h *Handler[In, Out]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crud.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.IDParam(r, "id")
	if err != nil {
		log.Info("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	var req In
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			log.Error("failed to validate request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}
	if c, ok := any(&req).(models.Checker); ok {
		if err := c.Check(); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
	}

	res, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		status, resp := response.FromStorageError(err, "could not update entry")
		log.Error("failed to update entry", slog.Int("id", id), sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("entry updated", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(res))
}
