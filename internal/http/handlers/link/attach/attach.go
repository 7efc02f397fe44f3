// Package attach реализует HTTP-обработчик создания связи в таблице связей.
package attach

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

// Service описывает интерфейс бизнес-логики создания связи.
type Service[In, Out any] interface {
	Attach(ctx context.Context, in In) (*Out, error)
}

// Handler обрабатывает POST-запросы к таблице связей.
type Handler[In, Out any] struct {
	log      *slog.Logger
	service  Service[In, Out]
	validate *validator.Validate
}

// New создает новый Handler для таблицы связей name.
func New[In, Out any](log *slog.Logger, name string, service Service[In, Out]) *Handler[In, Out] {
	return &Handler[In, Out]{
		log:      log.With(slog.String("link", name)),
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Создать связь
// @Tags links
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param link path string true "Таблица связей: diet_foods, workouts_exercises, user_diets"
// @Param request body object true "Ключи связи и её атрибуты"
// @Success 201 {object} response.Response "Созданная связь"
// @Failure 400 {object} response.Response "Неверный запрос или несуществующий ключ"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 409 {object} response.Response "Связь уже существует"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{link} [post]
func (h *Handler[In, Out]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.link.attach"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	res, err := h.service.Attach(r.Context(), req)
	if err != nil {
		status, resp := response.FromStorageError(err, "could not create link")
		log.Error("failed to create link", sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("link created")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(res))
}
