// Package create реализует HTTP-обработчик создания записи любого ресурса.
//
// Handler принимает JSON с данными записи, валидирует его, вызывает сервис
// и возвращает созданную запись со статусом 201.
package create

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

// Service описывает интерфейс бизнес-логики создания записи.
type Service[In, Out any] interface {
	Create(ctx context.Context, in In) (*Out, error)
}

// Handler управляет HTTP-запросами на создание записей.
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
// @Summary Создать запись
// @Description Создаёт запись ресурса из тела запроса
// @Tags resources
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param resource path string true "Имя ресурса: clients, diets, foods, exercises, workouts, products, users"
// @Param request body object true "Поля записи"
// @Success 201 {object} response.Response "Созданная запись"
// @Failure 400 {object} response.Response "Неверный запрос или ошибка валидации"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 409 {object} response.Response "Запись уже существует"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{resource} [post]
func (h *Handler[In, Out]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crud.create"
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
		if errors.As(err, &verrs) {
			log.Info("validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		log.Error("failed to validate request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if c, ok := any(&req).(models.Checker); ok {
		if err := c.Check(); err != nil {
			log.Info("validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
	}

	res, err := h.service.Create(r.Context(), req)
	if err != nil {
		status, resp := response.FromStorageError(err, "could not create entry")
		log.Error("failed to create entry", sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("entry created")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(res))
}
