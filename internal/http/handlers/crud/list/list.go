// Package list реализует HTTP-обработчик постраничного списка записей ресурса.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-manager/internal/http/request"
	"github.com/magabrotheeeer/fitness-manager/internal/http/response"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// Service описывает интерфейс бизнес-логики получения списка.
type Service[Out any] interface {
	List(ctx context.Context, page models.Page) ([]*Out, error)
}

// Handler обрабатывает GET-запросы на список с параметрами limit и offset.
type Handler[Out any] struct {
	log     *slog.Logger
	service Service[Out]
}

// New создает новый Handler для ресурса name.
func New[Out any](log *slog.Logger, name string, service Service[Out]) *Handler[Out] {
	return &Handler[Out]{
		log:     log.With(slog.String("resource", name)),
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список записей
// @Tags resources
// @Produce  json
// @Security BearerAuth
// @Param resource path string true "Имя ресурса: clients, diets, foods, exercises, workouts, products, users"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Записи и их количество"
// @Failure 400 {object} response.Response "Неверные параметры страницы"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{resource} [get]
func (h *Handler[Out]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crud.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := request.Page(r)
	if err != nil {
		log.Info("invalid pagination", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	res, err := h.service.List(r.Context(), page)
	if err != nil {
		log.Error("failed to list entries", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list entries"))
		return
	}

	log.Debug("entries listed", slog.Int("count", len(res)))
	render.JSON(w, r, response.OKWithList(res))
}
