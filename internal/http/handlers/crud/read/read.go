// Package read реализует HTTP-обработчик получения записи ресурса по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-manager/internal/http/request"
	"github.com/magabrotheeeer/fitness-manager/internal/http/response"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики чтения записи.
type Service[Out any] interface {
	Read(ctx context.Context, id int) (*Out, error)
}

// Handler обрабатывает запросы на получение записи по уникальному идентификатору.
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
// @Summary Получить запись
// @Tags resources
// @Produce  json
// @Security BearerAuth
// @Param resource path string true "Имя ресурса: clients, diets, foods, exercises, workouts, products, users"
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response "Запись"
// @Failure 400 {object} response.Response "Неверный ID"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 404 {object} response.Response "Запись не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{resource}/{id} [get]
func (h *Handler[Out]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crud.read"
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

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		status, resp := response.FromStorageError(err, "could not read entry")
		if status == http.StatusInternalServerError {
			log.Error("failed to read entry", slog.Int("id", id), sl.Err(err))
		}
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.OKWithData(res))
}
