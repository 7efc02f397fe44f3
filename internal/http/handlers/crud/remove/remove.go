// Package remove реализует HTTP-обработчик удаления записи ресурса по ID.
package remove

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

// Service описывает интерфейс бизнес-логики удаления записи.
type Service interface {
	Remove(ctx context.Context, id int) error
}

// Handler обрабатывает DELETE-запросы к записи по ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler для ресурса name.
func New(log *slog.Logger, name string, service Service) *Handler {
	return &Handler{
		log:     log.With(slog.String("resource", name)),
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить запись
// @Tags resources
// @Produce  json
// @Security BearerAuth
// @Param resource path string true "Имя ресурса: clients, diets, foods, exercises, workouts, products, users"
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response "ID удалённой записи"
// @Failure 400 {object} response.Response "Неверный ID"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 404 {object} response.Response "Запись не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{resource}/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crud.remove"
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

	if err := h.service.Remove(r.Context(), id); err != nil {
		status, resp := response.FromStorageError(err, "could not delete entry")
		log.Error("failed to delete entry", slog.Int("id", id), sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("entry deleted", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]int{
		"deleted_id": id,
	}))
}
