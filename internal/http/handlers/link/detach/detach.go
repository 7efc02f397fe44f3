// Package detach реализует HTTP-обработчик удаления связи.
package detach

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

// Service описывает интерфейс бизнес-логики удаления связи.
type Service interface {
	Detach(ctx context.Context, parentID, childID int) error
}

// Handler обрабатывает DELETE /{parentID}/{childID}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler для таблицы связей name.
func New(log *slog.Logger, name string, service Service) *Handler {
	return &Handler{
		log:     log.With(slog.String("link", name)),
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить связь
// @Tags links
// @Produce  json
// @Security BearerAuth
// @Param link path string true "Таблица связей: diet_foods, workouts_exercises, user_diets"
// @Param parentID path int true "ID родителя"
// @Param childID path int true "ID потомка"
// @Success 200 {object} response.Response "Ключи удалённой связи"
// @Failure 400 {object} response.Response "Неверный ID"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 404 {object} response.Response "Связь не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{link}/{parentID}/{childID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.link.detach"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	parentID, err := request.IDParam(r, "parentID")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	childID, err := request.IDParam(r, "childID")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	if err := h.service.Detach(r.Context(), parentID, childID); err != nil {
		status, resp := response.FromStorageError(err, "could not delete link")
		log.Error("failed to delete link", sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]int{
		"parent_id": parentID,
		"child_id":  childID,
	}))
}
