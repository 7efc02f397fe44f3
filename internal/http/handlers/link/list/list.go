// Package list реализует HTTP-обработчик чтения таблицы связей: всей
// постранично или связей одного родителя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-manager/internal/http/request"
	"github.com/magabrotheeeer/fitness-manager/internal/http/response"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения связей.
type Service[Out any] interface {
	List(ctx context.Context, page models.Page) ([]*Out, error)
	ListByParent(ctx context.Context, parentID int) ([]*Out, error)
}

// Handler отдаёт связи. Если в маршруте есть параметр parentID, возвращаются
// только связи этого родителя.
type Handler[Out any] struct {
	log     *slog.Logger
	service Service[Out]
}

// New создает новый Handler для таблицы связей name.
func New[Out any](log *slog.Logger, name string, service Service[Out]) *Handler[Out] {
	return &Handler[Out]{
		log:     log.With(slog.String("link", name)),
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список связей
// @Description Без parentID отдаёт страницу всех связей, с ним все связи одного родителя
// @Tags links
// @Produce  json
// @Security BearerAuth
// @Param link path string true "Таблица связей: diet_foods, workouts_exercises, user_diets"
// @Param parentID path int false "ID родителя"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Связи и их количество"
// @Failure 400 {object} response.Response "Неверные параметры"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{link} [get]
// @Router /api/{link}/{parentID} [get]
func (h *Handler[Out]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.link.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var (
		res []*Out
		err error
	)
	if chi.URLParam(r, "parentID") != "" {
		parentID, perr := request.IDParam(r, "parentID")
		if perr != nil {
			log.Info("failed to decode parent id from url", sl.Err(perr))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(perr.Error()))
			return
		}
		res, err = h.service.ListByParent(r.Context(), parentID)
	} else {
		page, perr := request.Page(r)
		if perr != nil {
			log.Info("invalid pagination", sl.Err(perr))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(perr.Error()))
			return
		}
		res, err = h.service.List(r.Context(), page)
	}
	if err != nil {
		log.Error("failed to list links", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list links"))
		return
	}

	render.JSON(w, r, response.OKWithList(res))
}
