// Package update реализует HTTP-обработчик изменения атрибутов связи.
// Ключи связи берутся из URL и перекрывают значения из тела запроса.
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

// Keyed входная структура связи, в которую можно подставить ключи.
type Keyed[In any] interface {
	*In
	SetKeys(parentID, childID int)
}

// Service описывает интерфейс бизнес-логики изменения связи.
type Service[In, Out any] interface {
	Update(ctx context.Context, in In) (*Out, error)
}

// Handler обрабатывает PUT /{parentID}/{childID}.
type Handler[In any, PIn Keyed[In], Out any] struct {
	log      *slog.Logger
	service  Service[In, Out]
	validate *validator.Validate
}

// New создает новый Handler для таблицы связей name.
func New[In any, PIn Keyed[In], Out any](log *slog.Logger, name string, service Service[In, Out]) *Handler[In, PIn, Out] {
	return &Handler[In, PIn, Out]{
		log:      log.With(slog.String("link", name)),
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Изменить связь
// @Description Ключи берутся из пути, ключи в теле игнорируются
// @Tags links
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param link path string true "Таблица связей: diet_foods, workouts_exercises, user_diets"
// @Param parentID path int true "ID родителя"
// @Param childID path int true "ID потомка"
// @Param request body object true "Атрибуты связи"
// @Success 200 {object} response.Response "Обновлённая связь"
// @Failure 400 {object} response.Response "Неверный запрос"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 404 {object} response.Response "Связь не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{link}/{parentID}/{childID} [put]
func (h *Handler[In, PIn, Out]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.link.update"
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

	h.serve(w, r, log, parentID, childID)
}

func (h *Handler[In, PIn, Out]) serve(w http.ResponseWriter, r *http.Request, log *slog.Logger, parentID, childID int) {
	var req In
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	PIn(&req).SetKeys(parentID, childID)

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

	res, err := h.service.Update(r.Context(), req)
	if err != nil {
		status, resp := response.FromStorageError(err, "could not update link")
		log.Error("failed to update link", sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("link updated", slog.Int("parent_id", parentID), slog.Int("child_id", childID))
	render.JSON(w, r, response.OKWithData(res))
}
