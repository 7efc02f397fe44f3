// Package export реализует выгрузку всех записей ресурса в CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-manager/internal/http/response"
	"github.com/magabrotheeeer/fitness-manager/internal/lib/sl"
)

// Record запись, которую можно выгрузить строкой CSV.
type Record interface {
	CSVHeader() []string
	CSVRecord() []string
}

// Service описывает интерфейс бизнес-логики выгрузки.
type Service[Out any] interface {
	Export(ctx context.Context) ([]*Out, error)
}

// Handler отдаёт CSV-файл <name>.csv с заголовком и строкой на каждую запись.
type Handler[Out any, PT interface {
	*Out
	Record
}] struct {
	log     *slog.Logger
	name    string
	service Service[Out]
}

// New создает новый Handler для ресурса name.
func New[Out any, PT interface {
	*Out
	Record
}](log *slog.Logger, name string, service Service[Out]) *Handler[Out, PT] {
	return &Handler[Out, PT]{
		log:     log.With(slog.String("resource", name)),
		name:    name,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выгрузить записи ресурса в CSV
// @Description Отдаёт все записи файлом <resource>.csv. Путь можно запросить с расширением .csv, другие расширения отклоняются.
// @Tags resources
// @Produce  text/csv
// @Security BearerAuth
// @Param resource path string true "Имя ресурса: clients, diets, foods, exercises, workouts, products, users"
// @Success 200 {string} string "CSV-файл"
// @Failure 400 {object} response.Response "Неподдерживаемый формат"
// @Failure 401 {object} response.Response "Нет токена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/{resource}/export [get]
func (h *Handler[Out, PT]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crud.export"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Расширение пути снимает middleware.URLFormat.
	if format, _ := r.Context().Value(middleware.URLFormatCtxKey).(string); format != "" && format != "csv" {
		log.Info("unsupported export format", slog.String("format", format))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("unsupported export format"))
		return
	}

	items, err := h.service.Export(r.Context())
	if err != nil {
		log.Error("failed to export entries", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not export entries"))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.name+".csv"))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(PT(new(Out)).CSVHeader()); err != nil {
		log.Error("failed to write csv header", sl.Err(err))
		return
	}
	for _, item := range items {
		if err := cw.Write(PT(item).CSVRecord()); err != nil {
			log.Error("failed to write csv record", sl.Err(err))
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Error("failed to flush csv", sl.Err(err))
		return
	}

	log.Info("entries exported", slog.Int("count", len(items)))
}
