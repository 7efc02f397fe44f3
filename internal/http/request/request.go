// Package request содержит общие для обработчиков функции разбора запроса.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// ErrBadID параметр пути не является положительным целым.
var ErrBadID = errors.New("id must be a positive integer")

// IDParam возвращает положительный целочисленный параметр пути name.
func IDParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadID, name, raw)
	}
	return id, nil
}

// Page разбирает limit и offset из строки запроса. Отсутствующие значения
// заменяются значениями по умолчанию.
func Page(r *http.Request) (models.Page, error) {
	q := r.URL.Query()

	limit, err := intQuery(q.Get("limit"))
	if err != nil {
		return models.Page{}, fmt.Errorf("invalid limit: %w", err)
	}
	offset, err := intQuery(q.Get("offset"))
	if err != nil {
		return models.Page{}, fmt.Errorf("invalid offset: %w", err)
	}
	if limit < 0 || offset < 0 {
		return models.Page{}, errors.New("limit and offset must not be negative")
	}
	return models.NewPage(limit, offset), nil
}

func intQuery(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// DecodeJSON читает тело запроса в v.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// NewValidator создаёт валидатор, который называет поля по их json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
