// Package models содержит доменные структуры фитнес-приложения: сущности,
// хранимые в Postgres, и входные структуры запросов с правилами валидации.
package models

const (
	// DefaultLimit размер страницы, если клиент не передал limit.
	DefaultLimit = 50
	// MaxLimit верхняя граница limit для списков.
	MaxLimit = 500
)

// Page параметры пагинации списка.
type Page struct {
	Limit  int
	Offset int
}

// NewPage нормализует limit и offset: нулевые и отрицательные значения
// заменяются значениями по умолчанию, limit ограничен MaxLimit.
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}
