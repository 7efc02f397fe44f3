// Package storage объявляет ошибки слоя хранения, не зависящие от конкретной СУБД.
package storage

import "errors"

var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidReference внешний ключ ссылается на несуществующую запись.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrConstraint нарушено ограничение CHECK.
	ErrConstraint = errors.New("constraint violation")
)
