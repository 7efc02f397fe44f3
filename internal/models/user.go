package models

import (
	"strconv"
	"strings"
	"time"
)

// Роли пользователей.
const (
	RoleClient  = "client"
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
)

// User пользователь приложения. AuthID ссылается на учётную запись у
// провайдера аутентификации и пуст для пользователей, заведённых вручную.
type User struct {
	ID        int       `json:"id"`
	AuthID    *string   `json:"auth_id,omitempty"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	BirthDate *Date     `json:"birth_date,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserInput тело запроса на создание и изменение пользователя.
type UserInput struct {
	AuthID    *string `json:"auth_id,omitempty" validate:"omitempty,uuid"`
	Name      string  `json:"name" validate:"required,max=100"`
	Surname   string  `json:"surname" validate:"max=100"`
	Email     string  `json:"email" validate:"required,email"`
	BirthDate *Date   `json:"birth_date,omitempty"`
	Role      string  `json:"role" validate:"required,oneof=client admin trainer"`
}

// HasRole сообщает, входит ли роль пользователя в перечисленные.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u User) CSVHeader() []string {
	return []string{"id", "auth_id", "name", "surname", "email", "birth_date", "role", "created_at"}
}

func (u User) CSVRecord() []string {
	authID := ""
	if u.AuthID != nil {
		authID = *u.AuthID
	}
	return []string{
		strconv.Itoa(u.ID), authID, u.Name, u.Surname, u.Email,
		formatDate(u.BirthDate), u.Role, u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Identity данные о пользователе, подтверждённые провайдером аутентификации.
type Identity struct {
	Subject string // UUID учётной записи у провайдера
	Email   string
	Name    string
	Surname string
}

// NormalizeEmail приводит email к виду, в котором он хранится: без пробелов
// по краям и в нижнем регистре. Уникальность email в базе проверяется по
// этому виду.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
