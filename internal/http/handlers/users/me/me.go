// Package me отдаёт запись текущего пользователя.
package me

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-manager/internal/http/response"
)

// Handle возвращает пользователя, положенного в контекст middleware Auth.
//
// @Summary Текущий пользователь
// @Tags users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Пользователь"
// @Failure 401 {object} response.Response "Нет токена"
// @Router /api/users/me [get]
func Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	render.JSON(w, r, response.OKWithData(user))
}
