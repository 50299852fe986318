package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nkiryanov/exertrack/internal/apperrors"
	"github.com/nkiryanov/exertrack/internal/handlers/render"
	"github.com/nkiryanov/exertrack/internal/logger"
)

func handleCreateUser(userService userService, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username" validate:"required"`
	}
	type response struct {
		Username string    `json:"username"`
		ID       uuid.UUID `json:"id"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := userService.CreateUser(r.Context(), data.Username)

		switch {
		case err == nil:
			render.JSON(w, response{Username: user.Username, ID: user.ID})
		case errors.Is(err, apperrors.ErrUsernameInvalid):
			render.Error(w, "Invalid User Name Provided")
		default:
			l.Error("Failed to create user", "error", err)
			render.Error(w, "Failed to create user")
		}
	})
}

func handleListUsers(userService userService, l logger.Logger) http.Handler {
	type responseUser struct {
		Username string    `json:"username"`
		ID       uuid.UUID `json:"id"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		users, err := userService.ListUsers(r.Context())

		switch {
		case err == nil:
			res := make([]responseUser, 0, len(users))
			for _, u := range users {
				res = append(res, responseUser{Username: u.Username, ID: u.ID})
			}
			render.JSON(w, res)
		case errors.Is(err, apperrors.ErrNoUsers):
			render.Error(w, "Failed to retrieve users list")
		default:
			l.Error("Failed to list users", "error", err)
			render.Error(w, "Failed to retrieve users list")
		}
	})
}
