package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/unrolled/render"
)

type UserAdminHandler struct {
	render      *render.Render
	userService *services.UserService
}

func NewUserAdminHandler(r *render.Render, userService *services.UserService) *UserAdminHandler {
	return &UserAdminHandler{
		render:      r,
		userService: userService,
	}
}

func (h *UserAdminHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	users, err := h.userService.List(r.Context(), actor)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, users)
}

// CreateUserHandler provisions a company account with its category grants.
func (h *UserAdminHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	var input services.CreateUserInput
	if err := helpers.DecodeJSON(r, &input); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}

	user, err := h.userService.Create(r.Context(), actor, input)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, user)
}

func (h *UserAdminHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)
	userID := mux.Vars(r)["id"]

	if err := h.userService.Delete(r.Context(), actor, userID); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
