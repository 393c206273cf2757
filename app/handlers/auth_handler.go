package handlers

import (
	"log"
	"net/http"

	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/services"
	"github.com/signworks/go-orderportal/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	userService  *services.UserService
	sessionStore sessions.SessionStore
}

func NewAuthHandler(r *render.Render, userService *services.UserService, sessionStore sessions.SessionStore) *AuthHandler {
	return &AuthHandler{
		render:       r,
		userService:  userService,
		sessionStore: sessionStore,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		helpers.RenderError(h.render, w, errs.Validation("username and password are required"))
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPostHandler: failed to set session for user %s: %v", user.ID, err)
		helpers.RenderError(h.render, w, errs.Internal(err))
		return
	}

	log.Printf("✅ user %s logged in", user.Username)
	_ = h.render.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) LogoutPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearUserID(w, r); err != nil {
		log.Printf("LogoutPostHandler: failed to clear session: %v", err)
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// MeGetHandler returns the authenticated actor's identity.
func (h *AuthHandler) MeGetHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)
	_ = h.render.JSON(w, http.StatusOK, actor)
}

func (h *AuthHandler) ChangePasswordPostHandler(w http.ResponseWriter, r *http.Request) {
	actor := helpers.ActorFromContext(r)

	var input services.ChangePasswordInput
	if err := helpers.DecodeJSON(r, &input); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), actor, input); err != nil {
		helpers.RenderError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
