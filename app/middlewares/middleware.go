package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/signworks/go-orderportal/app/repositories"
	"github.com/signworks/go-orderportal/app/utils/sessions"
	"github.com/unrolled/render"
)

// AuthMiddleware resolves the session cookie to an actor exactly once per
// request and stores it in the request context. Requests without a valid
// session are rejected with 401.
func AuthMiddleware(sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "login required"})
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("AuthMiddleware: failed to load user %s: %v", userID, err)
				_ = rnd.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				return
			}
			if user == nil {
				// Stale session pointing at a deleted account.
				_ = sessionStore.ClearUserID(w, r)
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "login required"})
				return
			}

			actor := models.Actor{
				ID:       user.ID,
				Username: user.Username,
				Role:     user.Role,
			}
			ctx := context.WithValue(r.Context(), helpers.ContextKeyActor, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
