package middlewares

import (
	"net/http"

	"github.com/signworks/go-orderportal/app/helpers"
	"github.com/unrolled/render"
)

// AdminOnly rejects non-admin actors with 403. Must run after AuthMiddleware.
func AdminOnly(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := helpers.ActorFromContext(r)
			if !actor.IsAdmin() {
				_ = rnd.JSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
