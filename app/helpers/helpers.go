package helpers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/unrolled/render"
)

type contextKey string

const (
	ContextKeyActor contextKey = "actor"
)

// ActorFromContext returns the authenticated actor, or an anonymous actor
// when the request never passed the auth middleware.
func ActorFromContext(r *http.Request) models.Actor {
	if actor, ok := r.Context().Value(ContextKeyActor).(models.Actor); ok {
		return actor
	}
	return models.Actor{}
}

// DecodeJSON reads the request body into dst and reports malformed payloads
// as validation errors.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Validation("invalid JSON payload")
	}
	return nil
}

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	case errs.KindUnauthorized:
		return http.StatusForbidden
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RenderError writes the error as a JSON body with the HTTP status matching
// its kind. Internal errors are logged in full and reported generically.
func RenderError(rnd *render.Render, w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	message := err.Error()
	if kind == errs.KindInternal {
		log.Printf("❌ internal error: %v", err)
		message = "internal server error"
	}
	_ = rnd.JSON(w, statusForKind(kind), map[string]string{"error": message})
}

// FormatValidationErrors flattens validator errors into a field->message map.
func FormatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	formatted := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			formatted[fieldErr.Field()] = "This field is required"
		case "email":
			formatted[fieldErr.Field()] = "Must be a valid email address"
		case "min":
			formatted[fieldErr.Field()] = "Value is too short"
		default:
			formatted[fieldErr.Field()] = "Invalid value"
		}
	}
	return formatted
}
