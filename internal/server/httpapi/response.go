package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/jojiiikol/notes-backend/internal/common"
)

// Response is the envelope for error and status-only replies. Successful
// reads return the resource body directly.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const statusError = "Error"

func respError(msg string) Response {
	return Response{Status: statusError, Error: msg}
}

func respValidationError(errs validator.ValidationErrors) Response {
	var msg string
	for i, err := range errs {
		if i > 0 {
			msg += "; "
		}
		switch err.ActualTag() {
		case "required":
			msg += fmt.Sprintf("field %s is required", err.Field())
		default:
			msg += fmt.Sprintf("field %s is invalid", err.Field())
		}
	}
	return respError(msg)
}

// renderError maps a service error to its HTTP status. Unauthorized and
// forbidden replies carry no detail about why the check failed.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, respError("unauthorized"))
	case errors.Is(err, common.ErrForbidden):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, respError("forbidden"))
	case errors.Is(err, common.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, respError("not found"))
	case errors.Is(err, common.ErrConflict):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, respError("already exists"))
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, respError("internal error"))
	}
}
