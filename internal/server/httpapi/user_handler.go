package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/jojiiikol/notes-backend/internal/common"
	"github.com/jojiiikol/notes-backend/internal/server/notes"
	"github.com/jojiiikol/notes-backend/internal/server/permissions"
	"github.com/jojiiikol/notes-backend/internal/server/users"
)

type registerUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// userWithNotes is the detail view: the public user plus the notes it owns.
type userWithNotes struct {
	users.User
	Notes []*notes.Note `json:"notes"`
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleRegisterUser", "request_id", middleware.GetReqID(r.Context()))

	var req registerUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error(r.Context(), "failed to decode request body", "error", err.Error())
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("invalid request"))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, respValidationError(validateErrs))
			return
		}
		renderError(w, r, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password, users.RoleStandard)
	if err != nil {
		log.Warn(r.Context(), "registration failed", "username", req.Username)
		renderError(w, r, err)
		return
	}

	log.Info(r.Context(), "user registered", "user_id", user.ID, "username", user.Username)
	render.JSON(w, r, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	result, err := s.users.GetAll(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("invalid user id"))
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	owned, err := s.notes.GetByOwner(r.Context(), user.ID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if owned == nil {
		owned = []*notes.Note{}
	}

	render.JSON(w, r, userWithNotes{User: *user, Notes: owned})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleUpdateUser", "request_id", middleware.GetReqID(r.Context()))

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		renderError(w, r, common.ErrUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("invalid user id"))
		return
	}

	var req updateUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("invalid request"))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, respValidationError(validateErrs))
			return
		}
		renderError(w, r, err)
		return
	}

	perm := permissions.NewUserPermission(identity, s.users)
	user, err := perm.UpdateOne(r.Context(), id, users.Patch{Username: req.Username, Password: req.Password})
	if err != nil {
		s.countDenial("user", err)
		log.Warn(r.Context(), "user update rejected", "target_id", id, "caller_id", identity.ID)
		renderError(w, r, err)
		return
	}

	log.Info(r.Context(), "user updated", "user_id", user.ID)
	render.JSON(w, r, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleDeleteUser", "request_id", middleware.GetReqID(r.Context()))

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		renderError(w, r, common.ErrUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("invalid user id"))
		return
	}

	perm := permissions.NewUserPermission(identity, s.users)
	if err := perm.DeleteOne(r.Context(), id); err != nil {
		s.countDenial("user", err)
		log.Warn(r.Context(), "user delete rejected", "target_id", id, "caller_id", identity.ID)
		renderError(w, r, err)
		return
	}

	log.Info(r.Context(), "user deleted", "user_id", id)
	w.WriteHeader(http.StatusNoContent)
}
