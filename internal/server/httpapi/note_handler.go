package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/jojiiikol/notes-backend/internal/common"
	"github.com/jojiiikol/notes-backend/internal/server/notes"
	"github.com/jojiiikol/notes-backend/internal/server/permissions"
)

type createNoteRequest struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description"`
}

type updateNoteRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=256"`
	Description *string `json:"description"`
}

func (s *Server) handleListAllNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		renderError(w, r, common.ErrUnauthorized)
		return
	}

	perm := permissions.NewNotePermission(identity, s.notes)
	result, err := perm.ReadAll(r.Context())
	if err != nil {
		s.countDenial("note", err)
		renderError(w, r, err)
		return
	}
	if result == nil {
		result = []*notes.Note{}
	}

	render.JSON(w, r, result)
}

func (s *Server) handleListOwnNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		renderError(w, r, common.ErrUnauthorized)
		return
	}

	perm := permissions.NewNotePermission(identity, s.notes)
	result, err := perm.ReadOwn(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	if result == nil {
		result = []*notes.Note{}
	}

	render.JSON(w, r, result)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleCreateNote", "request_id", middleware.GetReqID(r.Context()))

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		renderError(w, r, common.ErrUnauthorized)
		return
	}

	var req createNoteRequest
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

	// The owner is always the authenticated caller, never a body field.
	note, err := s.notes.Create(r.Context(), identity.ID, req.Title, req.Description)
	if err != nil {
		log.Error(r.Context(), "failed to create note", "error", err.Error())
		renderError(w, r, err)
		return
	}

	log.Info(r.Context(), "note created", "note_id", note.ID, "owner_id", note.OwnerID)
	render.JSON(w, r, note)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		renderError(w, r, common.ErrUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("invalid note id"))
		return
	}

	perm := permissions.NewNotePermission(identity, s.notes)
	note, err := perm.ReadOne(r.Context(), id)
	if err != nil {
		s.countDenial("note", err)
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleUpdateNote", "request_id", middleware.GetReqID(r.Context()))

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		renderError(w, r, common.ErrUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("invalid note id"))
		return
	}

	var req updateNoteRequest
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

	perm := permissions.NewNotePermission(identity, s.notes)
	note, err := perm.UpdateOne(r.Context(), id, notes.Patch{Title: req.Title, Description: req.Description})
	if err != nil {
		s.countDenial("note", err)
		log.Warn(r.Context(), "note update rejected", "note_id", id, "caller_id", identity.ID)
		renderError(w, r, err)
		return
	}

	log.Info(r.Context(), "note updated", "note_id", note.ID)
	render.JSON(w, r, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleDeleteNote", "request_id", middleware.GetReqID(r.Context()))

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		renderError(w, r, common.ErrUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("invalid note id"))
		return
	}

	perm := permissions.NewNotePermission(identity, s.notes)
	if err := perm.DeleteOne(r.Context(), id); err != nil {
		s.countDenial("note", err)
		log.Warn(r.Context(), "note delete rejected", "note_id", id, "caller_id", identity.ID)
		renderError(w, r, err)
		return
	}

	log.Info(r.Context(), "note deleted", "note_id", id)
	w.WriteHeader(http.StatusNoContent)
}
