// Package permissions turns (identity, resource, operation) into an
// allow/deny decision. Evaluators are bound per request to the caller's
// identity and a domain service and fail closed: any check that does not
// explicitly pass denies.
package permissions

import (
	"context"

	"github.com/jojiiikol/notes-backend/internal/common"
	"github.com/jojiiikol/notes-backend/internal/server/notes"
	"github.com/jojiiikol/notes-backend/internal/server/users"
)

// NoteService is the slice of the note domain service the evaluator needs.
type NoteService interface {
	GetAll(ctx context.Context) ([]*notes.Note, error)
	GetByID(ctx context.Context, id int64) (*notes.Note, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]*notes.Note, error)
	Update(ctx context.Context, id int64, patch notes.Patch) (*notes.Note, error)
	Delete(ctx context.Context, id int64) error
}

// NotePermission gates note operations for one authenticated identity.
type NotePermission struct {
	identity *users.User
	service  NoteService
}

func NewNotePermission(identity *users.User, service NoteService) *NotePermission {
	return &NotePermission{identity: identity, service: service}
}

// ReadAll returns every note in the store; administrator role only.
func (p *NotePermission) ReadAll(ctx context.Context) ([]*notes.Note, error) {
	if !p.identity.IsAdministrator() {
		return nil, common.ErrForbidden
	}
	return p.service.GetAll(ctx)
}

// ReadOwn returns the caller's own notes; any authenticated identity.
func (p *NotePermission) ReadOwn(ctx context.Context) ([]*notes.Note, error) {
	return p.service.GetByOwner(ctx, p.identity.ID)
}

// ReadOne returns the note when the caller owns it. Existence is checked
// before ownership, so a non-owner asking for a missing note sees not-found.
func (p *NotePermission) ReadOne(ctx context.Context, id int64) (*notes.Note, error) {
	note, err := p.service.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.OwnerID != p.identity.ID {
		return nil, common.ErrForbidden
	}
	return note, nil
}

// UpdateOne applies the patch when the caller owns the note. Ownership is
// decided from the freshly loaded note, never from the patch.
func (p *NotePermission) UpdateOne(ctx context.Context, id int64, patch notes.Patch) (*notes.Note, error) {
	note, err := p.service.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.OwnerID != p.identity.ID {
		return nil, common.ErrForbidden
	}
	return p.service.Update(ctx, id, patch)
}

// DeleteOne removes the note when the caller owns it.
func (p *NotePermission) DeleteOne(ctx context.Context, id int64) error {
	note, err := p.service.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if note.OwnerID != p.identity.ID {
		return common.ErrForbidden
	}
	return p.service.Delete(ctx, id)
}
