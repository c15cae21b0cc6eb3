package permissions

import (
	"context"

	"github.com/jojiiikol/notes-backend/internal/common"
	"github.com/jojiiikol/notes-backend/internal/server/users"
)

// UserService is the slice of the user domain service the evaluator needs.
type UserService interface {
	Update(ctx context.Context, id int64, patch users.Patch) (*users.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserPermission gates user mutations. Only the account itself may change or
// delete it; there is no administrator carve-out for user resources.
type UserPermission struct {
	identity *users.User
	service  UserService
}

func NewUserPermission(identity *users.User, service UserService) *UserPermission {
	return &UserPermission{identity: identity, service: service}
}

// UpdateOne applies the patch only to the caller's own account. The identity
// comparison happens before any load, so a foreign caller learns nothing
// about the target's existence.
func (p *UserPermission) UpdateOne(ctx context.Context, id int64, patch users.Patch) (*users.User, error) {
	if p.identity.ID != id {
		return nil, common.ErrForbidden
	}
	return p.service.Update(ctx, id, patch)
}

// DeleteOne removes only the caller's own account.
func (p *UserPermission) DeleteOne(ctx context.Context, id int64) error {
	if p.identity.ID != id {
		return common.ErrForbidden
	}
	return p.service.Delete(ctx, id)
}
