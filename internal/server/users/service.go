// Package users implements the identity domain: the user model, its
// persistence contract and the service orchestrating registration, updates
// and deletion.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jojiiikol/notes-backend/internal/common"
	"github.com/jojiiikol/notes-backend/internal/cryptox"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register hashes the password and creates a user with the given role.
// A duplicate username surfaces as common.ErrConflict.
func (s *Service) Register(ctx context.Context, username, password string, role Role) (*User, error) {

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Username:     username,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) GetAll(ctx context.Context) ([]*User, error) {
	return s.repo.GetAll(ctx)
}

// Update applies a partial update. A password change is re-hashed; the role
// is never modifiable through a patch.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*User, error) {

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		hash, err := cryptox.HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	return s.repo.Update(ctx, user)
}

// Delete removes the user; owned notes are removed by the cascading foreign key.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// EnsureAdmin creates the configured administrator account on startup, or
// promotes it if the username already exists with the standard role.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_, err = s.Register(ctx, username, password, RoleAdministrator)
			return err
		}
		return err
	}

	if user.Role == RoleAdministrator {
		return nil
	}

	user.Role = RoleAdministrator
	_, err = s.repo.Update(ctx, user)
	return err
}
