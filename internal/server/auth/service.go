package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jojiiikol/notes-backend/internal/common"
	"github.com/jojiiikol/notes-backend/internal/cryptox"
	"github.com/jojiiikol/notes-backend/internal/logging"
	"github.com/jojiiikol/notes-backend/internal/server/users"
)

// TokenService issues bearer tokens at login and resolves presented tokens
// back to users. The secret key is fixed for the process lifetime.
type TokenService struct {
	repo      users.Repository
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewTokenService(repo users.Repository, logger logging.Logger, secretKey string, tokenTTL time.Duration) *TokenService {
	return &TokenService{
		repo:      repo,
		logger:    logger.With("module", "token_service"),
		jwtSecret: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Issue mints a signed token for the user.
func (s *TokenService) Issue(user *users.User) (string, error) {
	return GenerateToken(user.Username, s.jwtSecret, s.tokenTTL)
}

// Authenticate checks the username/password pair. Unknown username and wrong
// password both return common.ErrUnauthorized; the distinction is logged
// only.
func (s *TokenService) Authenticate(ctx context.Context, username, password string) (*users.User, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug(ctx, "login rejected: unknown username", "username", username)
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	ok, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is malformed", "user_id", user.ID)
		return nil, common.ErrInternal
	}
	if !ok {
		s.logger.Debug(ctx, "login rejected: password mismatch", "username", username)
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

// Resolve verifies the token and looks its subject up. A token whose subject
// no longer exists (deleted account) fails the same way as a forged or
// expired one.
func (s *TokenService) Resolve(ctx context.Context, token string) (*users.User, error) {

	subject, err := GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "reason", err.Error())
		return nil, common.ErrUnauthorized
	}

	user, err := s.repo.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug(ctx, "token rejected: subject no longer exists", "subject", subject)
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	return user, nil
}
