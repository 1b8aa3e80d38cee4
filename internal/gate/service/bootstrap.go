package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/internal/gate/store"
	"github.com/harborchat/gatehouse/pkg/cryptox"
	"github.com/harborchat/gatehouse/pkg/idx"
	"github.com/harborchat/gatehouse/pkg/slogx"
)

// BootstrapService seeds the first account. Every invite chain needs a
// root: without at least one user already past the default role, nobody can
// mint codes.
type BootstrapService struct {
	Store store.Store

	Token          string // shared secret from config; empty disables bootstrap
	RoleWithInvite string
}

// Bootstrap creates the initial account at the upgraded role. It refuses to
// run once any user exists, so it is safe to leave the endpoint mounted.
func (s *BootstrapService) Bootstrap(
	ctx context.Context,
	token, email, name, password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if s.Token == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		return domain.User{}, ErrInvalidBootstrapToken
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if !empty {
		return domain.User{}, ErrAlreadyBootstrapped
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         s.RoleWithInvite,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}

	log.Info("bootstrap account created",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)
	return user, nil
}
