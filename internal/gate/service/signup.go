package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/internal/gate/store"
	"github.com/harborchat/gatehouse/pkg/cryptox"
	"github.com/harborchat/gatehouse/pkg/idx"
	"github.com/harborchat/gatehouse/pkg/jwtx"
	"github.com/harborchat/gatehouse/pkg/slogx"
)

// Session is what a successful signup or signin yields.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      domain.User
}

// SignupService creates accounts and issues sessions. New accounts always
// start at RoleWithoutInvite; the lifecycle hooks upgrade them afterwards,
// so role assignment lives in exactly one place.
type SignupService struct {
	Store  store.Store
	Signer jwtx.Signer

	Issuer            string
	SessionTTL        time.Duration
	RoleWithoutInvite string
}

// SignUpEmail registers a new email/password account and signs it in.
func (s *SignupService) SignUpEmail(
	ctx context.Context,
	email, name, password string,
) (Session, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return Session{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         s.RoleWithoutInvite,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Session{}, ErrEmailAlreadyTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return Session{}, err
	}

	log.Info("user signed up",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)
	return s.IssueSession(ctx, user)
}

// SignInEmail authenticates an existing email/password account.
func (s *SignupService) SignInEmail(
	ctx context.Context,
	email, password string,
) (Session, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a comparable amount of time so missing accounts are not
			// distinguishable from wrong passwords by latency.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash())
			return Session{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return Session{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	return s.IssueSession(ctx, user)
}

// IssueSession mints a signed session token for the user.
func (s *SignupService) IssueSession(ctx context.Context, user domain.User) (Session, error) {
	log := slogx.FromContext(ctx)

	claims := jwtx.NewClaims(s.Issuer, user.ID, idx.New().String(), s.SessionTTL)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return Session{}, err
	}

	return Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}
