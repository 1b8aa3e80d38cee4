package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/pquerna/otp/totp"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/internal/gate/store"
	"github.com/harborchat/gatehouse/pkg/slogx"
)

// OTPService handles TOTP enrollment and code-based sign in. In counted
// mode a successful OTP sign in is one of the auth completions the
// lifecycle hooks observe, so existing accounts can redeem invites too.
type OTPService struct {
	Store  store.Store
	Issuer string
}

// Enrollment is returned from Enroll so the client can render a QR code.
type Enrollment struct {
	Secret       string `json:"secret"`
	ProvisionURI string `json:"provision_uri"`
}

// Enroll generates a TOTP secret for the user and persists it. Re-enrolling
// replaces the previous secret.
func (s *OTPService) Enroll(ctx context.Context, userID string) (Enrollment, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Enrollment{}, ErrUserNotFound
		}
		return Enrollment{}, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Email,
	})
	if err != nil {
		log.Error("failed to generate totp secret", slog.Any("error", err))
		return Enrollment{}, err
	}

	secret := key.Secret()
	if err := s.Store.Users().UpdateOTPSecret(ctx, user.ID, secret); err != nil {
		log.Error("failed to persist totp secret", slog.Any("error", err))
		return Enrollment{}, err
	}

	log.Info("otp enrolled", slog.String("user_id", user.ID))
	return Enrollment{Secret: secret, ProvisionURI: key.URL()}, nil
}

// SignIn validates a TOTP code for the account with the given email and
// returns the user on success.
func (s *OTPService) SignIn(ctx context.Context, email, code string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.OTPSecret == nil {
		return domain.User{}, ErrOTPNotEnrolled
	}

	if !totp.Validate(code, *user.OTPSecret) {
		return domain.User{}, ErrInvalidOTP
	}
	return user, nil
}
