package service

import (
	"context"
	"crypto/hmac"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"photoshare/api/internal/cache"
	"photoshare/api/internal/config"
	"photoshare/api/internal/ids"
	"photoshare/api/internal/models"
	"photoshare/api/internal/repository"
	"photoshare/api/internal/security"
)

// UserStore is the slice of the user repository the auth flows need.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	HasAdmin(ctx context.Context) (bool, error)
	UpdateRefreshTokenHash(ctx context.Context, id string, hash []byte) error
	SetConfirmed(ctx context.Context, email string) error
	SetBanned(ctx context.Context, email string, banned bool) error
}

// ConfirmationMailer delivers signup confirmation mail. Failures are logged,
// never surfaced to the caller.
type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, email, username, token string) error
}

type AuthService struct {
	users  UserStore
	cache  *cache.UserCache
	mailer ConfirmationMailer
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewAuthService(users UserStore, userCache *cache.UserCache, mailer ConfirmationMailer, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		cache:  userCache,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
	}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return models.User{}, NewValidationError("Email and password required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, NewConflictError("Account already exists")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	// The first account registered becomes the admin.
	role := models.RoleUser
	hasAdmin, err := s.users.HasAdmin(ctx)
	if err != nil {
		return models.User{}, err
	}
	if !hasAdmin {
		role = models.RoleAdmin
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	token, err := security.GenerateEmailToken(s.cfg.Security.JWTSecret, email, s.cfg.Security.EmailTokenTTL)
	if err != nil {
		return models.User{}, err
	}
	go func() {
		if err := s.mailer.SendConfirmation(context.Background(), email, user.Username, token); err != nil {
			s.log.Error().Err(err).Str("email", email).Msg("send confirmation mail failed")
		}
	}()

	return user, nil
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, NewUnauthorizedError("Invalid email")
		}
		return TokenPair{}, err
	}

	if !user.Confirmed {
		return TokenPair{}, NewUnauthorizedError("Email not confirmed")
	}
	if user.Banned {
		return TokenPair{}, NewForbiddenError("Your account is banned")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return TokenPair{}, NewUnauthorizedError("Invalid password")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user models.User) (TokenPair, error) {
	accessToken, err := security.GenerateAccessToken(s.cfg.Security.JWTSecret, user.Email, s.cfg.Security.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := security.GenerateRefreshToken(s.cfg.Security.JWTSecret, user.Email, s.cfg.Security.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.users.UpdateRefreshTokenHash(ctx, user.ID, security.HashToken(refreshToken)); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rotates the token pair. A refresh token that does not match the
// stored hash revokes the stored one, so a stolen token cannot be replayed
// after the legitimate client refreshes.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := security.ParseToken(refreshToken, s.cfg.Security.JWTSecret, security.ScopeRefresh)
	if err != nil {
		return TokenPair{}, NewUnauthorizedError("Could not validate credentials")
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, NewUnauthorizedError("Could not validate credentials")
		}
		return TokenPair{}, err
	}

	hash := security.HashToken(refreshToken)
	if len(user.RefreshTokenHash) == 0 || !hmac.Equal(user.RefreshTokenHash, hash) {
		if err := s.users.UpdateRefreshTokenHash(ctx, user.ID, nil); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("revoke refresh token failed")
		}
		return TokenPair{}, NewUnauthorizedError("Invalid refresh token")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	claims, err := security.ParseToken(token, s.cfg.Security.JWTSecret, security.ScopeEmail)
	if err != nil {
		return "", NewUnprocessableError("Verification error")
	}
	email := claims.Subject

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", NewUnprocessableError("Verification error")
		}
		return "", err
	}
	if user.Confirmed {
		return "Your email is already confirmed", nil
	}

	if err := s.users.SetConfirmed(ctx, email); err != nil {
		return "", err
	}
	if err := s.cache.Invalidate(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("cache invalidation failed")
	}
	return "Email confirmed", nil
}

// SetBanned flips the ban flag and drops the cached record so the ban takes
// effect on the next request, not after the cache TTL.
func (s *AuthService) SetBanned(ctx context.Context, email string, banned bool) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := s.users.SetBanned(ctx, email, banned); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return NewNotFoundError("User not found")
		}
		return err
	}
	if err := s.cache.Invalidate(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("cache invalidation failed")
	}
	return nil
}
