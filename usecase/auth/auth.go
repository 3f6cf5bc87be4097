package auth

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/tasklane/backend/domain"
	internalauth "github.com/tasklane/backend/internal/auth"
	"github.com/tasklane/backend/repository"
	"github.com/tasklane/backend/usecase"
)

const minPasswordLength = 8

// UseCase implements signup, signin and the authenticated profile lookup.
type UseCase struct {
	users     repository.UserRepository
	cache     repository.UserCache
	passwords *internalauth.PasswordHasher
	tokens    *internalauth.TokenIssuer
	auditor   usecase.AuthAuditor
	logger    *zap.Logger
}

func New(
	users repository.UserRepository,
	cache repository.UserCache,
	passwords *internalauth.PasswordHasher,
	tokens *internalauth.TokenIssuer,
	auditor usecase.AuthAuditor,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:     users,
		cache:     cache,
		passwords: passwords,
		tokens:    tokens,
		auditor:   auditor,
		logger:    logger,
	}
}

// Signup registers a new account and issues its first access token.
func (uc *UseCase) Signup(ctx context.Context, email, password string) (*domain.User, string, error) {
	email, err := validateEmail(email)
	if err != nil {
		return nil, "", err
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, "", domain.Invalid("password must be at least %d characters", minPasswordLength)
	}

	hash, err := uc.passwords.Hash(password)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token issuance failed", err)
	}

	uc.record(ctx, usecase.AuthEvent{Kind: usecase.AuthEventSignup, Email: user.Email, UserID: user.ID})
	uc.prime(ctx, user)
	return user, token, nil
}

// Signin verifies credentials and issues a fresh access token. Unknown email
// and wrong password produce the same error so accounts cannot be enumerated.
func (uc *UseCase) Signin(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.record(ctx, usecase.AuthEvent{Kind: usecase.AuthEventSigninFailed, Email: email})
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !uc.passwords.Verify(password, user.PasswordHash) {
		uc.record(ctx, usecase.AuthEvent{Kind: usecase.AuthEventSigninFailed, Email: email, UserID: user.ID})
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token issuance failed", err)
	}

	uc.record(ctx, usecase.AuthEvent{Kind: usecase.AuthEventSignin, Email: user.Email, UserID: user.ID})
	uc.prime(ctx, user)
	return user, token, nil
}

// Me resolves the caller's profile from verified claims, preferring the cache.
func (uc *UseCase) Me(ctx context.Context, claims *domain.Claims) (*domain.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	if uc.cache != nil {
		if user, err := uc.cache.Get(ctx, claims.Subject); err == nil {
			return user, nil
		}
	}

	user, err := uc.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			// The token outlived its account.
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	uc.prime(ctx, user)
	return user, nil
}

func (uc *UseCase) record(ctx context.Context, event usecase.AuthEvent) {
	if uc.auditor == nil {
		return
	}
	uc.auditor.Record(ctx, event)
}

func (uc *UseCase) prime(ctx context.Context, user *domain.User) {
	if uc.cache == nil || user == nil {
		return
	}
	if err := uc.cache.Set(ctx, user); err != nil {
		uc.logger.Warn("user cache write failed", zap.Error(err))
	}
}

func validateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", domain.Invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.Invalid("invalid email address")
	}
	return email, nil
}
