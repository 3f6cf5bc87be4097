package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasklane/backend/domain"
	internalauth "github.com/tasklane/backend/internal/auth"
	"github.com/tasklane/backend/usecase"
)

// fakeUserRepo is an in-memory UserRepository with the same error contract as
// the Postgres implementation.
type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.byID[user.ID] = &copied
	f.byEmail[user.Email] = &copied
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// fakeAuditor records events in memory.
type fakeAuditor struct {
	events []usecase.AuthEvent
}

func (f *fakeAuditor) Record(ctx context.Context, event usecase.AuthEvent) {
	f.events = append(f.events, event)
}

func newTestUseCase(t *testing.T) (*UseCase, *fakeUserRepo, *internalauth.TokenIssuer, *fakeAuditor) {
	t.Helper()
	repo := newFakeUserRepo()
	auditor := &fakeAuditor{}
	tokens := internalauth.NewTokenIssuer("test-secret", "tasklane", time.Hour)
	uc := New(repo, nil, internalauth.NewPasswordHasher(bcrypt.MinCost), tokens, auditor, nil)
	return uc, repo, tokens, auditor
}

func TestSignup_IssuesTokenForNewUser(t *testing.T) {
	t.Parallel()

	uc, _, tokens, auditor := newTestUseCase(t)

	user, token, err := uc.Signup(context.Background(), "a@x.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)

	require.Len(t, auditor.events, 1)
	assert.Equal(t, usecase.AuthEventSignup, auditor.events[0].Kind)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	uc, _, _, _ := newTestUseCase(t)

	_, _, err := uc.Signup(context.Background(), "a@x.com", "password123")
	require.NoError(t, err)

	_, _, err = uc.Signup(context.Background(), "a@x.com", "different-pass")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestSignup_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"not an address", "not-an-email", "password123"},
		{"email with display name", "Alice <a@x.com>", "password123"},
		{"short password", "a@x.com", "short"},
		{"seven chars", "a@x.com", "1234567"},
	}

	uc, _, _, _ := newTestUseCase(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := uc.Signup(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestSignin_Success(t *testing.T) {
	t.Parallel()

	uc, _, tokens, _ := newTestUseCase(t)

	created, _, err := uc.Signup(context.Background(), "a@x.com", "password123")
	require.NoError(t, err)

	user, token, err := uc.Signin(context.Background(), "a@x.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.Subject)
}

func TestSignin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	t.Parallel()

	uc, _, _, _ := newTestUseCase(t)

	_, _, err := uc.Signup(context.Background(), "a@x.com", "password123")
	require.NoError(t, err)

	_, _, unknownErr := uc.Signin(context.Background(), "nobody@x.com", "password123")
	require.Error(t, unknownErr)
	_, _, wrongErr := uc.Signin(context.Background(), "a@x.com", "wrong-password")
	require.Error(t, wrongErr)

	assert.True(t, domain.IsDomainError(unknownErr, domain.ErrCodeUnauthorized))
	assert.True(t, domain.IsDomainError(wrongErr, domain.ErrCodeUnauthorized))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestSignin_RecordsFailures(t *testing.T) {
	t.Parallel()

	uc, _, _, auditor := newTestUseCase(t)

	_, _, err := uc.Signin(context.Background(), "nobody@x.com", "whatever1")
	require.Error(t, err)

	require.Len(t, auditor.events, 1)
	assert.Equal(t, usecase.AuthEventSigninFailed, auditor.events[0].Kind)
}

func TestMe_ReturnsProfile(t *testing.T) {
	t.Parallel()

	uc, _, _, _ := newTestUseCase(t)

	created, _, err := uc.Signup(context.Background(), "a@x.com", "password123")
	require.NoError(t, err)

	user, err := uc.Me(context.Background(), &domain.Claims{Subject: created.ID, Email: created.Email})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestMe_DeletedAccountRejected(t *testing.T) {
	t.Parallel()

	uc, _, _, _ := newTestUseCase(t)

	_, err := uc.Me(context.Background(), &domain.Claims{Subject: "ghost"})
	require.Error(t, err)
	// The token outlived its account: 401, not 404.
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}

func TestMe_NilClaims(t *testing.T) {
	t.Parallel()

	uc, _, _, _ := newTestUseCase(t)

	_, err := uc.Me(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}
