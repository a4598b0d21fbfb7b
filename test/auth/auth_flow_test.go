package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hackerclone/hackerclone/internal/auth/service"
	"github.com/hackerclone/hackerclone/internal/common/clock"
	commoncrypto "github.com/hackerclone/hackerclone/internal/common/crypto"
	"github.com/hackerclone/hackerclone/internal/common/logger"
	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
	userrepo "github.com/hackerclone/hackerclone/internal/user/repository"
)

// inMemoryUserRepo backs the full-flow tests so register, login and authorize
// run against the real argon2 hasher and real tokens.
type inMemoryUserRepo struct {
	nextID int64
	users  map[string]userdomain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{nextID: 1, users: make(map[string]userdomain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, username, email, passwordHash string) (userdomain.User, error) {
	if _, exists := r.users[username]; exists {
		return userdomain.User{}, userrepo.ErrDuplicateUsername
	}
	user := userdomain.User{
		ID:           userdomain.ID(r.nextID),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	r.nextID++
	r.users[username] = user
	return user, nil
}

func (r *inMemoryUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return user, nil
}

func (r *inMemoryUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func setupFlowService(t *testing.T, secret string) (*service.AuthService, *inMemoryUserRepo, *clock.MockClock) {
	t.Helper()

	repo := newInMemoryUserRepo()
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	log, _ := logger.New("", "test", "info")

	svc := service.NewAuthService(
		service.AuthServiceDeps{
			Users:  repo,
			Hasher: commoncrypto.NewArgon2Hasher(secret),
			Clock:  mockClock,
			Log:    log,
		},
		service.AuthServiceConfig{
			SecretKey:  secret,
			SessionTTL: 7 * 24 * time.Hour,
		},
	)

	return svc, repo, mockClock
}

func TestAuthFlow_RegisterLoginAuthorize(t *testing.T) {
	svc, _, _ := setupFlowService(t, testSecretKey)
	ctx := context.Background()

	registered, err := svc.Register(ctx, service.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.ID == 0 {
		t.Fatal("expected store-assigned id")
	}
	if registered.PasswordHash == "correct horse battery" {
		t.Fatal("password stored in the clear")
	}

	session, err := svc.Login(ctx, service.LoginInput{
		Username: "alice",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := svc.Authorize(ctx, session.Token)
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("authorize resolved id %d, registered as %d", user.ID, registered.ID)
	}

	_, err = svc.Login(ctx, service.LoginInput{
		Username: "alice",
		Password: "wrong password!",
	})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected invalid credentials for wrong password, got %v", err)
	}
}

func TestAuthFlow_ShortCredentialsAccepted(t *testing.T) {
	svc, _, _ := setupFlowService(t, testSecretKey)
	ctx := context.Background()

	registered, err := svc.Register(ctx, service.RegisterInput{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register rejected short credentials: %v", err)
	}

	session, err := svc.Login(ctx, service.LoginInput{
		Username: "alice",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := svc.Authorize(ctx, session.Token)
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("authorize resolved id %d, registered as %d", user.ID, registered.ID)
	}
}

func TestAuthFlow_DuplicateRegistration(t *testing.T) {
	svc, _, _ := setupFlowService(t, testSecretKey)
	ctx := context.Background()

	if _, err := svc.Register(ctx, service.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Register(ctx, service.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "another password",
	})
	if !errors.Is(err, service.ErrUsernameTaken) {
		t.Errorf("expected username taken, got %v", err)
	}
}

func TestAuthFlow_TokenFromDifferentSecretRejected(t *testing.T) {
	svcA, _, _ := setupFlowService(t, testSecretKey)
	svcB, _, _ := setupFlowService(t, "another-secret-key-fedcba98765432")
	ctx := context.Background()

	if _, err := svcA.Register(ctx, service.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := svcA.Login(ctx, service.LoginInput{
		Username: "alice",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, err = svcB.Authorize(ctx, session.Token)
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected unauthenticated across secrets, got %v", err)
	}
}
