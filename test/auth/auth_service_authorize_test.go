package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hackerclone/hackerclone/internal/auth/service"
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
	userrepo "github.com/hackerclone/hackerclone/internal/user/repository"
)

func loginTestUser(t *testing.T, svc *service.AuthService, repo *mockUserRepo, username string) service.SessionIdentity {
	t.Helper()

	repo.findByUsernameFunc = func(ctx context.Context, u string) (userdomain.User, error) {
		return userdomain.User{ID: 7, Username: username, Email: "t@example.com", PasswordHash: "stored_hash"}, nil
	}

	session, err := svc.Login(context.Background(), service.LoginInput{
		Username: username,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return session
}

func TestAuthService_Authorize_Success(t *testing.T) {
	svc, mockUserRepo, _, _ := setupAuthService(t)

	session := loginTestUser(t, svc, mockUserRepo, "testuser")

	user, err := svc.Authorize(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if user.Username != "testuser" {
		t.Errorf("expected user testuser, got %s", user.Username)
	}

	if user.ID != 7 {
		t.Errorf("expected user id 7, got %d", user.ID)
	}
}

func TestAuthService_Authorize_EmptyToken(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, err := svc.Authorize(context.Background(), "")
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected unauthenticated, got %v", err)
	}
}

func TestAuthService_Authorize_GarbageToken(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, err := svc.Authorize(context.Background(), "not.a.token")
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected unauthenticated, got %v", err)
	}
}

func TestAuthService_Authorize_ExpiredToken(t *testing.T) {
	svc, mockUserRepo, _, mockClock := setupAuthService(t)

	session := loginTestUser(t, svc, mockUserRepo, "testuser")

	mockClock.Advance(7*24*time.Hour + time.Minute)

	_, err := svc.Authorize(context.Background(), session.Token)
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected unauthenticated for expired token, got %v", err)
	}
}

func TestAuthService_Authorize_TamperedToken(t *testing.T) {
	svc, mockUserRepo, _, _ := setupAuthService(t)

	session := loginTestUser(t, svc, mockUserRepo, "testuser")

	last := session.Token[len(session.Token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := session.Token[:len(session.Token)-1] + string(flipped)

	_, err := svc.Authorize(context.Background(), tampered)
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected unauthenticated for tampered token, got %v", err)
	}
}

func TestAuthService_Authorize_UserSinceDeleted(t *testing.T) {
	svc, mockUserRepo, _, _ := setupAuthService(t)

	session := loginTestUser(t, svc, mockUserRepo, "testuser")

	mockUserRepo.findByUsernameFunc = func(ctx context.Context, u string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	_, err := svc.Authorize(context.Background(), session.Token)
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected unauthenticated for deleted user, got %v", err)
	}
}

func TestAuthService_Authorize_StoreFailurePropagates(t *testing.T) {
	svc, mockUserRepo, _, _ := setupAuthService(t)

	session := loginTestUser(t, svc, mockUserRepo, "testuser")

	mockUserRepo.findByUsernameFunc = func(ctx context.Context, u string) (userdomain.User, error) {
		return userdomain.User{}, commonerrors.ErrStoreFailure.WithCause(errors.New("connection reset"))
	}

	_, err := svc.Authorize(context.Background(), session.Token)
	if !errors.Is(err, commonerrors.ErrStoreFailure) {
		t.Errorf("expected store failure, got %v", err)
	}
}
