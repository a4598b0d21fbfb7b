package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authhttp "github.com/hackerclone/hackerclone/internal/auth/http"
	"github.com/hackerclone/hackerclone/internal/common/constants"
	"github.com/hackerclone/hackerclone/internal/common/logger"
	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
	userrepo "github.com/hackerclone/hackerclone/internal/user/repository"
)

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupAuthHTTP(t *testing.T) (http.Handler, *mockUserRepo, *mockHasher) {
	svc, mockUserRepo, mockHasher, _ := setupAuthService(t)
	log, _ := logger.New("", "test", "info")

	h := authhttp.NewHandler(svc, 30*time.Second, log)
	mux := http.NewServeMux()
	h.Register(mux)

	return mux, mockUserRepo, mockHasher
}

func TestAuthHTTP_Signup_InvalidJSON(t *testing.T) {
	mux, _, _ := setupAuthHTTP(t)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Code != "INVALID_JSON" {
		t.Errorf("expected code INVALID_JSON, got %s", env.Code)
	}
}

func TestAuthHTTP_Signup_ValidationError(t *testing.T) {
	mux, _, _ := setupAuthHTTP(t)

	body, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"email":    "not-an-email",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Code != "VALIDATION_FAILED" {
		t.Errorf("expected code VALIDATION_FAILED, got %s", env.Code)
	}
}

func TestAuthHTTP_Signup_DuplicateUsername(t *testing.T) {
	mux, mockUserRepo, _ := setupAuthHTTP(t)

	mockUserRepo.createFunc = func(ctx context.Context, u, e, hash string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrDuplicateUsername
	}

	body, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"email":    "testuser@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Code != "DUPLICATE_USERNAME" {
		t.Errorf("expected code DUPLICATE_USERNAME, got %s", env.Code)
	}
}

func TestAuthHTTP_Signup_Success(t *testing.T) {
	mux, mockUserRepo, _ := setupAuthHTTP(t)

	mockUserRepo.createFunc = func(ctx context.Context, u, e, hash string) (userdomain.User, error) {
		return userdomain.User{ID: 42, Username: u, Email: e, PasswordHash: hash}, nil
	}

	body, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"email":    "testuser@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var resp struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.ID != 42 || resp.Username != "testuser" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAuthHTTP_Login_InvalidCredentials(t *testing.T) {
	mux, mockUserRepo, _ := setupAuthHTTP(t)

	mockUserRepo.findByUsernameFunc = func(ctx context.Context, u string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	body, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Code != "INVALID_CREDENTIALS" {
		t.Errorf("expected code INVALID_CREDENTIALS, got %s", env.Code)
	}
}

func TestAuthHTTP_Login_SetsSessionCookie(t *testing.T) {
	mux, mockUserRepo, _ := setupAuthHTTP(t)

	mockUserRepo.findByUsernameFunc = func(ctx context.Context, u string) (userdomain.User, error) {
		return userdomain.User{ID: 7, Username: u, PasswordHash: "stored_hash"}, nil
	}

	body, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if sessionCookie.Value == "" {
		t.Error("expected session cookie to carry a token")
	}
	if !sessionCookie.HttpOnly {
		t.Error("expected session cookie to be http-only")
	}
}

func TestAuthHTTP_Logout_ClearsSessionCookie(t *testing.T) {
	mux, _, _ := setupAuthHTTP(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie in response")
	}
	if sessionCookie.MaxAge != -1 {
		t.Errorf("expected cookie max-age -1, got %d", sessionCookie.MaxAge)
	}
}

func TestAuthHTTP_Signup_MethodNotAllowed(t *testing.T) {
	mux, _, _ := setupAuthHTTP(t)

	req := httptest.NewRequest(http.MethodGet, "/signup", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}
