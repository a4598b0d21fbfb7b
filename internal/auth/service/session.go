package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
)

// SessionIdentity is the opaque capability handed to the calling shell after
// a successful login. It is bound to the username it was minted for; the
// core keeps no session state of its own.
type SessionIdentity struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

func (s *AuthService) mintSession(user userdomain.User) (SessionIdentity, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.sessionTTL)

	claims := jwt.MapClaims{
		"sub": int64(user.ID),
		"usr": user.Username,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString(s.secret)
	if err != nil {
		return SessionIdentity{}, err
	}

	incrementSessionsIssued()

	return SessionIdentity{
		Token:     token,
		Username:  user.Username,
		ExpiresAt: expiresAt,
	}, nil
}

// parseSession verifies the token signature and expiry and returns the bound
// username. Any failure is reported uniformly; the caller maps it to
// Unauthenticated.
func (s *AuthService) parseSession(token string) (string, error) {
	parsed, err := jwt.Parse(
		token,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims type")
	}

	username, _ := claims["usr"].(string)
	if username == "" {
		return "", errors.New("missing usr claim")
	}

	return username, nil
}
