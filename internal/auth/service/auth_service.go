package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hackerclone/hackerclone/internal/common/clock"
	commoncrypto "github.com/hackerclone/hackerclone/internal/common/crypto"
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
	"github.com/hackerclone/hackerclone/internal/common/logger"
	userdomain "github.com/hackerclone/hackerclone/internal/user/domain"
	userrepo "github.com/hackerclone/hackerclone/internal/user/repository"
)

// AuthService orchestrates the credential hasher and the user store. It owns
// no persistent state; the only values it hands out are Users and short-lived
// SessionIdentity capabilities.
type AuthService struct {
	users      userrepo.Repository
	hasher     commoncrypto.PasswordHasher
	secret     []byte
	sessionTTL time.Duration
	clock      clock.Clock
	log        *logger.Logger
	validate   *validator.Validate
}

type AuthServiceDeps struct {
	Users  userrepo.Repository
	Hasher commoncrypto.PasswordHasher
	Clock  clock.Clock
	Log    *logger.Logger
}

type AuthServiceConfig struct {
	SecretKey  string
	SessionTTL time.Duration
}

func NewAuthService(deps AuthServiceDeps, cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		users:      deps.Users,
		hasher:     deps.Hasher,
		secret:     []byte(cfg.SecretKey),
		sessionTTL: cfg.SessionTTL,
		clock:      deps.Clock,
		log:        deps.Log,
		validate:   newValidator(),
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := s.validateRegisterInput(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		incrementRegistrations("validation_failed")
		return userdomain.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		incrementRegistrations("failure")
		return userdomain.User{}, err
	}

	user, err := s.users.Create(ctx, input.Username, input.Email, hash)
	if err != nil {
		if errors.Is(err, userrepo.ErrDuplicateUsername) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: username already exists")
			incrementRegistrations("duplicate")
			return userdomain.User{}, ErrUsernameTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		incrementRegistrations("failure")
		return userdomain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  int64(user.ID),
		"action":   "register_success",
	}).Info("register success")
	incrementRegistrations("success")

	return user, nil
}

// Login deliberately reports unknown usernames and wrong passwords with the
// same error, so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (SessionIdentity, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	if err := s.validateLoginInput(input); err != nil {
		incrementLogins("validation_failed")
		return SessionIdentity{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: user not found")
			incrementLogins("failure")
			return SessionIdentity{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		incrementLogins("failure")
		return SessionIdentity{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		// Hash mismatch and hashing-primitive failure are coalesced here so
		// the response does not reveal which one happened.
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warnf("login failed: %v", err)
		incrementLogins("failure")
		return SessionIdentity{}, ErrInvalidCredentials
	}

	session, err := s.mintSession(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  int64(user.ID),
			"action":   "login_session_mint_failed",
		}).Errorf("login failed: session mint error: %v", err)
		incrementLogins("failure")
		return SessionIdentity{}, commonerrors.ErrSessionMintFailure.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  int64(user.ID),
		"action":   "login_success",
	}).Info("login success")
	incrementLogins("success")

	return session, nil
}

// Authorize resolves a session token back to its User. Every
// content-mutating operation goes through here before the write.
func (s *AuthService) Authorize(ctx context.Context, token string) (userdomain.User, error) {
	incrementSessionValidations()

	if token == "" {
		incrementSessionValidationsFailed()
		return userdomain.User{}, ErrUnauthenticated
	}

	username, err := s.parseSession(token)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "authorize_token_invalid",
		}).Warnf("authorize failed: %v", err)
		incrementSessionValidationsFailed()
		return userdomain.User{}, ErrUnauthenticated.WithCause(err)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			incrementSessionValidationsFailed()
			return userdomain.User{}, ErrUnauthenticated
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "authorize_fetch_failed",
		}).Errorf("authorize failed: %v", err)
		return userdomain.User{}, err
	}

	return user, nil
}
