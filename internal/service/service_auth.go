package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/internal/config"
	"github.com/lockboxd/lockbox/internal/crypto"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/store"
	"github.com/lockboxd/lockbox/internal/utils"
	"github.com/lockboxd/lockbox/models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// authService is the concrete implementation of [AuthService]. It handles
// first-user registration, credential verification, the JWT token lifecycle
// and the two password flows (self-service change, recovery-key reset),
// using bcrypt for password hashing and the key ring for data-key
// provisioning.
type authService struct {
	// userRepository is the data-access layer used to create and look up
	// accounts.
	userRepository store.UserRepository

	// keyRing provisions and wraps the per-user data key minted at
	// registration.
	keyRing crypto.KeyRing

	// recoveryKey is the shared secret gating the recovery endpoint. Empty
	// means recovery is disabled.
	recoveryKey string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given repository
// and key ring, with security parameters taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, keyRing crypto.KeyRing, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		keyRing:        keyRing,
		recoveryKey:    cfg.RecoveryKey,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegistrationStatus implements [AuthService].
func (a *authService) RegistrationStatus(ctx context.Context) (models.RegistrationStatusResponse, error) {
	count, err := a.userRepository.CountUsers(ctx)
	if err != nil {
		return models.RegistrationStatusResponse{}, fmt.Errorf("counting users ended with error: %w", err)
	}

	return models.RegistrationStatusResponse{
		AllowRegister: count == 0,
		UserCount:     count,
	}, nil
}

// Register implements [AuthService]. The fresh data key is generated, wrapped
// under the master key and discarded in one pass; only the wrapped form is
// persisted. The zero-accounts gate lives in the repository transaction, so
// concurrent first registrations cannot both become admin.
func (a *authService) Register(ctx context.Context, req models.AuthRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := provisionAccount(a.keyRing, req.Email, req.Password, models.RoleAdmin)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	registered, err := a.userRepository.CreateFirstUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("first account creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("first account creation ended with error: %w", err)
	}

	token, err := a.issueToken(registered)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return registered, token, nil
}

// Login implements [AuthService]. A bcrypt comparison runs even when the
// email is unknown, so the two failure modes take comparable time.
func (a *authService) Login(ctx context.Context, req models.AuthRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	found, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyBcryptHash, []byte(req.Password))
			return models.User{}, models.Token{}, ErrWrongPassword
		}
		log.Err(err).Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)) != nil {
		log.Warn().Str("email", email).Msg("wrong password")
		return models.User{}, models.Token{}, ErrWrongPassword
	}

	token, err := a.issueToken(found)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return found, token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// ChangePassword implements [AuthService].
func (a *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	found, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Msg("user lookup for password change failed")
		return fmt.Errorf("user lookup for password change failed: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("password hashing ended with error: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, string(hash)); err != nil {
		log.Err(err).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	return nil
}

// RecoveryStatus implements [AuthService].
func (a *authService) RecoveryStatus() models.RecoveryStatusResponse {
	return models.RecoveryStatusResponse{Enabled: a.recoveryKey != ""}
}

// RecoverPassword implements [AuthService]. The supplied key is compared to
// the configured one in constant time over fixed-length digests, so neither
// the comparison outcome nor the key lengths leak through timing.
func (a *authService) RecoverPassword(ctx context.Context, req models.RecoverRequest) error {
	log := logger.FromContext(ctx)

	if a.recoveryKey == "" {
		return ErrRecoveryDisabled
	}

	email := normalizeEmail(req.Email)
	if email == "" {
		return ErrInvalidDataProvided
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	want := sha256.Sum256([]byte(a.recoveryKey))
	got := sha256.Sum256([]byte(req.RecoveryKey))
	if subtle.ConstantTimeCompare(want[:], got[:]) != 1 {
		log.Warn().Str("email", email).Msg("recovery attempt with wrong key")
		return ErrWrongRecoveryKey
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("password hashing ended with error: %w", err)
	}

	if err := a.userRepository.UpdatePasswordByEmail(ctx, email, string(hash)); err != nil {
		log.Err(err).Msg("recovery password update ended with error")
		return fmt.Errorf("recovery password update ended with error: %w", err)
	}

	log.Info().Str("email", email).Msg("password recovered via recovery key")
	return nil
}

// provisionAccount validates credentials and assembles a persistable account
// with a freshly wrapped data key. The plaintext key is wiped before
// returning.
func provisionAccount(keyRing crypto.KeyRing, email, password string, role models.Role) (models.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, ErrInvalidDataProvided
	}
	if err := validatePassword(password); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("password hashing ended with error: %w", err)
	}

	dataKey, err := keyRing.GenerateDataKey()
	if err != nil {
		return models.User{}, fmt.Errorf("data key generation ended with error: %w", err)
	}
	defer wipe(dataKey)

	wrapped, err := keyRing.WrapDataKey(dataKey)
	if err != nil {
		return models.User{}, fmt.Errorf("data key wrapping ended with error: %w", err)
	}

	return models.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hash),
		Role:           role,
		WrappedDataKey: wrapped,
	}, nil
}

// issueToken signs a JWT for the given account.
func (a *authService) issueToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if password == "" {
		return ErrInvalidDataProvided
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// dummyBcryptHash is compared against when the email is unknown, keeping the
// unknown-email and wrong-password paths close in duration.
var dummyBcryptHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
