package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/internal/crypto"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/store"
	"github.com/lockboxd/lockbox/models"
	"golang.org/x/crypto/bcrypt"
)

// userService is the concrete implementation of [UserService]. Every method
// verifies the actor's admin role against storage first, so a token minted
// before a demotion grants nothing.
type userService struct {
	userRepository store.UserRepository
	keyRing        crypto.KeyRing
	logger         *logger.Logger
}

// NewUserService constructs a [UserService] wired to the given repository
// and key ring.
func NewUserService(userRepository store.UserRepository, keyRing crypto.KeyRing, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		keyRing:        keyRing,
		logger:         logger,
	}
}

// CurrentUser implements [UserService].
func (s *userService) CurrentUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("account lookup ended with error: %w", err)
	}

	return user, nil
}

// ListUsers implements [UserService]. Admins see every account; a regular
// user sees a one-element list holding only their own account.
func (s *userService) ListUsers(ctx context.Context, actorID uuid.UUID) ([]models.User, error) {
	role, err := s.userRepository.GetRole(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("actor role lookup ended with error: %w", err)
	}

	if role != models.RoleAdmin {
		self, err := s.userRepository.FindUserByID(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("account lookup ended with error: %w", err)
		}
		return []models.User{self}, nil
	}

	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users ended with error: %w", err)
	}

	return users, nil
}

// CreateUser implements [UserService]. The new account gets its own freshly
// wrapped data key; no key material is shared between accounts.
func (s *userService) CreateUser(ctx context.Context, actorID uuid.UUID, req models.CreateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.User{}, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := provisionAccount(s.keyRing, req.Email, req.Password, role)
	if err != nil {
		return models.User{}, err
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("account creation ended with error")
		return models.User{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	log.Info().Str("email", created.Email).Str("role", string(created.Role)).Msg("account created by admin")
	return created, nil
}

// ChangeRole implements [UserService]. The last-admin check is atomic with
// the update inside the repository transaction.
func (s *userService) ChangeRole(ctx context.Context, actorID, targetID uuid.UUID, role models.Role) error {
	log := logger.FromContext(ctx)

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if actorID == targetID {
		return ErrSelfRoleChange
	}
	if !role.Valid() {
		return ErrInvalidDataProvided
	}

	if err := s.userRepository.ChangeRole(ctx, targetID, role); err != nil {
		log.Err(err).Str("role", string(role)).Msg("role change ended with error")
		return fmt.Errorf("role change ended with error: %w", err)
	}

	return nil
}

// ResetPassword implements [UserService]. Admins use the self-service change
// flow for their own account, which requires the current password.
func (s *userService) ResetPassword(ctx context.Context, actorID, targetID uuid.UUID, newPassword string) error {
	log := logger.FromContext(ctx)

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if actorID == targetID {
		return ErrSelfReset
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("password hashing ended with error: %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, targetID, string(hash)); err != nil {
		log.Err(err).Msg("password reset ended with error")
		return fmt.Errorf("password reset ended with error: %w", err)
	}

	return nil
}

// DeleteUser implements [UserService]. Vault items and icons cascade at the
// database level; the target's wrapped data key dies with the row, so the
// deletion is cryptographically final.
func (s *userService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	log := logger.FromContext(ctx)

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if actorID == targetID {
		return ErrSelfDelete
	}

	if err := s.userRepository.DeleteUser(ctx, targetID); err != nil {
		log.Err(err).Msg("account deletion ended with error")
		return fmt.Errorf("account deletion ended with error: %w", err)
	}

	log.Info().Str("target", targetID.String()).Msg("account deleted by admin")
	return nil
}

// requireAdmin re-resolves the actor's role from storage and fails with
// [ErrAdminRequired] unless it is admin right now.
func (s *userService) requireAdmin(ctx context.Context, actorID uuid.UUID) error {
	role, err := s.userRepository.GetRole(ctx, actorID)
	if err != nil {
		return fmt.Errorf("actor role lookup ended with error: %w", err)
	}
	if role != models.RoleAdmin {
		return ErrAdminRequired
	}
	return nil
}
