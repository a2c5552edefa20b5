package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/models"
)

// accountInvariantLockID is the advisory-lock key serializing transactions
// that enforce whole-table account invariants: the zero-accounts registration
// gate and the last-admin count. Row locks cannot express either invariant
// because both reason about rows that may not exist yet.
const accountInvariantLockID = 0x10CB0C5

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, role management and password updates
// against the "app_users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads one full account row in [userColumns] order.
func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.WrappedDataKey.Ciphertext,
		&user.WrappedDataKey.Nonce,
		&user.WrappedDataKey.Tag,
		&user.WrappedDataKey.Algorithm,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// CreateFirstUser implements [UserRepository]. The zero-accounts check and
// the INSERT run in one transaction under the account-invariant advisory
// lock, so two concurrent first registrations cannot both pass the gate.
func (r *userRepository) CreateFirstUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	var created models.User
	err := r.db.withinTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", accountInvariantLockID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		var count int
		if err := tx.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if count > 0 {
			return ErrRegistrationClosed
		}

		row := tx.QueryRowContext(ctx, createUser,
			user.ID, user.Email, user.PasswordHash, models.RoleAdmin,
			user.WrappedDataKey.Ciphertext, user.WrappedDataKey.Nonce,
			user.WrappedDataKey.Tag, user.WrappedDataKey.Algorithm,
		)

		var scanErr error
		created, scanErr = scanUser(row)
		if scanErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateFirstUser").Msg("first account creation failed")
		return models.User{}, err
	}

	return created, nil
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx, createUser,
		user.ID, user.Email, user.PasswordHash, user.Role,
		user.WrappedDataKey.Ciphertext, user.WrappedDataKey.Nonce,
		user.WrappedDataKey.Tag, user.WrappedDataKey.Algorithm,
	)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("user creation failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// CountUsers implements [UserRepository].
func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.CountUsers").Msg("counting users failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// FindUserByEmail implements [UserRepository].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("user lookup by email failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByID implements [UserRepository].
func (r *userRepository) FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("user lookup by id failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// GetRole implements [UserRepository]. This is the authoritative role read
// used by every authorization-sensitive request.
func (r *userRepository) GetRole(ctx context.Context, id uuid.UUID) (models.Role, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	var role models.Role
	if err := r.db.QueryRowContext(ctx, getUserRole, id).Scan(&role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.GetRole").Msg("role lookup failed")
		return "", fmt.Errorf("unexpected DB error: %w", err)
	}

	return role, nil
}

// ListUsers implements [UserRepository].
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to execute query for listing users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 8)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// ChangeRole implements [UserRepository]. The target row is locked and, when
// the change would demote an admin, the admin count is taken inside the same
// transaction under the account-invariant advisory lock, so two concurrent
// demotions cannot race each other past the last-admin check.
func (r *userRepository) ChangeRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	err := r.db.withinTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", accountInvariantLockID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		var current models.Role
		if err := tx.QueryRowContext(ctx, getUserRoleForUpdate, id).Scan(&current); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if current == models.RoleAdmin && role != models.RoleAdmin {
			var admins int
			if err := tx.QueryRowContext(ctx, countAdmins).Scan(&admins); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
			}
			if admins <= 1 {
				return ErrLastAdminDemotion
			}
		}

		if _, err := tx.ExecContext(ctx, updateUserRole, role, id); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ChangeRole").Str("role", string(role)).Msg("role change failed")
		return err
	}

	return nil
}

// UpdatePassword implements [UserRepository].
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, updateUserPassword, passwordHash, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("password update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePasswordByEmail implements [UserRepository].
func (r *userRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, updateUserPasswordByEmail, passwordHash, email)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordByEmail").Msg("password update by email failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteUser implements [UserRepository]. Vault items and icon rows cascade
// via foreign keys, so one statement removes the whole account.
func (r *userRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("user deletion failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
