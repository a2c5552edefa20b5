package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/models"
)

// vaultRepository is the PostgreSQL-backed implementation of
// [VaultRepository]. Rows are opaque envelopes to this layer; it never sees
// plaintext payloads, only the plaintext listing columns next to them.
type vaultRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] backed by the provided
// database connection and logger.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		db:     db,
		logger: logger,
	}
}

// scanVaultItem reads one full vault row in [vaultItemColumns] order.
func scanVaultItem(row interface{ Scan(...any) error }) (models.VaultItem, error) {
	var item models.VaultItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.Type,
		&item.Category,
		&item.Payload.Ciphertext,
		&item.Payload.Nonce,
		&item.Payload.Tag,
		&item.Payload.Algorithm,
		&item.IconKind,
		&item.IconURL,
		&item.IconRef,
		&item.IconMime,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

// ListVaultItems implements [VaultRepository].
func (r *vaultRepository) ListVaultItems(ctx context.Context, userID uuid.UUID, filter models.VaultFilter) ([]models.VaultItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListVaultItemsQuery(userID, filter)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.ListVaultItems").Msg("failed to build listing query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.ListVaultItems").Msg("failed to execute listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.VaultItem, 0, 16)
	for rows.Next() {
		item, scanErr := scanVaultItem(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*vaultRepository.ListVaultItems").Msg("failed to scan vault row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*vaultRepository.ListVaultItems").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// GetVaultItem implements [VaultRepository]. Ownership scoping happens in
// the WHERE clause, so another user's item is indistinguishable from a
// missing one.
func (r *vaultRepository) GetVaultItem(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	item, err := scanVaultItem(r.db.QueryRowContext(ctx, getVaultItem, itemID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultItem{}, ErrVaultItemNotFound
		}
		log.Err(err).Str("func", "*vaultRepository.GetVaultItem").Msg("vault item lookup failed")
		return models.VaultItem{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return item, nil
}

// CreateVaultItem implements [VaultRepository].
func (r *vaultRepository) CreateVaultItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx, createVaultItem,
		item.ID, item.UserID, item.Title, item.Type, item.Category,
		item.Payload.Ciphertext, item.Payload.Nonce, item.Payload.Tag, item.Payload.Algorithm,
	)
	if err := row.Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*vaultRepository.CreateVaultItem").Msg("vault item creation failed")
		return models.VaultItem{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return item, nil
}

// UpdateVaultItem implements [VaultRepository]. Icon metadata is managed by
// the icon repository and deliberately left untouched here.
func (r *vaultRepository) UpdateVaultItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx, updateVaultItem,
		item.Title, item.Type, item.Category,
		item.Payload.Ciphertext, item.Payload.Nonce, item.Payload.Tag, item.Payload.Algorithm,
		item.ID, item.UserID,
	)
	if err := row.Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultItem{}, ErrVaultItemNotFound
		}
		log.Err(err).Str("func", "*vaultRepository.UpdateVaultItem").Msg("vault item update failed")
		return models.VaultItem{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return item, nil
}

// DeleteVaultItem implements [VaultRepository].
func (r *vaultRepository) DeleteVaultItem(ctx context.Context, userID, itemID uuid.UUID) error {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, deleteVaultItem, itemID, userID)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.DeleteVaultItem").Msg("vault item deletion failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVaultItemNotFound
	}

	return nil
}
