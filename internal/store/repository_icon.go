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

// iconRepository is the PostgreSQL-backed implementation of
// [IconRepository].
type iconRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewIconRepository constructs an [IconRepository] backed by the provided
// database connection and logger.
func NewIconRepository(db *DB, logger *logger.Logger) IconRepository {
	logger.Debug().Msg("creating icon repository")
	return &iconRepository{
		db:     db,
		logger: logger,
	}
}

// SaveIcon implements [IconRepository]. The vault item's icon metadata and
// the icon blob are written in one transaction; a failed blob write never
// leaves the item pointing at a reference that does not exist.
func (r *iconRepository) SaveIcon(ctx context.Context, icon models.VaultIcon) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	var item models.VaultItem
	err := r.db.withinTransaction(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, setVaultItemIcon,
			icon.IconRef, icon.ContentType, icon.VaultItemID, icon.UserID,
		)

		var scanErr error
		item, scanErr = scanVaultItem(row)
		if scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return ErrVaultItemNotFound
			}
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if _, err := tx.ExecContext(ctx, upsertVaultIcon,
			icon.VaultItemID, icon.UserID, icon.IconRef, icon.ContentType, icon.Data,
		); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*iconRepository.SaveIcon").Msg("icon save failed")
		return models.VaultItem{}, err
	}

	return item, nil
}

// GetIconByRef implements [IconRepository].
func (r *iconRepository) GetIconByRef(ctx context.Context, userID uuid.UUID, iconRef string) (models.VaultIcon, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.queryContext(ctx)
	defer cancel()

	var icon models.VaultIcon
	err := r.db.QueryRowContext(ctx, getIconByRef, userID, iconRef).Scan(
		&icon.VaultItemID,
		&icon.UserID,
		&icon.IconRef,
		&icon.ContentType,
		&icon.Data,
		&icon.CreatedAt,
		&icon.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultIcon{}, ErrIconNotFound
		}
		log.Err(err).Str("func", "*iconRepository.GetIconByRef").Msg("icon lookup failed")
		return models.VaultIcon{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return icon, nil
}
