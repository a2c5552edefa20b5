package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/models"
)

const userColumns = `id, email, password_hash, role, key_ciphertext, key_nonce, key_tag, key_alg, created_at, updated_at`

const (
	countUsers = `SELECT COUNT(*) FROM app_users;`

	countAdmins = `SELECT COUNT(*) FROM app_users WHERE role = 'admin';`

	createUser = `INSERT INTO app_users (id, email, password_hash, role, key_ciphertext, key_nonce, key_tag, key_alg)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
	FROM app_users
	WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
	FROM app_users
	WHERE id = $1;`

	getUserRole = `SELECT role FROM app_users WHERE id = $1;`

	getUserRoleForUpdate = `SELECT role FROM app_users WHERE id = $1 FOR UPDATE;`

	listUsers = `SELECT ` + userColumns + `
	FROM app_users
	ORDER BY created_at ASC;`

	updateUserRole = `UPDATE app_users SET role = $1 WHERE id = $2;`

	updateUserPassword = `UPDATE app_users SET password_hash = $1 WHERE id = $2;`

	updateUserPasswordByEmail = `UPDATE app_users SET password_hash = $1 WHERE email = $2;`

	deleteUser = `DELETE FROM app_users WHERE id = $1;`
)

const vaultItemColumns = `id, user_id, title, type, category, enc_ciphertext, enc_nonce, enc_tag, enc_alg,
	icon_kind, icon_url, icon_ref, icon_mime, created_at, updated_at`

const (
	getVaultItem = `SELECT ` + vaultItemColumns + `
	FROM vault_items
	WHERE id = $1 AND user_id = $2;`

	createVaultItem = `INSERT INTO vault_items (id, user_id, title, type, category, enc_ciphertext, enc_nonce, enc_tag, enc_alg)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at;`

	updateVaultItem = `UPDATE vault_items
	SET title = $1, type = $2, category = $3,
	    enc_ciphertext = $4, enc_nonce = $5, enc_tag = $6, enc_alg = $7,
	    updated_at = NOW()
	WHERE id = $8 AND user_id = $9
	RETURNING created_at, updated_at;`

	deleteVaultItem = `DELETE FROM vault_items WHERE id = $1 AND user_id = $2;`

	setVaultItemIcon = `UPDATE vault_items
	SET icon_kind = 'upload', icon_ref = $1, icon_mime = $2, icon_url = NULL, updated_at = NOW()
	WHERE id = $3 AND user_id = $4
	RETURNING ` + vaultItemColumns + `;`

	upsertVaultIcon = `INSERT INTO vault_icons (vault_item_id, user_id, icon_ref, content_type, data)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (vault_item_id)
	DO UPDATE SET icon_ref = EXCLUDED.icon_ref,
	              content_type = EXCLUDED.content_type,
	              data = EXCLUDED.data,
	              updated_at = NOW();`

	getIconByRef = `SELECT vault_item_id, user_id, icon_ref, content_type, data, created_at, updated_at
	FROM vault_icons
	WHERE user_id = $1 AND icon_ref = $2;`
)

// buildListVaultItemsQuery builds the vault listing SELECT, narrowing by the
// optional filter fields. Listing filters operate purely on the plaintext
// columns, so no row has to be decrypted to be excluded.
func buildListVaultItemsQuery(userID uuid.UUID, filter models.VaultFilter) (string, []any, error) {
	builder := sq.
		Select("id", "user_id", "title", "type", "category",
			"enc_ciphertext", "enc_nonce", "enc_tag", "enc_alg",
			"icon_kind", "icon_url", "icon_ref", "icon_mime",
			"created_at", "updated_at").
		From("vault_items").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Type != "" {
		builder = builder.Where(sq.Eq{"type": filter.Type})
	}
	if filter.TitleSearch != "" {
		builder = builder.Where(sq.ILike{"title": "%" + filter.TitleSearch + "%"})
	}

	return builder.ToSql()
}
