package store

import "github.com/lockboxd/lockbox/internal/logger"

// NewRepositories wires every repository to the shared database connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:  NewUserRepository(db, log),
		VaultRepository: NewVaultRepository(db, log),
		IconRepository:  NewIconRepository(db, log),
	}
}
