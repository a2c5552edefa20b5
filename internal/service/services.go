package service

import (
	"github.com/lockboxd/lockbox/internal/config"
	"github.com/lockboxd/lockbox/internal/crypto"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/store"
)

// Services aggregates every service consumed by the HTTP layer.
type Services struct {
	AuthService    AuthService
	UserService    UserService
	VaultService   VaultService
	IconService    IconService
	AppInfoService AppInfoService
}

// NewServices wires the service layer to the repositories and the key
// hierarchy.
func NewServices(repos *store.Repositories, keyRing crypto.KeyRing, codec crypto.VaultCodec, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(repos.UserRepository, keyRing, cfg.App, logger),
		UserService:    NewUserService(repos.UserRepository, keyRing, logger),
		VaultService:   NewVaultService(repos.UserRepository, repos.VaultRepository, keyRing, codec, logger),
		IconService:    NewIconService(repos.IconRepository, logger),
		AppInfoService: NewAppInfoService(cfg.App, logger),
	}
}

// wipe zeroes key material once its request-scoped use ends.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
