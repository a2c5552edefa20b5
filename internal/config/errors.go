package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are missing or invalid.
var (
	// ErrMissingMasterKey indicates that no master-key secret was configured.
	// This is fatal at startup: without the master key no wrapped user data
	// key can ever be decrypted.
	ErrMissingMasterKey = errors.New("missing required master key secret (APP_MASTER_KEY)")

	// ErrMissingTokenSignKey indicates that no JWT signing key was
	// configured.
	ErrMissingTokenSignKey = errors.New("missing required token sign key (APP_TOKEN_SIGN_KEY)")

	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
