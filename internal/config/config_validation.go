package config

import "time"

// Defaults applied to fields that no configuration source set.
const (
	defaultHTTPAddress    = "0.0.0.0:8080"
	defaultTokenIssuer    = "lockbox"
	defaultTokenDuration  = 720 * time.Hour // 30 days, matching token lifetime before roles existed
	defaultRequestTimeout = 30 * time.Second
	defaultQueryTimeout   = 10 * time.Second
)

// applyDefaults fills in safe defaults for optional settings. Secrets never
// get defaults: a missing one must fail validation, not silently weaken the
// deployment.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Storage.DB.QueryTimeout == 0 {
		cfg.Storage.DB.QueryTimeout = defaultQueryTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// A missing master-key secret is fatal: the server must never start serving
// requests with an undefined master key, because every wrapped data key in
// the database depends on it. A missing recovery key is fine: recovery is
// simply disabled.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.MasterKeySecret == "" {
		return ErrMissingMasterKey
	}

	if cfg.App.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
