package models

// Request and response bodies exchanged with the HTTP layer. Kept in models
// so the handler and service layers share one set of shapes.

// AuthRequest is the body of register and login calls.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegistrationStatusResponse reports whether first-user self-registration is
// still open.
type RegistrationStatusResponse struct {
	AllowRegister bool `json:"allowRegister"`
	UserCount     int  `json:"userCount"`
}

// RecoveryStatusResponse reports whether the recovery endpoint is enabled.
type RecoveryStatusResponse struct {
	Enabled bool `json:"enabled"`
}

// RecoverRequest is the body of the unauthenticated password-recovery call.
type RecoverRequest struct {
	Email       string `json:"email"`
	RecoveryKey string `json:"recoveryKey"`
	NewPassword string `json:"newPassword"`
}

// CreateUserRequest is the body of the admin user-creation call.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// ChangeRoleRequest is the body of the admin role-change call.
type ChangeRoleRequest struct {
	Role Role `json:"role"`
}

// ResetPasswordRequest is the body of the admin password-reset call.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest is the body of the self-service password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// VaultEntryRequest is the body of vault create and update calls. The
// plaintext columns and the payload fields arrive together; the service
// splits them before encryption.
type VaultEntryRequest struct {
	Title       string       `json:"title"`
	Type        string       `json:"type"`
	Category    string       `json:"category"`
	URLs        []string     `json:"urls"`
	IPs         []string     `json:"ips"`
	ServerType  *string      `json:"serverType,omitempty"`
	Credentials []Credential `json:"credentials"`
	Notes       string       `json:"notes"`
}

// ImportIconRequest is the body of the icon import-by-URL call.
type ImportIconRequest struct {
	URL string `json:"url"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
