package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong email or password")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrAdminRequired  = errors.New("admin role required")
	ErrSelfDelete     = errors.New("cannot delete your own account")
	ErrSelfRoleChange = errors.New("cannot change your own role")
	ErrSelfReset      = errors.New("cannot reset your own password, use password change")

	ErrRecoveryDisabled = errors.New("recovery is not configured")
	ErrWrongRecoveryKey = errors.New("wrong recovery key")

	ErrInvalidIconURL      = errors.New("invalid icon url")
	ErrIconFetchFailed     = errors.New("icon fetch failed")
	ErrIconTooLarge        = errors.New("icon exceeds the size limit")
	ErrUnsupportedIconType = errors.New("unsupported icon content type")
)
