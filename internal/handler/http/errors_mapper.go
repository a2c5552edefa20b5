package http

import (
	"errors"
	"net/http"

	"github.com/lockboxd/lockbox/internal/crypto"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/service"
	"github.com/lockboxd/lockbox/internal/store"
	"github.com/lockboxd/lockbox/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrPasswordTooShort:        http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAdminRequired:           http.StatusForbidden,
	service.ErrSelfDelete:              http.StatusBadRequest,
	service.ErrSelfRoleChange:          http.StatusBadRequest,
	service.ErrSelfReset:               http.StatusBadRequest,
	service.ErrRecoveryDisabled:        http.StatusNotFound,
	service.ErrWrongRecoveryKey:        http.StatusUnauthorized,
	service.ErrInvalidIconURL:          http.StatusBadRequest,
	service.ErrIconFetchFailed:         http.StatusBadGateway,
	service.ErrIconTooLarge:            http.StatusRequestEntityTooLarge,
	service.ErrUnsupportedIconType:     http.StatusUnsupportedMediaType,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrRegistrationClosed: http.StatusForbidden,
	store.ErrLastAdminDemotion:  http.StatusConflict,
	store.ErrVaultItemNotFound:  http.StatusNotFound,
	store.ErrIconNotFound:       http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError resolves an HTTP status for any error bubbling out of the
// service layer. Unmatched errors are treated as internal.
func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes the JSON error body. Server-side failures
// are reported with an opaque message: decryption and key-unwrap problems in
// particular must not leak which stage failed.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		for target := range errorStatusMap {
			if errors.Is(err, target) {
				message = target.Error()
				break
			}
		}
	}

	switch {
	case errors.Is(err, crypto.ErrUnwrapDataKey),
		errors.Is(err, crypto.ErrAuthenticationFailed),
		errors.Is(err, crypto.ErrCorruptEntry):
		log.Err(err).Msg("cannot access encrypted data")
		message = "cannot access encrypted data"
		status = http.StatusInternalServerError
	default:
		log.Err(err).Send()
	}

	utils.WriteJSONError(w, message, status)
}
