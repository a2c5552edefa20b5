package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to create a user
	// fails because an account with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrUserNotFound is returned when a query expected to match at least
	// one account produces an empty result set.
	ErrUserNotFound = errors.New("user not found")

	// ErrRegistrationClosed is returned by the first-account creation path
	// when at least one account already exists. The count check and the
	// insert run in the same transaction, so two concurrent first
	// registrations cannot both succeed.
	ErrRegistrationClosed = errors.New("registration is closed: accounts already exist")

	// ErrLastAdminDemotion is returned when a role change would leave zero
	// admin accounts. The admin count is taken inside the same transaction
	// that applies the change.
	ErrLastAdminDemotion = errors.New("cannot demote the last admin")

	// ErrVaultItemNotFound is returned when a vault operation targets an
	// entry (identified by id and owner id) that does not exist. Ownership
	// violations surface as this same error: rows owned by someone else are
	// invisible.
	ErrVaultItemNotFound = errors.New("vault item not found")

	// ErrIconNotFound is returned when an icon lookup by reference matches
	// no row for the requesting user.
	ErrIconNotFound = errors.New("icon not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
