package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var userRowColumns = []string{
	"id", "email", "password_hash", "role",
	"key_ciphertext", "key_nonce", "key_tag", "key_alg",
	"created_at", "updated_at",
}

func userRow(user models.User, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).AddRow(
		user.ID, user.Email, user.PasswordHash, user.Role,
		user.WrappedDataKey.Ciphertext, user.WrappedDataKey.Nonce,
		user.WrappedDataKey.Tag, user.WrappedDataKey.Algorithm,
		now, now,
	)
}

func testUser() models.User {
	return models.User{
		ID:           uuid.New(),
		Email:        "john@example.com",
		PasswordHash: "bcrypt-hash",
		Role:         models.RoleUser,
		WrappedDataKey: models.EncryptedBlob{
			Ciphertext: []byte("wrapped-key"),
			Nonce:      []byte("nonce-12byte"),
			Tag:        []byte("tag-16-bytes-abc"),
			Algorithm:  models.CipherAESGCM,
		},
	}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := testUser()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO app_users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Role,
			user.WrappedDataKey.Ciphertext, user.WrappedDataKey.Nonce,
			user.WrappedDataKey.Tag, user.WrappedDataKey.Algorithm).
		WillReturnRows(userRow(user, now))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != user.ID {
		t.Errorf("expected id %s, got %s", user.ID, created.ID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
	if string(created.WrappedDataKey.Ciphertext) != "wrapped-key" {
		t.Errorf("wrapped data key did not round-trip: %q", created.WrappedDataKey.Ciphertext)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO app_users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, testUser())
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO app_users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, testUser())
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateFirstUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := testUser()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WithArgs(int64(accountInvariantLockID)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM app_users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	admin := user
	admin.Role = models.RoleAdmin
	mock.ExpectQuery("INSERT INTO app_users").
		WithArgs(user.ID, user.Email, user.PasswordHash, models.RoleAdmin,
			user.WrappedDataKey.Ciphertext, user.WrappedDataKey.Nonce,
			user.WrappedDataKey.Tag, user.WrappedDataKey.Algorithm).
		WillReturnRows(userRow(admin, now))
	mock.ExpectCommit()

	created, err := repo.CreateFirstUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Role != models.RoleAdmin {
		t.Errorf("expected first account to be admin, got %s", created.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateFirstUser_RegistrationClosed(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM app_users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	_, err := repo.CreateFirstUser(ctx, testUser())
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM app_users").
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "missing@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := testUser()

	mock.ExpectQuery("SELECT (.+) FROM app_users").
		WithArgs(user.ID).
		WillReturnRows(userRow(user, time.Now()))

	found, err := repo.FindUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, found.Email)
	}
}

func TestGetRole_ReadsFromStorage(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New()

	mock.ExpectQuery("SELECT role FROM app_users").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))

	role, err := repo.GetRole(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("expected admin role, got %s", role)
	}
}

func TestChangeRole_LastAdminProtected(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT role FROM app_users").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM app_users WHERE role`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.ChangeRole(ctx, id, models.RoleUser)
	if !errors.Is(err, ErrLastAdminDemotion) {
		t.Fatalf("expected ErrLastAdminDemotion, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestChangeRole_DemotionAllowedWithSecondAdmin(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT role FROM app_users").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM app_users WHERE role`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("UPDATE app_users SET role").
		WithArgs(models.RoleUser, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.ChangeRole(ctx, id, models.RoleUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestChangeRole_PromotionSkipsAdminCount(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT role FROM app_users").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("user"))
	mock.ExpectExec("UPDATE app_users SET role").
		WithArgs(models.RoleAdmin, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.ChangeRole(ctx, id, models.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestChangeRole_UserNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT role FROM app_users").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.ChangeRole(ctx, id, models.RoleUser)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdatePassword_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New()

	mock.ExpectExec("UPDATE app_users SET password_hash").
		WithArgs("new-hash", id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(ctx, id, "new-hash")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdatePasswordByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE app_users SET password_hash").
		WithArgs("new-hash", "john@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePasswordByEmail(ctx, "john@example.com", "new-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New()

	mock.ExpectExec("DELETE FROM app_users").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteUser(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM app_users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if !errors.Is(repo.DeleteUser(ctx, uuid.New()), ErrUserNotFound) {
		t.Fatal("expected ErrUserNotFound")
	}
}

func TestListUsers_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	first := testUser()
	second := testUser()
	second.Email = "jane@example.com"
	now := time.Now()

	rows := userRow(first, now).AddRow(
		second.ID, second.Email, second.PasswordHash, second.Role,
		second.WrappedDataKey.Ciphertext, second.WrappedDataKey.Nonce,
		second.WrappedDataKey.Tag, second.WrappedDataKey.Algorithm,
		now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM app_users").
		WillReturnRows(rows)

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[1].Email != "jane@example.com" {
		t.Errorf("expected second user jane@example.com, got %s", users[1].Email)
	}
}
