package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/models"
)

// Mock service.AuthService

type mockAuthService struct {
	registrationStatusFn func(ctx context.Context) (models.RegistrationStatusResponse, error)
	registerFn           func(ctx context.Context, req models.AuthRequest) (models.User, models.Token, error)
	loginFn              func(ctx context.Context, req models.AuthRequest) (models.User, models.Token, error)
	parseTokenFn         func(ctx context.Context, tokenString string) (models.Token, error)
	changePasswordFn     func(ctx context.Context, userID uuid.UUID, req models.ChangePasswordRequest) error
	recoveryStatusFn     func() models.RecoveryStatusResponse
	recoverPasswordFn    func(ctx context.Context, req models.RecoverRequest) error
}

func (m *mockAuthService) RegistrationStatus(ctx context.Context) (models.RegistrationStatusResponse, error) {
	if m.registrationStatusFn != nil {
		return m.registrationStatusFn(ctx)
	}
	return models.RegistrationStatusResponse{}, nil
}

func (m *mockAuthService) Register(ctx context.Context, req models.AuthRequest) (models.User, models.Token, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return models.User{}, models.Token{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.AuthRequest) (models.User, models.Token, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return models.User{}, models.Token{}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, nil
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req models.ChangePasswordRequest) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, req)
	}
	return nil
}

func (m *mockAuthService) RecoveryStatus() models.RecoveryStatusResponse {
	if m.recoveryStatusFn != nil {
		return m.recoveryStatusFn()
	}
	return models.RecoveryStatusResponse{}
}

func (m *mockAuthService) RecoverPassword(ctx context.Context, req models.RecoverRequest) error {
	if m.recoverPasswordFn != nil {
		return m.recoverPasswordFn(ctx, req)
	}
	return nil
}

// Mock service.UserService

type mockUserService struct {
	currentUserFn   func(ctx context.Context, userID uuid.UUID) (models.User, error)
	listUsersFn     func(ctx context.Context, actorID uuid.UUID) ([]models.User, error)
	createUserFn    func(ctx context.Context, actorID uuid.UUID, req models.CreateUserRequest) (models.User, error)
	changeRoleFn    func(ctx context.Context, actorID, targetID uuid.UUID, role models.Role) error
	resetPasswordFn func(ctx context.Context, actorID, targetID uuid.UUID, newPassword string) error
	deleteUserFn    func(ctx context.Context, actorID, targetID uuid.UUID) error
}

func (m *mockUserService) CurrentUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserService) ListUsers(ctx context.Context, actorID uuid.UUID) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, actorID)
	}
	return nil, nil
}

func (m *mockUserService) CreateUser(ctx context.Context, actorID uuid.UUID, req models.CreateUserRequest) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, actorID, req)
	}
	return models.User{}, nil
}

func (m *mockUserService) ChangeRole(ctx context.Context, actorID, targetID uuid.UUID, role models.Role) error {
	if m.changeRoleFn != nil {
		return m.changeRoleFn(ctx, actorID, targetID, role)
	}
	return nil
}

func (m *mockUserService) ResetPassword(ctx context.Context, actorID, targetID uuid.UUID, newPassword string) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(ctx, actorID, targetID, newPassword)
	}
	return nil
}

func (m *mockUserService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, actorID, targetID)
	}
	return nil
}

// Mock service.VaultService

type mockVaultService struct {
	listEntriesFn func(ctx context.Context, userID uuid.UUID, filter models.VaultFilter) ([]models.VaultEntry, error)
	getEntryFn    func(ctx context.Context, userID, itemID uuid.UUID) (models.VaultEntry, error)
	createEntryFn func(ctx context.Context, userID uuid.UUID, req models.VaultEntryRequest) (models.VaultEntry, error)
	updateEntryFn func(ctx context.Context, userID, itemID uuid.UUID, req models.VaultEntryRequest) (models.VaultEntry, error)
	deleteEntryFn func(ctx context.Context, userID, itemID uuid.UUID) error
}

func (m *mockVaultService) ListEntries(ctx context.Context, userID uuid.UUID, filter models.VaultFilter) ([]models.VaultEntry, error) {
	if m.listEntriesFn != nil {
		return m.listEntriesFn(ctx, userID, filter)
	}
	return nil, nil
}

func (m *mockVaultService) GetEntry(ctx context.Context, userID, itemID uuid.UUID) (models.VaultEntry, error) {
	if m.getEntryFn != nil {
		return m.getEntryFn(ctx, userID, itemID)
	}
	return models.VaultEntry{}, nil
}

func (m *mockVaultService) CreateEntry(ctx context.Context, userID uuid.UUID, req models.VaultEntryRequest) (models.VaultEntry, error) {
	if m.createEntryFn != nil {
		return m.createEntryFn(ctx, userID, req)
	}
	return models.VaultEntry{}, nil
}

func (m *mockVaultService) UpdateEntry(ctx context.Context, userID, itemID uuid.UUID, req models.VaultEntryRequest) (models.VaultEntry, error) {
	if m.updateEntryFn != nil {
		return m.updateEntryFn(ctx, userID, itemID, req)
	}
	return models.VaultEntry{}, nil
}

func (m *mockVaultService) DeleteEntry(ctx context.Context, userID, itemID uuid.UUID) error {
	if m.deleteEntryFn != nil {
		return m.deleteEntryFn(ctx, userID, itemID)
	}
	return nil
}

// Mock service.IconService

type mockIconService struct {
	suggestIconsFn func(ctx context.Context, name string) ([]models.IconCandidate, error)
	importIconFn   func(ctx context.Context, userID, itemID uuid.UUID, url string) (models.VaultItem, error)
	uploadIconFn   func(ctx context.Context, userID, itemID uuid.UUID, contentType string, data []byte) (models.VaultItem, error)
	getIconFn      func(ctx context.Context, userID uuid.UUID, iconRef string) (models.VaultIcon, error)
}

func (m *mockIconService) SuggestIcons(ctx context.Context, name string) ([]models.IconCandidate, error) {
	if m.suggestIconsFn != nil {
		return m.suggestIconsFn(ctx, name)
	}
	return nil, nil
}

func (m *mockIconService) ImportIcon(ctx context.Context, userID, itemID uuid.UUID, url string) (models.VaultItem, error) {
	if m.importIconFn != nil {
		return m.importIconFn(ctx, userID, itemID, url)
	}
	return models.VaultItem{}, nil
}

func (m *mockIconService) UploadIcon(ctx context.Context, userID, itemID uuid.UUID, contentType string, data []byte) (models.VaultItem, error) {
	if m.uploadIconFn != nil {
		return m.uploadIconFn(ctx, userID, itemID, contentType, data)
	}
	return models.VaultItem{}, nil
}

func (m *mockIconService) GetIcon(ctx context.Context, userID uuid.UUID, iconRef string) (models.VaultIcon, error) {
	if m.getIconFn != nil {
		return m.getIconFn(ctx, userID, iconRef)
	}
	return models.VaultIcon{}, nil
}

// Mock service.AppInfoService

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) Health(_ context.Context) models.HealthResponse {
	return models.HealthResponse{OK: true, Version: m.version}
}
