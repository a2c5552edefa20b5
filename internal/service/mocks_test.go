package service

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/internal/crypto"
	"github.com/lockboxd/lockbox/models"
)

// Mock: store.UserRepository

type mockUserRepository struct {
	createFirstUserFn       func(ctx context.Context, user models.User) (models.User, error)
	createUserFn            func(ctx context.Context, user models.User) (models.User, error)
	countUsersFn            func(ctx context.Context) (int, error)
	findUserByEmailFn       func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn          func(ctx context.Context, id uuid.UUID) (models.User, error)
	getRoleFn               func(ctx context.Context, id uuid.UUID) (models.Role, error)
	listUsersFn             func(ctx context.Context) ([]models.User, error)
	changeRoleFn            func(ctx context.Context, id uuid.UUID, role models.Role) error
	updatePasswordFn        func(ctx context.Context, id uuid.UUID, passwordHash string) error
	updatePasswordByEmailFn func(ctx context.Context, email, passwordHash string) error
	deleteUserFn            func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepository) CreateFirstUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFirstUserFn != nil {
		return m.createFirstUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) CountUsers(ctx context.Context) (int, error) {
	if m.countUsersFn != nil {
		return m.countUsersFn(ctx)
	}
	return 0, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, id)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) GetRole(ctx context.Context, id uuid.UUID) (models.Role, error) {
	if m.getRoleFn != nil {
		return m.getRoleFn(ctx, id)
	}
	return models.RoleUser, nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) ChangeRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	if m.changeRoleFn != nil {
		return m.changeRoleFn(ctx, id, role)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	if m.updatePasswordByEmailFn != nil {
		return m.updatePasswordByEmailFn(ctx, email, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, id)
	}
	return nil
}

// Mock: store.VaultRepository

type mockVaultRepository struct {
	listVaultItemsFn  func(ctx context.Context, userID uuid.UUID, filter models.VaultFilter) ([]models.VaultItem, error)
	getVaultItemFn    func(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error)
	createVaultItemFn func(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	updateVaultItemFn func(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	deleteVaultItemFn func(ctx context.Context, userID, itemID uuid.UUID) error
}

func (m *mockVaultRepository) ListVaultItems(ctx context.Context, userID uuid.UUID, filter models.VaultFilter) ([]models.VaultItem, error) {
	if m.listVaultItemsFn != nil {
		return m.listVaultItemsFn(ctx, userID, filter)
	}
	return nil, nil
}

func (m *mockVaultRepository) GetVaultItem(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error) {
	if m.getVaultItemFn != nil {
		return m.getVaultItemFn(ctx, userID, itemID)
	}
	return models.VaultItem{}, nil
}

func (m *mockVaultRepository) CreateVaultItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	if m.createVaultItemFn != nil {
		return m.createVaultItemFn(ctx, item)
	}
	return item, nil
}

func (m *mockVaultRepository) UpdateVaultItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	if m.updateVaultItemFn != nil {
		return m.updateVaultItemFn(ctx, item)
	}
	return item, nil
}

func (m *mockVaultRepository) DeleteVaultItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if m.deleteVaultItemFn != nil {
		return m.deleteVaultItemFn(ctx, userID, itemID)
	}
	return nil
}

// Mock: store.IconRepository

type mockIconRepository struct {
	saveIconFn     func(ctx context.Context, icon models.VaultIcon) (models.VaultItem, error)
	getIconByRefFn func(ctx context.Context, userID uuid.UUID, iconRef string) (models.VaultIcon, error)
}

func (m *mockIconRepository) SaveIcon(ctx context.Context, icon models.VaultIcon) (models.VaultItem, error) {
	if m.saveIconFn != nil {
		return m.saveIconFn(ctx, icon)
	}
	return models.VaultItem{}, nil
}

func (m *mockIconRepository) GetIconByRef(ctx context.Context, userID uuid.UUID, iconRef string) (models.VaultIcon, error) {
	if m.getIconByRefFn != nil {
		return m.getIconByRefFn(ctx, userID, iconRef)
	}
	return models.VaultIcon{}, nil
}

// newTestKeyRing builds real crypto primitives under a random master key;
// the services are exercised against genuine envelope behaviour, not a
// crypto mock.
func newTestKeyRing(t *testing.T) (crypto.KeyRing, crypto.VaultCodec) {
	t.Helper()

	masterKey := make([]byte, models.KeySize)
	if _, err := rand.Read(masterKey); err != nil {
		t.Fatalf("failed to generate test master key: %v", err)
	}

	cipher := crypto.NewCipherService()
	keyRing, err := crypto.NewKeyRing(masterKey, cipher)
	if err != nil {
		t.Fatalf("failed to build test key ring: %v", err)
	}

	return keyRing, crypto.NewVaultCodec(cipher)
}
