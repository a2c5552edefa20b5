package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/internal/crypto"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/store"
	"github.com/lockboxd/lockbox/models"
)

// vaultService is the concrete implementation of [VaultService]. It is the
// only component that handles plaintext vault payloads on the server side:
// each call unwraps the owner's data key, encrypts or decrypts through the
// codec, and wipes the key before returning.
type vaultService struct {
	userRepository  store.UserRepository
	vaultRepository store.VaultRepository
	keyRing         crypto.KeyRing
	codec           crypto.VaultCodec
	logger          *logger.Logger
}

// NewVaultService constructs a [VaultService] wired to the given
// repositories, key ring and codec.
func NewVaultService(userRepository store.UserRepository, vaultRepository store.VaultRepository, keyRing crypto.KeyRing, codec crypto.VaultCodec, logger *logger.Logger) VaultService {
	return &vaultService{
		userRepository:  userRepository,
		vaultRepository: vaultRepository,
		keyRing:         keyRing,
		codec:           codec,
		logger:          logger,
	}
}

// ListEntries implements [VaultService]. A single unwrap covers the whole
// listing; a failure to unwrap means the master key no longer matches the
// stored wrapped keys and the request fails loudly rather than returning
// partial data.
func (s *vaultService) ListEntries(ctx context.Context, userID uuid.UUID, filter models.VaultFilter) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	dataKey, err := s.unwrapUserKey(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer wipe(dataKey)

	items, err := s.vaultRepository.ListVaultItems(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("vault listing ended with error: %w", err)
	}

	entries := make([]models.VaultEntry, 0, len(items))
	for _, item := range items {
		payload, decodeErr := s.codec.DecodeEntry(dataKey, item.Payload)
		if decodeErr != nil {
			log.Err(decodeErr).Str("item", item.ID.String()).Msg("vault entry decryption failed")
			return nil, fmt.Errorf("vault entry %s decryption failed: %w", item.ID, decodeErr)
		}
		entries = append(entries, assembleEntry(item, payload))
	}

	return entries, nil
}

// GetEntry implements [VaultService].
func (s *vaultService) GetEntry(ctx context.Context, userID, itemID uuid.UUID) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	dataKey, err := s.unwrapUserKey(ctx, userID)
	if err != nil {
		return models.VaultEntry{}, err
	}
	defer wipe(dataKey)

	item, err := s.vaultRepository.GetVaultItem(ctx, userID, itemID)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("vault entry lookup ended with error: %w", err)
	}

	payload, err := s.codec.DecodeEntry(dataKey, item.Payload)
	if err != nil {
		log.Err(err).Str("item", item.ID.String()).Msg("vault entry decryption failed")
		return models.VaultEntry{}, fmt.Errorf("vault entry %s decryption failed: %w", item.ID, err)
	}

	return assembleEntry(item, payload), nil
}

// CreateEntry implements [VaultService].
func (s *vaultService) CreateEntry(ctx context.Context, userID uuid.UUID, req models.VaultEntryRequest) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if err := validateEntryRequest(req); err != nil {
		return models.VaultEntry{}, err
	}

	dataKey, err := s.unwrapUserKey(ctx, userID)
	if err != nil {
		return models.VaultEntry{}, err
	}
	defer wipe(dataKey)

	payload, blob, err := s.codec.EncodeEntry(dataKey, entryPayload(req))
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("vault entry encryption ended with error: %w", err)
	}

	item := models.VaultItem{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    req.Title,
		Type:     req.Type,
		Category: req.Category,
		Payload:  blob,
	}

	created, err := s.vaultRepository.CreateVaultItem(ctx, item)
	if err != nil {
		log.Err(err).Msg("vault entry creation ended with error")
		return models.VaultEntry{}, fmt.Errorf("vault entry creation ended with error: %w", err)
	}

	return assembleEntry(created, payload), nil
}

// UpdateEntry implements [VaultService]. The whole payload is re-encrypted
// under a fresh nonce; credential IDs supplied by the client survive the
// round trip.
func (s *vaultService) UpdateEntry(ctx context.Context, userID, itemID uuid.UUID, req models.VaultEntryRequest) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if err := validateEntryRequest(req); err != nil {
		return models.VaultEntry{}, err
	}

	dataKey, err := s.unwrapUserKey(ctx, userID)
	if err != nil {
		return models.VaultEntry{}, err
	}
	defer wipe(dataKey)

	payload, blob, err := s.codec.EncodeEntry(dataKey, entryPayload(req))
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("vault entry encryption ended with error: %w", err)
	}

	item := models.VaultItem{
		ID:       itemID,
		UserID:   userID,
		Title:    req.Title,
		Type:     req.Type,
		Category: req.Category,
		Payload:  blob,
	}

	updated, err := s.vaultRepository.UpdateVaultItem(ctx, item)
	if err != nil {
		log.Err(err).Str("item", itemID.String()).Msg("vault entry update ended with error")
		return models.VaultEntry{}, fmt.Errorf("vault entry update ended with error: %w", err)
	}

	return assembleEntry(updated, payload), nil
}

// DeleteEntry implements [VaultService].
func (s *vaultService) DeleteEntry(ctx context.Context, userID, itemID uuid.UUID) error {
	log := logger.FromContext(ctx)

	if err := s.vaultRepository.DeleteVaultItem(ctx, userID, itemID); err != nil {
		log.Err(err).Str("item", itemID.String()).Msg("vault entry deletion ended with error")
		return fmt.Errorf("vault entry deletion ended with error: %w", err)
	}

	return nil
}

// unwrapUserKey loads the account row and unwraps its data key. The caller
// owns the returned slice and must wipe it.
func (s *vaultService) unwrapUserKey(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account lookup ended with error: %w", err)
	}

	dataKey, err := s.keyRing.UnwrapDataKey(user.WrappedDataKey)
	if err != nil {
		log.Err(err).Msg("data key unwrap failed, master key mismatch or corrupt wrapped key")
		return nil, fmt.Errorf("data key unwrap failed: %w", err)
	}

	return dataKey, nil
}

// validateEntryRequest checks the plaintext columns every entry must carry.
func validateEntryRequest(req models.VaultEntryRequest) error {
	if req.Title == "" {
		return ErrInvalidDataProvided
	}
	if req.Type != models.ItemTypeApplication && req.Type != models.ItemTypeServer {
		return ErrInvalidDataProvided
	}
	return nil
}

// entryPayload extracts the sensitive half of a request.
func entryPayload(req models.VaultEntryRequest) models.VaultPayload {
	return models.VaultPayload{
		URLs:        req.URLs,
		IPs:         req.IPs,
		ServerType:  req.ServerType,
		Credentials: req.Credentials,
		Notes:       req.Notes,
	}
}

// assembleEntry joins a stored row with its decrypted payload into the
// client-facing shape.
func assembleEntry(item models.VaultItem, payload models.VaultPayload) models.VaultEntry {
	return models.VaultEntry{
		ID:          item.ID,
		Title:       item.Title,
		Type:        item.Type,
		Category:    item.Category,
		URLs:        payload.URLs,
		IPs:         payload.IPs,
		ServerType:  payload.ServerType,
		Credentials: payload.Credentials,
		Notes:       payload.Notes,
		IconKind:    item.IconKind,
		IconURL:     item.IconURL,
		IconRef:     item.IconRef,
		IconMime:    item.IconMime,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
