package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/store"
	"github.com/lockboxd/lockbox/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "GitHub", want: "github"},
		{name: "spaces become dashes", in: "Home Assistant", want: "home-assistant"},
		{name: "punctuation dropped", in: "Proxmox VE (cluster)", want: "proxmox-ve-cluster"},
		{name: "surrounding dashes trimmed", in: " -Plex- ", want: "plex"},
		{name: "empty", in: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare domain", in: "grafana.example.com", want: "grafana.example.com"},
		{name: "full url", in: "https://grafana.example.com/dashboards", want: "grafana.example.com"},
		{name: "display name", in: "My NAS", want: ""},
		{name: "name without dot", in: "grafana", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDomain(tt.in))
		})
	}
}

func TestNormalizeContentType(t *testing.T) {
	assert.Equal(t, "image/png", normalizeContentType("image/PNG; charset=binary"))
	assert.Equal(t, "image/svg+xml", normalizeContentType(" image/svg+xml "))
}

func TestUploadIcon_Limits(t *testing.T) {
	ctx := context.Background()

	var saved models.VaultIcon
	repo := &mockIconRepository{
		saveIconFn: func(_ context.Context, icon models.VaultIcon) (models.VaultItem, error) {
			saved = icon
			kind := "upload"
			return models.VaultItem{ID: icon.VaultItemID, IconKind: &kind, IconRef: &icon.IconRef}, nil
		},
	}
	svc := NewIconService(repo, logger.Nop())

	userID, itemID := uuid.New(), uuid.New()
	png := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

	_, err := svc.UploadIcon(ctx, userID, itemID, "application/pdf", png)
	assert.ErrorIs(t, err, ErrUnsupportedIconType)

	_, err = svc.UploadIcon(ctx, userID, itemID, "image/png", nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.UploadIcon(ctx, userID, itemID, "image/png", bytes.Repeat([]byte{0xff}, maxIconBytes+1))
	assert.ErrorIs(t, err, ErrIconTooLarge)

	item, err := svc.UploadIcon(ctx, userID, itemID, "image/png; charset=binary", png)
	require.NoError(t, err)
	assert.Equal(t, itemID, item.ID)
	assert.Equal(t, "image/png", saved.ContentType)
	assert.True(t, strings.HasSuffix(saved.IconRef, ".png"), "reference carries the extension, got %q", saved.IconRef)
	assert.Equal(t, userID, saved.UserID)
}

func TestUploadIcon_RefsAreUnique(t *testing.T) {
	ctx := context.Background()

	refs := make(map[string]bool)
	repo := &mockIconRepository{
		saveIconFn: func(_ context.Context, icon models.VaultIcon) (models.VaultItem, error) {
			refs[icon.IconRef] = true
			return models.VaultItem{ID: icon.VaultItemID}, nil
		},
	}
	svc := NewIconService(repo, logger.Nop())

	png := []byte{0x89, 0x50}
	for range 5 {
		_, err := svc.UploadIcon(ctx, uuid.New(), uuid.New(), "image/png", png)
		require.NoError(t, err)
	}
	assert.Len(t, refs, 5)
}

func TestImportIcon_RejectsBadURL(t *testing.T) {
	ctx := context.Background()
	svc := NewIconService(&mockIconRepository{}, logger.Nop())

	for _, bad := range []string{"", "ftp://example.com/icon.png", "not a url", "file:///etc/passwd"} {
		_, err := svc.ImportIcon(ctx, uuid.New(), uuid.New(), bad)
		assert.ErrorIs(t, err, ErrInvalidIconURL, "url %q", bad)
	}
}

func TestGetIcon_NotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mockIconRepository{
		getIconByRefFn: func(_ context.Context, _ uuid.UUID, _ string) (models.VaultIcon, error) {
			return models.VaultIcon{}, store.ErrIconNotFound
		},
	}
	svc := NewIconService(repo, logger.Nop())

	_, err := svc.GetIcon(ctx, uuid.New(), "missing.png")
	assert.ErrorIs(t, err, store.ErrIconNotFound)
}

func TestSuggestIcons_EmptyName(t *testing.T) {
	ctx := context.Background()
	svc := NewIconService(&mockIconRepository{}, logger.Nop())

	_, err := svc.SuggestIcons(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
